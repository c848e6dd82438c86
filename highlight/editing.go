package highlight

import (
	"fmt"

	"github.com/rgonek/highlight/editor"
	"github.com/rgonek/highlight/model"
)

const (
	// AttributeKey is the text attribute holding the highlight value.
	AttributeKey = "highlight"
	// CommandName is the editor command applying and clearing highlights.
	CommandName = "highlight"
	// ConfigKey is the configuration key holding the option list.
	ConfigKey = "highlight.options"
)

// Editing is the highlight editor plugin.
type Editing struct {
	registry *Registry
}

// Name returns the plugin name.
func (*Editing) Name() string { return "highlight" }

// Registry returns the options loaded at initialization, or nil before it.
func (p *Editing) Registry() *Registry { return p.registry }

// Init allows the attribute on text, loads the options, registers both
// conversions and adds the command.
func (p *Editing) Init(e *editor.Editor) error {
	if err := e.Model.Schema.Extend(model.TextName, model.ItemDefinition{
		AllowAttributes: []string{AttributeKey},
	}); err != nil {
		return err
	}

	options, err := readOptions(e.Config)
	if err != nil {
		return err
	}
	registry, err := NewRegistry(options)
	if err != nil {
		return err
	}

	downcast, err := BuildDowncastDefinition(registry.All())
	if err != nil {
		return err
	}
	if err := e.Downcast.AddAttributeToElement(downcast); err != nil {
		return err
	}

	upcast, err := BuildUpcastDefinitions(registry.All())
	if err != nil {
		return err
	}
	for _, def := range upcast {
		if err := e.Upcast.AddElementToAttribute(def); err != nil {
			return err
		}
	}

	if err := e.AddCommand(CommandName, NewCommand(e, registry)); err != nil {
		return err
	}

	p.registry = registry
	e.Logger().Debugf("Registered %d highlight options", registry.Len())
	return nil
}

// Install adds the highlight plugin to e. Installing twice is a no-op.
func Install(e *editor.Editor) error {
	return e.Use(&Editing{})
}

func readOptions(cfg *editor.Config) ([]Option, error) {
	if !cfg.IsSet(ConfigKey) {
		return DefaultOptions(), nil
	}

	var options []Option
	if err := cfg.UnmarshalKeyStrict(ConfigKey, &options); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return options, nil
}

var _ editor.Plugin = (*Editing)(nil)
