// Package fontsize renders the fontSize text attribute as a classed <span>.
package fontsize

import (
	"fmt"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/editor"
	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

const (
	AttributeKey = "fontSize"
	CommandName  = "fontSize"
)

// Sizes are the supported named sizes, smallest first.
var Sizes = []string{"tiny", "small", "big", "huge"}

// Plugin is the font size editor plugin.
type Plugin struct{}

// Name returns the plugin name.
func (Plugin) Name() string { return "fontSize" }

// Init registers the attribute, its conversions and the command.
func (Plugin) Init(e *editor.Editor) error {
	if err := e.Model.Schema.Extend(model.TextName, model.ItemDefinition{
		AllowAttributes: []string{AttributeKey},
	}); err != nil {
		return err
	}

	def := conversion.AttributeToElementDefinition{
		Key:    AttributeKey,
		Values: append([]string(nil), Sizes...),
		View:   make(map[string]conversion.ElementCreator, len(Sizes)),
	}
	for _, size := range Sizes {
		class := className(size)
		def.View[size] = func(_ string, w view.Writer) *view.Element {
			return w.CreateAttributeElement("span", map[string]string{"class": class}, view.AttributeElementOptions{})
		}

		if err := e.Upcast.AddElementToAttribute(conversion.ElementToAttributeDefinition{
			View:  view.Matcher{Name: "span", Classes: []string{class}},
			Key:   AttributeKey,
			Value: size,
		}); err != nil {
			return err
		}
	}
	if err := e.Downcast.AddAttributeToElement(def); err != nil {
		return err
	}

	return e.AddCommand(CommandName, editor.NewAttributeCommand(e, AttributeKey, validateSize))
}

func className(size string) string {
	return "text-" + size
}

func validateSize(value string) error {
	for _, size := range Sizes {
		if size == value {
			return nil
		}
	}
	return fmt.Errorf("unknown font size %q", value)
}

var _ editor.Plugin = Plugin{}
