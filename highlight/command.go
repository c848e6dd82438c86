package highlight

import (
	"github.com/rgonek/highlight/editor"
)

// Command applies a configured highlight to the selection, or clears it
// when executed with an empty value. Values outside the registry are
// rejected before the model is touched.
type Command struct {
	*editor.AttributeCommand
	registry *Registry
}

// NewCommand creates the highlight command for e.
func NewCommand(e *editor.Editor, registry *Registry) *Command {
	return &Command{
		AttributeCommand: editor.NewAttributeCommand(e, AttributeKey, registry.validateValue),
		registry:         registry,
	}
}

// Options returns the options the command can apply.
func (c *Command) Options() []Option {
	return c.registry.All()
}
