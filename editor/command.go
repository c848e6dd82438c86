package editor

import (
	"github.com/rgonek/highlight/model"
)

// Params is the execution payload of a command. An empty Value means
// "clear".
type Params struct {
	Value string
}

// Command is an editor action bound to a name.
type Command interface {
	Execute(params Params) error
	IsEnabled() bool
	Value() (string, bool)
}

// AttributeCommand sets or clears a single-valued text attribute on the
// selection.
type AttributeCommand struct {
	editor   *Editor
	key      string
	validate func(value string) error
}

// NewAttributeCommand creates a command for the text attribute key. The
// optional validate func rejects values before any change is made.
func NewAttributeCommand(e *Editor, key string, validate func(value string) error) *AttributeCommand {
	return &AttributeCommand{
		editor:   e,
		key:      key,
		validate: validate,
	}
}

// Key returns the attribute key the command manages.
func (c *AttributeCommand) Key() string { return c.key }

// IsEnabled reports whether the attribute may be applied somewhere in the
// selection.
func (c *AttributeCommand) IsEnabled() bool {
	m := c.editor.Model
	sel := m.Selection().Range

	if sel.IsCollapsed() {
		parent, err := sel.Start.Parent(m.Root())
		if err != nil {
			return false
		}
		return m.Schema.CheckTextAttribute(parent, c.key)
	}

	return m.Schema.HasValidText(m.Root(), sel, c.key)
}

// Value returns the attribute value at the selection: the selection
// attribute or the text before a collapsed selection, or the first text of
// a non-collapsed one.
func (c *AttributeCommand) Value() (string, bool) {
	m := c.editor.Model
	sel := m.Selection()

	if sel.Range.IsCollapsed() {
		if value, ok := sel.Attribute(c.key); ok {
			return value, true
		}
		if t := model.TextBefore(m.Root(), sel.Range.Start); t != nil {
			return t.Attribute(c.key)
		}
		return "", false
	}

	for _, t := range model.Texts(m.Root(), sel.Range) {
		if !m.Schema.CheckAttribute(t, c.key) {
			continue
		}
		return t.Attribute(c.key)
	}
	return "", false
}

// Execute applies params.Value to every allowed text in the selection, or
// removes the attribute when Value is empty. The whole selection changes in
// one model change.
func (c *AttributeCommand) Execute(params Params) error {
	if params.Value != "" && c.validate != nil {
		if err := c.validate(params.Value); err != nil {
			return err
		}
	}

	if !c.IsEnabled() {
		c.editor.logger.Debugf("command for %s is disabled at the current selection", c.key)
		return nil
	}

	return c.editor.Model.Change(func(w *model.Writer) error {
		r := w.Selection().Range

		if r.IsCollapsed() {
			if params.Value == "" {
				w.RemoveSelectionAttribute(c.key)
			} else {
				w.SetSelectionAttribute(c.key, params.Value)
			}
			return nil
		}

		var err error
		if params.Value == "" {
			_, err = w.RemoveAttribute(c.key, r)
		} else {
			_, err = w.SetAttribute(c.key, params.Value, r)
		}
		return err
	})
}
