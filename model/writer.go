package model

import (
	"fmt"
)

// Writer mutates a working copy of the document inside Model.Change.
type Writer struct {
	root      *Element
	selection *Selection
	schema    *Schema
}

// Root returns the working root.
func (w *Writer) Root() *Element { return w.root }

// Selection returns the working selection (never nil).
func (w *Writer) Selection() *Selection { return w.selection }

// Append appends node to parent after checking the schema.
func (w *Writer) Append(node Node, parent *Element) error {
	name := itemName(node)
	if !w.schema.CheckChild(parent.Name, name) {
		return fmt.Errorf("%s is not allowed in %s", name, parent.Name)
	}
	parent.AppendChildren(node)
	return nil
}

// SetSelection replaces the selection range and clears selection attributes.
func (w *Writer) SetSelection(r Range) {
	w.selection.Range = r
	w.selection.attrs = nil
}

// SetSelectionAttribute sets an attribute applied to text typed at a
// collapsed selection.
func (w *Writer) SetSelectionAttribute(key, value string) {
	if w.selection.attrs == nil {
		w.selection.attrs = make(map[string]string)
	}
	w.selection.attrs[key] = value
}

// RemoveSelectionAttribute clears a selection attribute.
func (w *Writer) RemoveSelectionAttribute(key string) {
	delete(w.selection.attrs, key)
}

// SetAttribute sets key on every text in r that the schema allows it on.
// It returns the number of text nodes changed.
func (w *Writer) SetAttribute(key, value string, r Range) (int, error) {
	texts, err := w.splitRange(r)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, t := range texts {
		if !w.schema.CheckAttribute(t, key) {
			continue
		}
		if current, ok := t.Attribute(key); ok && current == value {
			continue
		}
		t.setAttribute(key, value)
		changed++
	}
	return changed, nil
}

// RemoveAttribute clears key from every text in r.
func (w *Writer) RemoveAttribute(key string, r Range) (int, error) {
	texts, err := w.splitRange(r)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, t := range texts {
		if !t.HasAttribute(key) {
			continue
		}
		t.removeAttribute(key)
		changed++
	}
	return changed, nil
}

// splitRange splits texts at both range boundaries and returns the texts
// fully inside r.
func (w *Writer) splitRange(r Range) ([]*Text, error) {
	if r.IsCollapsed() {
		return nil, nil
	}
	if err := w.splitAt(r.End); err != nil {
		return nil, err
	}
	if err := w.splitAt(r.Start); err != nil {
		return nil, err
	}
	return Texts(w.root, r), nil
}

func (w *Writer) splitAt(pos Position) error {
	parent, err := pos.Parent(w.root)
	if err != nil {
		return err
	}

	index, start := parent.IndexAt(pos.Offset())
	if index >= parent.ChildCount() || start == pos.Offset() {
		return nil
	}

	t, ok := parent.Child(index).(*Text)
	if !ok {
		return nil
	}

	runes := []rune(t.Data)
	cut := pos.Offset() - start
	tail := NewText(string(runes[cut:]), t.attrs)
	t.Data = string(runes[:cut])
	parent.InsertChildren(index+1, tail)
	return nil
}
