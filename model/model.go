package model

// ChangeListener is notified after every committed change.
type ChangeListener func()

// Model holds the document tree, the selection and the schema.
type Model struct {
	Schema *Schema

	root      *Element
	selection *Selection
	listeners []ChangeListener
}

// New creates an empty document model.
func New() *Model {
	root := NewElement(RootName, nil)
	return &Model{
		Schema:    NewSchema(),
		root:      root,
		selection: &Selection{Range: RangeIn(root)},
	}
}

// Root returns the committed document root. Callers must not mutate it;
// use Change instead.
func (m *Model) Root() *Element { return m.root }

// Selection returns a copy of the committed selection.
func (m *Model) Selection() *Selection { return m.selection.clone() }

// OnChange registers a listener called after each committed change.
func (m *Model) OnChange(listener ChangeListener) {
	m.listeners = append(m.listeners, listener)
}

// Change runs fn against a working copy of the document. The copy is
// committed only when fn returns nil, so a failing change leaves the
// document untouched.
func (m *Model) Change(fn func(w *Writer) error) error {
	w := &Writer{
		root:      m.root.Clone(),
		selection: m.selection.clone(),
		schema:    m.Schema,
	}

	if err := fn(w); err != nil {
		return err
	}

	Normalize(w.root)
	m.root = w.root
	m.selection = w.selection

	for _, listener := range m.listeners {
		listener()
	}
	return nil
}

// SetRoot replaces the whole document, typically after loading data.
func (m *Model) SetRoot(root *Element, selection *Range) error {
	return m.Change(func(w *Writer) error {
		w.root = root.Clone()
		w.root.Name = RootName
		if selection != nil {
			w.SetSelection(*selection)
		} else {
			w.SetSelection(Range{Start: NewPosition(w.root, 0), End: NewPosition(w.root, 0)})
		}
		return nil
	})
}
