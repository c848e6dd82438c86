package view

// AttributeElementOptions carries the creation request for an attribute
// element. Priority decides nesting: lower priorities end up outside.
type AttributeElementOptions struct {
	Priority int
}

// Writer creates view nodes for converters.
type Writer struct{}

// CreateContainerElement creates a block-level element.
func (Writer) CreateContainerElement(name string, attrs map[string]string) *Element {
	return NewElement(name, attrs)
}

// CreateAttributeElement creates an inline wrapper. A zero priority means
// DefaultPriority.
func (Writer) CreateAttributeElement(name string, attrs map[string]string, opts AttributeElementOptions) *Element {
	el := NewElement(name, attrs)
	el.Kind = KindAttribute
	el.Priority = opts.Priority
	if el.Priority == 0 {
		el.Priority = DefaultPriority
	}
	return el
}

// CreateEmptyElement creates an element that never has children.
func (Writer) CreateEmptyElement(name string, attrs map[string]string) *Element {
	el := NewElement(name, attrs)
	el.Kind = KindEmpty
	return el
}

// CreateText creates a text node.
func (Writer) CreateText(data string) *Text { return NewText(data) }
