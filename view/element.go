// Package view holds the rendered representation of a document: a tree of
// container, attribute and empty elements that maps one to one to HTML.
package view

import (
	"sort"
	"strings"
)

// DefaultPriority is the nesting priority of attribute elements created
// without an explicit priority. Lower priorities wrap higher ones.
const DefaultPriority = 10

// Kind tells how an element takes part in rendering.
type Kind string

const (
	// KindContainer elements structure blocks (<p>, <figure>).
	KindContainer Kind = "container"
	// KindAttribute elements wrap inline text (<mark>, <span>).
	KindAttribute Kind = "attribute"
	// KindEmpty elements never have children (<img>, <br>).
	KindEmpty Kind = "empty"
)

// Node is either an *Element or a *Text.
type Node interface {
	Parent() *Element
	setParent(parent *Element)
}

// Element is a view element.
type Element struct {
	Name     string
	Kind     Kind
	Priority int

	classes  []string
	attrs    map[string]string
	children []Node
	parent   *Element
}

// Text is a view text node.
type Text struct {
	Data   string
	parent *Element
}

// NewElement creates a container element. A "class" attribute is split
// into the class list.
func NewElement(name string, attrs map[string]string, children ...Node) *Element {
	el := &Element{
		Name:     name,
		Kind:     KindContainer,
		Priority: DefaultPriority,
	}
	for key, value := range attrs {
		el.SetAttribute(key, value)
	}
	el.AppendChildren(children...)
	return el
}

// NewText creates a detached text node.
func NewText(data string) *Text { return &Text{Data: data} }

// Parent returns the containing element.
func (e *Element) Parent() *Element { return e.parent }

func (e *Element) setParent(parent *Element) { e.parent = parent }

// Parent returns the containing element.
func (t *Text) Parent() *Element { return t.parent }

func (t *Text) setParent(parent *Element) { t.parent = parent }

// SetAttribute sets an attribute; "class" replaces the class list.
func (e *Element) SetAttribute(key, value string) {
	if key == "class" {
		e.classes = nil
		e.AddClass(strings.Fields(value)...)
		return
	}
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
}

// Attribute returns an attribute value. "class" is reassembled from the
// class list.
func (e *Element) Attribute(key string) (string, bool) {
	if key == "class" {
		if len(e.classes) == 0 {
			return "", false
		}
		return strings.Join(e.classes, " "), true
	}
	value, ok := e.attrs[key]
	return value, ok
}

// AttributeKeys returns attribute keys with "class" first and the rest sorted.
func (e *Element) AttributeKeys() []string {
	keys := make([]string, 0, len(e.attrs)+1)
	for key := range e.attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(e.classes) > 0 {
		keys = append([]string{"class"}, keys...)
	}
	return keys
}

// AddClass appends classes that are not present yet.
func (e *Element) AddClass(classes ...string) {
	for _, class := range classes {
		if class == "" || e.HasClass(class) {
			continue
		}
		e.classes = append(e.classes, class)
	}
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	for _, existing := range e.classes {
		if existing == class {
			return true
		}
	}
	return false
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// AppendChildren appends nodes. Adjacent texts are merged.
func (e *Element) AppendChildren(nodes ...Node) {
	for _, node := range nodes {
		if text, ok := node.(*Text); ok && len(e.children) > 0 {
			if last, ok := e.children[len(e.children)-1].(*Text); ok {
				last.Data += text.Data
				continue
			}
		}
		node.setParent(e)
		e.children = append(e.children, node)
	}
}

// IsSimilar reports whether two attribute elements would render the same
// wrapper, so adjacent runs can share it.
func (e *Element) IsSimilar(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	if e.Name != other.Name || e.Kind != other.Kind || e.Priority != other.Priority {
		return false
	}
	if len(e.classes) != len(other.classes) || len(e.attrs) != len(other.attrs) {
		return false
	}
	for _, class := range e.classes {
		if !other.HasClass(class) {
			return false
		}
	}
	for key, value := range e.attrs {
		if otherValue, ok := other.attrs[key]; !ok || otherValue != value {
			return false
		}
	}
	return true
}

// CloneShallow copies the element without its children.
func (e *Element) CloneShallow() *Element {
	cloned := &Element{
		Name:     e.Name,
		Kind:     e.Kind,
		Priority: e.Priority,
		classes:  append([]string(nil), e.classes...),
	}
	if e.attrs != nil {
		cloned.attrs = make(map[string]string, len(e.attrs))
		for key, value := range e.attrs {
			cloned.attrs[key] = value
		}
	}
	return cloned
}

// TextContent returns the concatenated text of all descendants.
func (e *Element) TextContent() string {
	var sb strings.Builder
	for _, child := range e.children {
		switch typed := child.(type) {
		case *Text:
			sb.WriteString(typed.Data)
		case *Element:
			sb.WriteString(typed.TextContent())
		}
	}
	return sb.String()
}
