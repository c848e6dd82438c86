package model

import (
	"sort"
)

// RootName is the name of the document root element.
const RootName = "$root"

// TextName is the schema item name used for text nodes.
const TextName = "$text"

// Node is either an *Element or a *Text.
type Node interface {
	// Parent returns the containing element or nil for a detached node.
	Parent() *Element
	// Size returns the number of offsets the node occupies in its parent.
	Size() int

	setParent(parent *Element)
	clone() Node
}

// Element is a named model node with attributes and children.
type Element struct {
	Name     string
	attrs    map[string]string
	children []Node
	parent   *Element
}

// Text is a run of characters sharing the same attributes.
type Text struct {
	Data   string
	attrs  map[string]string
	parent *Element
}

// NewElement creates a detached element.
func NewElement(name string, attrs map[string]string, children ...Node) *Element {
	el := &Element{
		Name:  name,
		attrs: cloneAttrs(attrs),
	}
	el.AppendChildren(children...)
	return el
}

// NewText creates a detached text node.
func NewText(data string, attrs map[string]string) *Text {
	return &Text{
		Data:  data,
		attrs: cloneAttrs(attrs),
	}
}

// Parent returns the containing element.
func (e *Element) Parent() *Element { return e.parent }

// Size is always 1 for elements.
func (e *Element) Size() int { return 1 }

func (e *Element) setParent(parent *Element) { e.parent = parent }

// Attribute returns the attribute value and whether it is set.
func (e *Element) Attribute(key string) (string, bool) {
	value, ok := e.attrs[key]
	return value, ok
}

// AttributeKeys returns the attribute keys in sorted order.
func (e *Element) AttributeKeys() []string { return sortedKeys(e.attrs) }

// SetAttribute sets an element attribute.
func (e *Element) SetAttribute(key, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
}

// ChildCount returns the number of direct children.
func (e *Element) ChildCount() int { return len(e.children) }

// Child returns the child at index or nil.
func (e *Element) Child(index int) Node {
	if index < 0 || index >= len(e.children) {
		return nil
	}
	return e.children[index]
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// MaxOffset returns the offset after the last child.
func (e *Element) MaxOffset() int {
	total := 0
	for _, child := range e.children {
		total += child.Size()
	}
	return total
}

// AppendChildren appends nodes, detaching them from any previous parent.
func (e *Element) AppendChildren(nodes ...Node) {
	e.InsertChildren(len(e.children), nodes...)
}

// InsertChildren inserts nodes at the given child index.
func (e *Element) InsertChildren(index int, nodes ...Node) {
	if len(nodes) == 0 {
		return
	}
	for _, node := range nodes {
		if old := node.Parent(); old != nil {
			old.removeChild(node)
		}
		node.setParent(e)
	}

	updated := make([]Node, 0, len(e.children)+len(nodes))
	updated = append(updated, e.children[:index]...)
	updated = append(updated, nodes...)
	updated = append(updated, e.children[index:]...)
	e.children = updated
}

// RemoveChildren removes count children starting at index.
func (e *Element) RemoveChildren(index, count int) []Node {
	removed := make([]Node, count)
	copy(removed, e.children[index:index+count])
	e.children = append(e.children[:index], e.children[index+count:]...)
	for _, node := range removed {
		node.setParent(nil)
	}
	return removed
}

func (e *Element) removeChild(node Node) {
	for i, child := range e.children {
		if child == node {
			e.RemoveChildren(i, 1)
			return
		}
	}
}

// ChildIndex returns the index of node among the children or -1.
func (e *Element) ChildIndex(node Node) int {
	for i, child := range e.children {
		if child == node {
			return i
		}
	}
	return -1
}

// OffsetOf returns the start offset of the child at index.
func (e *Element) OffsetOf(index int) int {
	offset := 0
	for i := 0; i < index && i < len(e.children); i++ {
		offset += e.children[i].Size()
	}
	return offset
}

// IndexAt returns the index of the child containing offset, and the offset
// of that child. When offset falls past the last child it returns
// (ChildCount(), MaxOffset()).
func (e *Element) IndexAt(offset int) (int, int) {
	start := 0
	for i, child := range e.children {
		if offset < start+child.Size() {
			return i, start
		}
		start += child.Size()
	}
	return len(e.children), start
}

// Path returns the offsets leading from the root to this element.
func (e *Element) Path() []int {
	var path []int
	node := Node(e)
	for node.Parent() != nil {
		parent := node.Parent()
		path = append(path, parent.OffsetOf(parent.ChildIndex(node)))
		node = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (e *Element) clone() Node {
	cloned := &Element{
		Name:  e.Name,
		attrs: cloneAttrs(e.attrs),
	}
	for _, child := range e.children {
		c := child.clone()
		c.setParent(cloned)
		cloned.children = append(cloned.children, c)
	}
	return cloned
}

// Clone returns a deep, detached copy of the element.
func (e *Element) Clone() *Element {
	return e.clone().(*Element)
}

// Parent returns the containing element.
func (t *Text) Parent() *Element { return t.parent }

// Size returns the rune length of the text.
func (t *Text) Size() int { return len([]rune(t.Data)) }

func (t *Text) setParent(parent *Element) { t.parent = parent }

func (t *Text) clone() Node {
	return &Text{
		Data:  t.Data,
		attrs: cloneAttrs(t.attrs),
	}
}

// Attribute returns the attribute value and whether it is set.
func (t *Text) Attribute(key string) (string, bool) {
	value, ok := t.attrs[key]
	return value, ok
}

// HasAttribute reports whether key is set.
func (t *Text) HasAttribute(key string) bool {
	_, ok := t.attrs[key]
	return ok
}

// AttributeKeys returns the attribute keys in sorted order.
func (t *Text) AttributeKeys() []string { return sortedKeys(t.attrs) }

// Attributes returns a copy of the attribute map.
func (t *Text) Attributes() map[string]string { return cloneAttrs(t.attrs) }

func (t *Text) setAttribute(key, value string) {
	if t.attrs == nil {
		t.attrs = make(map[string]string)
	}
	t.attrs[key] = value
}

func (t *Text) removeAttribute(key string) {
	delete(t.attrs, key)
	if len(t.attrs) == 0 {
		t.attrs = nil
	}
}

func cloneAttrs(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}

	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}

func attrsEqual(left, right map[string]string) bool {
	if len(left) != len(right) {
		return false
	}
	for key, leftValue := range left {
		rightValue, ok := right[key]
		if !ok || leftValue != rightValue {
			return false
		}
	}
	return true
}

func sortedKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
