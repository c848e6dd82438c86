package model

import (
	"fmt"
	"sort"
)

// ItemDefinition describes where an item may appear and which attributes it
// accepts. Extending an item merges definitions with set semantics.
type ItemDefinition struct {
	AllowIn         []string
	AllowAttributes []string
	IsBlock         bool
	IsObject        bool
	IsLimit         bool
}

// AttributeCheck can veto an attribute on a specific node. Returning false
// disallows the attribute.
type AttributeCheck func(node Node, key string) bool

type schemaItem struct {
	allowIn    map[string]bool
	allowAttrs map[string]bool
	isBlock    bool
	isObject   bool
	isLimit    bool
}

// Schema keeps the structural rules of the document.
type Schema struct {
	items  map[string]*schemaItem
	checks []AttributeCheck
}

// NewSchema returns a schema with the root and text items registered.
func NewSchema() *Schema {
	s := &Schema{items: make(map[string]*schemaItem)}
	s.items[RootName] = newSchemaItem(ItemDefinition{IsLimit: true})
	s.items[TextName] = newSchemaItem(ItemDefinition{})
	return s
}

func newSchemaItem(def ItemDefinition) *schemaItem {
	item := &schemaItem{
		allowIn:    make(map[string]bool),
		allowAttrs: make(map[string]bool),
	}
	item.merge(def)
	return item
}

func (i *schemaItem) merge(def ItemDefinition) {
	for _, parent := range def.AllowIn {
		i.allowIn[parent] = true
	}
	for _, attr := range def.AllowAttributes {
		i.allowAttrs[attr] = true
	}
	i.isBlock = i.isBlock || def.IsBlock
	i.isObject = i.isObject || def.IsObject
	i.isLimit = i.isLimit || def.IsLimit
}

// Register adds a new item. Registering a name twice is an error.
func (s *Schema) Register(name string, def ItemDefinition) error {
	if _, exists := s.items[name]; exists {
		return fmt.Errorf("schema item %q is already registered", name)
	}
	s.items[name] = newSchemaItem(def)
	return nil
}

// Extend merges def into an already registered item.
func (s *Schema) Extend(name string, def ItemDefinition) error {
	item, ok := s.items[name]
	if !ok {
		return fmt.Errorf("cannot extend unregistered schema item %q", name)
	}
	item.merge(def)
	return nil
}

// IsRegistered reports whether name is a known item.
func (s *Schema) IsRegistered(name string) bool {
	_, ok := s.items[name]
	return ok
}

// IsLimit reports whether name is a limit element. Selecting all stops at
// the innermost limit or object element around the selection.
func (s *Schema) IsLimit(name string) bool {
	item, ok := s.items[name]
	return ok && item.isLimit
}

// IsObject reports whether name is a self-contained object. Objects act as
// limits and never receive automatically created text blocks.
func (s *Schema) IsObject(name string) bool {
	item, ok := s.items[name]
	return ok && item.isObject
}

// IsBlock reports whether name is a block.
func (s *Schema) IsBlock(name string) bool {
	item, ok := s.items[name]
	return ok && item.isBlock
}

// TextBlockIn returns the block that can wrap loose text placed in parent:
// a non-object block allowed in parent that accepts text. Candidates are
// tried in name order.
func (s *Schema) TextBlockIn(parent string) (string, bool) {
	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		item := s.items[name]
		if !item.isBlock || item.isObject || !item.allowIn[parent] {
			continue
		}
		if s.CheckChild(name, TextName) {
			return name, true
		}
	}
	return "", false
}

// LimitElement returns the innermost limit or object element containing the
// whole range r, or root when there is none.
func (s *Schema) LimitElement(root *Element, r Range) *Element {
	el, err := r.Start.Parent(root)
	if err != nil {
		return root
	}

	for ; el != nil && el != root; el = el.Parent() {
		if !s.IsLimit(el.Name) && !s.IsObject(el.Name) {
			continue
		}
		inside := RangeIn(el)
		if inside.Start.Compare(r.End) <= 0 && r.End.Compare(inside.End) <= 0 {
			return el
		}
	}
	return root
}

// AllowedAttributes returns the attributes allowed on name, sorted.
func (s *Schema) AllowedAttributes(name string) []string {
	item, ok := s.items[name]
	if !ok {
		return nil
	}
	attrs := make([]string, 0, len(item.allowAttrs))
	for attr := range item.allowAttrs {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	return attrs
}

// AddAttributeCheck installs a context-aware attribute veto.
func (s *Schema) AddAttributeCheck(check AttributeCheck) {
	s.checks = append(s.checks, check)
}

// CheckChild reports whether child may be placed directly in parent.
func (s *Schema) CheckChild(parent, child string) bool {
	item, ok := s.items[child]
	if !ok {
		return false
	}
	return item.allowIn[parent]
}

// CheckAttribute reports whether key may be set on node.
func (s *Schema) CheckAttribute(node Node, key string) bool {
	item, ok := s.items[itemName(node)]
	if !ok || !item.allowAttrs[key] {
		return false
	}
	for _, check := range s.checks {
		if !check(node, key) {
			return false
		}
	}
	return true
}

// CheckTextAttribute reports whether a text node placed in parent could
// carry key.
func (s *Schema) CheckTextAttribute(parent *Element, key string) bool {
	if !s.CheckChild(parent.Name, TextName) {
		return false
	}
	probe := &Text{parent: parent}
	return s.CheckAttribute(probe, key)
}

// HasValidText reports whether at least one text node in r may carry key.
func (s *Schema) HasValidText(root *Element, r Range, key string) bool {
	valid := false
	walkTexts(root, r, func(t *Text) bool {
		if s.CheckAttribute(t, key) {
			valid = true
			return false
		}
		return true
	})
	return valid
}

func itemName(node Node) string {
	switch typed := node.(type) {
	case *Element:
		return typed.Name
	case *Text:
		return TextName
	default:
		return ""
	}
}
