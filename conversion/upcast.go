package conversion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

// ElementToAttributeDefinition turns a matching view element into a text
// attribute on everything converted from its children.
type ElementToAttributeDefinition struct {
	View  view.Matcher
	Key   string
	Value string
}

// ElementToElementUpcast creates a model element from a matching view
// element. Returning nil leaves the element to the next rule.
type ElementToElementUpcast struct {
	View  view.Matcher
	Model func(v *view.Element, ctx *UpcastContext) *model.Element
}

// UpcastContext is handed to element factories.
type UpcastContext struct {
	consumed map[*view.Element]bool
}

// Consume marks a view element as handled so it is not converted again.
func (c *UpcastContext) Consume(el *view.Element) {
	c.consumed[el] = true
}

// Upcast holds view to model rules.
type Upcast struct {
	schema     *model.Schema
	elements   []ElementToElementUpcast
	attributes []ElementToAttributeDefinition
}

// NewUpcast creates an empty upcast pipeline checking output against schema.
func NewUpcast(schema *model.Schema) *Upcast {
	return &Upcast{schema: schema}
}

// AddElementToElement registers a block rule.
func (u *Upcast) AddElementToElement(rule ElementToElementUpcast) error {
	if rule.Model == nil {
		return errors.New("element-to-element upcast requires a model factory")
	}
	u.elements = append(u.elements, rule)
	return nil
}

// AddElementToAttribute registers an inline attribute rule. Rules are tried
// in registration order; for one element the first rule setting a key wins.
func (u *Upcast) AddElementToAttribute(def ElementToAttributeDefinition) error {
	if def.Key == "" || def.Value == "" {
		return errors.New("element-to-attribute upcast requires a key and a value")
	}
	if def.View.Name == "" && len(def.View.Classes) == 0 && len(def.View.Attributes) == 0 {
		return fmt.Errorf("element-to-attribute upcast for %q matches every element", def.Key)
	}
	u.attributes = append(u.attributes, def)
	return nil
}

type upcastState struct {
	pipeline *Upcast
	ctx      *UpcastContext
	warnings []Warning
	// autoBlocks holds text blocks created around loose inline content.
	autoBlocks map[*model.Element]bool
}

// Convert builds a model root from a view root.
func (u *Upcast) Convert(root *view.Element) UpcastResult {
	s := &upcastState{
		pipeline:   u,
		ctx:        &UpcastContext{consumed: make(map[*view.Element]bool)},
		autoBlocks: make(map[*model.Element]bool),
	}

	modelRoot := model.NewElement(model.RootName, nil)
	s.convertChildren(root, modelRoot, nil)
	model.Normalize(modelRoot)

	return UpcastResult{
		Model:    modelRoot,
		Warnings: s.warnings,
	}
}

func (s *upcastState) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *upcastState) convertChildren(v *view.Element, parent *model.Element, attrs map[string]string) {
	for _, child := range v.Children() {
		switch typed := child.(type) {
		case *view.Text:
			s.insertText(typed.Data, parent, attrs)
		case *view.Element:
			if s.ctx.consumed[typed] {
				continue
			}
			s.convertElement(typed, parent, attrs)
		}
	}
}

func (s *upcastState) convertElement(v *view.Element, parent *model.Element, attrs map[string]string) {
	for _, rule := range s.pipeline.elements {
		if !rule.View.Match(v) {
			continue
		}
		el := rule.Model(v, s.ctx)
		if el == nil {
			continue
		}
		if !s.pipeline.schema.CheckChild(parent.Name, el.Name) {
			s.addWarning(WarningDisallowedContent, el.Name, fmt.Sprintf("%s is not allowed in %s; content unwrapped", el.Name, parent.Name))
			s.convertChildren(v, parent, attrs)
			return
		}
		parent.AppendChildren(el)
		s.convertChildren(v, el, attrs)
		return
	}

	next, matched := s.applyAttributes(v, attrs)
	if !matched {
		s.addWarning(WarningUnknownElement, v.Name, fmt.Sprintf("no upcast for <%s>; content kept without formatting", v.Name))
	}
	s.convertChildren(v, parent, next)
}

func (s *upcastState) applyAttributes(v *view.Element, attrs map[string]string) (map[string]string, bool) {
	var next map[string]string
	setHere := make(map[string]bool)

	for _, def := range s.pipeline.attributes {
		if setHere[def.Key] || !def.View.Match(v) {
			continue
		}
		if next == nil {
			next = make(map[string]string, len(attrs)+1)
			for key, value := range attrs {
				next[key] = value
			}
		}
		next[def.Key] = def.Value
		setHere[def.Key] = true
	}

	if next == nil {
		return attrs, false
	}
	return next, true
}

func (s *upcastState) insertText(data string, parent *model.Element, attrs map[string]string) {
	if data == "" {
		return
	}
	if !s.pipeline.schema.CheckChild(parent.Name, model.TextName) {
		if strings.TrimSpace(data) == "" {
			return
		}
		block := s.textBlock(parent)
		if block == nil {
			s.addWarning(WarningDisallowedContent, model.TextName, fmt.Sprintf("text is not allowed in %s; dropped", parent.Name))
			return
		}
		parent = block
	}

	allowed := make(map[string]string, len(attrs))
	for key, value := range attrs {
		if !s.pipeline.schema.CheckTextAttribute(parent, key) {
			s.addWarning(WarningDisallowedAttribute, key, fmt.Sprintf("%s is not allowed on text in %s; dropped", key, parent.Name))
			continue
		}
		allowed[key] = value
	}

	parent.AppendChildren(model.NewText(data, allowed))
}

// textBlock returns the block collecting loose text in parent. Consecutive
// inline content shares one block until another element follows it.
func (s *upcastState) textBlock(parent *model.Element) *model.Element {
	if n := parent.ChildCount(); n > 0 {
		if last, ok := parent.Child(n - 1).(*model.Element); ok && s.autoBlocks[last] {
			return last
		}
	}

	name, ok := s.pipeline.schema.TextBlockIn(parent.Name)
	if !ok {
		return nil
	}
	block := model.NewElement(name, nil)
	parent.AppendChildren(block)
	s.autoBlocks[block] = true
	return block
}
