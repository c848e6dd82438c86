// Package conversion turns model trees into view trees (downcast) and view
// trees into model trees (upcast) using registered rules.
package conversion

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

// ElementCreator builds the view wrapper for one attribute value. Returning
// nil means the value has no view.
type ElementCreator func(value string, w view.Writer) *view.Element

// AttributeToElementDefinition maps every listed value of a text attribute
// to a wrapping view element.
type AttributeToElementDefinition struct {
	Key    string
	Values []string
	View   map[string]ElementCreator
}

// Validate checks that every value has a creator.
func (d AttributeToElementDefinition) Validate() error {
	if d.Key == "" {
		return errors.New("attribute-to-element definition requires a key")
	}
	if len(d.Values) == 0 {
		return fmt.Errorf("attribute-to-element definition for %q has no values", d.Key)
	}
	for _, value := range d.Values {
		if d.View[value] == nil {
			return fmt.Errorf("attribute-to-element definition for %q has no view for value %q", d.Key, value)
		}
	}
	return nil
}

// ElementToElementDowncast renders a model element as a view element. The
// model children are converted into the returned element.
type ElementToElementDowncast struct {
	Model string
	View  func(el *model.Element, w view.Writer) *view.Element
}

// Downcast holds model to view rules.
type Downcast struct {
	elements   map[string]ElementToElementDowncast
	attributes map[string]AttributeToElementDefinition
}

// NewDowncast creates an empty downcast pipeline.
func NewDowncast() *Downcast {
	return &Downcast{
		elements:   make(map[string]ElementToElementDowncast),
		attributes: make(map[string]AttributeToElementDefinition),
	}
}

// AddElementToElement registers a block rule.
func (d *Downcast) AddElementToElement(rule ElementToElementDowncast) error {
	if rule.Model == "" || rule.View == nil {
		return errors.New("element-to-element downcast requires a model name and a view factory")
	}
	if _, exists := d.elements[rule.Model]; exists {
		return fmt.Errorf("downcast for element %q is already registered", rule.Model)
	}
	d.elements[rule.Model] = rule
	return nil
}

// AddAttributeToElement registers an inline attribute rule.
func (d *Downcast) AddAttributeToElement(def AttributeToElementDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := d.attributes[def.Key]; exists {
		return fmt.Errorf("downcast for attribute %q is already registered", def.Key)
	}
	d.attributes[def.Key] = def
	return nil
}

// HasAttribute reports whether a rule for key exists.
func (d *Downcast) HasAttribute(key string) bool {
	_, ok := d.attributes[key]
	return ok
}

type downcastState struct {
	pipeline *Downcast
	writer   view.Writer
	warnings []Warning
}

// Convert renders the model root into a new view root.
func (d *Downcast) Convert(root *model.Element) DowncastResult {
	s := &downcastState{pipeline: d}
	viewRoot := view.NewElement(view.RootName, nil)
	s.convertChildren(root, viewRoot)

	return DowncastResult{
		View:     viewRoot,
		Warnings: s.warnings,
	}
}

func (s *downcastState) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *downcastState) convertChildren(parent *model.Element, target *view.Element) {
	var activeWrappers []*view.Element

	for _, child := range parent.Children() {
		switch typed := child.(type) {
		case *model.Text:
			activeWrappers = s.convertText(typed, target, activeWrappers)
		case *model.Element:
			activeWrappers = nil
			s.convertElement(typed, target)
		}
	}
}

func (s *downcastState) convertElement(el *model.Element, target *view.Element) {
	rule, ok := s.pipeline.elements[el.Name]
	if !ok {
		s.addWarning(WarningUnknownElement, el.Name, fmt.Sprintf("no downcast for element %q; skipped", el.Name))
		return
	}

	viewElement := rule.View(el, s.writer)
	if viewElement == nil {
		return
	}
	target.AppendChildren(viewElement)
	s.convertChildren(el, viewElement)
}

// convertText renders one text run. Wrappers that the previous run left
// open are reused as long as they form a common prefix of the wrappers this
// run needs, so adjacent runs share markup.
func (s *downcastState) convertText(t *model.Text, target *view.Element, active []*view.Element) []*view.Element {
	wanted := s.wrappersFor(t)

	common := 0
	for common < len(active) && common < len(wanted) && active[common].IsSimilar(wanted[common]) {
		common++
	}

	open := append([]*view.Element(nil), active[:common]...)
	for _, wrapper := range wanted[common:] {
		container := target
		if len(open) > 0 {
			container = open[len(open)-1]
		}
		container.AppendChildren(wrapper)
		open = append(open, wrapper)
	}

	container := target
	if len(open) > 0 {
		container = open[len(open)-1]
	}
	container.AppendChildren(s.writer.CreateText(t.Data))

	return open
}

type keyedWrapper struct {
	key     string
	element *view.Element
}

// wrappersFor returns the attribute elements for t, outermost first:
// ascending priority, then element name, then attribute key.
func (s *downcastState) wrappersFor(t *model.Text) []*view.Element {
	var wrappers []keyedWrapper

	for _, key := range t.AttributeKeys() {
		def, ok := s.pipeline.attributes[key]
		if !ok {
			continue
		}

		value, _ := t.Attribute(key)
		creator := def.View[value]
		if creator == nil {
			s.addWarning(WarningUnmatchedValue, key, fmt.Sprintf("no view for %s=%q; value left unrendered", key, value))
			continue
		}

		el := creator(value, s.writer)
		if el == nil {
			continue
		}
		wrappers = append(wrappers, keyedWrapper{key: key, element: el})
	}

	sort.SliceStable(wrappers, func(i, j int) bool {
		left, right := wrappers[i].element, wrappers[j].element
		if left.Priority != right.Priority {
			return left.Priority < right.Priority
		}
		if left.Name != right.Name {
			return left.Name < right.Name
		}
		return wrappers[i].key < wrappers[j].key
	})

	out := make([]*view.Element, len(wrappers))
	for i, wrapper := range wrappers {
		out[i] = wrapper.element
	}
	return out
}
