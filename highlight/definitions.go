package highlight

import (
	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

// Priority keeps <mark> inside every other inline wrapper of default
// priority.
const Priority = view.DefaultPriority + 5

const markElement = "mark"

// BuildDowncastDefinition maps every configured value to a <mark> element
// with the option class.
func BuildDowncastDefinition(options []Option) (conversion.AttributeToElementDefinition, error) {
	registry, err := NewRegistry(options)
	if err != nil {
		return conversion.AttributeToElementDefinition{}, err
	}

	def := conversion.AttributeToElementDefinition{
		Key:    AttributeKey,
		Values: make([]string, 0, registry.Len()),
		View:   make(map[string]conversion.ElementCreator, registry.Len()),
	}
	for _, opt := range registry.All() {
		def.Values = append(def.Values, opt.Model)
		def.View[opt.Model] = markCreator(opt.Class)
	}
	return def, nil
}

func markCreator(class string) conversion.ElementCreator {
	return func(_ string, w view.Writer) *view.Element {
		return w.CreateAttributeElement(markElement, map[string]string{"class": class}, view.AttributeElementOptions{
			Priority: Priority,
		})
	}
}

// BuildUpcastDefinitions returns one rule per option, in configuration
// order, matching <mark> with the option class.
func BuildUpcastDefinitions(options []Option) ([]conversion.ElementToAttributeDefinition, error) {
	registry, err := NewRegistry(options)
	if err != nil {
		return nil, err
	}

	defs := make([]conversion.ElementToAttributeDefinition, 0, registry.Len())
	for _, opt := range registry.All() {
		defs = append(defs, conversion.ElementToAttributeDefinition{
			View: view.Matcher{
				Name:    markElement,
				Classes: []string{opt.Class},
			},
			Key:   AttributeKey,
			Value: opt.Model,
		})
	}
	return defs, nil
}
