// Package blocks provides the block-level features the highlight feature
// composes with: paragraphs and images with captions.
package blocks

import (
	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/editor"
	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

// ParagraphName is the model name of a paragraph.
const ParagraphName = "paragraph"

// Paragraph maps the paragraph model element to <p>.
type Paragraph struct{}

// Name returns the plugin name.
func (Paragraph) Name() string { return "paragraph" }

// Init registers the schema item and both conversions.
func (Paragraph) Init(e *editor.Editor) error {
	schema := e.Model.Schema
	if err := schema.Register(ParagraphName, model.ItemDefinition{
		AllowIn: []string{model.RootName},
		IsBlock: true,
	}); err != nil {
		return err
	}
	if err := schema.Extend(model.TextName, model.ItemDefinition{
		AllowIn: []string{ParagraphName},
	}); err != nil {
		return err
	}

	if err := e.Downcast.AddElementToElement(conversion.ElementToElementDowncast{
		Model: ParagraphName,
		View: func(_ *model.Element, w view.Writer) *view.Element {
			return w.CreateContainerElement("p", nil)
		},
	}); err != nil {
		return err
	}

	return e.Upcast.AddElementToElement(conversion.ElementToElementUpcast{
		View: view.Matcher{Name: "p"},
		Model: func(_ *view.Element, _ *conversion.UpcastContext) *model.Element {
			return model.NewElement(ParagraphName, nil)
		},
	})
}

var _ editor.Plugin = Paragraph{}
