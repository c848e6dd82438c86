package blocks

import (
	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/editor"
	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

const (
	// ImageName is the model name of a block image.
	ImageName = "image"
	// CaptionName is the model name of an image caption.
	CaptionName = "caption"
)

// Image renders images as <figure class="image"><img></figure> with an
// optional <figcaption>. The image itself is an object: text attributes
// never land on it, only on the caption text.
type Image struct{}

// Name returns the plugin name.
func (Image) Name() string { return "image" }

// Init registers image and caption.
func (Image) Init(e *editor.Editor) error {
	schema := e.Model.Schema
	if err := schema.Register(ImageName, model.ItemDefinition{
		AllowIn:         []string{model.RootName},
		AllowAttributes: []string{"src", "alt"},
		IsBlock:         true,
		IsObject:        true,
	}); err != nil {
		return err
	}
	if err := schema.Register(CaptionName, model.ItemDefinition{
		AllowIn: []string{ImageName},
		IsLimit: true,
	}); err != nil {
		return err
	}
	if err := schema.Extend(model.TextName, model.ItemDefinition{
		AllowIn: []string{CaptionName},
	}); err != nil {
		return err
	}

	if err := e.Downcast.AddElementToElement(conversion.ElementToElementDowncast{
		Model: ImageName,
		View:  downcastImage,
	}); err != nil {
		return err
	}
	if err := e.Downcast.AddElementToElement(conversion.ElementToElementDowncast{
		Model: CaptionName,
		View: func(_ *model.Element, w view.Writer) *view.Element {
			return w.CreateContainerElement("figcaption", nil)
		},
	}); err != nil {
		return err
	}

	if err := e.Upcast.AddElementToElement(conversion.ElementToElementUpcast{
		View:  view.Matcher{Name: "figure", Classes: []string{"image"}},
		Model: upcastFigure,
	}); err != nil {
		return err
	}
	if err := e.Upcast.AddElementToElement(conversion.ElementToElementUpcast{
		View:  view.Matcher{Name: "img"},
		Model: upcastImg,
	}); err != nil {
		return err
	}
	return e.Upcast.AddElementToElement(conversion.ElementToElementUpcast{
		View: view.Matcher{Name: "figcaption"},
		Model: func(_ *view.Element, _ *conversion.UpcastContext) *model.Element {
			return model.NewElement(CaptionName, nil)
		},
	})
}

func downcastImage(el *model.Element, w view.Writer) *view.Element {
	figure := w.CreateContainerElement("figure", map[string]string{"class": "image"})

	attrs := make(map[string]string, 2)
	for _, key := range []string{"src", "alt"} {
		if value, ok := el.Attribute(key); ok {
			attrs[key] = value
		}
	}
	figure.AppendChildren(w.CreateEmptyElement("img", attrs))
	return figure
}

func upcastFigure(v *view.Element, ctx *conversion.UpcastContext) *model.Element {
	for _, child := range v.Children() {
		img, ok := child.(*view.Element)
		if !ok || img.Name != "img" {
			continue
		}
		ctx.Consume(img)
		return imageFromImg(img)
	}
	return nil
}

func upcastImg(v *view.Element, _ *conversion.UpcastContext) *model.Element {
	return imageFromImg(v)
}

func imageFromImg(img *view.Element) *model.Element {
	src, ok := img.Attribute("src")
	if !ok || src == "" {
		return nil
	}

	attrs := map[string]string{"src": src}
	if alt, ok := img.Attribute("alt"); ok && alt != "" {
		attrs["alt"] = alt
	}
	return model.NewElement(ImageName, attrs)
}

var _ editor.Plugin = Image{}
