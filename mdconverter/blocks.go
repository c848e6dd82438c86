package mdconverter

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

func (s *state) convertParagraphNode(node ast.Node, target *view.Element) error {
	if image, ok := standaloneImage(node); ok {
		s.convertStandaloneImage(image, target)
		return nil
	}

	runs, err := s.convertInlineChildren(node, newMarkStack())
	if err != nil {
		return err
	}
	runs = trimRuns(runs)
	if len(runs) == 0 {
		return nil
	}

	p := s.writer.CreateContainerElement("p", nil)
	renderRuns(p, runs, s.writer)
	target.AppendChildren(p)
	return nil
}

func standaloneImage(node ast.Node) (*ast.Image, bool) {
	if node.ChildCount() != 1 {
		return nil, false
	}
	image, ok := node.FirstChild().(*ast.Image)
	return image, ok
}

// convertStandaloneImage renders an image alone in its paragraph as
// <figure class="image">, using the title as caption.
func (s *state) convertStandaloneImage(node *ast.Image, target *view.Element) {
	nodeKind := node.Kind().String()
	if s.config.ImageStyle == ImageStyleIgnore {
		s.addWarning(conversion.WarningDroppedFeature, nodeKind, "image dropped by imageStyle=ignore")
		return
	}

	src := s.resolveMediaURL(strings.TrimSpace(string(node.Destination)))
	if src == "" {
		s.addWarning(conversion.WarningDroppedFeature, nodeKind, "image without destination dropped")
		return
	}

	attrs := map[string]string{"src": src}
	if alt := strings.TrimSpace(inlineText(node, s.source)); alt != "" {
		attrs["alt"] = alt
	}

	figure := s.writer.CreateContainerElement("figure", map[string]string{"class": "image"})
	figure.AppendChildren(s.writer.CreateEmptyElement("img", attrs))
	if title := strings.TrimSpace(string(node.Title)); title != "" {
		caption := s.writer.CreateContainerElement("figcaption", nil)
		caption.AppendChildren(s.writer.CreateText(title))
		figure.AppendChildren(caption)
	}
	target.AppendChildren(figure)
}

func (s *state) resolveMediaURL(src string) string {
	if src == "" || s.config.MediaBaseURL == "" {
		return src
	}

	ref, err := url.Parse(src)
	if err != nil || ref.IsAbs() {
		return src
	}
	base, err := url.Parse(s.config.MediaBaseURL)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

// convertCodeBlockNode keeps the code text in a paragraph wrapped in <code>.
func (s *state) convertCodeBlockNode(node ast.Node, target *view.Element) error {
	body := strings.TrimRight(linesText(node, s.source), "\n")
	if strings.TrimSpace(body) == "" {
		return nil
	}

	p := s.writer.CreateContainerElement("p", nil)
	code := s.writer.CreateAttributeElement("code", nil, view.AttributeElementOptions{})
	code.AppendChildren(s.writer.CreateText(body))
	p.AppendChildren(code)
	target.AppendChildren(p)
	return nil
}

// convertHTMLBlockNode parses raw block HTML into view nodes as is.
func (s *state) convertHTMLBlockNode(node *ast.HTMLBlock, target *view.Element) error {
	raw := linesText(node, s.source)
	if node.HasClosure() {
		raw += string(node.ClosureLine.Value(s.source))
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	fragment, err := view.ParseHTMLString(raw)
	if err != nil {
		s.addWarning(conversion.WarningDroppedFeature, node.Kind().String(), "unparsable HTML block dropped")
		return nil
	}
	for _, child := range fragment.Children() {
		if text, ok := child.(*view.Text); ok && strings.TrimSpace(text.Data) == "" {
			continue
		}
		target.AppendChildren(child)
	}
	return nil
}
