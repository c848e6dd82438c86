package converter

import (
	"strings"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

func (s *state) convertBlock(node view.Node) (string, error) {
	switch typed := node.(type) {
	case *view.Text:
		if strings.TrimSpace(typed.Data) == "" {
			return "", nil
		}
		return escapeBlockStart(escapeText(typed.Data)), nil
	case *view.Element:
		switch typed.Name {
		case "p":
			content, err := s.convertInlineChildren(typed)
			if err != nil {
				return "", err
			}
			return escapeBlockStart(strings.TrimSpace(content)), nil
		case "figure":
			return s.convertFigure(typed)
		default:
			if err := s.unknownElement(typed); err != nil {
				return "", err
			}
			return escapeBlockStart(escapeText(strings.TrimSpace(typed.TextContent()))), nil
		}
	}
	return "", nil
}

// convertFigure renders an image figure as ![alt](src "caption").
func (s *state) convertFigure(el *view.Element) (string, error) {
	var img, caption *view.Element
	for _, child := range el.Children() {
		childEl, ok := child.(*view.Element)
		if !ok {
			continue
		}
		switch childEl.Name {
		case "img":
			if img == nil {
				img = childEl
			}
		case "figcaption":
			if caption == nil {
				caption = childEl
			}
		}
	}

	src := ""
	if img != nil {
		src, _ = img.Attribute("src")
	}
	if src == "" {
		s.addWarning(conversion.WarningDroppedFeature, "figure", "figure without an image source was dropped")
		return "", nil
	}

	alt, _ := img.Attribute("alt")

	var sb strings.Builder
	sb.WriteString("![")
	sb.WriteString(escapeLinkText(alt))
	sb.WriteString("](")
	sb.WriteString(escapeDestination(src))
	if caption != nil {
		if title := strings.TrimSpace(caption.TextContent()); title != "" {
			sb.WriteString(` "`)
			sb.WriteString(escapeTitle(title))
			sb.WriteString(`"`)
		}
	}
	sb.WriteString(")")
	return sb.String(), nil
}
