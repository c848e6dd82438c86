package converter

import (
	"fmt"
	"strings"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

// htmlOnlyTags have no Markdown syntax and are exported as inline HTML.
var htmlOnlyTags = map[string]bool{
	"mark": true,
	"span": true,
	"u":    true,
	"sub":  true,
	"sup":  true,
}

func (s *state) convertInlineChildren(el *view.Element) (string, error) {
	var sb strings.Builder
	for _, child := range el.Children() {
		res, err := s.convertInline(child)
		if err != nil {
			return "", err
		}
		sb.WriteString(res)
	}
	return sb.String(), nil
}

func (s *state) convertInline(node view.Node) (string, error) {
	switch typed := node.(type) {
	case *view.Text:
		return escapeText(typed.Data), nil
	case *view.Element:
		return s.convertInlineElement(typed)
	}
	return "", nil
}

func (s *state) convertInlineElement(el *view.Element) (string, error) {
	switch el.Name {
	case "strong", "b":
		return s.convertDelimited(el, "**")
	case "em", "i":
		if s.config.Emphasis == EmphasisUnderscore {
			return s.convertDelimited(el, "_")
		}
		return s.convertDelimited(el, "*")
	case "s", "del":
		return s.convertDelimited(el, "~~")
	case "code":
		return codeSpan(el.TextContent()), nil
	case "a":
		return s.convertLink(el)
	case "br":
		return "\\\n", nil
	}

	if htmlOnlyTags[el.Name] {
		return s.convertHTMLOnly(el)
	}

	if err := s.unknownElement(el); err != nil {
		return "", err
	}
	return s.convertInlineChildren(el)
}

// convertDelimited wraps the content of el in delimiter. Surrounding
// whitespace is moved outside the delimiters, where Markdown still treats
// them as emphasis.
func (s *state) convertDelimited(el *view.Element, delimiter string) (string, error) {
	content, err := s.convertInlineChildren(el)
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return content, nil
	}

	start := strings.Index(content, trimmed)
	leading := content[:start]
	trailing := content[start+len(trimmed):]
	return leading + delimiter + trimmed + delimiter + trailing, nil
}

func (s *state) convertLink(el *view.Element) (string, error) {
	content, err := s.convertInlineChildren(el)
	if err != nil {
		return "", err
	}

	href, _ := el.Attribute("href")
	if href == "" {
		return content, nil
	}

	closing := "](" + escapeDestination(href)
	if title, ok := el.Attribute("title"); ok && title != "" {
		closing += ` "` + escapeTitle(title) + `"`
	}
	return "[" + content + closing + ")", nil
}

func (s *state) convertHTMLOnly(el *view.Element) (string, error) {
	content, err := s.convertInlineChildren(el)
	if err != nil {
		return "", err
	}

	if s.config.InlineHTML == InlineHTMLIgnore {
		s.addWarning(conversion.WarningDroppedFeature, el.Name, fmt.Sprintf("styling of %s was dropped", view.StartTag(el)))
		return content, nil
	}
	return view.StartTag(el) + content + "</" + el.Name + ">", nil
}
