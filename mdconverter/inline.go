package mdconverter

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/highlight/conversion"
)

func (s *state) convertInlineChildren(parent ast.Node, stack *markStack) ([]run, error) {
	var content []run

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		converted, err := s.convertInlineNode(child, stack)
		if err != nil {
			return nil, err
		}
		for _, r := range converted {
			content = appendRun(content, r)
		}
	}

	return content, nil
}

func (s *state) convertInlineNode(node ast.Node, stack *markStack) ([]run, error) {
	switch typed := node.(type) {
	case *ast.Text:
		var content []run
		textValue := string(typed.Segment.Value(s.source))
		if textValue != "" {
			content = append(content, newRun(textValue, stack.current()))
		}

		if typed.HardLineBreak() {
			s.addWarning(conversion.WarningDroppedFeature, typed.Kind().String(), "hard line break converted to space")
			content = append(content, newRun(" ", stack.current()))
		} else if typed.SoftLineBreak() {
			content = append(content, newRun(" ", stack.current()))
		}

		return content, nil

	case *ast.String:
		return []run{
			newRun(string(typed.Value), stack.current()),
		}, nil

	case *ast.Emphasis:
		tag := "em"
		if typed.Level >= 2 {
			tag = "strong"
		}
		return s.convertWrapped(typed, stack, mark{name: tag})

	case *extast.Strikethrough:
		return s.convertWrapped(typed, stack, mark{name: "s"})

	case *ast.CodeSpan:
		return s.convertWrapped(typed, stack, mark{name: "code"})

	case *ast.Link:
		href := strings.TrimSpace(string(typed.Destination))
		if href == "" {
			return s.convertInlineChildren(typed, stack)
		}

		link := mark{name: "a", attrs: map[string]string{"href": href}}
		if title := strings.TrimSpace(string(typed.Title)); title != "" {
			link.attrs["title"] = title
		}
		return s.convertWrapped(typed, stack, link)

	case *ast.AutoLink:
		href := string(typed.URL(s.source))
		label := string(typed.Label(s.source))
		stack.push(mark{name: "a", attrs: map[string]string{"href": href}})
		content := []run{newRun(label, stack.current())}
		stack.popByName("a")
		return content, nil

	case *ast.Image:
		alt := strings.TrimSpace(inlineText(typed, s.source))
		if alt == "" {
			alt = "Image"
		}
		s.addWarning(
			conversion.WarningDroppedFeature,
			typed.Kind().String(),
			"inline image converted to its alt text",
		)
		return []run{
			newRun(alt, stack.current()),
		}, nil

	case *ast.RawHTML:
		var raw strings.Builder
		for i := 0; i < typed.Segments.Len(); i++ {
			segment := typed.Segments.At(i)
			raw.Write(segment.Value(s.source))
		}
		return s.convertRawHTML(raw.String(), stack)

	default:
		if node.HasChildren() {
			return s.convertInlineChildren(node, stack)
		}
		return s.convertUnknownInline(node, stack)
	}
}

func (s *state) convertWrapped(node ast.Node, stack *markStack, m mark) ([]run, error) {
	stack.push(m)
	content, err := s.convertInlineChildren(node, stack)
	stack.popByName(m.name)
	return content, err
}

func (s *state) convertUnknownInline(node ast.Node, stack *markStack) ([]run, error) {
	nodeKind := node.Kind().String()
	if s.config.UnknownNodes == UnknownNodesError {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNode, nodeKind)
	}

	s.addWarning(
		conversion.WarningUnknownNode,
		nodeKind,
		fmt.Sprintf("unsupported markdown inline node: %s", nodeKind),
	)
	textValue := inlineText(node, s.source)
	if textValue == "" {
		return nil, nil
	}
	return []run{newRun(textValue, stack.current())}, nil
}
