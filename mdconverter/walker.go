package mdconverter

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

func (s *state) convertDocument(root ast.Node) (*view.Element, error) {
	doc := view.NewElement(view.RootName, nil)
	if err := s.convertNodeSequence(root, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *state) convertNodeSequence(parent ast.Node, target *view.Element) error {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := s.convertBlockNode(child, target); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) convertBlockNode(node ast.Node, target *view.Element) error {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return s.convertParagraphNode(typed, target)
	case *ast.Heading:
		s.addWarning(
			conversion.WarningDroppedFeature,
			typed.Kind().String(),
			fmt.Sprintf("heading level %d converted to paragraph", typed.Level),
		)
		return s.convertParagraphNode(typed, target)
	case *ast.Blockquote, *ast.List, *ast.ListItem:
		return s.convertNodeSequence(typed, target)
	case *ast.ThematicBreak:
		s.addWarning(conversion.WarningDroppedFeature, typed.Kind().String(), "thematic break dropped")
		return nil
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return s.convertCodeBlockNode(typed, target)
	case *ast.HTMLBlock:
		return s.convertHTMLBlockNode(typed, target)
	default:
		return s.convertUnknownBlock(node, target)
	}
}

func (s *state) convertUnknownBlock(node ast.Node, target *view.Element) error {
	nodeKind := node.Kind().String()
	textValue := strings.TrimSpace(blockText(node, s.source))
	if textValue == "" {
		return nil
	}
	if s.config.UnknownNodes == UnknownNodesError {
		return fmt.Errorf("%w: %s", ErrUnsupportedNode, nodeKind)
	}

	s.addWarning(
		conversion.WarningUnknownNode,
		nodeKind,
		fmt.Sprintf("unsupported markdown block node: %s", nodeKind),
	)
	p := s.writer.CreateContainerElement("p", nil)
	p.AppendChildren(s.writer.CreateText(textValue))
	target.AppendChildren(p)
	return nil
}

// blockText collects the text of a block and its descendants, separating
// sibling blocks with a space.
func blockText(node ast.Node, source []byte) string {
	var parts []string
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n.Type() == ast.TypeBlock && n.ChildCount() == 0 {
			if value := linesText(n, source); strings.TrimSpace(value) != "" {
				parts = append(parts, strings.TrimSpace(value))
			}
			return
		}
		if n.Type() == ast.TypeInline {
			parts = append(parts, inlineText(n, source))
			return
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(parts, " ")
}

func inlineText(node ast.Node, source []byte) string {
	switch typed := node.(type) {
	case *ast.Text:
		return string(typed.Segment.Value(source))
	case *ast.String:
		return string(typed.Value)
	}

	var sb strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		sb.WriteString(inlineText(child, source))
	}
	return sb.String()
}

func linesText(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}
