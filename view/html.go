package view

import (
	"fmt"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RootName names the fragment root returned by ParseHTML.
const RootName = "$root"

var inlineTags = map[string]bool{
	"a":      true,
	"b":      true,
	"code":   true,
	"em":     true,
	"i":      true,
	"mark":   true,
	"s":      true,
	"span":   true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"u":      true,
}

var emptyTags = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// KindForTag guesses the element kind of an HTML tag.
func KindForTag(tag string) Kind {
	switch {
	case emptyTags[tag]:
		return KindEmpty
	case inlineTags[tag]:
		return KindAttribute
	default:
		return KindContainer
	}
}

// ParseHTML parses an HTML fragment into a view tree rooted at a $root
// element. Comments and doctype nodes are dropped.
func ParseHTML(r io.Reader) (*Element, error) {
	context := &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := xhtml.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	root := NewElement(RootName, nil)
	for _, node := range nodes {
		if converted := fromHTMLNode(node); converted != nil {
			root.AppendChildren(converted)
		}
	}
	return root, nil
}

// ParseHTMLString is ParseHTML for in-memory input.
func ParseHTMLString(s string) (*Element, error) {
	return ParseHTML(strings.NewReader(s))
}

func fromHTMLNode(node *xhtml.Node) Node {
	switch node.Type {
	case xhtml.TextNode:
		return NewText(node.Data)
	case xhtml.ElementNode:
		el := NewElement(node.Data, nil)
		el.Kind = KindForTag(node.Data)
		for _, attr := range node.Attr {
			if attr.Namespace != "" {
				continue
			}
			el.SetAttribute(attr.Key, attr.Val)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if converted := fromHTMLNode(child); converted != nil {
				el.AppendChildren(converted)
			}
		}
		return el
	default:
		return nil
	}
}

// Stringify renders the children of root as HTML.
func Stringify(root *Element) string {
	var sb strings.Builder
	for _, child := range root.Children() {
		writeHTML(&sb, child)
	}
	return sb.String()
}

// OuterHTML renders the element itself as HTML.
func OuterHTML(el *Element) string {
	var sb strings.Builder
	writeHTML(&sb, el)
	return sb.String()
}

func writeHTML(sb *strings.Builder, node Node) {
	switch typed := node.(type) {
	case *Text:
		sb.WriteString(xhtml.EscapeString(typed.Data))
	case *Element:
		sb.WriteString(StartTag(typed))
		if typed.Kind == KindEmpty {
			return
		}
		for _, child := range typed.Children() {
			writeHTML(sb, child)
		}
		sb.WriteString("</")
		sb.WriteString(typed.Name)
		sb.WriteString(">")
	}
}

// StartTag renders the opening tag of el with its attributes.
func StartTag(el *Element) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(el.Name)
	for _, key := range el.AttributeKeys() {
		value, _ := el.Attribute(key)
		sb.WriteString(" ")
		sb.WriteString(key)
		sb.WriteString(`="`)
		sb.WriteString(xhtml.EscapeString(value))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	return sb.String()
}
