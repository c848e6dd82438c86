package model

import (
	"fmt"
	"strings"

	xhtml "golang.org/x/net/html"
)

// dataTextEscaper escapes text so markers and tags stay unambiguous.
var dataTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"[", "&#91;",
	"]", "&#93;",
)

var dataAttrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
)

// Stringify renders the tree in the compact development format, e.g.
// <paragraph>foo[<$text highlight="yellowMarker">bar</$text>]</paragraph>.
// Selection boundaries are written as [ and ] when sel is not nil; literal
// brackets, angle brackets and ampersands are written as HTML entities.
func Stringify(root *Element, sel *Range) string {
	var sb strings.Builder
	writeDataChildren(&sb, root, nil, sel)
	return sb.String()
}

func writeDataChildren(sb *strings.Builder, el *Element, prefix []int, sel *Range) {
	offset := 0
	for _, child := range el.Children() {
		writeMarkers(sb, Position{Path: appendPath(prefix, offset)}, sel)
		switch typed := child.(type) {
		case *Text:
			writeDataText(sb, typed, prefix, offset, sel)
		case *Element:
			sb.WriteString("<")
			sb.WriteString(typed.Name)
			writeDataAttrs(sb, typed.attrs)
			sb.WriteString(">")
			writeDataChildren(sb, typed, appendPath(prefix, offset), sel)
			sb.WriteString("</")
			sb.WriteString(typed.Name)
			sb.WriteString(">")
		}
		offset += child.Size()
	}
	writeMarkers(sb, Position{Path: appendPath(prefix, offset)}, sel)
}

func writeDataText(sb *strings.Builder, t *Text, prefix []int, offset int, sel *Range) {
	if len(t.attrs) > 0 {
		sb.WriteString("<$text")
		writeDataAttrs(sb, t.attrs)
		sb.WriteString(">")
	}

	for i, r := range []rune(t.Data) {
		if i > 0 {
			writeMarkers(sb, Position{Path: appendPath(prefix, offset+i)}, sel)
		}
		sb.WriteString(dataTextEscaper.Replace(string(r)))
	}

	if len(t.attrs) > 0 {
		sb.WriteString("</$text>")
	}
}

func writeDataAttrs(sb *strings.Builder, attrs map[string]string) {
	for _, key := range sortedKeys(attrs) {
		fmt.Fprintf(sb, ` %s="%s"`, key, dataAttrEscaper.Replace(attrs[key]))
	}
}

func writeMarkers(sb *strings.Builder, pos Position, sel *Range) {
	if sel == nil {
		return
	}
	if sel.Start.IsEqual(pos) {
		sb.WriteString("[")
	}
	if sel.End.IsEqual(pos) {
		sb.WriteString("]")
	}
}

// Parse reads the development format produced by Stringify. It returns the
// root element and the selection range when markers are present.
func Parse(data string) (*Element, *Range, error) {
	p := &dataParser{
		input: []rune(data),
		root:  NewElement(RootName, nil),
	}
	p.stack = []*Element{p.root}

	if err := p.parse(); err != nil {
		return nil, nil, err
	}
	if len(p.stack) != 1 {
		return nil, nil, fmt.Errorf("unclosed element <%s>", p.current().Name)
	}
	if p.textAttrs != nil {
		return nil, nil, fmt.Errorf("unclosed <%s>", TextName)
	}
	Normalize(p.root)

	switch {
	case p.start == nil && p.end == nil:
		return p.root, nil, nil
	case p.start == nil || p.end == nil:
		return nil, nil, fmt.Errorf("selection needs both [ and ] markers")
	}

	r := NewRange(*p.start, *p.end)
	return p.root, &r, nil
}

type dataParser struct {
	input     []rune
	pos       int
	root      *Element
	stack     []*Element
	textAttrs map[string]string
	buffer    strings.Builder
	start     *Position
	end       *Position
}

func (p *dataParser) current() *Element { return p.stack[len(p.stack)-1] }

func (p *dataParser) flush() {
	if p.buffer.Len() == 0 {
		return
	}
	p.current().AppendChildren(NewText(xhtml.UnescapeString(p.buffer.String()), p.textAttrs))
	p.buffer.Reset()
}

func (p *dataParser) parse() error {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch ch {
		case '[', ']':
			p.flush()
			pos := NewPosition(p.current(), p.current().MaxOffset())
			if ch == '[' {
				if p.start != nil {
					return fmt.Errorf("duplicate [ marker at %d", p.pos)
				}
				p.start = &pos
			} else {
				if p.end != nil {
					return fmt.Errorf("duplicate ] marker at %d", p.pos)
				}
				p.end = &pos
			}
			p.pos++
		case '<':
			p.flush()
			if err := p.parseTag(); err != nil {
				return err
			}
		default:
			p.buffer.WriteRune(ch)
			p.pos++
		}
	}
	p.flush()
	return nil
}

func (p *dataParser) parseTag() error {
	p.pos++
	closing := p.peek() == '/'
	if closing {
		p.pos++
	}

	name := p.readName()
	if name == "" {
		return fmt.Errorf("missing tag name at %d", p.pos)
	}

	if closing {
		p.skipSpace()
		if p.peek() != '>' {
			return fmt.Errorf("malformed closing tag </%s>", name)
		}
		p.pos++
		return p.close(name)
	}

	attrs, selfClosing, err := p.readAttrs()
	if err != nil {
		return err
	}

	if name == TextName {
		if p.textAttrs != nil {
			return fmt.Errorf("nested <%s> at %d", TextName, p.pos)
		}
		if attrs == nil {
			attrs = map[string]string{}
		}
		p.textAttrs = attrs
		return nil
	}
	if p.textAttrs != nil {
		return fmt.Errorf("element <%s> inside <%s>", name, TextName)
	}

	el := NewElement(name, attrs)
	p.current().AppendChildren(el)
	if !selfClosing {
		p.stack = append(p.stack, el)
	}
	return nil
}

func (p *dataParser) close(name string) error {
	if name == TextName {
		if p.textAttrs == nil {
			return fmt.Errorf("unexpected </%s>", TextName)
		}
		p.textAttrs = nil
		return nil
	}
	if len(p.stack) == 1 || p.current().Name != name {
		return fmt.Errorf("unexpected </%s>", name)
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

func (p *dataParser) readAttrs() (map[string]string, bool, error) {
	var attrs map[string]string
	for {
		p.skipSpace()
		switch p.peek() {
		case '>':
			p.pos++
			return attrs, false, nil
		case '/':
			p.pos++
			if p.peek() != '>' {
				return nil, false, fmt.Errorf("malformed self-closing tag at %d", p.pos)
			}
			p.pos++
			return attrs, true, nil
		case 0:
			return nil, false, fmt.Errorf("unterminated tag")
		}

		key := p.readName()
		if key == "" || p.peek() != '=' {
			return nil, false, fmt.Errorf("malformed attribute at %d", p.pos)
		}
		p.pos++
		if p.peek() != '"' {
			return nil, false, fmt.Errorf("attribute %q must be quoted", key)
		}
		p.pos++
		begin := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != '"' {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return nil, false, fmt.Errorf("unterminated value for attribute %q", key)
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[key] = xhtml.UnescapeString(string(p.input[begin:p.pos]))
		p.pos++
	}
}

func (p *dataParser) readName() string {
	begin := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == ' ' || ch == '>' || ch == '/' || ch == '=' || ch == '\t' || ch == '\n' {
			break
		}
		p.pos++
	}
	return string(p.input[begin:p.pos])
}

func (p *dataParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *dataParser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}
