package mdconverter

import (
	"strings"

	"github.com/rgonek/highlight/view"
)

// mark is an open inline wrapper: an element name with its attributes.
type mark struct {
	name  string
	attrs map[string]string
}

func (m mark) clone() mark {
	cloned := m
	if m.attrs != nil {
		cloned.attrs = make(map[string]string, len(m.attrs))
		for key, value := range m.attrs {
			cloned.attrs[key] = value
		}
	}
	return cloned
}

func (m mark) equal(other mark) bool {
	return m.name == other.name && attrsEqual(m.attrs, other.attrs)
}

type markStack struct {
	items []mark
}

func newMarkStack() *markStack {
	return &markStack{}
}

func (s *markStack) push(m mark) {
	s.items = append(s.items, m.clone())
}

func (s *markStack) popByName(name string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].name != name {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}

	return false
}

func (s *markStack) current() []mark {
	if len(s.items) == 0 {
		return nil
	}

	marks := make([]mark, 0, len(s.items))
	for _, m := range s.items {
		marks = append(marks, m.clone())
	}

	return marks
}

// run is a piece of text with the wrappers open around it, outermost first.
type run struct {
	text  string
	marks []mark
}

func newRun(textValue string, marks []mark) run {
	return run{text: textValue, marks: marks}
}

func marksEqual(left, right []mark) bool {
	if len(left) != len(right) {
		return false
	}

	for idx := range left {
		if !left[idx].equal(right[idx]) {
			return false
		}
	}

	return true
}

func attrsEqual(left, right map[string]string) bool {
	if len(left) != len(right) {
		return false
	}
	for key, leftValue := range left {
		rightValue, ok := right[key]
		if !ok || leftValue != rightValue {
			return false
		}
	}
	return true
}

func appendRun(content []run, next run) []run {
	if next.text == "" {
		return content
	}

	if len(content) == 0 {
		return append(content, next)
	}

	last := &content[len(content)-1]
	if marksEqual(last.marks, next.marks) {
		last.text += next.text
		return content
	}

	return append(content, next)
}

// trimRuns drops leading and trailing whitespace of a paragraph.
func trimRuns(runs []run) []run {
	if len(runs) == 0 {
		return runs
	}

	runs[0].text = strings.TrimLeft(runs[0].text, " \t")
	last := len(runs) - 1
	runs[last].text = strings.TrimRight(runs[last].text, " \t")

	out := runs[:0]
	for _, r := range runs {
		if r.text != "" {
			out = append(out, r)
		}
	}
	return out
}

// renderRuns appends runs to target, reusing the wrappers of the previous
// run while they form a common prefix of the wrappers the next run needs.
func renderRuns(target *view.Element, runs []run, w view.Writer) {
	var open []*view.Element
	var openMarks []mark

	for _, r := range runs {
		common := 0
		for common < len(openMarks) && common < len(r.marks) && openMarks[common].equal(r.marks[common]) {
			common++
		}
		open = open[:common]
		openMarks = openMarks[:common]

		for _, m := range r.marks[common:] {
			el := w.CreateAttributeElement(m.name, m.attrs, view.AttributeElementOptions{})
			innermost(target, open).AppendChildren(el)
			open = append(open, el)
			openMarks = append(openMarks, m)
		}
		innermost(target, open).AppendChildren(w.CreateText(r.text))
	}
}

func innermost(target *view.Element, open []*view.Element) *view.Element {
	if len(open) == 0 {
		return target
	}
	return open[len(open)-1]
}
