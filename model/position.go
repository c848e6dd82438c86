package model

import (
	"fmt"
)

// Position addresses a gap between nodes (or characters) in the tree. Path
// holds the offsets of every ancestor followed by the offset in the parent.
type Position struct {
	Path []int
}

// NewPosition returns a position inside parent at offset.
func NewPosition(parent *Element, offset int) Position {
	path := append(parent.Path(), offset)
	return Position{Path: path}
}

// Offset returns the offset in the parent element.
func (p Position) Offset() int {
	if len(p.Path) == 0 {
		return 0
	}
	return p.Path[len(p.Path)-1]
}

// Parent resolves the parent element of the position against root.
func (p Position) Parent(root *Element) (*Element, error) {
	if len(p.Path) == 0 {
		return nil, fmt.Errorf("empty position path")
	}

	current := root
	for depth, offset := range p.Path[:len(p.Path)-1] {
		index, start := current.IndexAt(offset)
		if index >= current.ChildCount() || start != offset {
			return nil, fmt.Errorf("position %v: no node at depth %d offset %d", p.Path, depth, offset)
		}
		el, ok := current.Child(index).(*Element)
		if !ok {
			return nil, fmt.Errorf("position %v: node at depth %d offset %d is not an element", p.Path, depth, offset)
		}
		current = el
	}

	if p.Offset() < 0 || p.Offset() > current.MaxOffset() {
		return nil, fmt.Errorf("position %v: offset out of bounds", p.Path)
	}

	return current, nil
}

// Compare returns -1, 0 or 1 when p is before, equal to or after other.
func (p Position) Compare(other Position) int {
	for i := 0; i < len(p.Path) && i < len(other.Path); i++ {
		if p.Path[i] < other.Path[i] {
			return -1
		}
		if p.Path[i] > other.Path[i] {
			return 1
		}
	}
	switch {
	case len(p.Path) < len(other.Path):
		return -1
	case len(p.Path) > len(other.Path):
		return 1
	default:
		return 0
	}
}

// IsEqual reports whether both positions address the same gap.
func (p Position) IsEqual(other Position) bool { return p.Compare(other) == 0 }

// Range is a pair of positions with Start not after End.
type Range struct {
	Start Position
	End   Position
}

// NewRange orders the two positions into a range.
func NewRange(a, b Position) Range {
	if a.Compare(b) > 0 {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// IsCollapsed reports whether the range is empty.
func (r Range) IsCollapsed() bool { return r.Start.IsEqual(r.End) }

// ContainsSpan reports whether the span [from, to] lies within the range.
func (r Range) ContainsSpan(from, to Position) bool {
	return from.Compare(r.Start) >= 0 && to.Compare(r.End) <= 0
}

// RangeIn returns a range spanning all content of el.
func RangeIn(el *Element) Range {
	return Range{
		Start: NewPosition(el, 0),
		End:   NewPosition(el, el.MaxOffset()),
	}
}

// Selection is a single range plus the attributes that typing would apply.
type Selection struct {
	Range Range
	attrs map[string]string
}

// Attribute returns a selection attribute.
func (s *Selection) Attribute(key string) (string, bool) {
	value, ok := s.attrs[key]
	return value, ok
}

func (s *Selection) clone() *Selection {
	if s == nil {
		return nil
	}
	return &Selection{
		Range: Range{
			Start: Position{Path: append([]int(nil), s.Range.Start.Path...)},
			End:   Position{Path: append([]int(nil), s.Range.End.Path...)},
		},
		attrs: cloneAttrs(s.attrs),
	}
}
