package model

// walkTexts calls fn for every text node overlapping r in document order.
// Returning false from fn stops the walk.
func walkTexts(root *Element, r Range, fn func(t *Text) bool) {
	var visit func(el *Element, prefix []int) bool
	visit = func(el *Element, prefix []int) bool {
		offset := 0
		for _, child := range el.Children() {
			size := child.Size()
			switch typed := child.(type) {
			case *Text:
				from := Position{Path: appendPath(prefix, offset)}
				to := Position{Path: appendPath(prefix, offset+size)}
				if from.Compare(r.End) < 0 && to.Compare(r.Start) > 0 {
					if !fn(typed) {
						return false
					}
				}
			case *Element:
				if !visit(typed, appendPath(prefix, offset)) {
					return false
				}
			}
			offset += size
		}
		return true
	}
	visit(root, nil)
}

// Texts returns the text nodes overlapping r in document order.
func Texts(root *Element, r Range) []*Text {
	var texts []*Text
	walkTexts(root, r, func(t *Text) bool {
		texts = append(texts, t)
		return true
	})
	return texts
}

func appendPath(prefix []int, offset int) []int {
	path := make([]int, len(prefix)+1)
	copy(path, prefix)
	path[len(prefix)] = offset
	return path
}

// Normalize merges adjacent texts with equal attributes and drops empty texts.
func Normalize(el *Element) {
	merged := make([]Node, 0, len(el.children))
	for _, child := range el.children {
		switch typed := child.(type) {
		case *Text:
			if typed.Data == "" {
				typed.setParent(nil)
				continue
			}
			if len(merged) > 0 {
				if last, ok := merged[len(merged)-1].(*Text); ok && attrsEqual(last.attrs, typed.attrs) {
					last.Data += typed.Data
					typed.setParent(nil)
					continue
				}
			}
			merged = append(merged, typed)
		case *Element:
			Normalize(typed)
			merged = append(merged, typed)
		}
	}
	el.children = merged
}

// TextBefore returns the text node ending at or containing the character
// just before pos, or nil.
func TextBefore(root *Element, pos Position) *Text {
	parent, err := pos.Parent(root)
	if err != nil || pos.Offset() == 0 {
		return nil
	}
	index, _ := parent.IndexAt(pos.Offset() - 1)
	t, _ := parent.Child(index).(*Text)
	return t
}
