package view

// Matcher describes the view elements an upcast rule applies to. Empty
// fields match anything.
type Matcher struct {
	Name       string
	Classes    []string
	Attributes map[string]string
}

// Match reports whether el satisfies every condition of the matcher.
func (m Matcher) Match(el *Element) bool {
	if el == nil {
		return false
	}
	if m.Name != "" && el.Name != m.Name {
		return false
	}
	for _, class := range m.Classes {
		if !el.HasClass(class) {
			return false
		}
	}
	for key, want := range m.Attributes {
		got, ok := el.Attribute(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}
