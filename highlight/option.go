// Package highlight adds configurable highlight styles to an editor. A
// highlight is stored as the "highlight" attribute on model text and
// rendered as <mark class="..."> around that text.
package highlight

import "fmt"

// Kind groups options for presentation. It has no effect on conversion.
type Kind string

const (
	KindMarker Kind = "marker"
	KindPen    Kind = "pen"
)

func (k Kind) valid() bool {
	return k == KindMarker || k == KindPen
}

// Option is one configured highlight style.
type Option struct {
	Model string `json:"model" yaml:"model" mapstructure:"model"`
	Class string `json:"class" yaml:"class" mapstructure:"class"`
	Title string `json:"title" yaml:"title" mapstructure:"title"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" mapstructure:"color"`
	Type  Kind   `json:"type" yaml:"type" mapstructure:"type"`
}

// Validate checks the fields of a single option.
func (o Option) Validate() error {
	if o.Model == "" {
		return fmt.Errorf("%w: option model must not be empty", ErrInvalidConfig)
	}
	if o.Class == "" {
		return fmt.Errorf("%w: option %q has no class", ErrInvalidConfig, o.Model)
	}
	if !o.Type.valid() {
		return fmt.Errorf("%w: option %q has invalid type %q", ErrInvalidConfig, o.Model, o.Type)
	}
	return nil
}

var defaultOptions = [...]Option{
	{Model: "yellowMarker", Class: "marker-yellow", Title: "Yellow marker", Color: "var(--ck-highlight-marker-yellow)", Type: KindMarker},
	{Model: "greenMarker", Class: "marker-green", Title: "Green marker", Color: "var(--ck-highlight-marker-green)", Type: KindMarker},
	{Model: "pinkMarker", Class: "marker-pink", Title: "Pink marker", Color: "var(--ck-highlight-marker-pink)", Type: KindMarker},
	{Model: "blueMarker", Class: "marker-blue", Title: "Blue marker", Color: "var(--ck-highlight-marker-blue)", Type: KindMarker},
	{Model: "redPen", Class: "pen-red", Title: "Red pen", Color: "var(--ck-highlight-pen-red)", Type: KindPen},
	{Model: "greenPen", Class: "pen-green", Title: "Green pen", Color: "var(--ck-highlight-pen-green)", Type: KindPen},
}

// DefaultOptions returns the built-in styles used when no options are
// configured: four markers and two pens.
func DefaultOptions() []Option {
	out := make([]Option, len(defaultOptions))
	copy(out, defaultOptions[:])
	return out
}
