package converter

import (
	"fmt"
	"strings"
)

// InlineHTMLStyle controls how styling without a Markdown equivalent is
// exported: highlights, font sizes, underline, sub and superscript.
type InlineHTMLStyle string

const (
	InlineHTMLKeep   InlineHTMLStyle = "html"
	InlineHTMLIgnore InlineHTMLStyle = "ignore"
)

// EmphasisStyle selects the em delimiter.
type EmphasisStyle string

const (
	EmphasisAsterisk   EmphasisStyle = "asterisk"
	EmphasisUnderscore EmphasisStyle = "underscore"
)

// UnknownElementPolicy controls what happens with view elements the
// exporter does not know.
type UnknownElementPolicy string

const (
	UnknownElementsText  UnknownElementPolicy = "text"
	UnknownElementsError UnknownElementPolicy = "error"
)

// Config configures view to Markdown conversion.
type Config struct {
	InlineHTML      InlineHTMLStyle      `json:"inlineHTML,omitempty" mapstructure:"inlineHTML"`
	Emphasis        EmphasisStyle        `json:"emphasis,omitempty" mapstructure:"emphasis"`
	UnknownElements UnknownElementPolicy `json:"unknownElements,omitempty" mapstructure:"unknownElements"`
}

func (c Config) applyDefaults() Config {
	if c.InlineHTML == "" {
		c.InlineHTML = InlineHTMLKeep
	}
	if c.Emphasis == "" {
		c.Emphasis = EmphasisAsterisk
	}
	if c.UnknownElements == "" {
		c.UnknownElements = UnknownElementsText
	}
	c.InlineHTML = InlineHTMLStyle(strings.ToLower(string(c.InlineHTML)))
	c.Emphasis = EmphasisStyle(strings.ToLower(string(c.Emphasis)))
	c.UnknownElements = UnknownElementPolicy(strings.ToLower(string(c.UnknownElements)))
	return c
}

// Validate checks config values.
func (c Config) Validate() error {
	if c.InlineHTML != InlineHTMLKeep && c.InlineHTML != InlineHTMLIgnore {
		return fmt.Errorf("invalid inlineHTML %q", c.InlineHTML)
	}
	if c.Emphasis != EmphasisAsterisk && c.Emphasis != EmphasisUnderscore {
		return fmt.Errorf("invalid emphasis %q", c.Emphasis)
	}
	if c.UnknownElements != UnknownElementsText && c.UnknownElements != UnknownElementsError {
		return fmt.Errorf("invalid unknownElements %q", c.UnknownElements)
	}
	return nil
}
