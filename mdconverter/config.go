package mdconverter

import (
	"fmt"
	"net/url"
	"strings"
)

// ImageStyle controls how standalone Markdown images are converted.
type ImageStyle string

const (
	ImageStyleFigure ImageStyle = "figure"
	ImageStyleIgnore ImageStyle = "ignore"
)

// UnknownNodePolicy controls what happens with Markdown constructs that
// have no view equivalent.
type UnknownNodePolicy string

const (
	UnknownNodesSkip  UnknownNodePolicy = "skip"
	UnknownNodesError UnknownNodePolicy = "error"
)

// DefaultInlineTags are the raw inline HTML tags kept as view elements.
var DefaultInlineTags = []string{"mark", "span", "strong", "em", "s", "u", "sub", "sup", "code", "a"}

// Config configures Markdown to view conversion.
type Config struct {
	ImageStyle   ImageStyle        `json:"imageStyle,omitempty" mapstructure:"imageStyle"`
	UnknownNodes UnknownNodePolicy `json:"unknownNodes,omitempty" mapstructure:"unknownNodes"`
	InlineTags   []string          `json:"inlineTags,omitempty" mapstructure:"inlineTags"`
	MediaBaseURL string            `json:"mediaBaseURL,omitempty" mapstructure:"mediaBaseURL"`
}

func (c Config) applyDefaults() Config {
	if c.ImageStyle == "" {
		c.ImageStyle = ImageStyleFigure
	}
	if c.UnknownNodes == "" {
		c.UnknownNodes = UnknownNodesSkip
	}
	if len(c.InlineTags) == 0 {
		c.InlineTags = DefaultInlineTags
	}
	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.InlineTags = append([]string(nil), c.InlineTags...)
	for i, tag := range cloned.InlineTags {
		cloned.InlineTags[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	return cloned
}

// Validate checks config values.
func (c Config) Validate() error {
	if c.ImageStyle != ImageStyleFigure && c.ImageStyle != ImageStyleIgnore {
		return fmt.Errorf("invalid imageStyle %q", c.ImageStyle)
	}
	if c.UnknownNodes != UnknownNodesSkip && c.UnknownNodes != UnknownNodesError {
		return fmt.Errorf("invalid unknownNodes %q", c.UnknownNodes)
	}
	for _, tag := range c.InlineTags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("inlineTags entries must be non-empty")
		}
	}
	if c.MediaBaseURL != "" {
		if _, err := url.Parse(c.MediaBaseURL); err != nil {
			return fmt.Errorf("invalid mediaBaseURL %q: %w", c.MediaBaseURL, err)
		}
	}
	return nil
}

func (c Config) allowsInlineTag(tag string) bool {
	for _, allowed := range c.InlineTags {
		if allowed == tag {
			return true
		}
	}
	return false
}
