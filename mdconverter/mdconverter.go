// Package mdconverter converts GFM Markdown into a view tree that an editor
// can upcast. Inline raw HTML such as <mark class="marker-yellow"> is kept,
// so styled text survives a Markdown import.
package mdconverter

import (
	"errors"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

// ErrUnsupportedNode is returned for constructs without a view equivalent
// when UnknownNodes is "error".
var ErrUnsupportedNode = errors.New("unsupported markdown node")

// Converter converts GFM Markdown to view trees.
type Converter struct {
	config Config
	parser goldmark.Markdown
}

type state struct {
	config   Config
	source   []byte
	writer   view.Writer
	warnings []conversion.Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}, nil
}

// Convert takes a Markdown document and returns its view tree.
func (c *Converter) Convert(markdown string) (Result, error) {
	s := &state{
		config: c.config,
		source: []byte(markdown),
	}

	root := c.parser.Parser().Parse(text.NewReader(s.source))
	doc, err := s.convertDocument(root)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Root:     doc,
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warnType conversion.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, conversion.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
