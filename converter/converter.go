// Package converter exports an editor's data view as GFM Markdown. Styling
// Markdown cannot express, such as <mark class="marker-yellow">, is written
// as inline HTML so a later Markdown import restores it.
package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

// ErrUnsupportedElement is returned for view elements without a Markdown
// rendering when UnknownElements is "error".
var ErrUnsupportedElement = errors.New("unsupported view element")

// Converter converts view trees to Markdown.
type Converter struct {
	config Config
}

type state struct {
	config   Config
	warnings []conversion.Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{config: cfg}, nil
}

// Convert renders the children of root as Markdown blocks.
func (c *Converter) Convert(root *view.Element) (Result, error) {
	s := &state{config: c.config}

	var blocks []string
	for _, child := range root.Children() {
		block, err := s.convertBlock(child)
		if err != nil {
			return Result{}, err
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}

	markdown := ""
	if len(blocks) > 0 {
		markdown = strings.Join(blocks, "\n\n") + "\n"
	}
	return Result{Markdown: markdown, Warnings: s.warnings}, nil
}

func (s *state) addWarning(warningType conversion.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, conversion.Warning{
		Type:     warningType,
		NodeType: nodeType,
		Message:  message,
	})
}

func (s *state) unknownElement(el *view.Element) error {
	if s.config.UnknownElements == UnknownElementsError {
		return fmt.Errorf("%w: <%s>", ErrUnsupportedElement, el.Name)
	}
	s.addWarning(conversion.WarningUnknownElement, el.Name, fmt.Sprintf("<%s> exported as plain text", el.Name))
	return nil
}
