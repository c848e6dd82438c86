package mdconverter

import (
	"github.com/rgonek/highlight/conversion"
	"github.com/rgonek/highlight/view"
)

// Result holds the output of a Markdown conversion.
type Result struct {
	Root     *view.Element        `json:"-"`
	Warnings []conversion.Warning `json:"warnings,omitempty"`
}
