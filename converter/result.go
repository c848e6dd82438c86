package converter

import "github.com/rgonek/highlight/conversion"

// Result holds the output of a conversion.
type Result struct {
	Markdown string               `json:"markdown"`
	Warnings []conversion.Warning `json:"warnings,omitempty"`
}
