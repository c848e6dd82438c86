package conversion

import (
	"github.com/rgonek/highlight/model"
	"github.com/rgonek/highlight/view"
)

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownElement      WarningType = "unknown_element"
	WarningUnmatchedValue      WarningType = "unmatched_value"
	WarningDisallowedContent   WarningType = "disallowed_content"
	WarningDisallowedAttribute WarningType = "disallowed_attribute"
	WarningUnknownNode         WarningType = "unknown_node"
	WarningDroppedFeature      WarningType = "dropped_feature"
)

// Warning represents a conversion that did not apply. None of these
// interrupt conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}

// DowncastResult holds the output of a model to view conversion.
type DowncastResult struct {
	View     *view.Element `json:"-"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// UpcastResult holds the output of a view to model conversion.
type UpcastResult struct {
	Model    *model.Element `json:"-"`
	Warnings []Warning      `json:"warnings,omitempty"`
}
