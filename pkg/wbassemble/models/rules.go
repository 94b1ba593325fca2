package models

// ValidationRule restricts a region of one sheet to the values of a named range.
type ValidationRule struct {
	// Area is the region the rule applies to.
	Area Area `json:"area"`
	// RangeName is the document-scoped named range supplying the list.
	RangeName   string `json:"range_name"`
	PromptTitle string `json:"prompt_title,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	ErrorTitle  string `json:"error_title,omitempty"`
	Error       string `json:"error,omitempty"`
}

// VisualRule fills cells of a region whose value equals Value.
type VisualRule struct {
	Area  Area   `json:"area"`
	Value string `json:"value"`
	// Fill is RRGGBB hex.
	Fill string `json:"fill"`
}
