package types

import "strings"

// TenseKey identifies a grammatical tense (past, present, ...)
type TenseKey string

const (
	TensePast    TenseKey = "past"
	TensePresent TenseKey = "present"
)

// TenseTab is one selectable tab in a tense tab-group
type TenseTab struct {
	Key   TenseKey `json:"key" yaml:"key"`
	Label string   `json:"label" yaml:"label"`
}

// DefaultTenseTabs are the tabs rendered when no configuration overrides them
func DefaultTenseTabs() []TenseTab {
	return []TenseTab{
		{Key: TensePast, Label: "Past"},
		{Key: TensePresent, Label: "Present"},
	}
}

// Matches compares two tense keys case-insensitively
func (t TenseKey) Matches(other TenseKey) bool {
	return strings.EqualFold(string(t), string(other))
}
