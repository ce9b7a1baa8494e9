package model

import "time"

// ManualInstructionRecord describes a follow-up the user must perform by
// hand after the automated run, appended to a TransformationContext by a
// ManualInstruction-shaped utility (spec.md §3, §4.5 step 4).
type ManualInstructionRecord struct {
	UtilityName string
	Text        string
	CreatedAt   time.Time
}

// NewManualInstructionRecord builds a record stamped with the current time.
func NewManualInstructionRecord(utilityName, text string) *ManualInstructionRecord {
	return &ManualInstructionRecord{
		UtilityName: utilityName,
		Text:        text,
		CreatedAt:   time.Now(),
	}
}
