package catalogue

import (
	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// RecordManualStepUtility appends a manual-instruction record the operator
// must act on after the automated run completes — for migrations that
// can't be fully automated (credential rotation, a manual review step).
type RecordManualStepUtility struct {
	transform.BaseUtility

	Text string
}

func NewRecordManualStepUtility(name, description, text string) *RecordManualStepUtility {
	return &RecordManualStepUtility{
		BaseUtility: transform.NewBaseUtility(name, description, ""),
		Text:        text,
	}
}

func (u *RecordManualStepUtility) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	rec := model.NewManualInstructionRecord(u.Name(), u.Text)
	return model.NewUtilValue(model.ManualInstructionValue(rec)), nil
}
