package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeforge/codemod/internal/model"
)

func TestUpdateTracksUtilityCompletion(t *testing.T) {
	t.Parallel()
	m := NewModel("demo")

	updated, _ := m.Update(UtilityDoneMsg{
		Order:  "1",
		Name:   "rewrite-import",
		Result: model.NewPerformExecutionResult("rewrite-import", model.NewOpSuccess("replaced 1 occurrence")),
	})
	mm, ok := updated.(Model)
	require.True(t, ok)

	assert.Equal(t, 1, mm.TotalUtilities())
	assert.Equal(t, 1, mm.CompletedUtilities())
	assert.Equal(t, "success", mm.entries["1"].status)
}

func TestUpdateRecordsAbort(t *testing.T) {
	t.Parallel()
	m := NewModel("demo")
	updated, _ := m.Update(AbortMsg{UtilityName: "rewrite-import", Message: "boom"})
	mm := updated.(Model)
	assert.True(t, mm.IsFinished())
	assert.True(t, mm.aborted)
}

func TestUpdateRecordsManualInstruction(t *testing.T) {
	t.Parallel()
	m := NewModel("demo")
	updated, _ := m.Update(ManualInstructionMsg{Record: model.ManualInstructionRecord{UtilityName: "note", Text: "update docs"}})
	mm := updated.(Model)
	require.Len(t, mm.instructions, 1)
	assert.Equal(t, "update docs", mm.instructions[0].Text)
}
