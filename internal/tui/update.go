package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codeforge/codemod/internal/model"
)

// Update handles Bubbletea messages and advances the dashboard state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
	case UtilityStartMsg:
		e := m.ensureEntry(msg.Order, msg.Name)
		e.status = "running"
		e.started = msg.Time
		return m, nil
	case UtilityDoneMsg:
		e := m.ensureEntry(msg.Order, msg.Name)
		wasDone := e.status != "pending" && e.status != "running"
		e.status = statusOf(msg.Result)
		e.details = msg.Result.Details
		if !e.started.IsZero() {
			e.duration = time.Since(e.started)
		}
		if !wasDone {
			m.completed++
		}
		return m, nil
	case ManualInstructionMsg:
		m.instructions = append(m.instructions, msg.Record)
		return m, nil
	case AbortMsg:
		m.aborted = true
		m.finished = true
		m.abortMessage = msg.Message
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.finished = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}
	return m, nil
}

func statusOf(result model.PerformResult) string {
	switch result.Type {
	case model.PerformSkippedCondition, model.PerformSkippedDependency:
		return "skipped"
	case model.PerformError:
		return "error"
	case model.PerformExecutionResult:
		if result.ExecutionResult != nil && result.ExecutionResult.IsErrorType() {
			return "error"
		}
		return "success"
	default:
		return "pending"
	}
}
