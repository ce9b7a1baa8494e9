// Package tui renders a dashboard of a transformation run from the utility,
// manual-instruction and abort messages posted to it, in the same Bubbletea
// shape as the teacher's own execution TUI.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codeforge/codemod/internal/model"
)

// UtilityStartMsg indicates a utility has started dispatching.
type UtilityStartMsg struct {
	Order string
	Name  string
	Time  time.Time
}

// UtilityDoneMsg reports that a utility's dispatch has finished.
type UtilityDoneMsg struct {
	Order  string
	Name   string
	Result model.PerformResult
}

// ManualInstructionMsg reports a manual instruction recorded during dispatch.
type ManualInstructionMsg struct {
	Record model.ManualInstructionRecord
}

// AbortMsg reports that the transformation stopped early.
type AbortMsg struct {
	UtilityName string
	Message     string
}

type tickMsg struct{}

type entry struct {
	order    string
	name     string
	status   string // pending, running, success, error, skipped
	details  string
	duration time.Duration
	started  time.Time
}

// Model is the Bubbletea state for a transformation run dashboard.
type Model struct {
	templateName string
	order        []string
	entries      map[string]*entry
	instructions []model.ManualInstructionRecord
	total        int
	completed    int
	finished     bool
	aborted      bool
	abortMessage string
}

// NewModel constructs a dashboard model for a run over templateName.
func NewModel(templateName string) Model {
	return Model{
		templateName: templateName,
		entries:      make(map[string]*entry),
	}
}

// Init starts the periodic tick used to animate elapsed durations.
func (m Model) Init() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalUtilities returns how many utilities have been dispatched so far.
func (m Model) TotalUtilities() int { return m.total }

// CompletedUtilities returns how many utilities have finished dispatching.
func (m Model) CompletedUtilities() int { return m.completed }

// IsFinished reports whether the run has ended, by completion or abort.
func (m Model) IsFinished() bool { return m.finished }

func (m *Model) ensureEntry(order, name string) *entry {
	e, ok := m.entries[order]
	if !ok {
		e = &entry{order: order, name: name, status: "pending"}
		m.entries[order] = e
		m.order = append(m.order, order)
		m.total++
	}
	return e
}
