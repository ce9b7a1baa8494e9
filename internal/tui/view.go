package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codeforge/codemod/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("codemod • %s", m.templateName)))

	progress := components.NewProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	entries := make([]components.UtilityEntry, 0, len(m.order))
	for _, order := range m.order {
		e := m.entries[order]
		entries = append(entries, components.UtilityEntry{
			Order:   e.order,
			Name:    e.name,
			Status:  e.status,
			Details: e.details,
		})
	}
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Utilities"))
		sections = append(sections, renderUtilityEntries(entries))
	}

	instructions := make([]string, 0, len(m.instructions))
	for _, rec := range m.instructions {
		instructions = append(instructions, fmt.Sprintf("%s: %s", rec.UtilityName, rec.Text))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:        m.total,
		Completed:    m.completed,
		Finished:     m.finished,
		Aborted:      m.aborted,
		AbortMessage: m.abortMessage,
		Instructions: instructions,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderUtilityEntries(entries []components.UtilityEntry) string {
	var lines []string
	for _, e := range entries {
		icon := StatusIcon(e.Status)
		line := fmt.Sprintf(" %s %s", icon, e.Name)
		if strings.TrimSpace(e.Details) != "" {
			line = fmt.Sprintf("%s — %s", line, e.Details)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
