package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	summaryStyle = lipgloss.NewStyle().MarginTop(1)
)

// StatusIcon returns the glyph representing a dispatch status.
func StatusIcon(status string) string {
	switch status {
	case "success":
		return successStyle.Render("✓")
	case "running":
		return runningStyle.Render("⏳")
	case "error":
		return errorStyle.Render("✗")
	case "skipped":
		return skippedStyle.Render("⊘")
	default:
		return pendingStyle.Render("…")
	}
}
