package components

import (
	"fmt"
	"strings"
)

// SummaryData aggregates counts for rendering a run summary.
type SummaryData struct {
	Total        int
	Completed    int
	Finished     bool
	Aborted      bool
	AbortMessage string
	Instructions []string
}

// Summary renders a textual run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Utilities: %d/%d dispatched", s.data.Completed, s.data.Total))
	}

	switch {
	case s.data.Aborted:
		lines = append(lines, fmt.Sprintf("Transformation aborted: %s", s.data.AbortMessage))
	case s.data.Finished && s.data.Total > 0:
		lines = append(lines, "Transformation finished")
	}

	if len(s.data.Instructions) > 0 {
		lines = append(lines, "Manual instructions:")
		for _, text := range s.data.Instructions {
			lines = append(lines, "  - "+text)
		}
	}

	return strings.Join(lines, "\n")
}
