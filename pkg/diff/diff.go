// Package diff renders a unified-diff view of a single staged file's
// before/after contents, the format internal/catalogue.UnifiedDiffUtility
// surfaces to an operator reviewing what a batch of mutating operations
// changed.
package diff

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Render builds a unified diff between original and current, labeling the
// two sides originalLabel/currentLabel. Returns "" if the contents are
// identical, so a caller can treat that as "nothing changed".
func Render(original, current []byte, originalLabel, currentLabel string) string {
	if bytes.Equal(original, current) {
		return ""
	}

	dmp := diffmatchpatch.New()

	originalStr := string(original)
	currentStr := string(current)

	originalChars, currentChars, lineArray := dmp.DiffLinesToChars(originalStr, currentStr)
	diffs := dmp.DiffMain(originalChars, currentChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var buf bytes.Buffer

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(&buf, "--- %s\t%s\n", originalLabel, timestamp)
	fmt.Fprintf(&buf, "+++ %s\t%s\n", currentLabel, timestamp)

	originalLines := strings.Split(originalStr, "\n")
	currentLines := strings.Split(currentStr, "\n")
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", len(originalLines), len(currentLines))

	for _, d := range diffs {
		text := d.Text
		lines := strings.Split(text, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" && text[len(text)-1] == '\n' {
			lines = lines[:len(lines)-1]
		}

		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			prefix = " "
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range lines {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		return strings.Join(lines[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return result
}
