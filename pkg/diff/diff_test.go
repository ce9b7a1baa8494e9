package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderIdenticalContentIsEmpty(t *testing.T) {
	staged := []byte("package main\n\nfunc main() {}\n")
	current := []byte("package main\n\nfunc main() {}\n")

	require.Empty(t, Render(staged, current, "staged", "current"))
}

func TestRenderSingleLineChange(t *testing.T) {
	staged := []byte("import \"old/pkg\"\nfunc run() {}\n")
	current := []byte("import \"new/pkg\"\nfunc run() {}\n")

	result := Render(staged, current, "before", "after")

	require.NotEmpty(t, result)
	require.Contains(t, result, "---")
	require.Contains(t, result, "+++")
	require.Contains(t, result, `-import "old/pkg"`)
	require.Contains(t, result, `+import "new/pkg"`)
}

func TestRenderMultiLineChangeKeepsContext(t *testing.T) {
	staged := []byte("line1\nline2\nline3\nline4\nline5\n")
	current := []byte("line1\nreplaced2\nreplaced3\nline4\nline5\n")

	result := Render(staged, current, "staged.go", "current.go")

	require.NotEmpty(t, result)
	require.Contains(t, result, " line1")
	require.Contains(t, result, " line4")
	require.Contains(t, result, "replaced")
}

func TestRenderTruncatesOversizedDiffs(t *testing.T) {
	var stagedLines, currentLines []string
	for i := 0; i < 11000; i++ {
		stagedLines = append(stagedLines, "staged line")
		if i%2 == 0 {
			currentLines = append(currentLines, "current line")
		} else {
			currentLines = append(currentLines, "staged line")
		}
	}

	staged := []byte(strings.Join(stagedLines, "\n"))
	current := []byte(strings.Join(currentLines, "\n"))

	result := Render(staged, current, "staged", "current")

	require.NotEmpty(t, result)
	require.Contains(t, result, "truncated")
	require.LessOrEqual(t, strings.Count(result, "\n"), 10100)
}

func TestRenderAddsContentFromEmptyFile(t *testing.T) {
	result := Render([]byte(""), []byte("generated by the recipe\n"), "staged", "current")

	require.NotEmpty(t, result)
	require.Contains(t, result, "+generated by the recipe")
}

func TestRenderLabelsBothSides(t *testing.T) {
	result := Render([]byte("old"), []byte("new"), "internal/auth.go (staged)", "internal/auth.go (current)")

	require.Contains(t, result, "--- internal/auth.go (staged)")
	require.Contains(t, result, "+++ internal/auth.go (current)")
}
