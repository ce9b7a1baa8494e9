package listeners

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codeforge/codemod/internal/transform"
)

// FileReportListener writes a plain-text summary of every dispatched
// utility and recorded manual instruction to a file once a transformation
// finishes, successfully or not. Grounded on the teacher's own preference
// for a flat, human-readable run artifact alongside its structured logs.
type FileReportListener struct {
	Path string
}

// NewFileReportListener builds a listener that writes its report to path.
func NewFileReportListener(path string) *FileReportListener {
	return &FileReportListener{Path: path}
}

func (l *FileReportListener) PostTransformation(tx *transform.Transformation, contexts []transform.ContextView) {
	l.write(tx, contexts, nil)
}

func (l *FileReportListener) PostTransformationAbort(tx *transform.Transformation, contexts []transform.ContextView, abortErr error) {
	l.write(tx, contexts, abortErr)
}

func (l *FileReportListener) write(tx *transform.Transformation, contexts []transform.ContextView, abortErr error) {
	var b strings.Builder
	fmt.Fprintf(&b, "transformation report — %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "staged directory: %s\n\n", tx.StagedDirectory())

	for _, view := range contexts {
		fmt.Fprintf(&b, "template %s\n", view.TemplateName())
		for _, name := range view.DispatchedNames() {
			result, _ := view.Result(name)
			fmt.Fprintf(&b, "  %-30s %-20s %s\n", name, result.Type, result.Details)
		}
		for _, rec := range view.Instructions() {
			fmt.Fprintf(&b, "  manual step (%s): %s\n", rec.UtilityName, rec.Text)
		}
		b.WriteString("\n")
	}

	if abortErr != nil {
		fmt.Fprintf(&b, "aborted: %s\n", abortErr.Error())
	}

	_ = os.WriteFile(l.Path, []byte(b.String()), 0o644)
}
