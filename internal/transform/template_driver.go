package transform

import (
	"strconv"

	"github.com/codeforge/codemod/internal/logging"
)

// Template is an ordered list of top-level utilities applied to a staged
// application directory.
type Template struct {
	Name      string
	Utilities []TransformationUtility
}

// RunTemplate dispatches every top-level utility of tmpl in order against
// workingDir, sharing ctx. It returns an internalTransformationException
// carrying ctx when a utility aborts the run, so the caller (Perform) can
// attribute the abort to the right context before re-raising.
func RunTemplate(tmpl *Template, workingDir string, ctx *TransformationContext, log *logging.Logger) *internalTransformationException {
	templateLog := log.ForTemplate(tmpl.Name)

	counter := 0
	nonOpIndex := 0
	for _, u := range tmpl.Utilities {
		var order string
		if isOperationOrParent(u) {
			counter++
			order = strconv.Itoa(counter)
		} else {
			nonOpIndex++
			order = strconv.Itoa(counter) + ".x" + strconv.Itoa(nonOpIndex)
		}

		if fatal := Dispatch(u, workingDir, ctx, order, templateLog); fatal != nil {
			return &internalTransformationException{cause: fatal, ctx: ctx}
		}
		if ctx.Aborted() {
			break
		}
	}
	return nil
}
