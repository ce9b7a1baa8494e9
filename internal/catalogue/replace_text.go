package catalogue

import (
	"fmt"
	"os"
	"regexp"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
	"github.com/codeforge/codemod/pkg/diff"
)

// ReplaceTextOperation rewrites every match of a regular expression inside
// a single file, mirroring the teacher's line_in_file plugin but folded
// into a single idempotent pass rather than a separate evaluate/apply
// phase: a codemod recipe runs once against a disposable staged copy, so
// there's no drift state worth detecting ahead of time.
type ReplaceTextOperation struct {
	transform.BaseUtility
	transform.OperationMixin

	Pattern     *regexp.Regexp
	Replacement string
}

// NewReplaceTextOperation compiles pattern and returns a ready-to-dispatch
// operation. An invalid pattern is a configuration error the caller
// surfaces during recipe validation, not at dispatch time.
func NewReplaceTextOperation(name, description, relativePath, pattern, replacement string) (*ReplaceTextOperation, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("replace-text %q: %w", name, err)
	}
	return &ReplaceTextOperation{
		BaseUtility: transform.NewBaseUtility(name, description, relativePath),
		Pattern:     re,
		Replacement: replacement,
	}, nil
}

func (op *ReplaceTextOperation) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	path := op.AbsolutePath(workingDir)

	info, err := os.Stat(path)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}

	matches := op.Pattern.FindAllIndex(original, -1)
	if len(matches) == 0 {
		return model.NewOpNoOp(fmt.Sprintf("%s: no match for %s", path, op.Pattern.String())), nil
	}

	updated := op.Pattern.ReplaceAll(original, []byte(op.Replacement))
	if err := os.WriteFile(path, updated, info.Mode()); err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}

	rendered := diff.Render(original, updated, path+" (before)", path+" (after)")
	return model.NewOpSuccess(rendered), nil
}
