package catalogue

import (
	"fmt"
	"os"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
	"github.com/codeforge/codemod/pkg/diff"
)

// UnifiedDiffUtility renders the difference between a file's original
// staged contents and its current contents, useful for a review gate
// placed after a batch of mutating operations.
type UnifiedDiffUtility struct {
	transform.BaseUtility

	OriginalContent []byte
}

func NewUnifiedDiffUtility(name, description, relativePath string, originalContent []byte) *UnifiedDiffUtility {
	return &UnifiedDiffUtility{
		BaseUtility:     transform.NewBaseUtility(name, description, relativePath),
		OriginalContent: originalContent,
	}
}

func (u *UnifiedDiffUtility) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	path := u.AbsolutePath(workingDir)

	current, err := os.ReadFile(path)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(u.Name(), err)
	}

	rendered := diff.Render(u.OriginalContent, current, path+" (staged)", path+" (current)")
	if rendered == "" {
		return model.NewUtilValue(model.StringListValue(nil)), nil
	}

	lines := []string{rendered}
	return model.NewUtilWarning(model.StringListValue(lines), fmt.Sprintf("%s changed", path)), nil
}
