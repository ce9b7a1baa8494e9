package catalogue

import (
	"os"
	"regexp"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// FileContainsCondition reports whether a file's contents match a regular
// expression. It doubles as the per-file sub-condition factory for
// MultipleConditions/FilterFiles utilities built around a content search.
type FileContainsCondition struct {
	transform.BaseUtility

	Pattern *regexp.Regexp
}

func NewFileContainsCondition(name, description, relativePath string, pattern *regexp.Regexp) *FileContainsCondition {
	return &FileContainsCondition{
		BaseUtility: transform.NewBaseUtility(name, description, relativePath),
		Pattern:     pattern,
	}
}

func (c *FileContainsCondition) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	path := c.AbsolutePath(workingDir)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewUtilValue(model.BoolValue(false)), nil
		}
		return nil, transform.NewTransformationUtilityException(c.Name(), err)
	}

	return model.NewUtilValue(model.BoolValue(c.Pattern.Match(content))), nil
}
