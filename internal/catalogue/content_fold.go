package catalogue

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// FileContentMultipleCondition implements transform.MultipleConditions:
// it lists a subtree, then folds a per-file FileContainsCondition across
// the results per Mode (ALL/ANY).
type FileContentMultipleCondition struct {
	transform.BaseUtility

	SubtreePattern *regexp.Regexp
	ContentPattern *regexp.Regexp
	FoldMode       transform.ConditionMode
}

func NewFileContentMultipleCondition(name, description, relativePath string, subtree, content *regexp.Regexp, mode transform.ConditionMode) *FileContentMultipleCondition {
	return &FileContentMultipleCondition{
		BaseUtility:    transform.NewBaseUtility(name, description, relativePath),
		SubtreePattern: subtree,
		ContentPattern: content,
		FoldMode:       mode,
	}
}

// Execute is never called directly by the dispatcher for a
// MultipleConditions-shaped utility — Dispatch always synthesizes the
// folded VALUE itself — but is still required to satisfy
// TransformationUtility, and returning NULL here keeps a direct,
// non-dispatcher caller (e.g. a unit test exercising the utility alone)
// from observing a half-built result.
func (m *FileContentMultipleCondition) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	return model.NewUtilNull(), nil
}

func (m *FileContentMultipleCondition) Mode() transform.ConditionMode { return m.FoldMode }

func (m *FileContentMultipleCondition) Files(workingDir string, ctx *transform.TransformationContext) (model.FileSet, error) {
	return listFiles(m.AbsolutePath(workingDir), m.SubtreePattern)
}

func (m *FileContentMultipleCondition) NewCondition(file string) transform.TransformationUtility {
	name := fmt.Sprintf("%s[%s]", m.Name(), file)
	return NewFileContainsCondition(name, "", filepath.Join(m.RelativePath(), file), m.ContentPattern)
}

// FileContentFilterFiles implements transform.FilterFiles: it lists a
// subtree and retains only the files whose contents match ContentPattern.
type FileContentFilterFiles struct {
	transform.BaseUtility

	SubtreePattern *regexp.Regexp
	ContentPattern *regexp.Regexp
}

func NewFileContentFilterFiles(name, description, relativePath string, subtree, content *regexp.Regexp) *FileContentFilterFiles {
	return &FileContentFilterFiles{
		BaseUtility:    transform.NewBaseUtility(name, description, relativePath),
		SubtreePattern: subtree,
		ContentPattern: content,
	}
}

func (f *FileContentFilterFiles) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	return model.NewUtilNull(), nil
}

func (f *FileContentFilterFiles) Files(workingDir string, ctx *transform.TransformationContext) (model.FileSet, error) {
	return listFiles(f.AbsolutePath(workingDir), f.SubtreePattern)
}

func (f *FileContentFilterFiles) NewCondition(file string) transform.TransformationUtility {
	name := fmt.Sprintf("%s[%s]", f.Name(), file)
	return NewFileContainsCondition(name, "", filepath.Join(f.RelativePath(), file), f.ContentPattern)
}
