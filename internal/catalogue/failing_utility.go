package catalogue

import (
	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// FailingUtility stands in for a child utility the registry could not build
// from its recipe entry, most often a malformed for_each_file child spec
// discovered only once a concrete file name is substituted into it. Keeping
// the bad build inside the dispatch protocol, rather than panicking while
// walking a loop's files, gives the recipe author an ERROR-tagged
// UtilResult at the right order stamp instead of a crashed run.
type FailingUtility struct {
	transform.BaseUtility
	Err error
}

// NewFailingUtility reports buildErr as this utility's execution failure.
func NewFailingUtility(name string, buildErr error) *FailingUtility {
	return &FailingUtility{
		BaseUtility: transform.NewBaseUtility(name, "failed to build from recipe", ""),
		Err:         buildErr,
	}
}

func (u *FailingUtility) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	return model.NewUtilError(u.Err), nil
}
