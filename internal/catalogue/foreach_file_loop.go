package catalogue

import (
	"regexp"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// ForEachFileLoop lists a subtree once, then drives NewChild once per
// matched file via the Loop protocol. It is deliberately not an Operation:
// it is Parent-shaped (so it still advances the operation/parent counter),
// but tagging it as an Operation too would make the dispatcher's dry-run
// gate (performUtility) short-circuit its own perform() with a NO_OP before
// it ever lists files, instead of evaluating the listing for real and only
// suppressing the mutating children underneath.
type ForEachFileLoop struct {
	transform.BaseUtility

	NamePattern *regexp.Regexp
	NewChild    func(file string) transform.TransformationUtility

	files  []string
	cursor int
	listed bool
}

func NewForEachFileLoop(name, description, relativePath string, namePattern *regexp.Regexp, newChild func(file string) transform.TransformationUtility) *ForEachFileLoop {
	return &ForEachFileLoop{
		BaseUtility: transform.NewBaseUtility(name, description, relativePath),
		NamePattern: namePattern,
		NewChild:    newChild,
	}
}

func (l *ForEachFileLoop) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	files, err := listFiles(l.AbsolutePath(workingDir), l.NamePattern)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(l.Name(), err)
	}
	l.files = files.Sorted()
	l.listed = true
	return model.NewUtilValue(model.BoolValue(len(l.files) > 0)), nil
}

// Children is empty: ForEachFileLoop drives a single templated child per
// iteration rather than a fixed list, per the Loop contract.
func (l *ForEachFileLoop) Children() []transform.TransformationUtility { return nil }

func (l *ForEachFileLoop) Run() transform.TransformationUtility {
	if !l.listed || l.cursor >= len(l.files) {
		return nil
	}
	file := l.files[l.cursor]
	return l.NewChild(file)
}

func (l *ForEachFileLoop) Iterate(ctx *transform.TransformationContext) bool {
	l.cursor++
	return l.cursor < len(l.files)
}

var _ transform.Loop = (*ForEachFileLoop)(nil)
