package transform

import "github.com/codeforge/codemod/internal/logging"

// UpgradeStep is one template applied while moving between two consecutive
// versions along an UpgradePath.
type UpgradeStep struct {
	FromVersion string
	ToVersion   string
	Template    *Template
}

// UpgradePath is an ordered, exhaustively-consumed sequence of upgrade
// steps between two versions of an application. Unlike a stateful
// hasNext/next cursor, StepsInOrder hands back the full sequence so the
// driver can range over it directly — there is no partial-consumption use
// case in this engine.
type UpgradePath struct {
	OriginalVersion string
	UpgradeVersion  string
	Steps           []UpgradeStep
}

// StepsInOrder returns a defensive copy of the path's steps.
func (p *UpgradePath) StepsInOrder() []UpgradeStep {
	return append([]UpgradeStep(nil), p.Steps...)
}

// RunUpgradePath runs every step's template in sequence against the same
// working directory, chaining a fresh TransformationContext per step off
// the previous step's context so later steps can read earlier steps'
// values and results. It returns every context created, in order, and a
// fatal error if any step aborted.
func RunUpgradePath(path *UpgradePath, workingDir string, log *logging.Logger, dryRun bool) ([]*TransformationContext, *internalTransformationException) {
	var contexts []*TransformationContext
	var parent *TransformationContext

	for _, step := range path.StepsInOrder() {
		ctx := NewTransformationContext(step.Template.Name, parent)
		ctx.SetDryRun(dryRun)
		contexts = append(contexts, ctx)

		if fatal := RunTemplate(step.Template, workingDir, ctx, log); fatal != nil {
			return contexts, fatal
		}
		if ctx.Aborted() {
			break
		}
		parent = ctx
	}

	return contexts, nil
}
