package transform

import (
	"github.com/codeforge/codemod/internal/logging"
	"github.com/codeforge/codemod/internal/model"
)

// Transformation bundles everything Perform needs to run: the application
// to transform, where to stage the copy, and exactly one of a single
// template or a multi-step upgrade path.
type Transformation struct {
	Application   Application
	Configuration Configuration
	Template      *Template
	UpgradePath   *UpgradePath
	Listeners     []Listener
	DryRun        bool

	stagedDir string
}

// NewTemplateTransformation builds a single-template transformation.
func NewTemplateTransformation(app Application, cfg Configuration, tmpl *Template, listeners ...Listener) *Transformation {
	return &Transformation{Application: app, Configuration: cfg, Template: tmpl, Listeners: listeners}
}

// NewUpgradePathTransformation builds a multi-step upgrade transformation.
func NewUpgradePathTransformation(app Application, cfg Configuration, path *UpgradePath, listeners ...Listener) *Transformation {
	return &Transformation{Application: app, Configuration: cfg, UpgradePath: path, Listeners: listeners}
}

// StagedDirectory returns the staged working directory once Perform has
// run, or empty before that.
func (t *Transformation) StagedDirectory() string { return t.stagedDir }

// TransformationResult is what Perform returns on a non-aborted run.
type TransformationResult struct {
	WorkingDirectory   string
	ManualInstructions []model.ManualInstructionRecord
}

// Perform stages the application, runs the configured template or upgrade
// path, fans the outcome out to every listener, and returns the aggregate
// result. A TransformationException is returned only when a utility marked
// abortOnFailure actually failed, or when t has neither a template nor an
// upgrade path; staging failures surface as a
// *StagingError instead and never reach a listener. spec.md §4.3-§4.6.
func Perform(t *Transformation, log *logging.Logger) (*TransformationResult, error) {
	stagedDir, err := PrepareOutputFolder(t.Application, t.Configuration)
	if err != nil {
		return nil, err
	}
	t.stagedDir = stagedDir

	var contexts []*TransformationContext
	var fatal *internalTransformationException

	switch {
	case t.UpgradePath != nil:
		contexts, fatal = RunUpgradePath(t.UpgradePath, stagedDir, log, t.DryRun)
	case t.Template != nil:
		ctx := NewTransformationContext(t.Template.Name, nil)
		ctx.SetDryRun(t.DryRun)
		contexts = []*TransformationContext{ctx}
		fatal = RunTemplate(t.Template, stagedDir, ctx, log)
	default:
		return nil, NewTransformationException("transformation has neither a template nor an upgrade path", nil)
	}

	views := viewsOf(contexts)

	if fatal != nil {
		notifyListeners(t.Listeners, func(l Listener) {
			l.PostTransformationAbort(t, views, fatal.cause)
		})
		return nil, fatal.cause
	}

	notifyListeners(t.Listeners, func(l Listener) {
		l.PostTransformation(t, views)
	})

	result := &TransformationResult{WorkingDirectory: stagedDir}
	for _, ctx := range contexts {
		result.ManualInstructions = append(result.ManualInstructions, ctx.Instructions()...)
	}
	return result, nil
}
