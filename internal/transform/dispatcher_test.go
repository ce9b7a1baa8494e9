package transform

import (
	"errors"
	"testing"

	"github.com/codeforge/codemod/internal/logging"
	"github.com/codeforge/codemod/internal/model"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(logging.Options{Level: "debug"})
	require.NoError(t, err)
	return log
}

// fakeOp is a minimal Operation used to exercise dispatch without touching
// the filesystem.
type fakeOp struct {
	BaseUtility
	OperationMixin
	result model.OpResult
	err    error
	ran    *bool
}

func (f *fakeOp) Execute(workingDir string, ctx *TransformationContext) (model.ExecutionResult, error) {
	if f.ran != nil {
		*f.ran = true
	}
	if f.err != nil {
		return nil, NewTransformationUtilityException(f.Name(), f.err)
	}
	return f.result, nil
}

// fakeCondition is a plain boolean utility, not shaped as an Operation.
type fakeCondition struct {
	BaseUtility
	value bool
}

func (f *fakeCondition) Execute(workingDir string, ctx *TransformationContext) (model.ExecutionResult, error) {
	return model.NewUtilValue(model.BoolValue(f.value)), nil
}

func newOp(name string, result model.OpResult) *fakeOp {
	return &fakeOp{BaseUtility: NewBaseUtility(name, "", ""), result: result}
}

func TestRunTemplateFlatSuccess(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	ran1, ran2 := false, false
	op1 := newOp("op1", model.NewOpSuccess("done 1"))
	op1.ran = &ran1
	op2 := newOp("op2", model.NewOpSuccess("done 2"))
	op2.ran = &ran2

	tmpl := &Template{Name: "flat", Utilities: []TransformationUtility{op1, op2}}
	ctx := NewTransformationContext(tmpl.Name, nil)

	fatal := RunTemplate(tmpl, t.TempDir(), ctx, log)
	require.Nil(t, fatal)
	require.True(t, ran1)
	require.True(t, ran2)

	r1, ok := ctx.Result("op1")
	require.True(t, ok)
	require.False(t, r1.IsException())
}

func TestRunTemplateAbortsOnMiddleOperation(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	ran3 := false
	op1 := newOp("op1", model.NewOpSuccess("fine"))
	op2 := newOp("op2", model.OpResult{})
	op2.err = errors.New("boom")
	op2.WithAbortOnFailure("op2 must succeed")
	op3 := newOp("op3", model.NewOpSuccess("never reached"))
	op3.ran = &ran3

	tmpl := &Template{Name: "abort", Utilities: []TransformationUtility{op1, op2, op3}}
	ctx := NewTransformationContext(tmpl.Name, nil)

	fatal := RunTemplate(tmpl, t.TempDir(), ctx, log)
	require.NotNil(t, fatal)
	require.False(t, ran3)
	require.True(t, ctx.Aborted())

	var transformationErr *TransformationException
	require.ErrorAs(t, fatal.cause, &transformationErr)
}

func TestDispatchSkipsOnFailedDependency(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	failing := newOp("pre", model.OpResult{})
	failing.err = errors.New("disk full")
	dependent := newOp("post", model.NewOpSuccess("should not run"))
	dependent.WithDependsOn("pre")
	ran := false
	dependent.ran = &ran

	tmpl := &Template{Name: "deps", Utilities: []TransformationUtility{failing, dependent}}
	ctx := NewTransformationContext(tmpl.Name, nil)

	fatal := RunTemplate(tmpl, t.TempDir(), ctx, log)
	require.Nil(t, fatal)
	require.False(t, ran)

	result, ok := ctx.Result("post")
	require.True(t, ok)
	require.Equal(t, model.PerformSkippedDependency, result.Type)
}

func TestDispatchSkipsOnFalseExecuteIf(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	cond := &fakeCondition{BaseUtility: NewBaseUtility("cond", "", ""), value: false}
	gated := newOp("gated", model.NewOpSuccess("should not run"))
	gated.WithExecuteIf("cond")
	ran := false
	gated.ran = &ran

	tmpl := &Template{Name: "gate", Utilities: []TransformationUtility{cond, gated}}
	ctx := NewTransformationContext(tmpl.Name, nil)

	fatal := RunTemplate(tmpl, t.TempDir(), ctx, log)
	require.Nil(t, fatal)
	require.False(t, ran)

	result, ok := ctx.Result("gated")
	require.True(t, ok)
	require.Equal(t, model.PerformSkippedCondition, result.Type)
}

// countingLoop runs a fixed number of child dispatches before ending.
type countingLoop struct {
	BaseUtility
	OperationMixin
	max    int
	cursor int
	ran    []bool
}

func (l *countingLoop) Execute(workingDir string, ctx *TransformationContext) (model.ExecutionResult, error) {
	return model.NewUtilValue(model.BoolValue(true)), nil
}

func (l *countingLoop) Children() []TransformationUtility { return nil }

func (l *countingLoop) Run() TransformationUtility {
	if l.cursor >= l.max {
		return nil
	}
	return newFuncUtility("iter", func() {
		l.ran = append(l.ran, true)
	})
}

func (l *countingLoop) Iterate(ctx *TransformationContext) bool {
	l.cursor++
	return l.cursor < l.max
}

type funcUtility struct {
	BaseUtility
	fn func()
}

func newFuncUtility(name string, fn func()) *funcUtility {
	u := &funcUtility{BaseUtility: NewBaseUtility(name, "", ""), fn: fn}
	u.DoSaveResult = false
	return u
}

func (u *funcUtility) Execute(workingDir string, ctx *TransformationContext) (model.ExecutionResult, error) {
	u.fn()
	return model.NewUtilNull(), nil
}

func TestLoopDispatchesChildOncePerIteration(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	loop := &countingLoop{BaseUtility: NewBaseUtility("loop", "", ""), max: 3}
	tmpl := &Template{Name: "loop", Utilities: []TransformationUtility{loop}}
	ctx := NewTransformationContext(tmpl.Name, nil)

	fatal := RunTemplate(tmpl, t.TempDir(), ctx, log)
	require.Nil(t, fatal)
	require.Len(t, loop.ran, 3)
}

// multiCond evaluates ALL mode over a fixed file list.
type multiCond struct {
	BaseUtility
	mode     ConditionMode
	files    []string
	perFile  map[string]bool
}

func (m *multiCond) Execute(workingDir string, ctx *TransformationContext) (model.ExecutionResult, error) {
	return model.NewUtilNull(), nil
}
func (m *multiCond) Mode() ConditionMode { return m.mode }
func (m *multiCond) Files(workingDir string, ctx *TransformationContext) (model.FileSet, error) {
	return model.NewFileSet(m.files...), nil
}
func (m *multiCond) NewCondition(file string) TransformationUtility {
	return &fakeCondition{BaseUtility: NewBaseUtility("cond-"+file, "", ""), value: m.perFile[file]}
}

func TestMultipleConditionsAllShortCircuits(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	mc := &multiCond{
		BaseUtility: NewBaseUtility("all-licensed", "", ""),
		mode:        ConditionAll,
		files:       []string{"a.go", "b.go", "c.go"},
		perFile:     map[string]bool{"a.go": true, "b.go": false, "c.go": true},
	}
	tmpl := &Template{Name: "multi", Utilities: []TransformationUtility{mc}}
	ctx := NewTransformationContext(tmpl.Name, nil)

	fatal := RunTemplate(tmpl, t.TempDir(), ctx, log)
	require.Nil(t, fatal)

	result, ok := ctx.Result("all-licensed")
	require.True(t, ok)
	ur := result.ExecutionResult.(model.UtilResult)
	b, _ := ur.Value.AsBool()
	require.False(t, b)

	// c.go's sub-condition should never have been dispatched: b.go already
	// decided the fold.
	_, ranC := ctx.Result("cond-c.go")
	require.False(t, ranC)
}

// erroringCondition simulates a sub-condition that fails outright (e.g. a
// permission error reading a file), rather than evaluating to true/false.
type erroringCondition struct {
	BaseUtility
}

func (f *erroringCondition) Execute(workingDir string, ctx *TransformationContext) (model.ExecutionResult, error) {
	return nil, NewTransformationUtilityException(f.Name(), errors.New("permission denied"))
}

// flakyMultiCond fails its sub-condition for one particular file instead of
// evaluating it to true/false.
type flakyMultiCond struct {
	BaseUtility
	mode      ConditionMode
	files     []string
	failsFile string
}

func (m *flakyMultiCond) Execute(workingDir string, ctx *TransformationContext) (model.ExecutionResult, error) {
	return model.NewUtilNull(), nil
}
func (m *flakyMultiCond) Mode() ConditionMode { return m.mode }
func (m *flakyMultiCond) Files(workingDir string, ctx *TransformationContext) (model.FileSet, error) {
	return model.NewFileSet(m.files...), nil
}
func (m *flakyMultiCond) NewCondition(file string) TransformationUtility {
	if file == m.failsFile {
		return &erroringCondition{BaseUtility: NewBaseUtility("cond-"+file, "", "")}
	}
	return &fakeCondition{BaseUtility: NewBaseUtility("cond-"+file, "", ""), value: true}
}

func TestMultipleConditionsSubConditionFailureAbortsFold(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	mc := &flakyMultiCond{
		BaseUtility: NewBaseUtility("all-readable", "", ""),
		mode:        ConditionAll,
		files:       []string{"a.go", "b.go", "c.go"},
		failsFile:   "b.go",
	}
	mc.WithAbortOnFailure("could not evaluate all-readable")
	tmpl := &Template{Name: "multi-fail", Utilities: []TransformationUtility{mc}}
	ctx := NewTransformationContext(tmpl.Name, nil)

	fatal := RunTemplate(tmpl, t.TempDir(), ctx, log)
	require.NotNil(t, fatal)

	result, ok := ctx.Result("all-readable")
	require.True(t, ok)
	require.True(t, result.IsException())
	ur := result.ExecutionResult.(model.UtilResult)
	require.Equal(t, model.UtilError, ur.Type)
	require.Contains(t, ur.Err.Error(), "cond-b.go")
	require.Contains(t, ur.Err.Error(), "b.go")

	// c.go should never have been dispatched: the fold stopped at b.go.
	_, ranC := ctx.Result("cond-c.go")
	require.False(t, ranC)
}

func TestUpgradePathChainsContext(t *testing.T) {
	t.Parallel()
	log := testLogger(t)

	step1Op := newOp("seed", model.NewOpSuccess("seeded"))
	step2Op := newOp("consume", model.NewOpSuccess("consumed"))
	step2Op.WithDependsOn("seed")

	path := &UpgradePath{
		OriginalVersion: "1.0",
		UpgradeVersion:  "2.0",
		Steps: []UpgradeStep{
			{FromVersion: "1.0", ToVersion: "1.5", Template: &Template{Name: "step1", Utilities: []TransformationUtility{step1Op}}},
			{FromVersion: "1.5", ToVersion: "2.0", Template: &Template{Name: "step2", Utilities: []TransformationUtility{step2Op}}},
		},
	}

	contexts, fatal := RunUpgradePath(path, t.TempDir(), log, false)
	require.Nil(t, fatal)
	require.Len(t, contexts, 2)

	result, ok := contexts[1].Result("consume")
	require.True(t, ok)
	require.False(t, result.IsException())
}
