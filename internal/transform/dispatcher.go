package transform

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/codeforge/codemod/internal/logging"
	"github.com/codeforge/codemod/internal/model"
)

// checkSkip evaluates u's dependency and executeIf gates without invoking
// Execute, so both performUtility and the MultipleConditions/FilterFiles
// fold path can share the same gating logic. spec.md §4.5 step 1.
func checkSkip(u TransformationUtility, ctx *TransformationContext) (model.PerformResult, bool) {
	for _, dep := range u.Dependencies() {
		depResult, ok := ctx.Result(dep)
		if !ok || depResult.DependencyFailure() {
			return model.NewPerformSkippedDependency(u.Name(), "dependency "+dep+" did not succeed"), true
		}
	}

	if cond := u.ExecuteIf(); cond != "" {
		condResult, ok := ctx.Result(cond)
		met := false
		if ok && condResult.Type == model.PerformExecutionResult {
			if ur, isUtil := condResult.ExecutionResult.(model.UtilResult); isUtil {
				if b, isBool := ur.Value.AsBool(); isBool {
					met = b
				}
			}
		}
		if !met {
			return model.NewPerformSkippedCondition(u.Name(), "condition "+cond+" was not met"), true
		}
	}

	return model.PerformResult{}, false
}

// performUtility runs the perform() protocol for a single utility:
// dependency check, executeIf check, then Execute. It never recurses into
// children — that's Dispatch's job. spec.md §4.5 steps 1-2.
func performUtility(u TransformationUtility, workingDir string, ctx *TransformationContext) model.PerformResult {
	if skip, skipped := checkSkip(u, ctx); skipped {
		return skip
	}

	if ctx.DryRun() {
		if _, isOp := u.(Operation); isOp {
			return model.NewPerformExecutionResult(u.Name(), model.NewOpNoOp("dry-run: would execute "+u.Name()))
		}
	}

	execResult, err := u.Execute(workingDir, ctx)
	if err != nil {
		var tuErr *TransformationUtilityException
		if errors.As(err, &tuErr) {
			return model.NewPerformError(u.Name(), tuErr, tuErr.Error())
		}
		return model.NewPerformError(u.Name(), err, err.Error())
	}
	return model.NewPerformExecutionResult(u.Name(), execResult)
}

// subConditionResult validates that a just-dispatched sub-condition produced
// a VALUE or WARNING UtilResult, the only outcomes a fold is allowed to read
// a boolean out of. Anything else — a PerformError, a skip, or a UtilResult
// of type ERROR — means the sub-condition itself failed, and per spec.md
// §4.5 step 4 / §9 that must abort the fold with an error result naming the
// parent utility, the sub-condition, and the file, rather than being read
// back as a silent non-match.
func subConditionResult(parentName string, sub TransformationUtility, file string, subResult model.PerformResult) (ur model.UtilResult, failure *model.PerformResult) {
	if subResult.Type == model.PerformExecutionResult {
		if r, isUtil := subResult.ExecutionResult.(model.UtilResult); isUtil && (r.Type == model.UtilValue || r.Type == model.UtilWarning) {
			return r, nil
		}
	}
	err := fmt.Errorf("utility %q: sub-condition %q on file %q did not return a VALUE or WARNING result: %s", parentName, sub.Name(), file, subResult.Details)
	failed := model.NewPerformExecutionResult(parentName, model.NewUtilError(err))
	return model.UtilResult{}, &failed
}

// foldMultipleConditions evaluates a fresh sub-condition per candidate file
// and folds the booleans per Mode, short-circuiting as soon as the overall
// outcome is decided. spec.md §4.5 step 3.
func foldMultipleConditions(mc MultipleConditions, workingDir string, ctx *TransformationContext, order string, log *logging.Logger) (model.PerformResult, *TransformationException) {
	files, err := mc.Files(workingDir, ctx)
	if err != nil {
		return model.NewPerformError(mc.Name(), err, err.Error()), nil
	}

	finalOutcome := mc.Mode() == ConditionAll
	for i, file := range files.Paths() {
		sub := mc.NewCondition(file)
		subOrder := order + ".c" + strconv.Itoa(i+1)
		if fatal := Dispatch(sub, workingDir, ctx, subOrder, log); fatal != nil {
			return model.PerformResult{}, fatal
		}
		subResult, _ := ctx.Result(sub.Name())
		ur, failure := subConditionResult(mc.Name(), sub, file, subResult)
		if failure != nil {
			return *failure, nil
		}
		met, _ := ur.Value.AsBool()
		switch mc.Mode() {
		case ConditionAll:
			if !met {
				return model.NewPerformExecutionResult(mc.Name(), model.NewUtilValue(model.BoolValue(false))), nil
			}
		case ConditionAny:
			if met {
				return model.NewPerformExecutionResult(mc.Name(), model.NewUtilValue(model.BoolValue(true))), nil
			}
		}
	}
	return model.NewPerformExecutionResult(mc.Name(), model.NewUtilValue(model.BoolValue(finalOutcome))), nil
}

// foldFilterFiles evaluates a fresh sub-condition per candidate file and
// retains only the files for which it evaluated true. spec.md §4.5 step 3.
func foldFilterFiles(ff FilterFiles, workingDir string, ctx *TransformationContext, order string, log *logging.Logger) (model.PerformResult, *TransformationException) {
	files, err := ff.Files(workingDir, ctx)
	if err != nil {
		return model.NewPerformError(ff.Name(), err, err.Error()), nil
	}

	var retained model.FileSet
	for i, file := range files.Paths() {
		sub := ff.NewCondition(file)
		subOrder := order + ".f" + strconv.Itoa(i+1)
		if fatal := Dispatch(sub, workingDir, ctx, subOrder, log); fatal != nil {
			return model.PerformResult{}, fatal
		}
		subResult, _ := ctx.Result(sub.Name())
		ur, failure := subConditionResult(ff.Name(), sub, file, subResult)
		if failure != nil {
			return *failure, nil
		}
		if b, _ := ur.Value.AsBool(); b {
			retained.Add(file)
		}
	}
	return model.NewPerformExecutionResult(ff.Name(), model.NewUtilValue(model.FileSetValue(retained))), nil
}

// logExecutionResult reproduces the original's split handling of operation
// vs. utility execution results (TransformationEngine.java:424-491 —
// processOperationExecutionResult / processUtilityExecutionResult):
// operation SUCCESS/NO_OP log at info/debug, WARNING logs at warn and
// enumerates sub-warnings, ERROR logs at error; a NULL utility value logs a
// warning, VALUE logs at debug, WARNING logs at warn with sub-warnings, and
// ERROR logs at error. spec.md §4.5 step 3 / §6.
func logExecutionResult(utilLog *logging.Logger, result model.PerformResult) {
	switch er := result.ExecutionResult.(type) {
	case model.OpResult:
		switch er.Type {
		case model.OpSuccess:
			utilLog.Info(model.Abbreviate(er.Details_, 120))
		case model.OpNoOp:
			utilLog.Debug(model.Abbreviate(er.Details_, 120))
		case model.OpWarning:
			utilLog.Warn(model.Abbreviate(er.Details_, 240))
			for _, w := range er.Warnings {
				utilLog.Warn(w.Error())
			}
		case model.OpError:
			utilLog.Error(er.Err, model.Abbreviate(er.Details_, 240))
		default:
			utilLog.Error(nil, "unknown operation result tag")
		}
	case model.UtilResult:
		switch er.Type {
		case model.UtilNull:
			utilLog.Warn("utility returned no value")
		case model.UtilValue:
			utilLog.Debug(model.Abbreviate(er.Details_, 120))
		case model.UtilWarning:
			utilLog.Warn(model.Abbreviate(er.Details_, 240))
			for _, w := range er.Warnings {
				utilLog.Warn(w.Error())
			}
		case model.UtilError:
			utilLog.Error(er.Err, model.Abbreviate(er.Details_, 240))
		default:
			utilLog.Error(nil, "unknown utility result tag")
		}
	default:
		utilLog.Error(nil, "unknown execution result type")
	}
}

// Dispatch runs the full protocol for a single utility at the given order
// stamp: perform, commit results, recurse into children/loop iterations or
// fold multi-file conditions, log, and propagate abort. It returns non-nil
// only when the transformation must stop. spec.md §4.5.
func Dispatch(u TransformationUtility, workingDir string, ctx *TransformationContext, order string, log *logging.Logger) *TransformationException {
	utilLog := log.ForUtility(u.Name(), order)

	var result model.PerformResult
	switch shaped := u.(type) {
	case MultipleConditions:
		if skip, skipped := checkSkip(u, ctx); skipped {
			result = skip
		} else {
			var fatal *TransformationException
			result, fatal = foldMultipleConditions(shaped, workingDir, ctx, order, log)
			if fatal != nil {
				return fatal
			}
		}
	case FilterFiles:
		if skip, skipped := checkSkip(u, ctx); skipped {
			result = skip
		} else {
			var fatal *TransformationException
			result, fatal = foldFilterFiles(shaped, workingDir, ctx, order, log)
			if fatal != nil {
				return fatal
			}
		}
	default:
		result = performUtility(u, workingDir, ctx)
	}

	if u.SaveResult() {
		ctx.PutResult(u.Name(), result)
		if result.Type == model.PerformExecutionResult {
			if ur, isUtil := result.ExecutionResult.(model.UtilResult); isUtil {
				ctx.Put(u.ContextAttributeName(), ur.Value)
			}
		}
	}

	if result.Type == model.PerformExecutionResult {
		if ur, isUtil := result.ExecutionResult.(model.UtilResult); isUtil && ur.Value.Kind == model.KindManualInstruction {
			if rec, ok := ur.Value.AsManualInstruction(); ok && rec != nil {
				ctx.RecordManualInstruction(*rec)
			}
		}
	}

	switch result.Type {
	case model.PerformSkippedCondition, model.PerformSkippedDependency:
		if _, isOp := u.(Operation); isOp {
			utilLog.Info("skipped: " + result.Details)
		} else {
			utilLog.Debug("skipped: " + result.Details)
		}
	case model.PerformError:
		utilLog.Error(result.Err, "dispatch failed")
	case model.PerformExecutionResult:
		logExecutionResult(utilLog, result)
	default:
		utilLog.Error(nil, "unknown perform result tag")
	}

	if result.IsException() && u.AbortOnFailure() {
		var cause error
		if result.Err != nil {
			cause = result.Err
		} else {
			cause = errors.New(result.Details)
		}
		abortErr := NewTransformationException(u.AbortionMessage(), cause)
		ctx.Abort(AbortState{UtilityName: u.Name(), Message: u.AbortionMessage(), Err: cause})
		return abortErr
	}

	if result.DependencyFailure() {
		return nil
	}

	switch shaped := u.(type) {
	case Loop:
		if met, isBool := resultBool(result); !isBool || !met {
			return nil
		}
		return dispatchLoop(shaped, workingDir, ctx, order, log)
	case Parent:
		if !resultIsValue(result) {
			return nil
		}
		return dispatchChildren(shaped.Children(), workingDir, ctx, order, log)
	}

	return nil
}

// resultBool extracts the boolean payload of a VALUE/WARNING UtilResult, if
// result carries one. Used to gate Loop re-dispatch on the loop's own
// "continue?" perform value — spec.md §4.5 step 4: "If the value is false
// or non-Boolean, do not iterate."
func resultBool(result model.PerformResult) (bool, bool) {
	if result.Type != model.PerformExecutionResult {
		return false, false
	}
	ur, isUtil := result.ExecutionResult.(model.UtilResult)
	if !isUtil {
		return false, false
	}
	return ur.Value.AsBool()
}

// resultIsValue reports whether result is a PerformExecutionResult wrapping
// a UtilResult whose tag is VALUE — the only outcome that permits dispatching
// a Parent's children. spec.md §4.5 tie-breaks: "Parents are dispatched
// after their own perform returned a VALUE; a non-VALUE result short-
// circuits the parent (its children do not run)."
func resultIsValue(result model.PerformResult) bool {
	if result.Type != model.PerformExecutionResult {
		return false
	}
	ur, isUtil := result.ExecutionResult.(model.UtilResult)
	if !isUtil {
		return false
	}
	return ur.Type == model.UtilValue
}

// dispatchLoop dispatches Run()'s current-iteration utility under an
// incrementing per-iteration order, then asks Iterate to advance the loop's
// cursor and decide whether another iteration follows.
func dispatchLoop(loop Loop, workingDir string, ctx *TransformationContext, order string, log *logging.Logger) *TransformationException {
	iteration := 0
	for {
		iteration++
		u := loop.Run()
		if u == nil {
			return nil
		}

		newOrder := order + "." + strconv.Itoa(iteration)
		if fatal := Dispatch(u, workingDir, ctx, newOrder+".1", log); fatal != nil {
			return fatal
		}
		if ctx.Aborted() {
			return nil
		}

		if !loop.Iterate(ctx) {
			return nil
		}
	}
}

// dispatchChildren walks a Parent's fixed child list, advancing the
// dotted-order counter only for children that are themselves operations or
// parents. Non-operation siblings (conditions feeding an executeIf) share
// that counter's current value but are disambiguated by a monotonic
// nonOpIndex suffix, so two conditions in a row never collide on the same
// order stamp. spec.md invariant I1, I2.
func dispatchChildren(children []TransformationUtility, workingDir string, ctx *TransformationContext, parentOrder string, log *logging.Logger) *TransformationException {
	counter := 0
	nonOpIndex := 0
	for _, child := range children {
		var childOrder string
		if isOperationOrParent(child) {
			counter++
			childOrder = parentOrder + "." + strconv.Itoa(counter)
		} else {
			nonOpIndex++
			childOrder = parentOrder + "." + strconv.Itoa(counter) + ".x" + strconv.Itoa(nonOpIndex)
		}
		if fatal := Dispatch(child, workingDir, ctx, childOrder, log); fatal != nil {
			return fatal
		}
		if ctx.Aborted() {
			return nil
		}
	}
	return nil
}
