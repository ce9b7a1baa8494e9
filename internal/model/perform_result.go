package model

// PerformResultType tags the outcome of the engine dispatching a single
// utility, as opposed to the ExecutionResult the utility itself returned.
// spec.md §3.
type PerformResultType string

const (
	PerformExecutionResult   PerformResultType = "EXECUTION_RESULT"
	PerformSkippedCondition  PerformResultType = "SKIPPED_CONDITION"
	PerformSkippedDependency PerformResultType = "SKIPPED_DEPENDENCY"
	PerformError             PerformResultType = "ERROR"
)

// PerformResult is produced by the engine for each utility invocation.
type PerformResult struct {
	Type            PerformResultType
	UtilityName     string
	Details         string
	ExecutionResult ExecutionResult // set only when Type == PerformExecutionResult
	Err             error           // set only when Type == PerformError
}

// NewPerformExecutionResult wraps a utility's own ExecutionResult.
func NewPerformExecutionResult(utilityName string, er ExecutionResult) PerformResult {
	return PerformResult{
		Type:            PerformExecutionResult,
		UtilityName:     utilityName,
		Details:         er.Details(),
		ExecutionResult: er,
	}
}

// NewPerformSkippedCondition reports a utility skipped because its
// executeIf condition evaluated to false.
func NewPerformSkippedCondition(utilityName, details string) PerformResult {
	return PerformResult{Type: PerformSkippedCondition, UtilityName: utilityName, Details: details}
}

// NewPerformSkippedDependency reports a utility skipped because a
// dependency produced a dependency-failing result.
func NewPerformSkippedDependency(utilityName, details string) PerformResult {
	return PerformResult{Type: PerformSkippedDependency, UtilityName: utilityName, Details: details}
}

// NewPerformError reports a dispatch that failed with an error instead of
// an ExecutionResult: an error returned by the utility's Execute, or a
// failure to list the files a fold iterates over.
func NewPerformError(utilityName string, err error, details string) PerformResult {
	return PerformResult{Type: PerformError, UtilityName: utilityName, Details: details, Err: err}
}

// IsException reports whether this result represents a failure: either the
// dispatch itself errored, or the wrapped execution result's tag is ERROR.
// spec.md §3 "Derived predicates".
func (r PerformResult) IsException() bool {
	switch r.Type {
	case PerformError:
		return true
	case PerformSkippedCondition, PerformSkippedDependency:
		return false
	case PerformExecutionResult:
		return r.ExecutionResult != nil && r.ExecutionResult.IsErrorType()
	default:
		return false
	}
}

// DependencyFailure reports whether dependents should treat this result as
// a dependency failure: true for any non-EXECUTION_RESULT outcome, or when
// the wrapped execution result is itself ERROR. spec.md §3.
func (r PerformResult) DependencyFailure() bool {
	switch r.Type {
	case PerformSkippedCondition, PerformSkippedDependency, PerformError:
		return true
	case PerformExecutionResult:
		return r.ExecutionResult != nil && r.ExecutionResult.IsErrorType()
	default:
		return false
	}
}
