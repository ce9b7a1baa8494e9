package catalogue

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// RunCommandOperation shells out to an external tool (a linter, a
// formatter, a codegen step) against the staged tree, grounded on the
// teacher's command plugin.
type RunCommandOperation struct {
	transform.BaseUtility
	transform.OperationMixin

	Command []string
	Timeout time.Duration
}

func NewRunCommandOperation(name, description, relativePath string, command []string, timeout time.Duration) *RunCommandOperation {
	return &RunCommandOperation{
		BaseUtility: transform.NewBaseUtility(name, description, relativePath),
		Command:     command,
		Timeout:     timeout,
	}
}

func (op *RunCommandOperation) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	if len(op.Command) == 0 {
		return nil, transform.NewTransformationUtilityException(op.Name(), fmt.Errorf("empty command"))
	}

	timeout := op.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	runCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, op.Command[0], op.Command[1:]...)
	cmd.Dir = op.AbsolutePath(workingDir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, transform.NewTransformationUtilityException(op.Name(), fmt.Errorf("command timed out after %s", timeout))
	}
	if err != nil {
		return model.NewOpError(
			fmt.Sprintf("command %v failed: %s", op.Command, stderr.String()),
			err,
		), nil
	}

	return model.NewOpSuccess(fmt.Sprintf("command %v exited 0: %s", op.Command, model.Abbreviate(stdout.String(), 240))), nil
}
