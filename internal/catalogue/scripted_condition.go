package catalogue

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// ScriptedCondition evaluates a small JavaScript expression against the
// current transformation context, for recipe authors who need logic the
// built-in conditions don't cover. The script sees `workingDir` (string)
// and `context` (an object exposing `value(name)`, which returns a
// previously stored boolean, string list, or null). It must evaluate to a
// boolean.
type ScriptedCondition struct {
	transform.BaseUtility

	Script string
}

func NewScriptedCondition(name, description, relativePath, script string) *ScriptedCondition {
	return &ScriptedCondition{
		BaseUtility: transform.NewBaseUtility(name, description, relativePath),
		Script:      script,
	}
}

func (c *ScriptedCondition) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())

	if err := vm.Set("workingDir", c.AbsolutePath(workingDir)); err != nil {
		return nil, transform.NewTransformationUtilityException(c.Name(), err)
	}
	if err := vm.Set("context", newScriptContextBinding(ctx)); err != nil {
		return nil, transform.NewTransformationUtilityException(c.Name(), err)
	}

	value, err := vm.RunString(c.Script)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(c.Name(), err)
	}

	b, ok := value.Export().(bool)
	if !ok {
		return nil, transform.NewTransformationUtilityException(c.Name(), fmt.Errorf("script must evaluate to a boolean, got %T", value.Export()))
	}

	return model.NewUtilValue(model.BoolValue(b)), nil
}

// scriptContextBinding exposes a read-only view of ctx to the goja runtime.
type scriptContextBinding struct {
	ctx *transform.TransformationContext
}

func newScriptContextBinding(ctx *transform.TransformationContext) scriptContextBinding {
	return scriptContextBinding{ctx: ctx}
}

// Value returns the stored value for name, or nil if unset — called from
// JavaScript as context.value("someUtility").
func (b scriptContextBinding) Value(name string) any {
	v, ok := b.ctx.Value(name)
	if !ok {
		return nil
	}
	switch v.Kind {
	case model.KindBool:
		return v.Bool
	case model.KindStringList:
		return v.Strings
	case model.KindFileSet:
		return v.Files.Sorted()
	default:
		return nil
	}
}
