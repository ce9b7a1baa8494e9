package transform

import "github.com/codeforge/codemod/internal/model"

// AbortState records why a transformation stopped dispatching utilities.
type AbortState struct {
	UtilityName string
	Message     string
	Err         error
}

// TransformationContext is the per-template key/value and key/result store
// threaded through a single dispatch tree. Upgrade paths chain one context
// per step, each borrowing read-through access to its predecessor's
// mappings (spec.md §3, "context chaining"): a lookup that misses locally
// falls through to parent, and so on.
type TransformationContext struct {
	parent       *TransformationContext
	templateName string
	values       map[string]model.Value
	results      map[string]model.PerformResult
	resultOrder  []string
	instructions []model.ManualInstructionRecord
	abort        *AbortState
	dryRun       bool
}

// NewTransformationContext creates a context for templateName. parent may
// be nil for the first step of an upgrade path (or a plain template run).
func NewTransformationContext(templateName string, parent *TransformationContext) *TransformationContext {
	return &TransformationContext{
		parent:       parent,
		templateName: templateName,
		values:       make(map[string]model.Value),
		results:      make(map[string]model.PerformResult),
	}
}

// TemplateName returns the name of the template this context was built for.
func (c *TransformationContext) TemplateName() string { return c.templateName }

// SetDryRun marks this context (and any child context chained from it) as a
// dry run: operations report what they would do instead of mutating the
// staged tree. Mirrors the teacher's per-plugin DryRun method, applied at
// the context level instead of the utility level since this engine's
// Execute contract is uniform across every utility shape.
func (c *TransformationContext) SetDryRun(dryRun bool) { c.dryRun = dryRun }

// DryRun reports whether this context or any ancestor was marked dry-run.
func (c *TransformationContext) DryRun() bool {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.dryRun {
			return true
		}
	}
	return false
}

// Put records the VALUE a utility produced under key.
func (c *TransformationContext) Put(key string, v model.Value) {
	c.values[key] = v
}

// Value looks up key in this context, falling through to ancestor contexts.
func (c *TransformationContext) Value(key string) (model.Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.values[key]; ok {
			return v, true
		}
	}
	return model.Value{}, false
}

// PutResult records the raw PerformResult a utility produced under its name.
func (c *TransformationContext) PutResult(name string, r model.PerformResult) {
	if _, exists := c.results[name]; !exists {
		c.resultOrder = append(c.resultOrder, name)
	}
	c.results[name] = r
}

// DispatchedNames returns the names of utilities whose result was recorded
// directly in this context, in dispatch order. Unlike Value/Result lookups
// this is never chained to the parent — a listener wanting the full run
// walks every context it was handed instead.
func (c *TransformationContext) DispatchedNames() []string {
	return append([]string(nil), c.resultOrder...)
}

// Result looks up a utility's raw PerformResult, falling through to
// ancestor contexts.
func (c *TransformationContext) Result(name string) (model.PerformResult, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if r, ok := ctx.results[name]; ok {
			return r, true
		}
	}
	return model.PerformResult{}, false
}

// RecordManualInstruction appends a manual-instruction record produced in
// this context. Unlike values/results, instructions are never inherited
// from the parent: aggregation across upgrade steps happens once, in
// Perform(), by concatenating every context's own list.
func (c *TransformationContext) RecordManualInstruction(rec model.ManualInstructionRecord) {
	c.instructions = append(c.instructions, rec)
}

// Instructions returns the manual-instruction records registered directly
// in this context.
func (c *TransformationContext) Instructions() []model.ManualInstructionRecord {
	return append([]model.ManualInstructionRecord(nil), c.instructions...)
}

// Abort marks this context as having stopped dispatching further utilities.
func (c *TransformationContext) Abort(state AbortState) {
	c.abort = &state
}

// Aborted reports whether this context has been aborted.
func (c *TransformationContext) Aborted() bool { return c.abort != nil }

// AbortDetails returns the recorded abort reason, or nil if not aborted.
func (c *TransformationContext) AbortDetails() *AbortState { return c.abort }

// ContextView is the read-only projection of a TransformationContext handed
// to Listener implementations, so a listener can inspect outcomes without
// being able to mutate engine state (spec.md §4.2).
type ContextView struct {
	ctx *TransformationContext
}

// NewContextView wraps ctx for listener consumption.
func NewContextView(ctx *TransformationContext) ContextView {
	return ContextView{ctx: ctx}
}

func (v ContextView) TemplateName() string { return v.ctx.TemplateName() }

func (v ContextView) Value(key string) (model.Value, bool) { return v.ctx.Value(key) }

func (v ContextView) Result(name string) (model.PerformResult, bool) { return v.ctx.Result(name) }

func (v ContextView) DispatchedNames() []string { return v.ctx.DispatchedNames() }

func (v ContextView) Instructions() []model.ManualInstructionRecord { return v.ctx.Instructions() }

func (v ContextView) Aborted() bool { return v.ctx.Aborted() }

func (v ContextView) AbortDetails() *AbortState { return v.ctx.AbortDetails() }
