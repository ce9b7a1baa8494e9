package model

import (
	"fmt"
	"sort"
	"strings"
)

// ValueKind discriminates the shape of a Value without runtime type
// assertions at call sites — the dispatcher switches on Kind, not on a
// Go type switch, per the "shape polymorphism" design note.
type ValueKind int

const (
	// KindNone marks the absence of a value (UtilResult NULL).
	KindNone ValueKind = iota
	KindBool
	KindFileSet
	KindStringList
	KindManualInstruction
	// KindOther carries any value the engine threads through without
	// inspecting — an opaque handle a concrete utility understands but
	// the dispatcher never has to.
	KindOther
)

// FileSet is an ordered, duplicate-free collection of file paths. Order is
// insertion order, which keeps MultipleConditions/FilterFiles iteration
// (and therefore short-circuit counts) deterministic across runs.
type FileSet struct {
	paths []string
	seen  map[string]struct{}
}

// NewFileSet builds a FileSet from the given paths, preserving first
// occurrence order and dropping duplicates.
func NewFileSet(paths ...string) FileSet {
	fs := FileSet{seen: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		fs.Add(p)
	}
	return fs
}

// Add appends path if not already present.
func (fs *FileSet) Add(path string) {
	if fs.seen == nil {
		fs.seen = make(map[string]struct{})
	}
	if _, ok := fs.seen[path]; ok {
		return
	}
	fs.seen[path] = struct{}{}
	fs.paths = append(fs.paths, path)
}

// Paths returns the file set in iteration order.
func (fs FileSet) Paths() []string {
	return append([]string(nil), fs.paths...)
}

// Len returns the number of distinct paths.
func (fs FileSet) Len() int {
	return len(fs.paths)
}

// Sorted returns a lexicographically sorted copy, useful for stable test
// assertions and report rendering.
func (fs FileSet) Sorted() []string {
	out := fs.Paths()
	sort.Strings(out)
	return out
}

// Value is a tagged union of the value kinds the engine actually
// inspects, plus an opaque Other slot for values it merely threads
// through between utilities.
type Value struct {
	Kind        ValueKind
	Bool        bool
	Files       FileSet
	Strings     []string
	Instruction *ManualInstructionRecord
	Other       any
}

// NoneValue represents the absence of a value.
func NoneValue() Value { return Value{Kind: KindNone} }

// BoolValue wraps a boolean result.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// FileSetValue wraps a file-set result.
func FileSetValue(fs FileSet) Value { return Value{Kind: KindFileSet, Files: fs} }

// StringListValue wraps an ordered list of strings.
func StringListValue(list []string) Value {
	return Value{Kind: KindStringList, Strings: append([]string(nil), list...)}
}

// ManualInstructionValue wraps a manual-instruction record.
func ManualInstructionValue(rec *ManualInstructionRecord) Value {
	return Value{Kind: KindManualInstruction, Instruction: rec}
}

// OtherValue wraps an opaque value the engine does not interpret.
func OtherValue(v any) Value { return Value{Kind: KindOther, Other: v} }

// AsBool returns the boolean payload and whether Value actually holds one.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

// AsFileSet returns the file-set payload and whether Value actually holds one.
func (v Value) AsFileSet() (FileSet, bool) {
	if v.Kind != KindFileSet {
		return FileSet{}, false
	}
	return v.Files, true
}

// AsStringList returns the string-list payload and whether Value holds one.
func (v Value) AsStringList() ([]string, bool) {
	if v.Kind != KindStringList {
		return nil, false
	}
	return v.Strings, true
}

// AsManualInstruction returns the manual-instruction payload, if any.
func (v Value) AsManualInstruction() (*ManualInstructionRecord, bool) {
	if v.Kind != KindManualInstruction {
		return nil, false
	}
	return v.Instruction, true
}

// String renders a short human-readable summary of the value, used for
// debug-level logging of utility results.
func (v Value) String() string {
	switch v.Kind {
	case KindNone:
		return "<none>"
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindFileSet:
		return fmt.Sprintf("fileset(%d)", v.Files.Len())
	case KindStringList:
		return fmt.Sprintf("[%s]", strings.Join(v.Strings, ", "))
	case KindManualInstruction:
		if v.Instruction == nil {
			return "<manual-instruction:nil>"
		}
		return fmt.Sprintf("manual-instruction(%s)", v.Instruction.Text)
	default:
		return fmt.Sprintf("%v", v.Other)
	}
}

// Abbreviate truncates s to at most n bytes, appending an ellipsis marker,
// mirroring the teacher-lineage engine's debug-log truncation at ~120/240
// characters (spec.md §6, "Logging surface").
func Abbreviate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
