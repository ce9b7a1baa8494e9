package catalogue

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	"github.com/codeforge/codemod/internal/logging"
	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

func mustTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(logging.Options{Level: "debug"})
	require.NoError(t, err)
	return log
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReplaceTextOperationReplacesAllMatches(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "import \"old/pkg\"\nimport \"old/pkg/sub\"\n")

	op, err := NewReplaceTextOperation("rewrite-import", "", "main.go", `old/pkg`, "new/pkg")
	require.NoError(t, err)

	ctx := transform.NewTransformationContext("t", nil)
	result, err := op.Execute(dir, ctx)
	require.NoError(t, err)

	opResult := result.(model.OpResult)
	require.Equal(t, model.OpSuccess, opResult.Type)

	updated, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	require.Contains(t, string(updated), "new/pkg")
	require.NotContains(t, string(updated), "old/pkg\"")
}

func TestReplaceTextOperationNoOpWhenNoMatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")

	op, err := NewReplaceTextOperation("rewrite-import", "", "main.go", `old/pkg`, "new/pkg")
	require.NoError(t, err)

	ctx := transform.NewTransformationContext("t", nil)
	result, err := op.Execute(dir, ctx)
	require.NoError(t, err)
	require.Equal(t, model.OpNoOp, result.(model.OpResult).Type)
}

func TestListFilesUtilityFiltersByPattern(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "")
	writeFile(t, dir, "b.txt", "")
	writeFile(t, dir, "nested/c.go", "")

	u, err := NewListFilesUtility("list-go", "", "", `\.go$`)
	require.NoError(t, err)

	ctx := transform.NewTransformationContext("t", nil)
	result, err := u.Execute(dir, ctx)
	require.NoError(t, err)

	fs, ok := result.(model.UtilResult).Value.AsFileSet()
	require.True(t, ok)
	require.ElementsMatch(t, []string{"a.go", "nested/c.go"}, fs.Sorted())
}

func TestFileContainsConditionDetectsMatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n// TODO: remove\n")

	c := NewFileContainsCondition("has-todo", "", "main.go", regexp.MustCompile(`TODO`))
	ctx := transform.NewTransformationContext("t", nil)
	result, err := c.Execute(dir, ctx)
	require.NoError(t, err)

	b, ok := result.(model.UtilResult).Value.AsBool()
	require.True(t, ok)
	require.True(t, b)
}

func TestForEachFileLoopDispatchesOncePerFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package main\n")
	writeFile(t, dir, "b.go", "package main\n")

	var visited []string
	loop := NewForEachFileLoop("rewrite-all", "", "", regexp.MustCompile(`\.go$`), func(file string) transform.TransformationUtility {
		f := file
		return newRecordingUtility("visit["+f+"]", func() { visited = append(visited, f) })
	})

	tmpl := &transform.Template{Name: "loop", Utilities: []transform.TransformationUtility{loop}}
	ctx := transform.NewTransformationContext(tmpl.Name, nil)

	fatal := transform.RunTemplate(tmpl, dir, ctx, mustTestLogger(t))
	require.Nil(t, fatal)
	require.ElementsMatch(t, []string{"a.go", "b.go"}, visited)
}

func TestScriptedConditionEvaluatesBoolean(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	c := NewScriptedCondition("script", "", "", `workingDir.length > 0`)
	ctx := transform.NewTransformationContext("t", nil)
	result, err := c.Execute(dir, ctx)
	require.NoError(t, err)
	b, ok := result.(model.UtilResult).Value.AsBool()
	require.True(t, ok)
	require.True(t, b)
}

func TestScriptedConditionReadsContextValue(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	ctx := transform.NewTransformationContext("t", nil)
	ctx.Put("earlier", model.BoolValue(true))

	c := NewScriptedCondition("script", "", "", `context.value("earlier") === true`)
	result, err := c.Execute(dir, ctx)
	require.NoError(t, err)
	b, _ := result.(model.UtilResult).Value.AsBool()
	require.True(t, b)
}

func TestGitCommitOperationCommitsStagedChanges(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	writeFile(t, dir, "README.md", "hello\n")

	op := NewGitCommitOperation("checkpoint", "", "", "checkpoint after rewrite", "codemod", "codemod@localhost")
	ctx := transform.NewTransformationContext("t", nil)
	result, err := op.Execute(dir, ctx)
	require.NoError(t, err)
	require.Equal(t, model.OpSuccess, result.(model.OpResult).Type)
}

// recordingUtility is a minimal non-operation utility used to observe loop
// dispatch order in tests without touching the filesystem.
type recordingUtility struct {
	transform.BaseUtility
	fn func()
}

func newRecordingUtility(name string, fn func()) *recordingUtility {
	u := &recordingUtility{BaseUtility: transform.NewBaseUtility(name, "", ""), fn: fn}
	u.DoSaveResult = false
	return u
}

func (u *recordingUtility) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	u.fn()
	return model.NewUtilNull(), nil
}
