package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	fn()
	require.NoError(t, w.Close())
	os.Stdout = original

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	return buf.String()
}

const sampleRecipe = `
version: "1.0.0"
name: sample-recipe
template:
  - name: clean
    type: git_clean
  - name: commit
    type: git_commit
    depends_on: [clean]
    message: "apply codemod"
`

func TestRunValidateReportsUtilityGraph(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRecipe), 0o644))

	output := captureStdout(t, func() {
		require.NoError(t, runValidate(path))
	})

	require.Contains(t, output, "sample-recipe")
	require.Contains(t, output, "2 top-level utilities")
	require.Contains(t, output, "commit (depends_on:clean)")
}

func TestRunValidateRejectsUnknownType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.yaml")
	bad := `
version: "1.0.0"
name: bad-recipe
template:
  - name: mystery
    type: not_a_real_type
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	err := runValidate(path)
	require.Error(t, err)
}
