package registry

import (
	"testing"

	"github.com/codeforge/codemod/internal/config"
	"github.com/codeforge/codemod/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReplaceTextOperation(t *testing.T) {
	t.Parallel()
	u := config.Utility{
		Name: "rewrite-import",
		Type: "replace_text",
		Path: "main.go",
		ReplaceText: &config.ReplaceTextSettings{
			Pattern:     "legacy/logger",
			Replacement: "newlog",
		},
		AbortOnFailure: true,
		AbortMessage:   "rewrite failed",
	}

	tu, err := Build(u)
	require.NoError(t, err)
	assert.Equal(t, "rewrite-import", tu.Name())
	assert.True(t, tu.AbortOnFailure())
	assert.Equal(t, "rewrite failed", tu.AbortionMessage())
	assert.True(t, tu.SaveResult(), "save_result defaults true when unset")

	_, isOp := tu.(transform.Operation)
	assert.True(t, isOp)
}

func TestBuildRejectsMissingSettings(t *testing.T) {
	t.Parallel()
	_, err := Build(config.Utility{Name: "broken", Type: "replace_text"})
	assert.Error(t, err)
}

func TestBuildRejectsUnknownType(t *testing.T) {
	t.Parallel()
	_, err := Build(config.Utility{Name: "mystery", Type: "does_not_exist"})
	assert.Error(t, err)
}

func TestBuildHonorsExplicitSaveResultFalse(t *testing.T) {
	t.Parallel()
	no := false
	tu, err := Build(config.Utility{
		Name:       "probe",
		Type:       "git_clean",
		SaveResult: &no,
	})
	require.NoError(t, err)
	assert.False(t, tu.SaveResult())
}

func TestBuildForEachFileConstructsChildFactory(t *testing.T) {
	t.Parallel()
	u := config.Utility{
		Name: "rewrite-all",
		Type: "for_each_file",
		ForEachFile: &config.ForEachFileSettings{
			NamePattern: `\.go$`,
			Child: []config.Utility{
				{
					Name: "rewrite-one",
					Type: "replace_text",
					ReplaceText: &config.ReplaceTextSettings{
						Pattern:     "foo",
						Replacement: "bar",
					},
				},
			},
		},
	}

	tu, err := Build(u)
	require.NoError(t, err)

	loop, ok := tu.(transform.Loop)
	require.True(t, ok)
	_ = loop
}

func TestBuildTemplateBuildsAllEntries(t *testing.T) {
	t.Parallel()
	tmpl, err := BuildTemplate("demo", []config.Utility{
		{Name: "clean", Type: "git_clean"},
		{
			Name: "commit",
			Type: "git_commit",
			GitCommit: &config.GitCommitSettings{
				Message: "apply codemod",
			},
			DependsOn: []string{"clean"},
		},
	})
	require.NoError(t, err)
	require.Len(t, tmpl.Utilities, 2)
	assert.Equal(t, []string{"clean"}, tmpl.Utilities[1].Dependencies())
}
