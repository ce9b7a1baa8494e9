package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"utility": "replace_text", "template": "modernize-imports"})
	log.Info("starting dispatch")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "starting dispatch", entry["message"])
	require.Equal(t, "replace_text", entry["utility"])
	require.Equal(t, "modernize-imports", entry["template"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"utility": "run_command"})
	log.Error(errors.New("exit status 1"), "dispatch failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "dispatch failed", entry["message"])
	require.Equal(t, "run_command", entry["utility"])
	require.Equal(t, "exit status 1", entry["error"])
}

func TestLoggerForUtilityTagsNameAndOrder(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.ForUtility("git_commit", "2.1").Info("completed")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "git_commit", entry["utility"])
	require.Equal(t, "2.1", entry["order"])
}

func TestLoggerForTemplateTagsName(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.ForTemplate("1.0->2.0").Warn("upgrade step started")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "1.0->2.0", entry["template"])
	require.Equal(t, "upgrade step started", entry["message"])
}

func TestLoggerNilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("should not panic")
	log.ForUtility("noop", "1").Debug("still safe")
}
