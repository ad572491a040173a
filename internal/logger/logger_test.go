package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	payload := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(line), &payload))
	return payload
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Writer: &buf, Level: "debug"})
	require.NoError(t, err)

	log.With("component", "composer").Info("rendered", "target", "top")

	payload := decodeLine(t, &buf)
	require.Equal(t, "rendered", payload["message"])
	require.Equal(t, "composer", payload["component"])
	require.Equal(t, "top", payload["target"])
	require.Equal(t, "info", payload["level"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Writer: &buf, Level: "warn"})
	require.NoError(t, err)

	log.Info("hidden")
	require.Empty(t, buf.String())

	log.Error(errors.New("boom"), "failed")
	payload := decodeLine(t, &buf)
	require.Equal(t, "boom", payload["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	require.NotPanics(t, func() {
		log.Info("ignored")
		log.Error(nil, "ignored")
		require.Nil(t, log.With("k", "v"))
	})
}
