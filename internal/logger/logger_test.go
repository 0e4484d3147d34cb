package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := Init(Options{Level: "info", Console: &buf})
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("provider", "ollama").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"provider":"ollama"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestInit_InvalidLevelDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	l, err := Init(Options{Level: "chatty", Console: &buf})
	require.NoError(t, err)

	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "promptlight.log")

	var buf bytes.Buffer
	l, err := Init(Options{Level: "debug", Console: &buf, File: path})
	require.NoError(t, err)

	l.Warn().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
