package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		stateHome := t.TempDir()
		t.Setenv("XDG_STATE_HOME", stateHome)

		SetupLoggerWithWriter(tt.verbosity, &bytes.Buffer{})
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)

		_, err := os.Stat(filepath.Join(stateHome, "templatizer", "templatizer.log"))
		assert.NoError(t, err, "log file should exist")
	}
}

func TestSetupLogger_WritesConsoleAndFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	var console bytes.Buffer
	SetupLoggerWithWriter(1, &console)
	log.Info().Str("template", "python").Msg("Running template")

	assert.Contains(t, console.String(), "Running template")

	data, err := os.ReadFile(filepath.Join(stateHome, "templatizer", "templatizer.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"template":"python"`)
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, "/custom/state/templatizer/templatizer.log", getLogFilePath())

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/alice")
	assert.Equal(t, "/home/alice/.local/state/templatizer/templatizer.log", getLogFilePath())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("discovery")
	logger.Info().Msg("scanned")

	assert.Contains(t, buf.String(), `"component":"discovery"`)
}

