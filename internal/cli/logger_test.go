package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/logging"
)

func TestSelectLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    zerolog.Level
	}{
		{"default is info level", false, false, zerolog.InfoLevel},
		{"verbose sets debug level", true, false, zerolog.DebugLevel},
		{"quiet sets warn level", false, true, zerolog.WarnLevel},
		{"verbose takes precedence", true, true, zerolog.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, selectLevel(tc.verbose, tc.quiet))
		})
	}
}

func TestInitLoggerWithWriter_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, zerolog.DebugLevel, InitLoggerWithWriter(true, false, &buf).GetLevel())
	assert.Equal(t, zerolog.WarnLevel, InitLoggerWithWriter(false, true, &buf).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, InitLoggerWithWriter(false, false, &buf).GetLevel())
}

func TestInitLoggerWithWriter_EntryShape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)
	logger.Info().Str("pattern", "Box Breathing").Msg("session started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "session started", entry["message"])
	assert.Equal(t, "Box Breathing", entry["pattern"])
	assert.Contains(t, entry, "ts")
}

func TestInitLoggerWithWriter_FlagsControlSequences(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)
	logger.Warn().Msg("name \x1b[31mred")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, true, entry["contains_control_chars"])
}

func TestLoggers_ShareCounter(t *testing.T) {
	// Reads the process-wide counter, so not parallel.
	before := LogCounter().Warnings()

	logger := InitLoggerWithWriter(false, true, io.Discard)
	logger.Warn().Msg("healed")
	logger.Info().Msg("below level")

	assert.Equal(t, before+1, LogCounter().Warnings())
}

func TestSessionLogger_DiscardsWithoutFileButCounts(t *testing.T) {
	CloseLogFile()
	before := LogCounter().Warnings()

	var console bytes.Buffer
	logger := sessionLogger(InitLoggerWithWriter(false, false, &console))
	logger.Warn().Msg("state corruption healed")

	assert.Empty(t, console.String())
	assert.Equal(t, before+1, LogCounter().Warnings())
}

func TestSessionLogger_WritesOnlyToFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnvVar, home)
	t.Cleanup(CloseLogFile)

	var console bytes.Buffer
	logger := sessionLogger(InitLogger(false, false).Output(&console))
	logger.Info().Msg("frame loop running")
	CloseLogFile()

	data, err := os.ReadFile(filepath.Join(home, constants.LogsDir, constants.CLILogFileName)) //#nosec G304 -- test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame loop running")
	assert.Empty(t, console.String())
}

func TestCreateLogFileWriter_CreatesLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnvVar, home)

	writer, err := createLogFileWriter()
	require.NoError(t, err)

	_, err = writer.Write([]byte("{\"level\":\"info\",\"message\":\"ok \x1b[2Jnow\"}\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(filepath.Join(home, constants.LogsDir, constants.CLILogFileName)) //#nosec G304 -- test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), "ok now")
	assert.NotContains(t, string(data), "\x1b")
}

func TestCreateLogFileWriter_FailsOnInvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	t.Setenv(config.HomeEnvVar, blocker)

	_, err := createLogFileWriter()
	require.Error(t, err)
}

func TestInitLogger_HandlesFileCreationFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	t.Setenv(config.HomeEnvVar, blocker)
	CloseLogFile()

	logger := InitLogger(false, true)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	assert.Nil(t, logFileWriter)
}

func TestInitLogger_WritesToFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnvVar, home)
	t.Cleanup(CloseLogFile)

	logger := InitLogger(false, false)
	logger.Info().Str("pattern", "Triangle").Msg("session finished")
	CloseLogFile()

	data, err := os.ReadFile(filepath.Join(home, constants.LogsDir, constants.CLILogFileName)) //#nosec G304 -- test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), "Triangle")
	assert.Contains(t, string(data), "session finished")
}

func TestLogFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.HomeEnvVar, home)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, constants.LogsDir, constants.CLILogFileName), path)
}

func TestCloseLogFile_NoOpWhenNil(t *testing.T) {
	logFileWriter = nil
	assert.NotPanics(t, CloseLogFile)
}

func TestFilteringWriteCloser(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fwc := &filteringWriteCloser{
		filter: logging.NewFilteringWriter(&buf),
		closer: io.NopCloser(&buf),
	}

	input := []byte("plain \x1b]0;title\x07text")
	n, err := fwc.Write(input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.Equal(t, "plain text", buf.String())
	require.NoError(t, fwc.Close())
}
