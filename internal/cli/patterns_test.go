package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/library"
)

func TestPatternsList_Text(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	stdout, _, err := executeRoot(t, "patterns", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "Box Breathing")
	assert.Contains(t, stdout, "Relaxing 4-7-8")
	assert.Contains(t, stdout, "builtin")
}

func TestPatternsList_JSON(t *testing.T) {
	isolate(t)

	stdout, _, err := executeRoot(t, "patterns", "ls", "-o", "json")
	require.NoError(t, err)

	var rows []patternRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, len(library.Builtin()))
	for _, r := range rows {
		assert.True(t, r.Valid, r.Name)
		assert.Equal(t, library.SourceBuiltin, r.Source)
	}
}

func TestPatternsList_IncludesUserFiles(t *testing.T) {
	home, _ := isolate(t)
	patterns := filepath.Join(home, constants.PatternsDir)
	writeFile(t, patterns, "slow.yaml", validPatternYAML)
	writeFile(t, patterns, "long.yml", invalidPatternYAML)
	writeFile(t, patterns, "notes.txt", "ignored")

	stdout, _, err := executeRoot(t, "patterns", "list", "-o", "json")
	require.NoError(t, err)

	var rows []patternRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, len(library.Builtin())+2)

	byName := make(map[string]patternRow, len(rows))
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.True(t, byName["Slow Box"].Valid)
	assert.Equal(t, filepath.Join(patterns, "slow.yaml"), byName["Slow Box"].Source)
	assert.False(t, byName["Too Long"].Valid)
}

func TestPatternsShow_Text(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	stdout, _, err := executeRoot(t, "patterns", "show", "box breathing")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Box Breathing")
	assert.Contains(t, stdout, "source: builtin")
	assert.Contains(t, stdout, "valid")
	assert.Contains(t, stdout, "Four equal sides")
}

func TestPatternsShow_JSON(t *testing.T) {
	isolate(t)

	stdout, _, err := executeRoot(t, "patterns", "show", "Triangle", "--output", "json")
	require.NoError(t, err)

	var entry library.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entry))
	assert.Equal(t, "Triangle", entry.Pattern.Name)
	assert.Equal(t, constants.PatternThreePhase, entry.Pattern.Type)
	assert.True(t, entry.Validation.Valid)
}

func TestPatternsShow_InvalidUserPattern(t *testing.T) {
	home, _ := isolate(t)
	t.Setenv("NO_COLOR", "1")
	writeFile(t, filepath.Join(home, constants.PatternsDir), "long.yaml", invalidPatternYAML)

	stdout, _, err := executeRoot(t, "patterns", "show", "too long")
	require.NoError(t, err)
	assert.Contains(t, stdout, "invalid, runs as")
	assert.Contains(t, stdout, "holdTop")
}

func TestPatternsShow_FileOverridesBuiltin(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, constants.PatternsDir), "box.yaml",
		"name: Box Breathing\ntype: 4-phase\ninhale: 6\nholdTop: 6\nexhale: 6\nholdBottom: 6\n")

	stdout, _, err := executeRoot(t, "patterns", "show", "Box Breathing", "-o", "json")
	require.NoError(t, err)

	var entry library.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entry))
	assert.InDelta(t, 6.0, entry.Pattern.Inhale, 1e-9)
	assert.NotEqual(t, library.SourceBuiltin, entry.Source)
}

func TestPatternsShow_NotFound(t *testing.T) {
	isolate(t)

	_, _, err := executeRoot(t, "patterns", "show", "Nope")
	require.ErrorIs(t, err, errors.ErrPatternNotFound)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestSourceLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "builtin", sourceLabel(library.SourceBuiltin))
	assert.Equal(t, "file", sourceLabel("/home/user/.breathe/patterns/calm.yaml"))
}

func TestRenderDescription_PlainText(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var sb strings.Builder
	renderDescription(&sb, "line one\nline two")
	assert.Equal(t, "  line one\n  line two\n", sb.String())
}
