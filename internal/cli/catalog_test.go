package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/domain"
	"github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/library"
)

func TestLoadCatalog_MergesPatternDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "slow.yaml", validPatternYAML)
	writeFile(t, dir, "broken.yaml", "name: [unclosed")

	cfg := config.DefaultConfig()
	cfg.Patterns.Dir = dir

	var logs bytes.Buffer
	cat, err := loadCatalog(context.Background(), cfg, zerolog.New(&logs))
	require.NoError(t, err)

	assert.Equal(t, len(library.Builtin())+1, cat.Len())
	_, err = cat.Lookup("slow box")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "broken.yaml")
}

func TestLoadCatalog_MissingDir(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Patterns.Dir = filepath.Join(t.TempDir(), "absent")

	cat, err := loadCatalog(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, len(library.Builtin()), cat.Len())
}

func TestResolveEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "slow.yaml", validPatternYAML)
	cat := library.Default()

	tests := []struct {
		name     string
		pattern  string
		file     string
		fallback string
		want     string
		wantErr  error
	}{
		{"name lookup", "triangle", "", "Box Breathing", "Triangle", nil},
		{"fallback name", "", "", "Box Breathing", "Box Breathing", nil},
		{"file wins", "Triangle", file, "Box Breathing", "Slow Box", nil},
		{"unknown name", "Nope", "", "Box Breathing", "", errors.ErrPatternNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			entry, err := resolveEntry(cat, tc.pattern, tc.file, tc.fallback)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, entry.Pattern.Name)
		})
	}
}

func TestPickerOptions(t *testing.T) {
	t.Parallel()

	bad := library.Entry{
		Pattern:    domain.Pattern{Name: "Bad \x1b[31mRed", Type: "3-phase", Inhale: 4, HoldTop: 90, Exhale: 4},
		Source:     "bad.yaml",
		Validation: domain.ValidationResult{Valid: false},
	}
	unnamed := library.Entry{Source: "empty.yaml"}
	cat := library.NewCatalog(library.Default().Entries()...)
	cat.Add(bad)
	cat.Add(unnamed)

	opts := pickerOptions(cat)
	require.Len(t, opts, len(library.Builtin())+1)

	assert.Equal(t, "Box Breathing", opts[0].Value)
	assert.Equal(t, "Box Breathing", opts[0].Label)
	assert.NotContains(t, opts[0].Description, "invalid")

	last := opts[len(opts)-1]
	assert.Equal(t, "Bad \x1b[31mRed", last.Value)
	assert.Equal(t, "Bad Red", last.Label)
	assert.Contains(t, last.Description, "(invalid)")
}
