package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
)

func showJSON(t *testing.T) AnnotatedConfig {
	t.Helper()

	stdout, _, err := executeRoot(t, "config", "show", "-o", "json")
	require.NoError(t, err)

	var annotated AnnotatedConfig
	require.NoError(t, json.Unmarshal([]byte(stdout), &annotated))
	return annotated
}

func TestConfigShow_Defaults(t *testing.T) {
	isolate(t)

	annotated := showJSON(t)
	require.Contains(t, annotated, "geometry")
	require.Contains(t, annotated, "engine")
	require.Contains(t, annotated, "display")
	require.Contains(t, annotated, "patterns")

	cache := annotated["engine"]["cache_size"]
	assert.Equal(t, SourceDefault, cache.Source)
	assert.InDelta(t, float64(constants.DefaultCacheSize), cache.Value, 1e-9)

	pattern := annotated["display"]["default_pattern"]
	assert.Equal(t, constants.DefaultPatternName, pattern.Value)
}

func TestConfigShow_Sources(t *testing.T) {
	home, project := isolate(t)
	writeFile(t, home, constants.GlobalConfigName, "engine:\n  cache_size: 8\ndisplay:\n  canvas_height: 20\n")
	writeFile(t, filepath.Join(project, constants.BreatheHome), constants.GlobalConfigName,
		"engine:\n  cache_size: 16\n")
	t.Setenv("BREATHE_DISPLAY_DEFAULT_PATTERN", "Triangle")

	annotated := showJSON(t)

	cache := annotated["engine"]["cache_size"]
	assert.Equal(t, SourceProject, cache.Source)
	assert.InDelta(t, 16.0, cache.Value, 1e-9)

	height := annotated["display"]["canvas_height"]
	assert.Equal(t, SourceGlobal, height.Source)
	assert.InDelta(t, 20.0, height.Value, 1e-9)

	pattern := annotated["display"]["default_pattern"]
	assert.Equal(t, SourceEnv, pattern.Source)
	assert.Equal(t, "Triangle", pattern.Value)
}

func TestConfigShow_DurationsAsStrings(t *testing.T) {
	isolate(t)

	annotated := showJSON(t)
	interval, ok := annotated["display"]["frame_interval"].Value.(string)
	require.True(t, ok)
	_, err := time.ParseDuration(interval)
	require.NoError(t, err)
}

func TestConfigShow_Raw(t *testing.T) {
	isolate(t)

	stdout, _, err := executeRoot(t, "config", "show", "--raw")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, config.DefaultConfig().Engine.CacheSize, cfg.Engine.CacheSize)
	assert.Equal(t, constants.DefaultPatternName, cfg.Display.DefaultPattern)
}

func TestConfigShow_Text(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	stdout, _, err := executeRoot(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Effective breathe configuration")
	assert.Contains(t, stdout, "cache_size")
	assert.Contains(t, stdout, "default")
}

func TestDetermineSource(t *testing.T) {
	global := configValues{"engine": {"cache_size": 8}}
	project := configValues{"engine": {"cache_size": 16}, "display": {"canvas_height": 20}}

	tests := []struct {
		name    string
		section string
		key     string
		want    ConfigSource
	}{
		{"project wins over global", "engine", "cache_size", SourceProject},
		{"project only", "display", "canvas_height", SourceProject},
		{"unset is default", "geometry", "diagonal_length", SourceDefault},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := determineSource(tc.section, tc.key, 1, global, project)
			assert.Equal(t, tc.want, got.Source)
		})
	}

	t.Run("environment wins over files", func(t *testing.T) {
		t.Setenv("BREATHE_ENGINE_CACHE_SIZE", "4")
		got := determineSource("engine", "cache_size", 4, global, project)
		assert.Equal(t, SourceEnv, got.Source)
	})
}

func TestDisplayValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "16ms", displayValue(16*time.Millisecond))
	assert.Equal(t, 3, displayValue(3))
	assert.Equal(t, "x", displayValue("x"))
	assert.Equal(t, "centre", displayValue((*float64)(nil)))
	assert.Equal(t, 0.0, displayValue(domain.BallAt(0)))
}
