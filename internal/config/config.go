// Package config provides configuration management for breathe with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (BREATHE_* prefix)
//  3. Project config (.breathe/config.yaml)
//  4. Global config (~/.breathe/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants, internal/domain and
// internal/errors, but MUST NOT import other internal packages.
package config

import (
	"time"

	"github.com/mrz1836/breathe/internal/domain"
)

// Config is the root configuration structure for breathe.
type Config struct {
	// Geometry controls the size and placement of the breathing path.
	Geometry GeometryConfig `yaml:"geometry" mapstructure:"geometry"`

	// Engine controls caching and update limits of the phase engine.
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`

	// Display controls the terminal renderer.
	Display DisplayConfig `yaml:"display" mapstructure:"display"`

	// Patterns controls where user pattern files are read from.
	Patterns PatternsConfig `yaml:"patterns" mapstructure:"patterns"`
}

// GeometryConfig describes the visual space of the path, in pixels.
type GeometryConfig struct {
	// DiagonalLength is the length of every inhale and exhale segment.
	DiagonalLength float64 `yaml:"diagonal_length" mapstructure:"diagonal_length"`

	// MaxHorizontalLength caps the length of long hold segments.
	MaxHorizontalLength float64 `yaml:"max_horizontal_length" mapstructure:"max_horizontal_length"`

	// ViewportWidth is the width the path must cover.
	ViewportWidth float64 `yaml:"viewport_width" mapstructure:"viewport_width"`

	// FixedBallPosition is where the indicator is anchored. Unset means the
	// centre of the viewport; zero is the left edge.
	FixedBallPosition *float64 `yaml:"fixed_ball_position,omitempty" mapstructure:"fixed_ball_position"`

	// DiagonalAngleDegrees is the slope of the diagonals.
	DiagonalAngleDegrees float64 `yaml:"diagonal_angle_degrees" mapstructure:"diagonal_angle_degrees"`
}

// EngineConfig holds limits of the phase engine.
type EngineConfig struct {
	// CacheSize is the number of path metric entries kept in memory.
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"`

	// MaxTransitionsPerUpdate bounds the phase boundaries one update may cross.
	MaxTransitionsPerUpdate int `yaml:"max_transitions_per_update" mapstructure:"max_transitions_per_update"`
}

// DisplayConfig holds terminal renderer settings.
type DisplayConfig struct {
	// FrameInterval is the delay between animation frames.
	FrameInterval time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`

	// ShowProgress toggles the cycle progress bar.
	ShowProgress bool `yaml:"show_progress" mapstructure:"show_progress"`

	// CanvasHeight is the number of rows the path is drawn in.
	CanvasHeight int `yaml:"canvas_height" mapstructure:"canvas_height"`

	// DefaultPattern is the pattern used when none is requested.
	DefaultPattern string `yaml:"default_pattern" mapstructure:"default_pattern"`
}

// PatternsConfig holds pattern file settings.
type PatternsConfig struct {
	// Dir is a directory of YAML pattern files. Empty means ~/.breathe/patterns.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// PathGeometry converts the geometry section into the engine's type.
func (c *Config) PathGeometry() domain.GeometryConfig {
	g := domain.GeometryConfig{
		DiagonalLength:      c.Geometry.DiagonalLength,
		MaxHorizontalLength: c.Geometry.MaxHorizontalLength,
		ViewportWidth:       c.Geometry.ViewportWidth,
		DiagonalAngle:       c.Geometry.DiagonalAngleDegrees,
	}
	if c.Geometry.FixedBallPosition != nil {
		g.FixedBallPosition = domain.BallAt(*c.Geometry.FixedBallPosition)
	}
	return g
}

// PatternDir returns the configured pattern directory, falling back to the
// patterns directory under the global breathe directory. It returns an empty
// string when neither can be determined.
func (c *Config) PatternDir() string {
	if c.Patterns.Dir != "" {
		return c.Patterns.Dir
	}
	dir, err := GlobalPatternsDir()
	if err != nil {
		return ""
	}
	return dir
}
