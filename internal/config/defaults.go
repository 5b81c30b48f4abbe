package config

import (
	"github.com/mrz1836/breathe/internal/constants"
)

// DefaultConfig returns a new Config with the built-in default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
func DefaultConfig() *Config {
	return &Config{
		Geometry: GeometryConfig{
			DiagonalLength:       constants.DefaultDiagonalLength,
			MaxHorizontalLength:  constants.DefaultMaxHorizontalLength,
			ViewportWidth:        constants.DefaultViewportWidth,
			DiagonalAngleDegrees: constants.DefaultDiagonalAngle,
		},
		Engine: EngineConfig{
			CacheSize:               constants.DefaultCacheSize,
			MaxTransitionsPerUpdate: constants.DefaultMaxTransitionsPerUpdate,
		},
		Display: DisplayConfig{
			// FrameInterval: 50ms is 20 frames per second, smooth enough for a
			// character-cell canvas without keeping the CPU busy.
			FrameInterval:  constants.DefaultFrameInterval,
			ShowProgress:   true,
			CanvasHeight:   constants.DefaultCanvasHeight,
			DefaultPattern: constants.DefaultPatternName,
		},
		Patterns: PatternsConfig{
			Dir: "",
		},
	}
}
