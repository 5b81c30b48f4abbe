package config

import (
	"math"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - diagonal and maximum horizontal lengths must be positive
//   - viewport width and ball position must not be negative
//   - the diagonal angle must be between 0 and 90 degrees, exclusive
//   - cache size and transition cap must be at least 1
//   - the frame interval must be between 10ms and 1s
//   - the canvas height must be at least 5 rows
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateGeometryConfig(&cfg.Geometry); err != nil {
		return err
	}

	if err := validateEngineConfig(&cfg.Engine); err != nil {
		return err
	}

	return validateDisplayConfig(&cfg.Display)
}

// validateGeometryConfig checks path geometry values.
func validateGeometryConfig(cfg *GeometryConfig) error {
	if !positive(cfg.DiagonalLength) {
		return errors.Wrapf(errors.ErrConfigInvalidGeometry,
			"geometry.diagonal_length must be positive, got %g", cfg.DiagonalLength)
	}

	if !positive(cfg.MaxHorizontalLength) {
		return errors.Wrapf(errors.ErrConfigInvalidGeometry,
			"geometry.max_horizontal_length must be positive, got %g", cfg.MaxHorizontalLength)
	}

	if !nonNegative(cfg.ViewportWidth) {
		return errors.Wrapf(errors.ErrConfigInvalidGeometry,
			"geometry.viewport_width must not be negative, got %g", cfg.ViewportWidth)
	}

	if cfg.FixedBallPosition != nil && !finite(*cfg.FixedBallPosition) {
		return errors.Wrapf(errors.ErrConfigInvalidGeometry,
			"geometry.fixed_ball_position must be a finite number, got %g", *cfg.FixedBallPosition)
	}

	if !positive(cfg.DiagonalAngleDegrees) || cfg.DiagonalAngleDegrees >= 90 {
		return errors.Wrapf(errors.ErrConfigInvalidGeometry,
			"geometry.diagonal_angle_degrees must be between 0 and 90, got %g", cfg.DiagonalAngleDegrees)
	}

	return nil
}

// validateEngineConfig checks engine limits.
func validateEngineConfig(cfg *EngineConfig) error {
	if cfg.CacheSize < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidEngine,
			"engine.cache_size must be at least 1, got %d", cfg.CacheSize)
	}

	if cfg.MaxTransitionsPerUpdate < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidEngine,
			"engine.max_transitions_per_update must be at least 1, got %d", cfg.MaxTransitionsPerUpdate)
	}

	return nil
}

// validateDisplayConfig checks terminal renderer settings.
func validateDisplayConfig(cfg *DisplayConfig) error {
	if cfg.FrameInterval < constants.MinFrameInterval || cfg.FrameInterval > constants.MaxFrameInterval {
		return errors.Wrapf(errors.ErrConfigInvalidDisplay,
			"display.frame_interval must be between %s and %s, got %s",
			constants.MinFrameInterval, constants.MaxFrameInterval, cfg.FrameInterval)
	}

	if cfg.CanvasHeight < constants.MinCanvasHeight {
		return errors.Wrapf(errors.ErrConfigInvalidDisplay,
			"display.canvas_height must be at least %d, got %d", constants.MinCanvasHeight, cfg.CanvasHeight)
	}

	return nil
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
