package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/errors"
)

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		field   string
	}{
		{
			name:    "zero diagonal",
			mutate:  func(c *Config) { c.Geometry.DiagonalLength = 0 },
			wantErr: errors.ErrConfigInvalidGeometry,
			field:   "geometry.diagonal_length",
		},
		{
			name:    "NaN max horizontal",
			mutate:  func(c *Config) { c.Geometry.MaxHorizontalLength = math.NaN() },
			wantErr: errors.ErrConfigInvalidGeometry,
			field:   "geometry.max_horizontal_length",
		},
		{
			name:    "negative viewport",
			mutate:  func(c *Config) { c.Geometry.ViewportWidth = -1 },
			wantErr: errors.ErrConfigInvalidGeometry,
			field:   "geometry.viewport_width",
		},
		{
			name:    "infinite ball position",
			mutate:  func(c *Config) { c.Geometry.FixedBallPosition = ptr(math.Inf(-1)) },
			wantErr: errors.ErrConfigInvalidGeometry,
			field:   "geometry.fixed_ball_position",
		},
		{
			name:    "vertical diagonal",
			mutate:  func(c *Config) { c.Geometry.DiagonalAngleDegrees = 90 },
			wantErr: errors.ErrConfigInvalidGeometry,
			field:   "geometry.diagonal_angle_degrees",
		},
		{
			name:    "empty cache",
			mutate:  func(c *Config) { c.Engine.CacheSize = 0 },
			wantErr: errors.ErrConfigInvalidEngine,
			field:   "engine.cache_size",
		},
		{
			name:    "no transitions allowed",
			mutate:  func(c *Config) { c.Engine.MaxTransitionsPerUpdate = 0 },
			wantErr: errors.ErrConfigInvalidEngine,
			field:   "engine.max_transitions_per_update",
		},
		{
			name:    "frame interval too short",
			mutate:  func(c *Config) { c.Display.FrameInterval = time.Millisecond },
			wantErr: errors.ErrConfigInvalidDisplay,
			field:   "display.frame_interval",
		},
		{
			name:    "frame interval too long",
			mutate:  func(c *Config) { c.Display.FrameInterval = 2 * time.Second },
			wantErr: errors.ErrConfigInvalidDisplay,
			field:   "display.frame_interval",
		},
		{
			name:    "canvas too small",
			mutate:  func(c *Config) { c.Display.CanvasHeight = 3 },
			wantErr: errors.ErrConfigInvalidDisplay,
			field:   "display.canvas_height",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidate_AnyFiniteBallPositionAllowed(t *testing.T) {
	t.Parallel()

	for _, pos := range []float64{0, -50, 1e6} {
		cfg := DefaultConfig()
		cfg.Geometry.FixedBallPosition = ptr(pos)
		cfg.Geometry.ViewportWidth = 0
		assert.NoError(t, Validate(cfg), "pos=%g", pos)
	}
}
