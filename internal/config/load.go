package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/errors"
)

// newViperInstance creates a new Viper instance with standard breathe configuration.
// This includes environment variable prefix (BREATHE_), key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (BREATHE_* prefix)
//  2. Project config (.breathe/config.yaml)
//  3. Global config (~/.breathe/config.yaml)
//  4. Built-in defaults
//
// For CLI flag overrides, use LoadWithOverrides instead.
//
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	// Global config provides user-wide defaults that can be overridden per-project
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Float64("geometry.diagonal_length", cfg.Geometry.DiagonalLength).
		Float64("geometry.viewport_width", cfg.Geometry.ViewportWidth).
		Int("engine.cache_size", cfg.Engine.CacheSize).
		Dur("display.frame_interval", cfg.Display.FrameInterval).
		Str("display.default_pattern", cfg.Display.DefaultPattern).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// loadGlobalConfig attempts to load the global config file (~/.breathe/config.yaml).
// Returns nil if the file doesn't exist or home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, ok := getGlobalConfigPathIfExists()
	if !ok {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// getGlobalConfigPathIfExists returns the global config path if it exists.
func getGlobalConfigPathIfExists() (string, bool) {
	globalDir, err := GlobalConfigDir()
	if err != nil {
		return "", false
	}

	globalConfigPath := filepath.Join(globalDir, constants.GlobalConfigName)
	if !fileExists(globalConfigPath) {
		return "", false
	}

	return globalConfigPath, true
}

// loadProjectConfig attempts to load the project config file (.breathe/config.yaml).
// Returns nil if the file doesn't exist.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if a regular file exists at path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// The overrides parameter contains values from CLI flags which have the
// highest precedence in the configuration hierarchy.
//
// Only non-zero values in overrides are applied. Zero values are ignored
// to allow partial overrides.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	// Geometry defaults
	v.SetDefault("geometry.diagonal_length", def.Geometry.DiagonalLength)
	v.SetDefault("geometry.max_horizontal_length", def.Geometry.MaxHorizontalLength)
	v.SetDefault("geometry.viewport_width", def.Geometry.ViewportWidth)
	// No default: unset anchors the ball at the centre. Binding keeps the
	// key visible to Unmarshal when only the env var sets it.
	_ = v.BindEnv("geometry.fixed_ball_position", constants.EnvPrefix+"_GEOMETRY_FIXED_BALL_POSITION")
	v.SetDefault("geometry.diagonal_angle_degrees", def.Geometry.DiagonalAngleDegrees)

	// Engine defaults
	v.SetDefault("engine.cache_size", def.Engine.CacheSize)
	v.SetDefault("engine.max_transitions_per_update", def.Engine.MaxTransitionsPerUpdate)

	// Display defaults
	v.SetDefault("display.frame_interval", def.Display.FrameInterval.String())
	v.SetDefault("display.show_progress", def.Display.ShowProgress)
	v.SetDefault("display.canvas_height", def.Display.CanvasHeight)
	v.SetDefault("display.default_pattern", def.Display.DefaultPattern)

	// Patterns defaults
	v.SetDefault("patterns.dir", def.Patterns.Dir)
}

// applyOverrides merges non-zero override values into the config.
//
// IMPORTANT: Display.ShowProgress cannot be overridden to false here because
// false is indistinguishable from unset. The CLI sets it directly when its
// flag changed.
func applyOverrides(cfg, overrides *Config) {
	applyGeometryOverrides(cfg, overrides)

	if overrides.Engine.CacheSize != 0 {
		cfg.Engine.CacheSize = overrides.Engine.CacheSize
	}
	if overrides.Engine.MaxTransitionsPerUpdate != 0 {
		cfg.Engine.MaxTransitionsPerUpdate = overrides.Engine.MaxTransitionsPerUpdate
	}

	if overrides.Display.FrameInterval != 0 {
		cfg.Display.FrameInterval = overrides.Display.FrameInterval
	}
	if overrides.Display.CanvasHeight != 0 {
		cfg.Display.CanvasHeight = overrides.Display.CanvasHeight
	}
	if overrides.Display.DefaultPattern != "" {
		cfg.Display.DefaultPattern = overrides.Display.DefaultPattern
	}

	if overrides.Patterns.Dir != "" {
		cfg.Patterns.Dir = overrides.Patterns.Dir
	}
}

// applyGeometryOverrides applies geometry-related overrides to the config.
func applyGeometryOverrides(cfg, overrides *Config) {
	if overrides.Geometry.DiagonalLength != 0 {
		cfg.Geometry.DiagonalLength = overrides.Geometry.DiagonalLength
	}
	if overrides.Geometry.MaxHorizontalLength != 0 {
		cfg.Geometry.MaxHorizontalLength = overrides.Geometry.MaxHorizontalLength
	}
	if overrides.Geometry.ViewportWidth != 0 {
		cfg.Geometry.ViewportWidth = overrides.Geometry.ViewportWidth
	}
	if overrides.Geometry.FixedBallPosition != nil {
		pos := *overrides.Geometry.FixedBallPosition
		cfg.Geometry.FixedBallPosition = &pos
	}
	if overrides.Geometry.DiagonalAngleDegrees != 0 {
		cfg.Geometry.DiagonalAngleDegrees = overrides.Geometry.DiagonalAngleDegrees
	}
}

// viperDecoderOption returns the decoder options for viper unmarshal.
// It configures mapstructure to decode duration strings such as "50ms".
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
}
