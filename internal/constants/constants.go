// Package constants provides centralized constant values used throughout breathe.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by breathe for organizing data.
const (
	// BreatheHome is the hidden directory name where breathe stores its data.
	// This directory is created in the user's home directory.
	BreatheHome = ".breathe"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// PatternsDir is the directory name where user pattern files are stored.
	PatternsDir = "patterns"

	// EnvPrefix is the environment variable prefix for configuration overrides.
	EnvPrefix = "BREATHE"
)

// Phase duration limits, in seconds.
const (
	// MinPhaseDuration is the shortest allowed inhale or exhale.
	// Hold phases may additionally be exactly zero.
	MinPhaseDuration = 0.5

	// MaxPhaseDuration is the longest allowed duration for any phase.
	MaxPhaseDuration = 60.0

	// PerformanceWarningDuration is the duration above which a phase is
	// accepted but flagged with a performance warning.
	PerformanceWarningDuration = 30.0
)

// Fallback pattern values used when a pattern cannot be trusted.
const (
	// FallbackPatternName is the name given to a fallback built from nothing usable.
	FallbackPatternName = "Safe Default"

	// FallbackNameSuffix is appended to the original name of a repaired pattern.
	FallbackNameSuffix = " (Safe Mode)"

	// FallbackInhale is the fallback inhale duration in seconds.
	FallbackInhale = 4.0

	// FallbackHoldTop is the fallback top hold duration in seconds.
	FallbackHoldTop = 2.0

	// FallbackExhale is the fallback exhale duration in seconds.
	FallbackExhale = 6.0

	// FallbackLevel is the level assigned to fallback patterns.
	FallbackLevel = "beginner"

	// FallbackCategory is the category assigned to fallback patterns.
	FallbackCategory = "relaxation"

	// FallbackDescription describes a fallback pattern.
	FallbackDescription = "A gentle pattern used when the requested one could not be validated."
)

// Geometry defaults, in pixels unless noted.
const (
	// DefaultDiagonalLength is the length of every inhale and exhale segment.
	DefaultDiagonalLength = 200.0

	// DefaultMaxHorizontalLength is the ceiling for a long hold segment.
	DefaultMaxHorizontalLength = 300.0

	// DefaultViewportWidth is the assumed viewport width when none is configured.
	DefaultViewportWidth = 800.0

	// DefaultDiagonalAngle is the angle of the diagonal segments in degrees.
	DefaultDiagonalAngle = 45.0

	// MinHorizontalLength is the length of the shortest non-zero hold segment.
	MinHorizontalLength = 20.0

	// BottomStubLength is the bottom segment length for 3-phase patterns.
	BottomStubLength = 20.0

	// HoldTaperThreshold is the hold duration in seconds above which the
	// segment length saturates toward the maximum instead of growing linearly.
	HoldTaperThreshold = 4.0

	// HoldMidRatio is the fraction of the maximum length reached at the taper threshold.
	HoldMidRatio = 0.5

	// ExtensionTiles is the number of cycle copies drawn side by side.
	ExtensionTiles = 3

	// GeometryTolerance is the tolerance used when comparing pixel positions.
	GeometryTolerance = 1e-6
)

// Ball speed limits, in pixels per millisecond.
const (
	// MinBallSpeed keeps a moving indicator from stalling.
	MinBallSpeed = 0.001

	// MaxBallSpeed caps the speed of very short phases.
	MaxBallSpeed = 10.0

	// DefaultBallSpeed replaces speeds that could not be computed.
	DefaultBallSpeed = 0.05
)

// Engine defaults.
const (
	// DefaultCacheSize is the number of path metric entries kept by a calculator.
	DefaultCacheSize = 64

	// DefaultMaxTransitionsPerUpdate bounds the phase boundaries crossed by one update.
	DefaultMaxTransitionsPerUpdate = 1000

	// HistorySize is the number of visited phases a manager remembers.
	HistorySize = 32
)

// Display defaults for the terminal renderer.
const (
	// DefaultFrameInterval is the delay between animation frames.
	DefaultFrameInterval = 50 * time.Millisecond

	// MinFrameInterval is the shortest allowed frame interval.
	MinFrameInterval = 10 * time.Millisecond

	// MaxFrameInterval is the longest allowed frame interval.
	MaxFrameInterval = time.Second

	// DefaultCanvasHeight is the number of terminal rows used to draw the path.
	DefaultCanvasHeight = 11

	// MinCanvasHeight is the smallest usable canvas height.
	MinCanvasHeight = 5

	// DefaultPatternName is the pattern used when none is requested.
	DefaultPatternName = "Box Breathing"

	// MaxPatternNameWidth is the display width pattern names are truncated to.
	MaxPatternNameWidth = 32
)

// Logging configuration.
const (
	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "breathe.log"

	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days rotated log files are kept.
	LogMaxAgeDays = 14

	// LogCompress controls compression of rotated log files.
	LogCompress = true
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the configuration file in the breathe home directory.
	GlobalConfigName = "config.yaml"
)
