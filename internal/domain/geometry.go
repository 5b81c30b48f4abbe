package domain

import (
	"time"

	"github.com/mrz1836/breathe/internal/constants"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

// GeometryConfig describes the visual space a path is drawn in.
// Lengths are in pixels.
type GeometryConfig struct {
	// DiagonalLength is the length of every inhale and exhale segment.
	DiagonalLength float64 `json:"diagonalLength" yaml:"diagonal_length"`
	// MaxHorizontalLength is the ceiling for a long hold segment.
	MaxHorizontalLength float64 `json:"maxHorizontalLength" yaml:"max_horizontal_length"`
	// FixedBallPosition is the viewport X coordinate the indicator is anchored
	// to. Nil means the centre of the viewport. Any finite value is accepted,
	// including zero and positions outside the viewport.
	FixedBallPosition *float64 `json:"fixedBallPosition,omitempty" yaml:"fixed_ball_position,omitempty"`
	// ViewportWidth is the drawable width. Zero means DefaultViewportWidth.
	ViewportWidth float64 `json:"viewportWidth,omitempty" yaml:"viewport_width,omitempty"`
	// DiagonalAngle is the diagonal slope in degrees. Zero means 45.
	DiagonalAngle float64 `json:"diagonalAngle,omitempty" yaml:"diagonal_angle,omitempty"`
}

// BallAt returns a FixedBallPosition anchoring the indicator at x.
func BallAt(x float64) *float64 {
	return &x
}

// DefaultGeometry returns the built-in geometry.
func DefaultGeometry() GeometryConfig {
	return GeometryConfig{
		DiagonalLength:      constants.DefaultDiagonalLength,
		MaxHorizontalLength: constants.DefaultMaxHorizontalLength,
		ViewportWidth:       constants.DefaultViewportWidth,
		DiagonalAngle:       constants.DefaultDiagonalAngle,
	}
}

// Phase is one entry of the derived phase list.
type Phase struct {
	// Name identifies the phase.
	Name PhaseName `json:"name"`
	// Duration is copied from the pattern, in seconds.
	Duration float64 `json:"duration"`
	// SegmentLength is the distance in pixels covered during the phase.
	SegmentLength float64 `json:"segmentLength"`
	// BallSpeed is SegmentLength divided by the duration in milliseconds.
	BallSpeed float64 `json:"ballSpeed"`
}

// DurationMs returns the phase duration in milliseconds.
func (p Phase) DurationMs() float64 {
	return p.Duration * 1000
}

// TimeDuration returns the phase duration as a time.Duration.
func (p Phase) TimeDuration() time.Duration {
	return time.Duration(p.DurationMs() * float64(time.Millisecond))
}

// BallSpeeds holds the indicator speed per phase in pixels per millisecond.
type BallSpeeds struct {
	Inhale     float64  `json:"inhale"`
	HoldTop    float64  `json:"holdTop"`
	Exhale     float64  `json:"exhale"`
	HoldBottom *float64 `json:"holdBottom,omitempty"`
}

// For returns the speed of the named phase.
func (s BallSpeeds) For(name PhaseName) (float64, bool) {
	switch name {
	case constants.PhaseInhale:
		return s.Inhale, true
	case constants.PhaseHoldTop:
		return s.HoldTop, true
	case constants.PhaseExhale:
		return s.Exhale, true
	case constants.PhaseHoldBottom:
		if s.HoldBottom == nil {
			return 0, false
		}
		return *s.HoldBottom, true
	default:
		return 0, false
	}
}

// InfiniteExtension reports whether the tiled path covers the viewport.
type InfiniteExtension struct {
	ExtendsLeftEdge  bool    `json:"extendsLeftEdge"`
	ExtendsRightEdge bool    `json:"extendsRightEdge"`
	HasNoGaps        bool    `json:"hasNoGaps"`
	LeftBoundary     float64 `json:"leftBoundary"`
	RightBoundary    float64 `json:"rightBoundary"`
	// CycleWidth is the horizontal extent of one cycle of the path.
	CycleWidth float64 `json:"cycleWidth"`
	// TilesRequired is the number of contiguous cycle copies needed to cover
	// the viewport from the anchored copy. It is never below ExtensionTiles.
	TilesRequired int `json:"tilesRequired"`
}

// Metrics is the full output of a path calculation.
// It is always populated; Valid is false when safe defaults were substituted.
type Metrics struct {
	Valid                  bool                  `json:"isValid"`
	Errors                 []breatheerrors.Issue `json:"errors"`
	TopHorizontalLength    float64               `json:"topHorizontalLength"`
	BottomHorizontalLength float64               `json:"bottomHorizontalLength"`
	DiagonalLength         float64               `json:"diagonalLength"`
	// DiagonalHorizontal is the horizontal projection of one diagonal.
	DiagonalHorizontal float64 `json:"diagonalHorizontal"`
	// DiagonalVertical is the vertical rise of one diagonal.
	DiagonalVertical float64    `json:"diagonalVertical"`
	BallSpeeds       BallSpeeds `json:"ballSpeeds"`
	HorizontalOffset float64    `json:"horizontalOffset"`
	// BallPosition is the anchor the path was aligned to, after defaults.
	BallPosition      float64           `json:"ballPosition"`
	InfiniteExtension InfiniteExtension `json:"infiniteExtension"`
}

// SegmentLength returns the length of the segment drawn for the named phase.
func (m Metrics) SegmentLength(name PhaseName) float64 {
	switch name {
	case constants.PhaseInhale, constants.PhaseExhale:
		return m.DiagonalLength
	case constants.PhaseHoldTop:
		return m.TopHorizontalLength
	case constants.PhaseHoldBottom:
		return m.BottomHorizontalLength
	default:
		return 0
	}
}
