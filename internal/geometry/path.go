// Package geometry translates phase durations into the pixel-space path the
// breathing indicator travels along.
//
// The path is a repeating zig-zag: bottom horizontal, rising diagonal, top
// horizontal, falling diagonal. Diagonals have a fixed length; only the
// indicator's speed along them depends on duration. Holds are drawn with a
// length that grows with duration and saturates toward a configured maximum.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, internal/pattern, std lib
//   - MUST NOT import: internal/phase, internal/cli, internal/tui
package geometry

import (
	"math"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
)

// HoldLength returns the horizontal length of a hold segment.
//
// Zero duration collapses to zero length. Up to HoldTaperThreshold the length
// grows linearly from MinHorizontalLength to half of maxLength; above it the
// length approaches maxLength exponentially and never exceeds it.
// Negative or non-finite input yields NaN for the caller to substitute.
func HoldLength(duration, maxLength float64) float64 {
	if !isFinite(duration) || !isFinite(maxLength) || duration < 0 || maxLength <= 0 {
		return math.NaN()
	}
	if duration == 0 {
		return 0
	}

	mid := constants.HoldMidRatio * maxLength
	minLen := math.Min(constants.MinHorizontalLength, mid)

	if duration < constants.HoldTaperThreshold {
		return minLen + (mid-minLen)*duration/constants.HoldTaperThreshold
	}

	over := (duration - constants.HoldTaperThreshold) / constants.HoldTaperThreshold
	return mid + (maxLength-mid)*(1-math.Exp(-over))
}

// BottomLength returns the bottom horizontal length of a pattern.
// A 3-phase pattern gets a short fixed stub; a 4-phase pattern tapers its
// holdBottom duration like the top hold.
func BottomLength(p *domain.Pattern, maxLength float64) float64 {
	if p == nil {
		return math.NaN()
	}
	if p.Type == constants.PatternFourPhase {
		if p.HoldBottom == nil {
			return math.NaN()
		}
		return HoldLength(*p.HoldBottom, maxLength)
	}
	if maxLength > 0 && maxLength < constants.BottomStubLength {
		return maxLength
	}
	return constants.BottomStubLength
}

// DiagonalProjection splits a diagonal of the given length and slope (in
// degrees) into its horizontal and vertical extents.
func DiagonalProjection(length, angleDegrees float64) (horizontal, vertical float64) {
	rad := angleDegrees * math.Pi / 180
	return length * math.Cos(rad), length * math.Sin(rad)
}

// BallSpeed returns the indicator speed in pixels per millisecond for a
// segment covered in durationSeconds, clamped to [MinBallSpeed, MaxBallSpeed].
//
// A zero-length segment with zero duration is an instantaneous hold and gets
// MaxBallSpeed. The boolean is false when the speed could not be computed and
// DefaultBallSpeed was substituted.
func BallSpeed(segmentLength, durationSeconds float64) (float64, bool) {
	if segmentLength == 0 && durationSeconds == 0 {
		return constants.MaxBallSpeed, true
	}

	speed := segmentLength / (durationSeconds * 1000)
	if !isFinite(speed) || speed < 0 {
		return constants.DefaultBallSpeed, false
	}

	return clamp(speed, constants.MinBallSpeed, constants.MaxBallSpeed), true
}

// HorizontalOffset returns the translation that places the top of the rising
// diagonal at fixedBallPosition:
//
//	bottom + diagonalHorizontal + offset == fixedBallPosition
func HorizontalOffset(bottom, diagonalHorizontal, fixedBallPosition float64) float64 {
	return fixedBallPosition - (bottom + diagonalHorizontal)
}

// CycleWidth is the horizontal extent of one full cycle of the path.
func CycleWidth(bottom, top, diagonalHorizontal float64) float64 {
	return bottom + 2*diagonalHorizontal + top
}

// Extension computes the bounds of the three tiled cycle copies drawn at
// offset-W, offset and offset+W and reports whether they cover the viewport.
func Extension(offset, cycleWidth, viewportWidth float64) domain.InfiniteExtension {
	left := offset - cycleWidth
	right := offset + 2*cycleWidth

	ext := domain.InfiniteExtension{
		LeftBoundary:     left,
		RightBoundary:    right,
		CycleWidth:       cycleWidth,
		ExtendsLeftEdge:  left <= constants.GeometryTolerance,
		ExtendsRightEdge: right >= viewportWidth-constants.GeometryTolerance,
		TilesRequired:    constants.ExtensionTiles,
	}
	ext.HasNoGaps = cycleWidth > 0 && ext.ExtendsLeftEdge && ext.ExtendsRightEdge

	if cycleWidth > 0 {
		before := math.Ceil(math.Max(0, offset) / cycleWidth)
		after := math.Ceil(math.Max(0, viewportWidth-(offset+cycleWidth)) / cycleWidth)
		if need := 1 + int(before) + int(after); need > ext.TilesRequired {
			ext.TilesRequired = need
		}
	}

	return ext
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
