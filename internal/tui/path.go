package tui

import (
	"math"
	"strings"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
)

const (
	ballRune    = '●'
	riseRune    = '╱'
	fallRune    = '╲'
	levelRune   = '─'
	defaultRows = constants.DefaultCanvasHeight
)

// PathShape is one cycle of the breathing path in pixels. A cycle starts at
// the foot of the inhale diagonal and ends after the bottom segment.
type PathShape struct {
	Top    float64
	Bottom float64
	DiagH  float64
	DiagV  float64
}

// ShapeFrom extracts the path shape from computed metrics.
func ShapeFrom(m domain.Metrics) PathShape {
	return PathShape{
		Top:    m.TopHorizontalLength,
		Bottom: m.BottomHorizontalLength,
		DiagH:  m.DiagonalHorizontal,
		DiagV:  m.DiagonalVertical,
	}
}

// Width returns the horizontal extent of one cycle.
func (s PathShape) Width() float64 {
	return s.Bottom + 2*s.DiagH + s.Top
}

// extent returns the horizontal distance covered during a phase.
func (s PathShape) extent(name constants.PhaseName) float64 {
	switch name {
	case constants.PhaseInhale, constants.PhaseExhale:
		return s.DiagH
	case constants.PhaseHoldTop:
		return s.Top
	case constants.PhaseHoldBottom:
		return s.Bottom
	default:
		return 0
	}
}

// HeightAt returns the path height at horizontal distance x from the start
// of a cycle, and the phase drawn there. x may lie in any cycle.
func (s PathShape) HeightAt(x float64) (float64, constants.PhaseName) {
	w := s.Width()
	if w <= 0 || math.IsNaN(x) {
		return 0, constants.PhaseHoldBottom
	}
	x = math.Mod(x, w)
	if x < 0 {
		x += w
	}

	switch {
	case x < s.DiagH:
		return s.DiagV * x / s.DiagH, constants.PhaseInhale
	case x < s.DiagH+s.Top:
		return s.DiagV, constants.PhaseHoldTop
	case x < 2*s.DiagH+s.Top:
		return s.DiagV * (1 - (x-s.DiagH-s.Top)/s.DiagH), constants.PhaseExhale
	default:
		return 0, constants.PhaseHoldBottom
	}
}

// BallX converts the distance travelled along the path (as reported by
// phase.Manager.Position) into a horizontal distance from the start of the
// cycle. Segment lengths come from phases in visiting order.
//
// 3-phase patterns have no phase on the bottom stub, so the indicator skips
// it when a new cycle begins.
func (s PathShape) BallX(travelled float64, phases []domain.Phase) float64 {
	x := 0.0
	remaining := travelled
	for _, ph := range phases {
		ext := s.extent(ph.Name)
		if ph.SegmentLength <= 0 {
			continue
		}
		if remaining <= ph.SegmentLength {
			return x + ext*remaining/ph.SegmentLength
		}
		remaining -= ph.SegmentLength
		x += ext
	}
	return x
}

// Canvas draws the path scrolled so that the indicator stays at a fixed column.
type Canvas struct {
	shape  PathShape
	width  int
	height int
	scale  float64
	anchor int
}

// NewCanvas creates a Canvas of width columns and height rows covering a
// viewport of the given pixel width. anchor is the indicator's pixel position
// in the viewport; positions outside it pin the indicator to the nearest edge
// column and a non-finite one means the centre.
func NewCanvas(shape PathShape, width, height int, viewport, anchor float64) *Canvas {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	if height < 2 {
		height = defaultRows
	}
	if viewport <= 0 || math.IsNaN(viewport) {
		viewport = constants.DefaultViewportWidth
	}
	if math.IsNaN(anchor) || math.IsInf(anchor, 0) {
		anchor = viewport / 2
	}
	anchor = math.Max(0, math.Min(viewport, anchor))
	scale := viewport / float64(width)
	col := int(math.Round(anchor / scale))
	return &Canvas{
		shape:  shape,
		width:  width,
		height: height,
		scale:  scale,
		anchor: min(max(col, 0), width-1),
	}
}

// row maps a path height to a canvas row, top row first.
func (c *Canvas) row(y float64) int {
	if c.shape.DiagV <= 0 {
		return c.height - 1
	}
	frac := math.Max(0, math.Min(1, y/c.shape.DiagV))
	return c.height - 1 - int(math.Round(frac*float64(c.height-1)))
}

// cell is one character of the canvas and the phase that drew it.
type cell struct {
	r     rune
	phase constants.PhaseName
}

// grid lays out the path and indicator for a ball at horizontal distance ballX.
func (c *Canvas) grid(ballX float64) [][]cell {
	g := make([][]cell, c.height)
	for i := range g {
		g[i] = make([]cell, c.width)
		for j := range g[i] {
			g[i][j] = cell{r: ' '}
		}
	}

	for col := range c.width {
		left := ballX + (float64(col-c.anchor)-0.5)*c.scale
		yl, _ := c.shape.HeightAt(left)
		ym, phase := c.shape.HeightAt(left + c.scale/2)
		yr, _ := c.shape.HeightAt(left + c.scale)

		r := levelRune
		switch phase {
		case constants.PhaseInhale:
			r = riseRune
		case constants.PhaseExhale:
			r = fallRune
		default:
		}

		top := min(c.row(yl), c.row(ym), c.row(yr))
		bottom := max(c.row(yl), c.row(ym), c.row(yr))
		for row := top; row <= bottom; row++ {
			g[row][col] = cell{r: r, phase: phase}
		}
	}

	by, phase := c.shape.HeightAt(ballX)
	g[c.row(by)][c.anchor] = cell{r: ballRune, phase: phase}
	return g
}

// Lines returns the canvas as plain text rows.
func (c *Canvas) Lines(ballX float64) []string {
	g := c.grid(ballX)
	lines := make([]string, len(g))
	for i, row := range g {
		var b strings.Builder
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		lines[i] = b.String()
	}
	return lines
}

// Render returns the canvas with each segment colored by its phase.
// The current phase is drawn bold; others are dimmed.
func (c *Canvas) Render(ballX float64, current constants.PhaseName) string {
	if !HasColorSupport() {
		return strings.Join(c.Lines(ballX), "\n")
	}

	g := c.grid(ballX)
	lines := make([]string, len(g))
	for i, row := range g {
		var b strings.Builder
		for _, cl := range row {
			if cl.r == ' ' {
				b.WriteByte(' ')
				continue
			}
			style := PhaseStyle(cl.phase)
			if cl.r != ballRune && cl.phase != current {
				style = style.Bold(false).Faint(true)
			}
			b.WriteString(style.Render(string(cl.r)))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
