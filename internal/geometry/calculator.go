package geometry

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/pattern"
)

// Fingerprint identifies a pattern and geometry pair for caching.
// Display-only pattern fields are not part of it.
type Fingerprint struct {
	Type          constants.PatternType
	Inhale        float64
	HoldTop       float64
	Exhale        float64
	HoldBottom    float64
	HasHoldBottom bool

	DiagonalLength      float64
	MaxHorizontalLength float64
	ViewportWidth       float64
	DiagonalAngle       float64
	BallPosition        float64
	HasBallPosition     bool
}

// Cache is the bounded metrics cache a Calculator memoizes into.
type Cache = lru.Cache[Fingerprint, domain.Metrics]

// NewCache returns a metrics cache holding at most size entries.
// Sizes below one fall back to DefaultCacheSize.
func NewCache(size int) *Cache {
	if size < 1 {
		size = constants.DefaultCacheSize
	}
	cache, err := lru.New[Fingerprint, domain.Metrics](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(fmt.Sprintf("geometry: creating cache of size %d: %v", size, err))
	}
	return cache
}

// Calculator computes path metrics and memoizes them in a bounded LRU cache.
// It is safe for concurrent use.
type Calculator struct {
	logger    zerolog.Logger
	cache     *Cache
	cacheSize int
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithLogger sets the logger used to report substituted values.
func WithLogger(logger zerolog.Logger) CalculatorOption {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// WithCache injects a shared cache. It takes precedence over WithCacheSize.
func WithCache(cache *Cache) CalculatorOption {
	return func(c *Calculator) {
		c.cache = cache
	}
}

// WithCacheSize sets the size of the calculator's own cache.
func WithCacheSize(size int) CalculatorOption {
	return func(c *Calculator) {
		c.cacheSize = size
	}
}

// NewCalculator creates a Calculator. Without options it logs nowhere and
// owns a cache of DefaultCacheSize entries.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		logger:    zerolog.Nop(),
		cacheSize: constants.DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = NewCache(c.cacheSize)
	}
	c.logger = c.logger.With().Str("component", "geometry").Logger()
	return c
}

// CacheLen returns the number of cached metric entries.
func (c *Calculator) CacheLen() int {
	return c.cache.Len()
}

// Purge drops every cached entry.
func (c *Calculator) Purge() {
	c.cache.Purge()
}

// CalculatePathMetrics computes segment lengths, speeds, the alignment offset
// and the extension bounds for a pattern. It never fails: any value that
// cannot be computed is replaced by a safe default and recorded as a
// CALCULATION_ERROR, and Valid is false.
func (c *Calculator) CalculatePathMetrics(p *domain.Pattern, cfg domain.GeometryConfig) domain.Metrics {
	key, cacheable := fingerprint(p, cfg)
	if cacheable {
		if m, ok := c.cache.Get(key); ok {
			return cloneMetrics(m)
		}
	}

	m := c.compute(p, cfg)

	if cacheable {
		c.cache.Add(key, cloneMetrics(m))
	}
	return m
}

// Phases builds the ordered phase list of a pattern with per-phase segment
// lengths and speeds, together with the metrics they came from.
// It fails only when the pattern's phases do not match its type.
func (c *Calculator) Phases(p *domain.Pattern, cfg domain.GeometryConfig) ([]domain.Phase, domain.Metrics, error) {
	seq, err := pattern.CreatePhaseSequence(p)
	if err != nil {
		return nil, domain.Metrics{}, err
	}

	m := c.CalculatePathMetrics(p, cfg)

	phases := make([]domain.Phase, 0, len(seq))
	for _, name := range seq {
		duration, _ := p.Duration(name)
		speed, _ := m.BallSpeeds.For(name)
		phases = append(phases, domain.Phase{
			Name:          name,
			Duration:      duration,
			SegmentLength: m.SegmentLength(name),
			BallSpeed:     speed,
		})
	}
	return phases, m, nil
}

func (c *Calculator) compute(p *domain.Pattern, cfg domain.GeometryConfig) domain.Metrics {
	var issues []breatheerrors.Issue
	record := func(issue breatheerrors.Issue) {
		issues = append(issues, issue)
		c.logger.Warn().
			Str("kind", string(issue.Kind)).
			Str("field", issue.Field).
			Msg(issue.Message)
	}

	cfg = normalizeGeometry(cfg, record)

	if p == nil {
		fb := pattern.CreateFallbackPattern(nil)
		record(breatheerrors.NewIssue(breatheerrors.KindCalculationError, "pattern",
			"pattern is nil, using %q", fb.Name))
		p = &fb
	}

	top := HoldLength(p.HoldTop, cfg.MaxHorizontalLength)
	if !validLength(top) {
		record(breatheerrors.NewIssue(breatheerrors.KindCalculationError, "topHorizontalLength",
			"cannot derive length from holdTop %gs, using %gpx", p.HoldTop, constants.MinHorizontalLength).WithValue(p.HoldTop))
		top = constants.MinHorizontalLength
	}

	bottom := BottomLength(p, cfg.MaxHorizontalLength)
	if !validLength(bottom) {
		record(breatheerrors.NewIssue(breatheerrors.KindCalculationError, "bottomHorizontalLength",
			"cannot derive bottom length, using %gpx", constants.BottomStubLength))
		bottom = constants.BottomStubLength
	}

	diagH, diagV := DiagonalProjection(cfg.DiagonalLength, cfg.DiagonalAngle)

	speed := func(name constants.PhaseName, segment, duration float64) float64 {
		s, ok := BallSpeed(segment, duration)
		if !ok {
			record(breatheerrors.NewIssue(breatheerrors.KindCalculationError, "ballSpeeds."+name.String(),
				"speed for %gpx over %gs is not finite, using %g px/ms", segment, duration, s).WithValue(duration))
		}
		return s
	}

	speeds := domain.BallSpeeds{
		Inhale:  speed(constants.PhaseInhale, cfg.DiagonalLength, p.Inhale),
		HoldTop: speed(constants.PhaseHoldTop, top, p.HoldTop),
		Exhale:  speed(constants.PhaseExhale, cfg.DiagonalLength, p.Exhale),
	}
	if p.Type == constants.PatternFourPhase && p.HoldBottom != nil {
		hb := speed(constants.PhaseHoldBottom, bottom, *p.HoldBottom)
		speeds.HoldBottom = &hb
	}

	anchor := *cfg.FixedBallPosition
	offset := HorizontalOffset(bottom, diagH, anchor)
	ext := Extension(offset, CycleWidth(bottom, top, diagH), cfg.ViewportWidth)

	return domain.Metrics{
		Valid:                  len(issues) == 0,
		Errors:                 issues,
		TopHorizontalLength:    top,
		BottomHorizontalLength: bottom,
		DiagonalLength:         cfg.DiagonalLength,
		DiagonalHorizontal:     diagH,
		DiagonalVertical:       diagV,
		BallSpeeds:             speeds,
		HorizontalOffset:       offset,
		BallPosition:           anchor,
		InfiniteExtension:      ext,
	}
}

// normalizeGeometry fills unset optional fields and replaces invalid
// values with defaults, reporting each replacement.
func normalizeGeometry(cfg domain.GeometryConfig, record func(breatheerrors.Issue)) domain.GeometryConfig {
	replace := func(field string, value, def float64) float64 {
		record(breatheerrors.NewIssue(breatheerrors.KindCalculationError, field,
			"invalid value %g, using %g", value, def).WithValue(value))
		return def
	}

	if !isFinite(cfg.DiagonalLength) || cfg.DiagonalLength <= 0 {
		cfg.DiagonalLength = replace("diagonalLength", cfg.DiagonalLength, constants.DefaultDiagonalLength)
	}
	if !isFinite(cfg.MaxHorizontalLength) || cfg.MaxHorizontalLength <= 0 {
		cfg.MaxHorizontalLength = replace("maxHorizontalLength", cfg.MaxHorizontalLength, constants.DefaultMaxHorizontalLength)
	}

	switch {
	case cfg.ViewportWidth == 0:
		cfg.ViewportWidth = constants.DefaultViewportWidth
	case !isFinite(cfg.ViewportWidth) || cfg.ViewportWidth < 0:
		cfg.ViewportWidth = replace("viewportWidth", cfg.ViewportWidth, constants.DefaultViewportWidth)
	}

	switch {
	case cfg.DiagonalAngle == 0:
		cfg.DiagonalAngle = constants.DefaultDiagonalAngle
	case !isFinite(cfg.DiagonalAngle) || cfg.DiagonalAngle < 0 || cfg.DiagonalAngle >= 90:
		cfg.DiagonalAngle = replace("diagonalAngle", cfg.DiagonalAngle, constants.DefaultDiagonalAngle)
	}

	switch {
	case cfg.FixedBallPosition == nil:
		cfg.FixedBallPosition = domain.BallAt(cfg.ViewportWidth / 2)
	case !isFinite(*cfg.FixedBallPosition):
		cfg.FixedBallPosition = domain.BallAt(replace("fixedBallPosition", *cfg.FixedBallPosition, cfg.ViewportWidth/2))
	}

	return cfg
}

func validLength(v float64) bool {
	return isFinite(v) && v >= 0
}

func fingerprint(p *domain.Pattern, cfg domain.GeometryConfig) (Fingerprint, bool) {
	if p == nil {
		return Fingerprint{}, false
	}
	fp := Fingerprint{
		Type:                p.Type,
		Inhale:              p.Inhale,
		HoldTop:             p.HoldTop,
		Exhale:              p.Exhale,
		DiagonalLength:      cfg.DiagonalLength,
		MaxHorizontalLength: cfg.MaxHorizontalLength,
		ViewportWidth:       cfg.ViewportWidth,
		DiagonalAngle:       cfg.DiagonalAngle,
	}
	if p.HoldBottom != nil {
		fp.HoldBottom = *p.HoldBottom
		fp.HasHoldBottom = true
	}
	if cfg.FixedBallPosition != nil {
		fp.BallPosition = *cfg.FixedBallPosition
		fp.HasBallPosition = true
	}
	// NaN keys can never be found again nor evicted from the map.
	for _, v := range []float64{
		fp.Inhale, fp.HoldTop, fp.Exhale, fp.HoldBottom,
		fp.DiagonalLength, fp.MaxHorizontalLength, fp.BallPosition, fp.ViewportWidth, fp.DiagonalAngle,
	} {
		if math.IsNaN(v) {
			return fp, false
		}
	}
	return fp, true
}

func cloneMetrics(m domain.Metrics) domain.Metrics {
	if m.Errors != nil {
		m.Errors = append([]breatheerrors.Issue(nil), m.Errors...)
	}
	if m.BallSpeeds.HoldBottom != nil {
		hb := *m.BallSpeeds.HoldBottom
		m.BallSpeeds.HoldBottom = &hb
	}
	return m
}
