package pattern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/domain"
	breatheerrors "github.com/mrz1836/breathe/internal/errors"
	"github.com/mrz1836/breathe/internal/testutil"
)

func TestValidateDuration_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		phase     constants.PhaseName
		duration  float64
		wantValid bool
		wantWarn  bool
	}{
		{"inhale below minimum", constants.PhaseInhale, 0.49, false, false},
		{"inhale at minimum", constants.PhaseInhale, 0.5, true, false},
		{"inhale zero", constants.PhaseInhale, 0, false, false},
		{"exhale negative", constants.PhaseExhale, -1, false, false},
		{"exhale typical", constants.PhaseExhale, 6, true, false},
		{"exhale at warning threshold", constants.PhaseExhale, 30, true, false},
		{"exhale just above warning threshold", constants.PhaseExhale, 30.5, true, true},
		{"inhale at maximum", constants.PhaseInhale, 60, true, true},
		{"inhale above maximum", constants.PhaseInhale, 60.01, false, false},
		{"holdTop zero", constants.PhaseHoldTop, 0, true, false},
		{"holdTop tiny", constants.PhaseHoldTop, 0.1, true, false},
		{"holdTop negative", constants.PhaseHoldTop, -0.1, false, false},
		{"holdBottom zero", constants.PhaseHoldBottom, 0, true, false},
		{"holdBottom at maximum", constants.PhaseHoldBottom, 60, true, true},
		{"holdBottom above maximum", constants.PhaseHoldBottom, 61, false, false},
		{"NaN", constants.PhaseInhale, math.NaN(), false, false},
		{"positive infinity", constants.PhaseHoldTop, math.Inf(1), false, false},
		{"negative infinity", constants.PhaseExhale, math.Inf(-1), false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := ValidateDuration(tc.duration, tc.phase)

			assert.Equal(t, tc.wantValid, r.Valid)
			assert.Equal(t, tc.wantValid, len(r.Errors) == 0)
			assert.Equal(t, tc.wantWarn, len(r.Warnings) > 0)
			for _, e := range r.Errors {
				require.ErrorIs(t, e, breatheerrors.ErrDurationOutOfRange)
				assert.Equal(t, tc.phase.String(), e.Field)
			}
			for _, w := range r.Warnings {
				assert.Equal(t, breatheerrors.KindPerformanceWarning, w.Kind)
			}
		})
	}
}

func TestValidateDuration_Sweep(t *testing.T) {
	t.Parallel()

	for d := -2.0; d <= 62.0; d += 0.25 {
		inhale := ValidateDuration(d, constants.PhaseInhale)
		assert.Equal(t, d >= 0.5 && d <= 60, inhale.Valid, "inhale %g", d)

		hold := ValidateDuration(d, constants.PhaseHoldTop)
		assert.Equal(t, d >= 0 && d <= 60, hold.Valid, "holdTop %g", d)

		if d > 30 && d <= 60 {
			assert.NotEmpty(t, hold.Warnings, "holdTop %g should warn", d)
			assert.Empty(t, hold.Errors, "holdTop %g warning must not be an error", d)
		}
	}
}

func TestValidatePhaseSequence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *domain.Pattern)
		want   bool
	}{
		{"valid 3-phase", func(_ *domain.Pattern) {}, true},
		{"3-phase with holdBottom", func(p *domain.Pattern) { p.HoldBottom = testutil.Ptr(2) }, false},
		{"3-phase zero holdTop", func(p *domain.Pattern) { p.HoldTop = 0 }, true},
		{"valid 4-phase", func(p *domain.Pattern) {
			p.Type = constants.PatternFourPhase
			p.HoldBottom = testutil.Ptr(4)
		}, true},
		{"4-phase missing holdBottom", func(p *domain.Pattern) { p.Type = constants.PatternFourPhase }, false},
		{"4-phase zero holdBottom", func(p *domain.Pattern) {
			p.Type = constants.PatternFourPhase
			p.HoldBottom = testutil.Ptr(0)
		}, false},
		{"4-phase holdBottom too long", func(p *domain.Pattern) {
			p.Type = constants.PatternFourPhase
			p.HoldBottom = testutil.Ptr(61)
		}, false},
		{"4-phase tiny holdBottom", func(p *domain.Pattern) {
			p.Type = constants.PatternFourPhase
			p.HoldBottom = testutil.Ptr(0.2)
		}, true},
		{"unknown type", func(p *domain.Pattern) { p.Type = "5-phase" }, false},
		{"empty type", func(p *domain.Pattern) { p.Type = "" }, false},
		{"zero inhale", func(p *domain.Pattern) { p.Inhale = 0 }, false},
		{"negative holdTop", func(p *domain.Pattern) { p.HoldTop = -1 }, false},
		{"NaN exhale", func(p *domain.Pattern) { p.Exhale = math.NaN() }, false},
		{"exhale over limit", func(p *domain.Pattern) { p.Exhale = 90 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := testutil.ThreePhase()
			tc.mutate(&p)
			assert.Equal(t, tc.want, ValidatePhaseSequence(&p))
		})
	}

	assert.False(t, ValidatePhaseSequence(nil))
}

func TestValidatePatternDetailed_Valid(t *testing.T) {
	t.Parallel()

	for _, p := range []domain.Pattern{testutil.ThreePhase(), testutil.BoxBreathing(), testutil.ZeroHold()} {
		r := ValidatePatternDetailed(&p)
		assert.True(t, r.Valid, p.Name)
		assert.Empty(t, r.Errors, p.Name)
		assert.Nil(t, r.Fallback, p.Name)
	}
}

func TestValidatePatternDetailed_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	p := domain.Pattern{
		Name:    "Broken",
		Type:    constants.PatternThreePhase,
		Inhale:  0.1,
		HoldTop: -2,
		Exhale:  75,
		// level, category and description missing
		HoldBottom: testutil.Ptr(3),
	}

	r := ValidatePatternDetailed(&p)

	require.False(t, r.Valid)
	fields := make(map[string]breatheerrors.Kind)
	for _, e := range r.Errors {
		fields[e.Field] = e.Kind
	}

	assert.Equal(t, breatheerrors.KindMissingRequiredPhase, fields["level"])
	assert.Equal(t, breatheerrors.KindMissingRequiredPhase, fields["category"])
	assert.Equal(t, breatheerrors.KindMissingRequiredPhase, fields["description"])
	assert.Equal(t, breatheerrors.KindDurationOutOfRange, fields["inhale"])
	assert.Equal(t, breatheerrors.KindDurationOutOfRange, fields["holdTop"])
	assert.Equal(t, breatheerrors.KindDurationOutOfRange, fields["exhale"])
	assert.Equal(t, breatheerrors.KindInvalidPhaseSequence, fields["holdBottom"])

	require.NotNil(t, r.Fallback)
	assert.True(t, ValidatePhaseSequence(r.Fallback))
}

func TestValidatePatternDetailed_InvalidType(t *testing.T) {
	t.Parallel()

	p := testutil.ThreePhase()
	p.Type = "triangle"

	r := ValidatePatternDetailed(&p)

	require.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, breatheerrors.KindInvalidPattern, r.Errors[0].Kind)
	assert.Equal(t, "type", r.Errors[0].Field)
}

func TestValidatePatternDetailed_FourPhaseMissingHoldBottom(t *testing.T) {
	t.Parallel()

	p := testutil.BoxBreathing()
	p.HoldBottom = nil

	r := ValidatePatternDetailed(&p)

	require.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	require.ErrorIs(t, r.Errors[0], breatheerrors.ErrInvalidPhaseSequence)

	require.NotNil(t, r.Fallback)
	assert.Equal(t, constants.PatternThreePhase, r.Fallback.Type, "without a safe holdBottom the fallback is 3-phase")
	assert.Nil(t, r.Fallback.HoldBottom)
	assert.InDelta(t, 4.0, r.Fallback.Inhale, 1e-9, "safe inhale is preserved")
}

func TestValidatePatternDetailed_WarningsKeepValid(t *testing.T) {
	t.Parallel()

	p := testutil.ThreePhase()
	p.Exhale = 45

	r := ValidatePatternDetailed(&p)

	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "exhale", r.Warnings[0].Field)
	assert.Nil(t, r.Fallback)
}

func TestValidatePatternDetailed_Nil(t *testing.T) {
	t.Parallel()

	r := ValidatePatternDetailed(nil)

	require.False(t, r.Valid)
	assert.Equal(t, breatheerrors.KindInvalidPattern, r.Errors[0].Kind)
	require.NotNil(t, r.Fallback)
	assert.Equal(t, constants.FallbackPatternName, r.Fallback.Name)
}

func TestCreatePhaseSequence(t *testing.T) {
	t.Parallel()

	three := testutil.ThreePhase()
	seq, err := CreatePhaseSequence(&three)
	require.NoError(t, err)
	assert.Equal(t, []constants.PhaseName{constants.PhaseInhale, constants.PhaseHoldTop, constants.PhaseExhale}, seq)

	box := testutil.BoxBreathing()
	seq, err = CreatePhaseSequence(&box)
	require.NoError(t, err)
	assert.Equal(t, []constants.PhaseName{
		constants.PhaseInhale, constants.PhaseHoldTop, constants.PhaseExhale, constants.PhaseHoldBottom,
	}, seq)

	bad := testutil.ThreePhase()
	bad.Type = constants.PatternFourPhase
	_, err = CreatePhaseSequence(&bad)
	require.ErrorIs(t, err, breatheerrors.ErrInvalidPhaseSequence)

	_, err = CreatePhaseSequence(nil)
	require.ErrorIs(t, err, breatheerrors.ErrInvalidPhaseSequence)
}

func TestMustCreatePhaseSequence(t *testing.T) {
	box := testutil.BoxBreathing()
	assert.Len(t, MustCreatePhaseSequence(&box), 4)

	assert.Panics(t, func() {
		MustCreatePhaseSequence(nil)
	})
}
