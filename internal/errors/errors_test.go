package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	breatheerrors "github.com/mrz1836/breathe/internal/errors"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	allErrors := []error{
		breatheerrors.ErrInvalidPattern,
		breatheerrors.ErrDurationOutOfRange,
		breatheerrors.ErrMissingRequiredPhase,
		breatheerrors.ErrInvalidPhaseSequence,
		breatheerrors.ErrPerformanceWarning,
		breatheerrors.ErrCalculation,
		breatheerrors.ErrStateCorruption,
	}

	for i, a := range allErrors {
		for j, b := range allErrors {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "%v should not match %v", a, b)
		}
	}
}

func TestKind_Sentinel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     breatheerrors.Kind
		sentinel error
	}{
		{breatheerrors.KindInvalidPattern, breatheerrors.ErrInvalidPattern},
		{breatheerrors.KindDurationOutOfRange, breatheerrors.ErrDurationOutOfRange},
		{breatheerrors.KindMissingRequiredPhase, breatheerrors.ErrMissingRequiredPhase},
		{breatheerrors.KindInvalidPhaseSequence, breatheerrors.ErrInvalidPhaseSequence},
		{breatheerrors.KindPerformanceWarning, breatheerrors.ErrPerformanceWarning},
		{breatheerrors.KindCalculationError, breatheerrors.ErrCalculation},
		{breatheerrors.KindStateCorruption, breatheerrors.ErrStateCorruption},
		{breatheerrors.Kind("SOMETHING_ELSE"), breatheerrors.ErrInvalidPattern},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.sentinel, tc.kind.Sentinel())
		})
	}
}

func TestKind_IsFatal(t *testing.T) {
	assert.False(t, breatheerrors.KindPerformanceWarning.IsFatal())
	assert.True(t, breatheerrors.KindDurationOutOfRange.IsFatal())
	assert.True(t, breatheerrors.KindCalculationError.IsFatal())
}

func TestIssue_ErrorsIs(t *testing.T) {
	t.Parallel()

	issue := breatheerrors.NewIssue(breatheerrors.KindDurationOutOfRange, "inhale", "must be at least %.1fs", 0.5).WithValue(0.1)

	require.ErrorIs(t, issue, breatheerrors.ErrDurationOutOfRange)
	assert.Equal(t, "DURATION_OUT_OF_RANGE: inhale: must be at least 0.5s", issue.Error())
	assert.InDelta(t, 0.1, issue.Value, 1e-9)

	wrapped := fmt.Errorf("loading pattern: %w", issue)
	require.ErrorIs(t, wrapped, breatheerrors.ErrDurationOutOfRange)

	var got breatheerrors.Issue
	require.ErrorAs(t, wrapped, &got)
	assert.Equal(t, "inhale", got.Field)
}

func TestIssue_ErrorWithoutField(t *testing.T) {
	issue := breatheerrors.NewIssue(breatheerrors.KindInvalidPattern, "", "pattern is nil")
	assert.Equal(t, "INVALID_PATTERN: pattern is nil", issue.Error())
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, breatheerrors.UserMessage(nil))
	assert.Contains(t, breatheerrors.UserMessage(breatheerrors.ErrPatternNotFound), "No pattern")

	wrapped := breatheerrors.Wrap(breatheerrors.ErrConfigInvalidGeometry, "loading config")
	assert.Contains(t, breatheerrors.UserMessage(wrapped), "Geometry")

	plain := fmt.Errorf("unrelated failure") //nolint:err113 // test-only error
	assert.Equal(t, "unrelated failure", breatheerrors.UserMessage(plain))
}

func TestActionable(t *testing.T) {
	t.Parallel()

	msg, action := breatheerrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)

	issue := breatheerrors.NewIssue(breatheerrors.KindInvalidPhaseSequence, "holdBottom", "unexpected")
	msg, action = breatheerrors.Actionable(issue)
	assert.Contains(t, msg, "type")
	assert.Contains(t, action, "4-phase")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	require.NoError(t, breatheerrors.Wrap(nil, "ignored"))
	require.NoError(t, breatheerrors.Wrapf(nil, "ignored %d", 1))

	err := breatheerrors.Wrapf(breatheerrors.ErrPatternLoadFailed, "reading %s", "box.yaml")
	require.ErrorIs(t, err, breatheerrors.ErrPatternLoadFailed)
	assert.Equal(t, "reading box.yaml: pattern load failed", err.Error())
}

func TestExitCode2Error(t *testing.T) {
	t.Parallel()

	err := breatheerrors.NewExitCode2Error(breatheerrors.ErrInvalidPattern)
	assert.True(t, breatheerrors.IsExitCode2Error(err))
	assert.True(t, breatheerrors.IsExitCode2Error(fmt.Errorf("outer: %w", err)))
	assert.False(t, breatheerrors.IsExitCode2Error(breatheerrors.ErrInvalidPattern))
	require.ErrorIs(t, err, breatheerrors.ErrInvalidPattern)
}
