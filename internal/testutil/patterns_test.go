package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/constants"
)

func TestFixtures(t *testing.T) {
	t.Parallel()

	three := ThreePhase()
	assert.Equal(t, constants.PatternThreePhase, three.Type)
	assert.Nil(t, three.HoldBottom)
	assert.InDelta(t, 14.0, three.TotalDuration(), 1e-9)

	box := BoxBreathing()
	require.NotNil(t, box.HoldBottom)
	assert.InDelta(t, 16.0, box.TotalDuration(), 1e-9)

	zero := ZeroHold()
	assert.Zero(t, zero.HoldTop)
}

func TestPtrReturnsDistinctPointers(t *testing.T) {
	t.Parallel()

	a, b := Ptr(1), Ptr(1)
	*a = 2
	assert.InDelta(t, 1.0, *b, 1e-9)
}

func TestNewManualClock(t *testing.T) {
	t.Parallel()

	c := NewManualClock()
	assert.True(t, c.Now().Equal(Epoch))
	c.Advance(Ms(1500))
	assert.Equal(t, int64(1500), c.Now().Sub(Epoch).Milliseconds())
}
