package logging

import (
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCounter_CountsByLevel(t *testing.T) {
	t.Parallel()

	counter := NewCounter()
	logger := zerolog.New(io.Discard).Level(zerolog.DebugLevel).Hook(counter)

	logger.Debug().Msg("d")
	logger.Info().Msg("i")
	logger.Warn().Msg("w1")
	logger.Warn().Msg("w2")
	logger.Error().Msg("e")

	assert.Equal(t, int64(2), counter.Warnings())
	assert.Equal(t, int64(1), counter.Errors())
	assert.Equal(t, int64(5), counter.Total())

	counter.Reset()
	assert.Zero(t, counter.Warnings())
	assert.Zero(t, counter.Errors())
	assert.Zero(t, counter.Total())
}

func TestCounter_IgnoresFilteredLevels(t *testing.T) {
	t.Parallel()

	counter := NewCounter()
	logger := zerolog.New(io.Discard).Level(zerolog.ErrorLevel).Hook(counter)

	logger.Warn().Msg("dropped")
	assert.Zero(t, counter.Warnings())
}

func TestCounter_Concurrent(t *testing.T) {
	t.Parallel()

	counter := NewCounter()
	logger := zerolog.New(io.Discard).Hook(counter)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				logger.Warn().Msg("w")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), counter.Warnings())
}
