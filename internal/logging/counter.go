package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Counter is a zerolog hook that counts emitted events per level.
// It is safe for concurrent use.
type Counter struct {
	warnings atomic.Int64
	errors   atomic.Int64
	total    atomic.Int64
}

// NewCounter creates a Counter with all counts at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Run implements the zerolog.Hook interface.
func (c *Counter) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	c.total.Add(1)
	switch level {
	case zerolog.WarnLevel:
		c.warnings.Add(1)
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		c.errors.Add(1)
	default:
	}
}

// Warnings returns the number of warning events seen.
func (c *Counter) Warnings() int64 {
	return c.warnings.Load()
}

// Errors returns the number of error, fatal and panic events seen.
func (c *Counter) Errors() int64 {
	return c.errors.Load()
}

// Total returns the number of events seen at any level.
func (c *Counter) Total() int64 {
	return c.total.Load()
}

// Reset sets every count back to zero.
func (c *Counter) Reset() {
	c.warnings.Store(0)
	c.errors.Store(0)
	c.total.Store(0)
}
