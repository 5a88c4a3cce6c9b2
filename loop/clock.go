package loop

import (
	"sync"
	"time"
)

// Clock reports monotonic time as a duration since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// MonotonicClock reads the runtime's monotonic clock.
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock only moves when told to. Tests and headless runs use it to
// replay exact timelines.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to now. Moving backwards is ignored.
func (c *ManualClock) Set(now time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now > c.now {
		c.now = now
	}
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now += d
	}
	return c.now
}
