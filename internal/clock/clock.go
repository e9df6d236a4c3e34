package clock

import (
	"sync"
	"time"
)

// Clock supplies "now" to the auction core. Every operation samples it once
// at entry and reuses that value for all of its checks.
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock in unix seconds
type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().UTC().Unix()
}

// ManualClock is a settable clock for tests
type ManualClock struct {
	mu  sync.Mutex
	now int64
}

// NewManualClock creates a manual clock starting at the given unix time
func NewManualClock(now int64) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to an absolute unix time
func (c *ManualClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by the given number of seconds
func (c *ManualClock) Advance(seconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += seconds
}
