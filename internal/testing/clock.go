package testing

import (
	"sync"
	"time"
)

// ManualClock is a controllable clock for receipt timestamps.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock creates a ManualClock set to 2024-01-01 00:00:00 UTC.
func NewManualClock() *ManualClock {
	return NewManualClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

// NewManualClockAt creates a ManualClock set to t.
func NewManualClockAt(t time.Time) *ManualClock {
	return &ManualClock{current: t}
}

// Now returns the current time on the clock.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}
