// Package clock owns the single elapsed-time counter for a live match. One
// clock exists per open match session; it ticks once per wall-clock second
// while running and reports every change through a callback so the engine can
// re-derive per-player minutes.
package clock

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Clock is a monotonically increasing seconds counter with start/pause/reset
// and manual one-minute nudges. Safe for concurrent use.
type Clock struct {
	mu       sync.Mutex
	seconds  int64
	running  bool
	interval time.Duration
	onTick   func(seconds int64)
	stop     chan struct{}
}

// New returns a paused clock at zero that ticks every second once started.
// onTick may be nil.
func New(onTick func(seconds int64)) *Clock {
	return NewWithInterval(time.Second, onTick)
}

// NewWithInterval is New with a custom tick interval, for tests.
func NewWithInterval(interval time.Duration, onTick func(seconds int64)) *Clock {
	return &Clock{interval: interval, onTick: onTick}
}

// Start begins tick emission. Starting a running clock is a no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.Tick()
			}
		}
	}()
	log.Debug("Match clock started")
}

// Pause stops tick emission without altering the elapsed time.
func (c *Clock) Pause() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stop)
	c.stop = nil
	c.mu.Unlock()
	log.Debug("Match clock paused")
}

// Reset pauses the clock and returns the counter to zero. Like the other
// manual setters it does not emit; callers resync listeners themselves, which
// keeps these methods safe to call from inside an onTick-holding lock.
func (c *Clock) Reset() {
	c.Pause()
	c.mu.Lock()
	c.seconds = 0
	c.mu.Unlock()
}

// Tick advances the counter by one second and notifies the listener. Exposed
// so tests and the engine can drive time without a real ticker.
func (c *Clock) Tick() {
	c.mu.Lock()
	c.seconds++
	s := c.seconds
	c.mu.Unlock()
	c.emit(s)
}

// AdjustMinutes nudges the counter by deltaMinutes, clamped at zero.
func (c *Clock) AdjustMinutes(deltaMinutes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seconds += int64(deltaMinutes) * 60
	if c.seconds < 0 {
		c.seconds = 0
	}
}

// SetSeconds restores the counter from a persisted snapshot.
func (c *Clock) SetSeconds(seconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	c.seconds = seconds
}

// Seconds returns the elapsed time in whole seconds.
func (c *Clock) Seconds() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seconds
}

// Minute returns the elapsed whole minute, as shown on match-day UIs.
func (c *Clock) Minute() int {
	return int(c.Seconds() / 60)
}

// Running reports whether ticks are being emitted.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// emit runs the callback outside the lock so listeners can call back in.
func (c *Clock) emit(seconds int64) {
	if c.onTick != nil {
		c.onTick(seconds)
	}
}
