package clock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/pitchside/matchday/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_ManualTicks(t *testing.T) {
	var mu sync.Mutex
	var seen []int64
	c := clock.New(func(s int64) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	for range 5 {
		c.Tick()
	}

	assert.Equal(t, int64(5), c.Seconds())
	assert.Equal(t, 0, c.Minute())
	mu.Lock()
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seen)
	mu.Unlock()
}

func TestClock_AdjustMinutes(t *testing.T) {
	c := clock.New(nil)

	c.AdjustMinutes(10)
	assert.Equal(t, int64(600), c.Seconds())
	assert.Equal(t, 10, c.Minute())

	c.AdjustMinutes(-3)
	assert.Equal(t, int64(420), c.Seconds())

	// Clamped at zero, never negative.
	c.AdjustMinutes(-60)
	assert.Equal(t, int64(0), c.Seconds())
}

func TestClock_Reset(t *testing.T) {
	c := clock.New(nil)
	c.AdjustMinutes(45)
	c.Reset()
	assert.Equal(t, int64(0), c.Seconds())
	assert.False(t, c.Running())
}

func TestClock_SetSeconds(t *testing.T) {
	c := clock.New(nil)
	c.SetSeconds(1337)
	assert.Equal(t, int64(1337), c.Seconds())
	assert.Equal(t, 22, c.Minute())

	c.SetSeconds(-5)
	assert.Equal(t, int64(0), c.Seconds())
}

func TestClock_StartAndPause(t *testing.T) {
	ticked := make(chan int64, 64)
	c := clock.NewWithInterval(time.Millisecond, func(s int64) {
		select {
		case ticked <- s:
		default:
		}
	})

	c.Start()
	assert.True(t, c.Running())
	// Starting twice is a no-op, not a second ticker.
	c.Start()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("clock never ticked")
	}

	c.Pause()
	assert.False(t, c.Running())
	paused := c.Seconds()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, paused, c.Seconds(), "pausing should stop the counter")

	// Pausing an already paused clock is harmless.
	c.Pause()
	require.False(t, c.Running())
}
