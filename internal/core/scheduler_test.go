package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestRemainingRefreshWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	scheduler := NewFetchScheduler(clock.Now)
	last := scheduler.Now()

	assert.Equal(t, RefreshPeriod, scheduler.RemainingRefreshWindow(last))

	clock.Advance(time.Hour)
	assert.Equal(t, 23*time.Hour, scheduler.RemainingRefreshWindow(last))
	assert.False(t, scheduler.Expired(last))

	clock.Advance(23 * time.Hour)
	assert.Equal(t, time.Duration(0), scheduler.RemainingRefreshWindow(last))
	assert.True(t, scheduler.Expired(last))

	clock.Advance(48 * time.Hour)
	assert.Equal(t, time.Duration(0), scheduler.RemainingRefreshWindow(last))
}

func TestRemainingRefreshWindowFirstRun(t *testing.T) {
	scheduler := NewFetchScheduler(nil)

	assert.Equal(t, time.Duration(0), scheduler.RemainingRefreshWindow(0))
	assert.True(t, scheduler.Expired(0))
}

func TestRemainingRefreshWindowMonotonic(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	scheduler := NewFetchScheduler(clock.Now)
	last := scheduler.Now() - 3600.5

	previous := scheduler.RemainingRefreshWindow(last)
	for i := 0; i < 200; i++ {
		clock.Advance(17 * time.Minute)
		current := scheduler.RemainingRefreshWindow(last)
		assert.LessOrEqual(t, current, previous)
		assert.GreaterOrEqual(t, current, time.Duration(0))
		previous = current
	}
	assert.Equal(t, time.Duration(0), previous)
}

func TestSchedulerNowFractional(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 250_000_000)}
	scheduler := NewFetchScheduler(clock.Now)

	assert.InDelta(t, 1_700_000_000.25, scheduler.Now(), 1e-6)
}
