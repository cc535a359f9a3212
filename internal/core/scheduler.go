package core

import (
	"time"
)

// RefreshPeriod is the minimum time between two mailbox fetches
const RefreshPeriod = 24 * time.Hour

// Clock returns the current time
type Clock func() time.Time

// FetchScheduler throttles mailbox fetches to at most one per refresh period.
// It never runs work itself; it only tells the caller when the cache is stale.
type FetchScheduler struct {
	period time.Duration
	now    Clock
}

// NewFetchScheduler creates a scheduler using the given clock, time.Now if nil
func NewFetchScheduler(now Clock) *FetchScheduler {
	if now == nil {
		now = time.Now
	}
	return &FetchScheduler{
		period: RefreshPeriod,
		now:    now,
	}
}

// Now returns the scheduler's current time as fractional unix seconds
func (s *FetchScheduler) Now() float64 {
	return unixSeconds(s.now())
}

// RemainingRefreshWindow returns how long until a fetch made at lastFetch expires, never negative
func (s *FetchScheduler) RemainingRefreshWindow(lastFetch float64) time.Duration {
	elapsed := s.Now() - lastFetch
	remaining := s.period.Seconds() - elapsed
	if remaining <= 0 {
		return 0
	}
	return time.Duration(remaining * float64(time.Second))
}

// Expired reports whether the refresh window for lastFetch has run out
func (s *FetchScheduler) Expired(lastFetch float64) bool {
	return s.RemainingRefreshWindow(lastFetch) == 0
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
