package core_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikey/email-sentiment/internal/adapters/cache"
	"github.com/mikey/email-sentiment/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	snapshot core.MailboxSnapshot
	err      error
	server   string
	calls    int
}

func (f *stubFetcher) FetchAll(ctx context.Context, server, username, secret string) (core.MailboxSnapshot, error) {
	f.calls++
	f.server = server
	return f.snapshot, f.err
}

type countingScorer struct {
	ordinals map[string]int
	calls    int
}

func (s *countingScorer) Score(ctx context.Context, text string) (int, error) {
	s.calls++
	ordinal, ok := s.ordinals[text]
	if !ok {
		return 0, errors.New("unexpected text")
	}
	return ordinal, nil
}

type fixture struct {
	dir      string
	store    *cache.FileStore
	fetcher  *stubFetcher
	scorer   *countingScorer
	now      time.Time
	service  *core.SentimentService
	tsPath   string
	snapPath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		tsPath:   filepath.Join(dir, "last_fetch_time.txt"),
		snapPath: filepath.Join(dir, "email_cache.json"),
		fetcher:  &stubFetcher{},
		scorer:   &countingScorer{ordinals: map[string]int{}},
		now:      time.Unix(1_700_000_000, 0),
	}

	store, err := cache.NewFileStore(f.tsPath, f.snapPath, zap.NewNop())
	require.NoError(t, err)
	f.store = store

	scheduler := core.NewFetchScheduler(func() time.Time { return f.now })
	f.service = core.NewSentimentService(store, f.fetcher, f.scorer, scheduler, zap.NewNop())
	return f
}

func unix(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func TestLoadSessionDefaults(t *testing.T) {
	f := newFixture(t)

	state, err := f.service.LoadSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.0, state.Fetch.LastFetchUnix)
	assert.NotNil(t, state.Snapshot)
	assert.Empty(t, state.Snapshot)
	assert.False(t, state.Stale)
}

func TestCheckExpiryFirstRunStampsNow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	state, err := f.service.LoadSession(ctx)
	require.NoError(t, err)

	expired, err := f.service.CheckExpiry(ctx, state)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.True(t, state.Stale)
	assert.Equal(t, unix(f.now), state.Fetch.LastFetchUnix)
	assert.Equal(t, 0, f.fetcher.calls)

	reloaded, err := f.service.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, unix(f.now), reloaded.Fetch.LastFetchUnix)
	assert.Empty(t, reloaded.Snapshot)

	assert.Equal(t, 24*time.Hour, f.service.RemainingWindow(state))
}

func TestCheckExpiryClearsOldSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	last := f.now.Add(-25 * time.Hour)
	require.NoError(t, f.store.SaveSnapshot(ctx, core.MailboxSnapshot{"a.example": {"old"}}))
	require.NoError(t, f.store.SaveTimestamp(ctx, unix(last)))

	state, err := f.service.LoadSession(ctx)
	require.NoError(t, err)
	require.Len(t, state.Snapshot, 1)

	expired, err := f.service.CheckExpiry(ctx, state)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Empty(t, state.Snapshot)

	data, err := os.ReadFile(f.snapPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestCheckExpiryKeepsFreshSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	last := f.now.Add(-23 * time.Hour)
	require.NoError(t, f.store.SaveSnapshot(ctx, core.MailboxSnapshot{"a.example": {"recent"}}))
	require.NoError(t, f.store.SaveTimestamp(ctx, unix(last)))

	state, err := f.service.LoadSession(ctx)
	require.NoError(t, err)

	expired, err := f.service.CheckExpiry(ctx, state)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, []string{"recent"}, state.Snapshot["a.example"])
	assert.Equal(t, time.Hour, f.service.RemainingWindow(state))
}

func TestFetchPersistsSnapshotAndTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fetcher.snapshot = core.MailboxSnapshot{
		"a.example": {"one", "two"},
		"b.example": {"three"},
	}

	state, err := f.service.LoadSession(ctx)
	require.NoError(t, err)
	state.Stale = true

	require.NoError(t, f.service.Fetch(ctx, state, "Gmail", "me@example.com", "app-password"))

	assert.Equal(t, "imap.gmail.com:993", f.fetcher.server)
	assert.Equal(t, f.fetcher.snapshot, state.Snapshot)
	assert.Equal(t, unix(f.now), state.Fetch.LastFetchUnix)
	assert.False(t, state.Stale)

	reloaded, err := f.service.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.fetcher.snapshot, reloaded.Snapshot)
	assert.Equal(t, unix(f.now), reloaded.Fetch.LastFetchUnix)

	// Credentials never reach the cache
	for _, path := range []string{f.tsPath, f.snapPath} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "app-password")
	}
}

func TestFetchFailureLeavesCacheUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveSnapshot(ctx, core.MailboxSnapshot{"a.example": {"kept"}}))
	require.NoError(t, f.store.SaveTimestamp(ctx, 1234.5))
	tsBefore, err := os.ReadFile(f.tsPath)
	require.NoError(t, err)
	snapBefore, err := os.ReadFile(f.snapPath)
	require.NoError(t, err)

	state, err := f.service.LoadSession(ctx)
	require.NoError(t, err)

	f.fetcher.err = core.NewFetchError(core.AuthError, "login", errors.New("invalid credentials"))
	err = f.service.Fetch(ctx, state, "outlook", "me@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, core.IsFetchErrorKind(err, core.AuthError))
	assert.Equal(t, "imap-mail.outlook.com:993", f.fetcher.server)

	assert.Equal(t, []string{"kept"}, state.Snapshot["a.example"])
	assert.Equal(t, 1234.5, state.Fetch.LastFetchUnix)

	tsAfter, err := os.ReadFile(f.tsPath)
	require.NoError(t, err)
	snapAfter, err := os.ReadFile(f.snapPath)
	require.NoError(t, err)
	assert.Equal(t, tsBefore, tsAfter)
	assert.Equal(t, snapBefore, snapAfter)
}

func TestFetchUnknownProvider(t *testing.T) {
	f := newFixture(t)
	state := &core.SessionState{Snapshot: core.MailboxSnapshot{}}

	err := f.service.Fetch(context.Background(), state, "yahoo", "u", "p")
	assert.ErrorIs(t, err, core.ErrUnknownProvider)
	assert.Equal(t, 0, f.fetcher.calls)
}

func TestAnalyzeDomain(t *testing.T) {
	f := newFixture(t)
	f.scorer.ordinals = map[string]int{"great": 5, "fine": 4, "meh": 3, "awful": 1}
	state := &core.SessionState{Snapshot: core.MailboxSnapshot{
		"shop.example": {"great", "fine", "meh", "awful"},
	}}

	result, err := f.service.Analyze(context.Background(), state, "shop.example")
	require.NoError(t, err)

	assert.Equal(t, 4, f.scorer.calls)
	assert.Equal(t, 4, result.MessageCount)
	assert.Equal(t, 1, result.Counts[core.Happy])
	assert.Equal(t, 1, result.Counts[core.Joy])
	assert.Equal(t, 1, result.Counts[core.Neutral])
	assert.Equal(t, 0, result.Counts[core.Threat])
	assert.Equal(t, 1, result.Counts[core.Angry])
	assert.InDelta(t, 13.0/4.0, result.Score, 1e-9)
	assert.InDelta(t, result.Score, result.Gauge.Threshold.Value, 1e-9)
}

func TestAnalyzeEmptyDomain(t *testing.T) {
	f := newFixture(t)
	state := &core.SessionState{Snapshot: core.MailboxSnapshot{"a.example": {"x"}}}

	result, err := f.service.Analyze(context.Background(), state, "missing.example")
	assert.ErrorIs(t, err, core.ErrNoData)
	require.NotNil(t, result)

	assert.Equal(t, 0, f.scorer.calls)
	assert.Equal(t, 0, result.Counts.Total())
	assert.Equal(t, core.NeutralScore, result.Score)
}

func TestAnalyzeClassifierFailure(t *testing.T) {
	f := newFixture(t)
	state := &core.SessionState{Snapshot: core.MailboxSnapshot{"a.example": {"unknown text"}}}

	_, err := f.service.Analyze(context.Background(), state, "a.example")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNoData)
}

func TestResolveServer(t *testing.T) {
	server, err := core.ResolveServer(" OUTLOOK ")
	require.NoError(t, err)
	assert.Equal(t, "imap-mail.outlook.com:993", server)

	_, err = core.ResolveServer("")
	assert.ErrorIs(t, err, core.ErrUnknownProvider)
}
