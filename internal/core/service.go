package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Mail providers and the IMAP endpoints they map to
var providerServers = map[string]string{
	"gmail":   "imap.gmail.com:993",
	"outlook": "imap-mail.outlook.com:993",
}

// Providers returns the supported mail provider names
func Providers() []string {
	return []string{"gmail", "outlook"}
}

// ResolveServer returns the IMAP address for a provider name, case-insensitively
func ResolveServer(provider string) (string, error) {
	server, ok := providerServers[strings.ToLower(strings.TrimSpace(provider))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return server, nil
}

// SentimentService runs the fetch/cache lifecycle and the per-domain analysis
type SentimentService struct {
	store     CacheStore
	fetcher   MailboxFetcher
	scorer    TextScorer
	scheduler *FetchScheduler
	logger    *zap.Logger
}

// NewSentimentService creates a new sentiment service
func NewSentimentService(
	store CacheStore,
	fetcher MailboxFetcher,
	scorer TextScorer,
	scheduler *FetchScheduler,
	logger *zap.Logger,
) *SentimentService {
	return &SentimentService{
		store:     store,
		fetcher:   fetcher,
		scorer:    scorer,
		scheduler: scheduler,
		logger:    logger,
	}
}

// LoadSession reads the session state from the cache store.
// A first run yields timestamp 0 and an empty snapshot.
func (s *SentimentService) LoadSession(ctx context.Context) (*SessionState, error) {
	ts, err := s.store.LoadTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fetch timestamp: %w", err)
	}
	snapshot, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mailbox snapshot: %w", err)
	}

	s.logger.Debug("Loaded session",
		zap.Float64("last_fetch", ts),
		zap.Int("domains", len(snapshot)),
		zap.Int("messages", snapshot.MessageCount()))

	return &SessionState{
		Fetch:    FetchState{LastFetchUnix: ts},
		Snapshot: snapshot,
	}, nil
}

// RemainingWindow returns the time left before the session's snapshot expires
func (s *SentimentService) RemainingWindow(state *SessionState) time.Duration {
	return s.scheduler.RemainingRefreshWindow(state.Fetch.LastFetchUnix)
}

// CheckExpiry clears an expired snapshot and stamps the current time.
// Both are persisted right away, snapshot first, so a crash during a later fetch
// cannot cause a refetch loop. No fetch is started. Reports whether the snapshot expired.
func (s *SentimentService) CheckExpiry(ctx context.Context, state *SessionState) (bool, error) {
	if !s.scheduler.Expired(state.Fetch.LastFetchUnix) {
		return false, nil
	}

	now := s.scheduler.Now()
	empty := MailboxSnapshot{}
	if err := s.store.SaveSnapshot(ctx, empty); err != nil {
		return false, fmt.Errorf("failed to clear expired snapshot: %w", err)
	}
	if err := s.store.SaveTimestamp(ctx, now); err != nil {
		return false, fmt.Errorf("failed to save fetch timestamp: %w", err)
	}

	s.logger.Info("Mailbox cache expired",
		zap.Float64("previous_fetch", state.Fetch.LastFetchUnix),
		zap.Float64("stamped", now))

	state.Snapshot = empty
	state.Fetch.LastFetchUnix = now
	state.Stale = true
	return true, nil
}

// Fetch pulls the whole mailbox of the provider and replaces the session snapshot.
// On failure the session and the cache store are left untouched and the error is returned.
func (s *SentimentService) Fetch(ctx context.Context, state *SessionState, provider, username, secret string) error {
	server, err := ResolveServer(provider)
	if err != nil {
		return err
	}

	start := time.Now()
	snapshot, err := s.fetcher.FetchAll(ctx, server, username, secret)
	if err != nil {
		var fetchErr *FetchError
		kind := "unknown"
		if errors.As(err, &fetchErr) {
			kind = fetchErr.Kind.String()
		}
		s.logger.Warn("Mailbox fetch failed",
			zap.String("server", server),
			zap.String("kind", kind),
			zap.Error(err))
		return err
	}
	if snapshot == nil {
		snapshot = MailboxSnapshot{}
	}

	now := s.scheduler.Now()
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save mailbox snapshot: %w", err)
	}
	if err := s.store.SaveTimestamp(ctx, now); err != nil {
		return fmt.Errorf("failed to save fetch timestamp: %w", err)
	}

	state.Snapshot = snapshot
	state.Fetch.LastFetchUnix = now
	state.Stale = false

	s.logger.Info("Mailbox fetched",
		zap.String("server", server),
		zap.Int("domains", len(snapshot)),
		zap.Int("messages", snapshot.MessageCount()),
		zap.Duration("duration", time.Since(start)))

	return nil
}

// Analyze classifies every message of one domain and aggregates the result.
// A domain without messages returns zero counts together with ErrNoData and
// does not invoke the classifier.
func (s *SentimentService) Analyze(ctx context.Context, state *SessionState, domain string) (*AnalysisResult, error) {
	messages := state.Snapshot[domain]
	if len(messages) == 0 {
		return &AnalysisResult{
			Domain: domain,
			Counts: NewEmotionCounts(),
			Score:  NeutralScore,
			Gauge:  NewGauge(NeutralScore),
		}, ErrNoData
	}

	counts, err := BucketCounts(ctx, s.scorer, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to classify messages for %s: %w", domain, err)
	}

	score := Score(counts)
	s.logger.Info("Analyzed domain",
		zap.String("domain", domain),
		zap.Int("messages", len(messages)),
		zap.Float64("score", score))

	return &AnalysisResult{
		Domain:       domain,
		MessageCount: len(messages),
		Counts:       counts,
		Score:        score,
		Gauge:        NewGauge(score),
	}, nil
}
