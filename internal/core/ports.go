package core

import (
	"context"
)

// SentimentModel is the opaque text classification capability.
// It returns a label that starts with the 1-5 rating, e.g. "4 stars".
type SentimentModel interface {
	// ClassifyText classifies the text and returns the raw label
	ClassifyText(ctx context.Context, text string) (string, error)
}

// TextScorer scores a text with an ordinal sentiment from 1 to 5
type TextScorer interface {
	// Score returns the ordinal sentiment of the text
	Score(ctx context.Context, text string) (int, error)
}

// CacheStore persists the fetch timestamp and the mailbox snapshot
type CacheStore interface {
	// SaveTimestamp overwrites the stored fetch timestamp
	SaveTimestamp(ctx context.Context, ts float64) error

	// LoadTimestamp returns the stored fetch timestamp, 0 if none was saved
	LoadTimestamp(ctx context.Context) (float64, error)

	// SaveSnapshot overwrites the stored snapshot
	SaveSnapshot(ctx context.Context, snapshot MailboxSnapshot) error

	// LoadSnapshot returns the stored snapshot, empty if none was saved
	LoadSnapshot(ctx context.Context) (MailboxSnapshot, error)
}

// MailboxFetcher pulls every message of a mailbox and groups the bodies by sender domain
type MailboxFetcher interface {
	// FetchAll returns the complete snapshot or a *FetchError; partial results are never returned
	FetchAll(ctx context.Context, server, username, secret string) (MailboxSnapshot, error)
}
