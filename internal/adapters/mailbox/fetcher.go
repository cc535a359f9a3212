package mailbox

import (
	"context"
	"time"

	"github.com/mikey/email-sentiment/internal/core"
	"go.uber.org/zap"
)

// DefaultMailbox is the mailbox every fetch reads
const DefaultMailbox = "INBOX"

// Fetcher implements core.MailboxFetcher over IMAP
type Fetcher struct {
	dial    Dialer
	mailbox string
	parser  *MessageParser
	logger  *zap.Logger
}

// NewFetcher creates a mailbox fetcher
func NewFetcher(dial Dialer, mailbox string, parser *MessageParser, logger *zap.Logger) *Fetcher {
	if dial == nil {
		dial = DialTLS
	}
	if mailbox == "" {
		mailbox = DefaultMailbox
	}
	return &Fetcher{
		dial:    dial,
		mailbox: mailbox,
		parser:  parser,
		logger:  logger,
	}
}

// FetchAll reads every message of the mailbox and groups the plain-text bodies by sender domain.
// The fetch is all-or-nothing: any failure returns a *core.FetchError and no snapshot.
func (f *Fetcher) FetchAll(ctx context.Context, server, username, secret string) (core.MailboxSnapshot, error) {
	start := time.Now()

	session, err := f.dial(ctx, server)
	if err != nil {
		return nil, core.NewFetchError(core.ConnectionError, "connect", err)
	}
	defer session.Close()

	if err := session.Login(username, secret); err != nil {
		return nil, core.NewFetchError(core.AuthError, "login", err)
	}

	if err := session.Select(f.mailbox); err != nil {
		return nil, core.NewFetchError(core.ProtocolError, "select", err)
	}

	seqNums, err := session.SearchAll()
	if err != nil {
		return nil, core.NewFetchError(core.ProtocolError, "search", err)
	}

	f.logger.Debug("Fetching messages",
		zap.String("server", server),
		zap.String("mailbox", f.mailbox),
		zap.Int("count", len(seqNums)))

	snapshot := core.MailboxSnapshot{}
	for _, seqNum := range seqNums {
		raw, err := session.FetchMessage(seqNum)
		if err != nil {
			return nil, core.NewFetchError(core.ProtocolError, "fetch", err)
		}

		domain, bodies := f.parser.Parse(raw)
		if len(bodies) == 0 {
			continue
		}
		snapshot[domain] = append(snapshot[domain], bodies...)
	}

	if err := session.Logout(); err != nil {
		return nil, core.NewFetchError(core.ProtocolError, "logout", err)
	}

	f.logger.Debug("Fetched mailbox",
		zap.String("server", server),
		zap.Int("messages", len(seqNums)),
		zap.Int("domains", len(snapshot)),
		zap.Duration("duration", time.Since(start)))

	return snapshot, nil
}
