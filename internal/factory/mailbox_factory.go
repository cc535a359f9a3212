package factory

import (
	"github.com/mikey/email-sentiment/internal/adapters/mailbox"
	"github.com/mikey/email-sentiment/internal/config"
	"github.com/mikey/email-sentiment/internal/utils"
	"go.uber.org/zap"
)

// MailboxFactory creates IMAP mailbox fetchers
type MailboxFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewMailboxFactory creates a new mailbox factory
func NewMailboxFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *MailboxFactory {
	return &MailboxFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateFetcher creates a fetcher that dials over TLS and reads the configured mailbox
func (f *MailboxFactory) CreateFetcher() *mailbox.Fetcher {
	parser := mailbox.NewMessageParser(f.textProcessor, f.logger)
	return mailbox.NewFetcher(mailbox.DialTLS, f.cfg.GetString("imap.mailbox"), parser, f.logger)
}
