package mailbox

import (
	"bytes"
	"io"
	"mime"
	"regexp"
	"strings"

	"github.com/emersion/go-message"
	"github.com/mikey/email-sentiment/internal/senderdomain"
	"github.com/mikey/email-sentiment/internal/utils"
	"go.uber.org/zap"

	// Register charset decoders (windows-1252, iso-8859-*, koi8-r, etc.)
	_ "github.com/emersion/go-message/charset"
)

var fromLinePattern = regexp.MustCompile(`(?im)^From:[ \t]*(.*)$`)

// MessageParser turns raw messages into a sender domain and plain-text bodies
type MessageParser struct {
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
}

// NewMessageParser creates a new message parser
func NewMessageParser(textProcessor *utils.TextProcessor, logger *zap.Logger) *MessageParser {
	return &MessageParser{
		textProcessor: textProcessor,
		logger:        logger,
	}
}

// Parse extracts the sender domain and the bodies a message contributes.
// Multipart messages contribute every text/plain part, single-part messages their one body.
// Decoding is best effort and never fails: unreadable content is dropped or taken raw.
func (p *MessageParser) Parse(raw []byte) (string, []string) {
	entity, err := message.Read(bytes.NewReader(raw))
	if entity == nil {
		p.logger.Debug("Falling back to raw message", zap.Error(err))
		return p.parseRaw(raw)
	}
	if err != nil {
		p.logger.Debug("Message header decoded with warnings", zap.Error(err))
	}

	domain := senderdomain.Extract(entity.Header.Get("From"))
	multipart := isMultipart(entity.Header.Get("Content-Type"))

	var bodies []string
	walkErr := entity.Walk(func(path []int, part *message.Entity, err error) error {
		if err != nil {
			p.logger.Debug("Taking message part undecoded", zap.String("domain", domain), zap.Error(err))
		}
		contentType := part.Header.Get("Content-Type")
		if multipart && (isMultipart(contentType) || !isPlainText(contentType)) {
			return nil
		}

		data, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			p.logger.Debug("Partially decoded message part", zap.String("domain", domain), zap.Error(readErr))
		}
		bodies = append(bodies, p.textProcessor.DecodeBytes(data))
		return nil
	})
	if walkErr != nil {
		p.logger.Debug("Stopped reading message parts", zap.String("domain", domain), zap.Error(walkErr))
	}

	if !multipart && len(bodies) == 0 {
		_, rawBodies := p.parseRaw(raw)
		bodies = rawBodies
	}

	return domain, bodies
}

// parseRaw splits a message that could not be parsed as MIME at the first blank line
func (p *MessageParser) parseRaw(raw []byte) (string, []string) {
	header, body := raw, []byte(nil)
	if idx := bytes.Index(raw, []byte("\r\n\r\n")); idx >= 0 {
		header, body = raw[:idx], raw[idx+4:]
	} else if idx := bytes.Index(raw, []byte("\n\n")); idx >= 0 {
		header, body = raw[:idx], raw[idx+2:]
	}

	from := ""
	if match := fromLinePattern.FindSubmatch(header); match != nil {
		from = string(match[1])
	}

	return senderdomain.Extract(from), []string{p.textProcessor.DecodeBytes(body)}
}

// isPlainText reports whether a Content-Type value is text/plain.
// A missing or unparseable value counts as text/plain, the MIME default.
func isPlainText(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/plain")
	}
	return mediaType == "text/plain"
}

func isMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "multipart/")
	}
	return strings.HasPrefix(mediaType, "multipart/")
}
