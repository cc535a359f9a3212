package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// TextProcessor provides utilities for processing text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateChars keeps the first maxChars characters of text.
// Characters are counted as runes, so the result is never cut inside a code point.
func (tp *TextProcessor) TruncateChars(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	count := 0
	for i := range text {
		if count == maxChars {
			tp.logger.Debug("Text truncated",
				zap.Int("original_size", len(text)),
				zap.Int("truncated_size", i),
				zap.Int("max_chars", maxChars))
			return text[:i]
		}
		count++
	}
	return text
}

// SanitizeUTF8 drops every byte that is not part of a well-formed UTF-8 sequence
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Ill-formed bytes become U+FFFD first, then the replacement runes are removed
	replaced, _, err := transform.String(runes.ReplaceIllFormed(), text)
	if err != nil {
		replaced = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	sanitized := strings.ReplaceAll(replaced, string(utf8.RuneError), "")

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(sanitized)))

	return sanitized
}

// DecodeBytes turns raw body bytes into valid UTF-8 text, dropping undecodable bytes
func (tp *TextProcessor) DecodeBytes(body []byte) string {
	return tp.SanitizeUTF8(string(body))
}

// ProcessText sanitizes and truncates text in one operation
func (tp *TextProcessor) ProcessText(text string, maxChars int) string {
	return tp.TruncateChars(tp.SanitizeUTF8(text), maxChars)
}
