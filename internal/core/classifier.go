package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mikey/email-sentiment/internal/utils"
	"go.uber.org/zap"
)

// DefaultMaxChars is the input budget of the sentiment model in characters
const DefaultMaxChars = 512

// Classifier adapts a SentimentModel to ordinal scores and emotion counts
type Classifier struct {
	model         SentimentModel
	textProcessor *utils.TextProcessor
	maxChars      int
	logger        *zap.Logger
}

// NewClassifier creates a classifier truncating input to maxChars characters
func NewClassifier(model SentimentModel, textProcessor *utils.TextProcessor, maxChars int, logger *zap.Logger) *Classifier {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Classifier{
		model:         model,
		textProcessor: textProcessor,
		maxChars:      maxChars,
		logger:        logger,
	}
}

// Score classifies one text and returns its ordinal sentiment
func (c *Classifier) Score(ctx context.Context, text string) (int, error) {
	input := c.textProcessor.TruncateChars(text, c.maxChars)

	label, err := c.model.ClassifyText(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to classify text: %w", err)
	}

	ordinal, err := ParseOrdinal(label)
	if err != nil {
		return 0, err
	}

	c.logger.Debug("Classified text",
		zap.Int("input_chars", len([]rune(input))),
		zap.String("label", label),
		zap.Int("ordinal", ordinal))

	return ordinal, nil
}

// ParseOrdinal reads the leading 1-5 rating from a label such as "4 stars"
func ParseOrdinal(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}

	token := strings.TrimRightFunc(fields[0], func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	ordinal, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	if _, ok := EmotionForOrdinal(ordinal); !ok {
		return 0, fmt.Errorf("%w: rating %d out of range in %q", ErrInvalidLabel, ordinal, label)
	}

	return ordinal, nil
}

// BucketCounts scores every message with scorer, one call per message, and counts the categories.
// Every message lands in exactly one category; an empty list yields all-zero counts.
func BucketCounts(ctx context.Context, scorer TextScorer, messages []string) (EmotionCounts, error) {
	counts := NewEmotionCounts()
	for i, message := range messages {
		ordinal, err := scorer.Score(ctx, message)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		emotion, ok := EmotionForOrdinal(ordinal)
		if !ok {
			return nil, fmt.Errorf("message %d: %w: rating %d out of range", i, ErrInvalidLabel, ordinal)
		}
		counts[emotion]++
	}
	return counts, nil
}
