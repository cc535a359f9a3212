package factory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mikey/email-sentiment/internal/adapters/bedrock"
	"github.com/mikey/email-sentiment/internal/adapters/gemini"
	"github.com/mikey/email-sentiment/internal/adapters/huggingface"
	"github.com/mikey/email-sentiment/internal/adapters/openai"
	"github.com/mikey/email-sentiment/internal/config"
	"github.com/mikey/email-sentiment/internal/core"
	"github.com/mikey/email-sentiment/internal/utils"
	"go.uber.org/zap"
)

// ModelFactory creates sentiment models and the classifier on top of them
type ModelFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewModelFactory creates a new model factory
func NewModelFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ModelFactory {
	return &ModelFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateSentimentModel creates the sentiment model named by classifier.provider
func (f *ModelFactory) CreateSentimentModel(ctx context.Context) (core.SentimentModel, error) {
	provider := strings.ToLower(f.cfg.GetClassifier().Provider)

	switch provider {
	case "huggingface":
		hfCfg, err := f.cfg.GetHuggingFace()
		if err != nil {
			return nil, err
		}
		return huggingface.NewClient(hfCfg.BaseURL, hfCfg.Model, hfCfg.APIToken, hfCfg.Timeout, f.logger), nil
	case "openai":
		return openai.NewFactory(f.cfg, f.logger).CreateSentimentModel()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger).CreateSentimentModel(ctx)
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateSentimentModel(ctx)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", provider)
	}
}

// CreateClassifier wraps model with the configured truncation budget
func (f *ModelFactory) CreateClassifier(model core.SentimentModel) *core.Classifier {
	return core.NewClassifier(model, f.textProcessor, f.cfg.GetClassifier().MaxChars, f.logger)
}

// LazyScorer builds the sentiment model on the first classification
type LazyScorer struct {
	factory *ModelFactory

	once       sync.Once
	classifier *core.Classifier
	err        error
}

// NewLazyScorer creates a scorer backed by the configured model
func NewLazyScorer(factory *ModelFactory) *LazyScorer {
	return &LazyScorer{factory: factory}
}

// Score implements core.TextScorer
func (s *LazyScorer) Score(ctx context.Context, text string) (int, error) {
	s.once.Do(func() {
		model, err := s.factory.CreateSentimentModel(ctx)
		if err != nil {
			s.err = fmt.Errorf("failed to create sentiment model: %w", err)
			return
		}
		s.classifier = s.factory.CreateClassifier(model)
	})
	if s.err != nil {
		return 0, s.err
	}
	return s.classifier.Score(ctx, text)
}
