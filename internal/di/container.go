package di

import (
	"io"
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/email-sentiment/internal/config"
	"github.com/mikey/email-sentiment/internal/core"
	"github.com/mikey/email-sentiment/internal/factory"
	"github.com/mikey/email-sentiment/internal/logging"
	"github.com/mikey/email-sentiment/internal/ports"
	"github.com/mikey/email-sentiment/internal/utils"
)

// Options carries the command line settings that shape the container
type Options struct {
	ConfigFile string
	Verbose    bool
	JSONLog    bool
	JSONOutput bool
	Out        io.Writer
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer(opts Options) (*dig.Container, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	container := dig.New()

	// Register options
	if err := container.Provide(func() Options { return opts }); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(opts Options) (*config.Config, error) {
		return config.New(opts.ConfigFile)
	}); err != nil {
		return nil, err
	}

	// Register logger; command line flags win over the config file
	if err := container.Provide(func(opts Options, cfg *config.Config) (*zap.Logger, error) {
		if opts.Verbose || opts.JSONLog {
			return logging.InitConsoleLogger(opts.Verbose, opts.JSONLog)
		}
		return logging.InitLogger(cfg)
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMailboxFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(opts Options) *factory.PresenterFactory {
		return factory.NewPresenterFactory(opts.Out, opts.JSONOutput)
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register cache store
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheStore, error) {
		return f.CreateCacheStore()
	}); err != nil {
		return nil, err
	}

	// Register mailbox fetcher
	if err := container.Provide(func(f *factory.MailboxFactory) core.MailboxFetcher {
		return f.CreateFetcher()
	}); err != nil {
		return nil, err
	}

	// Register scorer
	if err := container.Provide(func(f *factory.ModelFactory) core.TextScorer {
		return factory.NewLazyScorer(f)
	}); err != nil {
		return nil, err
	}

	// Register scheduler
	if err := container.Provide(func() *core.FetchScheduler {
		return core.NewFetchScheduler(nil)
	}); err != nil {
		return nil, err
	}

	// Register sentiment service
	if err := container.Provide(core.NewSentimentService); err != nil {
		return nil, err
	}

	// Register presenter
	if err := container.Provide(func(f *factory.PresenterFactory) ports.Presenter {
		return f.CreatePresenter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
