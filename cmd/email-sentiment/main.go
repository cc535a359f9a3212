package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/mikey/email-sentiment/internal/config"
	"github.com/mikey/email-sentiment/internal/core"
	"github.com/mikey/email-sentiment/internal/di"
	"github.com/mikey/email-sentiment/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	configFile string
	verbose    bool
	jsonLog    bool
	jsonOutput bool

	app *session
)

// session is what every command works on once the root command has loaded state
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     core.CacheStore
	service   *core.SentimentService
	presenter ports.Presenter

	state *core.SessionState
	// expired is set when this run cleared a snapshot that had been fetched before
	expired      bool
	neverFetched bool
}

var rootCmd = &cobra.Command{
	Use:           "email-sentiment",
	Short:         "Sentiment of your inbox, per sender domain",
	Long:          "Fetch a mailbox over IMAP, cache it for a day and rate the mood of each sender domain.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "version":
			return nil
		}

		container, err := di.BuildContainer(di.Options{
			ConfigFile: configFile,
			Verbose:    verbose,
			JSONLog:    jsonLog,
			JSONOutput: jsonOutput,
			Out:        cmd.OutOrStdout(),
		})
		if err != nil {
			return fmt.Errorf("build container: %w", err)
		}

		app, err = openSession(cmd.Context(), container)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app == nil {
			return
		}
		if closer, ok := app.store.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				app.logger.Warn("Failed to close cache store", zap.Error(err))
			}
		}
		_ = app.logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "email-sentiment version %s\n", Version)
	},
}

// openSession resolves the service, loads the session state and runs the expiry check
func openSession(ctx context.Context, container *dig.Container) (*session, error) {
	s := &session{}
	err := container.Invoke(func(
		cfg *config.Config,
		logger *zap.Logger,
		store core.CacheStore,
		service *core.SentimentService,
		presenter ports.Presenter,
	) {
		s.cfg = cfg
		s.logger = logger
		s.store = store
		s.service = service
		s.presenter = presenter
	})
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	state, err := s.service.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	previous := state.Fetch.LastFetchUnix

	expired, err := s.service.CheckExpiry(ctx, state)
	if err != nil {
		return nil, err
	}

	s.state = state
	s.expired = expired && previous != 0
	s.neverFetched = previous == 0
	return s, nil
}

// status summarises the session for the presenter
func (s *session) status() ports.SessionStatus {
	last := s.state.Fetch.LastFetchUnix
	sec := int64(last)
	nsec := int64((last - float64(sec)) * float64(time.Second))

	return ports.SessionStatus{
		LastFetch:    time.Unix(sec, nsec),
		NeverFetched: s.neverFetched,
		Remaining:    s.service.RemainingWindow(s.state),
		Expired:      s.expired,
		Domains:      len(s.state.Snapshot),
		Messages:     s.state.Snapshot.MessageCount(),
		Providers:    core.Providers(),
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: search config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", describeError(err))
		os.Exit(1)
	}
}
