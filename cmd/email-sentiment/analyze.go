package main

import (
	"errors"

	"github.com/mikey/email-sentiment/internal/core"
	"github.com/mikey/email-sentiment/internal/senderdomain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <domain|address>",
	Short: "Rate the sentiment of every cached message from one sender domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matcher := senderdomain.NewMatcher(app.state.Snapshot.Domains(), app.logger)
		domain, ok := matcher.Resolve(args[0])
		if !ok {
			domain = senderdomain.Normalize(args[0])
		}

		result, err := app.service.Analyze(cmd.Context(), app.state, domain)
		if errors.Is(err, core.ErrNoData) {
			app.logger.Debug("Nothing to analyze", zap.String("domain", domain))
			return app.presenter.Analysis(result, true)
		}
		if err != nil {
			return err
		}
		return app.presenter.Analysis(result, false)
	},
}
