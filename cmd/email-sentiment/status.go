package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached session and when the next fetch is due",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.presenter.Status(app.status())
	},
}
