package main

import (
	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the sender domains in the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := app.state.Snapshot
		counts := make(map[string]int, len(snapshot))
		for domain, bodies := range snapshot {
			counts[domain] = len(bodies)
		}
		return app.presenter.Domains(snapshot.Domains(), counts)
	},
}
