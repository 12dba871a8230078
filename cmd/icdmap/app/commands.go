package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/icdmap/cmd/icdmap/cmd/diagram"
	"github.com/agentstation/icdmap/cmd/icdmap/cmd/docs"
	"github.com/agentstation/icdmap/cmd/icdmap/cmd/ingest"
	"github.com/agentstation/icdmap/cmd/icdmap/cmd/report"
	"github.com/agentstation/icdmap/cmd/icdmap/cmd/routing"
	"github.com/agentstation/icdmap/cmd/icdmap/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(diagram.NewCommand(a))
	rootCmd.AddCommand(routing.NewCommand(a))
	rootCmd.AddCommand(docs.NewCommand(a))
	rootCmd.AddCommand(report.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(ingest.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
