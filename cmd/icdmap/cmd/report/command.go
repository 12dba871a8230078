// Package report implements the report command.
package report

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/icdmap/cmd/application"
	"github.com/agentstation/icdmap/internal/cmd/output"
	"github.com/agentstation/icdmap/internal/sources"
	"github.com/agentstation/icdmap/pkg/logging"
	"github.com/agentstation/icdmap/pkg/resolver"
)

// NewCommand creates the report command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var sel sources.Selection

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "core",
		Short:   "Report resolved links and unmatched declarations",
		Long: `Load a catalog and print every resolved link, the received commands
nobody sends, the subscriptions nobody publishes, the sends no component
receives and the declarations skipped while loading.`,
		Example: `  icdmap report --models ICD-Model-Files
  icdmap report --db icds.db -o yaml

Without --format the report is a table on a terminal and JSON otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			format = output.DetectFormat(string(format), w)

			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "report")
			cat, err := app.Catalog(ctx, sel)
			if err != nil {
				return err
			}
			r := output.NewReport(cat, resolver.Resolve(cat))
			return output.WriteReport(w, r, format)
		},
	}

	cmd.Flags().StringVar(&sel.Models, "models", "", "model tree root")
	cmd.Flags().StringVar(&sel.DB, "db", "", "SQLite document database")
	return cmd
}
