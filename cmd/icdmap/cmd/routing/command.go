// Package routing implements the routing command.
package routing

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/icdmap/cmd/application"
	"github.com/agentstation/icdmap/internal/cmd/output"
	"github.com/agentstation/icdmap/pkg/logging"
	"github.com/agentstation/icdmap/pkg/routing"
)

// NewCommand creates the routing command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "routing <model-tree> <send-output> <subscribe-output> [skip-pattern]",
		GroupID: "core",
		Short:   "Generate model files routing every command and event of a tree",
		Long: `Generate a command model that sends every command received by the
components under <model-tree>, and a subscribe model that subscribes to
every event they publish.

The optional skip pattern is a case-insensitive regular expression matched
against the first line of each item's description. Matching items are left
out and reported as skipped.`,
		Example: `  icdmap routing ICD-Model-Files/NFIRAOS-Model-Files command-model.yaml subscribe-model.yaml '\(engineering\)'`,
		Args:    cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "routing")
			opts := routing.Options{
				Root:          args[0],
				SendPath:      args[1],
				SubscribePath: args[2],
			}
			if len(args) == 4 {
				opts.SkipPattern = args[3]
			}

			res, err := routing.Generate(ctx, opts)
			if err != nil {
				return err
			}

			logging.FromContext(ctx).Info().
				Int("send", len(res.Send)).
				Int("subscribe", len(res.Subscribe)).
				Int("skipped", len(res.Skipped)).
				Msg("Routing files written")

			format := output.Format(app.OutputFormat())
			if format != output.FormatJSON && format != output.FormatYAML {
				return nil
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), res)
		},
	}
}
