// Package ingest implements the ingest command.
package ingest

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/icdmap/cmd/application"
	"github.com/agentstation/icdmap/internal/sources"
	"github.com/agentstation/icdmap/internal/sources/files"
	"github.com/agentstation/icdmap/internal/sources/sqlite"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/logging"
)

// NewCommand creates the ingest command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:     "ingest <model-tree>",
		GroupID: "management",
		Short:   "Load a model tree into the document database",
		Long: `Copy every model file of a model tree into a SQLite document database,
one collection per subsystem.component.kind. Existing collections with the
same name are replaced.`,
		Example: `  icdmap ingest ICD-Model-Files --db icds.db`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "ingest")
			logger := logging.FromContext(ctx)
			if db == "" {
				db = app.Selection(sources.Selection{}).DB
			}
			if db == "" {
				return errors.NewValidationError("db", nil, "--db is required")
			}

			store, err := sqlite.Open(db, sqlite.WithLogger(logger))
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			n, err := store.Ingest(ctx, files.New(args[0]))
			if err != nil {
				return err
			}
			logger.Info().Int("documents", n).Str("db", store.Path()).Msg("Model tree ingested")
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "SQLite document database (created if missing)")
	return cmd
}
