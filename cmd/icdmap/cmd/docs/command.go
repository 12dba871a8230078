// Package docs implements the docs command.
package docs

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/icdmap/cmd/application"
	"github.com/agentstation/icdmap/pkg/docs"
	"github.com/agentstation/icdmap/pkg/logging"
)

// NewCommand creates the docs command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "docs <model-tree> <component> <output-dir>",
		GroupID: "core",
		Short:   "Write Markdown documentation fragments for a component",
		Long: `Write Markdown fragments describing one component of a model tree:
component.md, publishTelem.md, publishEvent.md, alarm.md,
subscribeTelem.md, subscribeEvent.md and command.md.

Fragments for missing model files or sections contain N/A.`,
		Example: `  icdmap docs ICD-Model-Files/IRIS-Model-Files rotator docs/rotator`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "docs")
			g := docs.New(docs.WithSubsystemPrefixes(app.SubsystemPrefixes()))
			return g.Generate(ctx, filepath.Join(args[0], args[1]), args[2])
		},
	}
}
