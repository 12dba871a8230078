// Package version implements the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/icdmap/cmd/application"
)

// NewCommand creates the version command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for icdmap CLI.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "icdmap version %s\n", app.Version())
			fmt.Fprintf(w, "commit: %s\n", app.Commit())
			fmt.Fprintf(w, "built: %s\n", app.Date())
			fmt.Fprintf(w, "built by: %s\n", app.BuiltBy())
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
