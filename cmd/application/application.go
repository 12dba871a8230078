// Package application provides the application interface for icdmap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            cat, err := app.Catalog(cmd.Context(), sources.Selection{Models: dir})
//	            if err != nil {
//	                return err
//	            }
//	            // ... use catalog
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    CatalogFunc: func(ctx context.Context, sel sources.Selection) (*catalog.Catalog, error) {
//	        return catalog.Load(ctx, memory.New())
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/internal/sources"
	"github.com/agentstation/icdmap/pkg/catalog"
)

// Application provides the application interface that commands need.
// The App struct from cmd/icdmap/app implements this interface.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Application interface {
	// Catalog loads the catalog from the selected source. Empty selection
	// fields fall back to the configured models and db settings.
	Catalog(ctx context.Context, sel sources.Selection) (*catalog.Catalog, error)

	// Selection fills empty fields of sel from configuration.
	Selection(sel sources.Selection) sources.Selection

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Layout returns the default Graphviz layout engine.
	Layout() string

	// Palette returns the subsystem to color map for diagrams.
	Palette() map[string]string

	// DefaultColor returns the color for subsystems outside the palette.
	DefaultColor() string

	// SubsystemPrefixes returns the subsystem to prefix map for documentation.
	SubsystemPrefixes() map[string]string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
