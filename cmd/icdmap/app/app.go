// Package app provides the application context and dependency management
// for the icdmap CLI. It centralizes configuration, logging and catalog
// loading so commands receive them through application.Application.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/internal/sources"
	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/logging"
)

// App represents the icdmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value or the configured format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Layout returns the default Graphviz layout.
func (a *App) Layout() string {
	return a.config.Layout
}

// Palette returns the subsystem colors.
func (a *App) Palette() map[string]string {
	return a.config.Palette
}

// DefaultColor returns the color for subsystems outside the palette.
func (a *App) DefaultColor() string {
	return a.config.DefaultColor
}

// SubsystemPrefixes returns the documentation prefix map.
func (a *App) SubsystemPrefixes() map[string]string {
	return a.config.SubsystemPrefixes
}

// Selection fills an empty selection from the configured models or db.
// A selection naming either source is returned unchanged.
func (a *App) Selection(sel sources.Selection) sources.Selection {
	if sel.Models != "" || sel.DB != "" {
		return sel
	}
	return sources.Selection{Models: a.config.Models, DB: a.config.DB}
}

// Catalog opens the selected source and loads it.
func (a *App) Catalog(ctx context.Context, sel sources.Selection) (*catalog.Catalog, error) {
	sel = a.Selection(sel)
	src, closeFn, err := sources.Open(sel, a.logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close catalog source")
		}
	}()

	// Commands attach their operation to the context logger; keep it
	if logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, a.logger)
	}
	return catalog.Load(logging.WithSource(ctx, sel.String()), src)
}

// Shutdown performs graceful shutdown of the application.
// Sources are closed per command, so nothing stays open here.
func (a *App) Shutdown(_ context.Context) error {
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
