package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/internal/sources"
	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	CatalogFunc           func(ctx context.Context, sel sources.Selection) (*catalog.Catalog, error)
	SelectionFunc         func(sel sources.Selection) sources.Selection
	LoggerFunc            func() *zerolog.Logger
	OutputFormatFunc      func() string
	LayoutFunc            func() string
	PaletteFunc           func() map[string]string
	DefaultColorFunc      func() string
	SubsystemPrefixesFunc func() map[string]string
	VersionFunc           func() string
	CommitFunc            func() string
	DateFunc              func() string
	BuiltByFunc           func() string
}

var _ Application = (*Mock)(nil)

// Catalog loads from the selected source when CatalogFunc is nil.
func (m *Mock) Catalog(ctx context.Context, sel sources.Selection) (*catalog.Catalog, error) {
	if m.CatalogFunc != nil {
		return m.CatalogFunc(ctx, sel)
	}
	src, closeFn, err := sources.Open(m.Selection(sel), m.Logger())
	if err != nil {
		return nil, err
	}
	defer closeFn() //nolint:errcheck
	return catalog.Load(ctx, src, catalog.WithLogger(m.Logger()))
}

// Selection returns sel unchanged unless SelectionFunc is set.
func (m *Mock) Selection(sel sources.Selection) sources.Selection {
	if m.SelectionFunc != nil {
		return m.SelectionFunc(sel)
	}
	return sel
}

// Logger returns a nop logger unless LoggerFunc is set.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns "table" unless OutputFormatFunc is set.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Layout returns the default layout unless LayoutFunc is set.
func (m *Mock) Layout() string {
	if m.LayoutFunc != nil {
		return m.LayoutFunc()
	}
	return constants.DefaultLayout
}

// Palette returns the default palette unless PaletteFunc is set.
func (m *Mock) Palette() map[string]string {
	if m.PaletteFunc != nil {
		return m.PaletteFunc()
	}
	return constants.DefaultPalette
}

// DefaultColor returns the default node color unless DefaultColorFunc is set.
func (m *Mock) DefaultColor() string {
	if m.DefaultColorFunc != nil {
		return m.DefaultColorFunc()
	}
	return constants.DefaultNodeColor
}

// SubsystemPrefixes returns the default prefixes unless SubsystemPrefixesFunc is set.
func (m *Mock) SubsystemPrefixes() map[string]string {
	if m.SubsystemPrefixesFunc != nil {
		return m.SubsystemPrefixesFunc()
	}
	return constants.DefaultSubsystemPrefixes
}

// Version returns "test" unless VersionFunc is set.
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns "unknown" unless CommitFunc is set.
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns "unknown" unless DateFunc is set.
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns "test" unless BuiltByFunc is set.
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}
