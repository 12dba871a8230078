package catalog

import (
	"github.com/rs/zerolog"
)

// options configures a load.
type options struct {
	logger *zerolog.Logger
}

// Option is a functional option for Load.
type Option func(*options)

// defaultOptions leaves the logger unset so Load falls back to the
// logger carried by the context.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger that receives per-document diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
