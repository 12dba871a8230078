// Package sources selects the document source a command reads from.
package sources

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/icdmap/internal/sources/files"
	"github.com/agentstation/icdmap/internal/sources/sqlite"
	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/errors"
)

// Selection names where the catalog comes from. Exactly one field is set.
type Selection struct {
	Models string // model tree root
	DB     string // SQLite document database
}

// String names the selected source for logs.
func (s Selection) String() string {
	if s.DB != "" {
		return "sqlite:" + s.DB
	}
	return s.Models
}

// Open returns the selected source and a function releasing it.
func Open(sel Selection, logger *zerolog.Logger) (catalog.Source, func() error, error) {
	switch {
	case sel.Models != "" && sel.DB != "":
		return nil, nil, errors.NewValidationError("source", nil, "--models and --db are mutually exclusive")
	case sel.DB != "":
		store, err := sqlite.Open(sel.DB, sqlite.MustExist(), sqlite.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case sel.Models != "":
		return files.New(sel.Models), func() error { return nil }, nil
	default:
		return nil, nil, errors.NewValidationError("source", nil, "either --models or --db is required")
	}
}
