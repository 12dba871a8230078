// Package sqlite stores declaration documents in a SQLite database, one
// row per collection named <subsystem>.<component>.<kind>.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/agentstation/icdmap/pkg/catalog"
	"github.com/agentstation/icdmap/pkg/constants"
	"github.com/agentstation/icdmap/pkg/errors"
	"github.com/agentstation/icdmap/pkg/icd"
	"github.com/agentstation/icdmap/pkg/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	name   TEXT PRIMARY KEY,
	format TEXT NOT NULL,
	body   BLOB NOT NULL,
	origin TEXT NOT NULL DEFAULT ''
)`

// collectionName matches <subsystem>.<component>.<kind>; the component
// part may itself contain dots.
var collectionName = regexp.MustCompile(`^(\w+)\.(.+)\.(component|publish|subscribe|command)$`)

// Store is a document database backed by SQLite.
type Store struct {
	conn   *sql.DB
	path   string
	logger *zerolog.Logger
}

// Option configures a Store.
type Option func(*config)

type config struct {
	logger   *zerolog.Logger
	existing bool
}

// WithLogger sets the store logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// MustExist refuses to create a new database file.
func MustExist() Option {
	return func(c *config) {
		c.existing = true
	}
}

// Open opens or creates the database at path.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := &config{logger: logging.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	if _, err := os.Stat(path); err != nil {
		if cfg.existing || !os.IsNotExist(err) {
			return nil, errors.WrapIO("open", path, err)
		}
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return nil, errors.WrapIO("create", dir, err)
			}
		}
		cfg.logger.Info().Str("path", path).Msg("Creating new document database")
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{conn: conn, path: path, logger: cfg.logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CollectionName returns the collection a document is stored under.
func CollectionName(key icd.ComponentKey, kind icd.DocumentKind) string {
	return key.Subsystem + constants.CollectionSeparator + key.Component + constants.CollectionSeparator + string(kind)
}

// Put stores doc, replacing any previous body for the same collection.
func (s *Store) Put(ctx context.Context, doc *icd.Document) error {
	return s.put(ctx, s.conn, doc)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) put(ctx context.Context, db execer, doc *icd.Document) error {
	name := CollectionName(doc.Key, doc.Kind)
	if !collectionName.MatchString(name) {
		return errors.NewValidationError("collection", name, "not a <subsystem>.<component>.<kind> name")
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO collections (name, format, body, origin) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET format = excluded.format, body = excluded.body, origin = excluded.origin`,
		name, string(doc.Format), doc.Data, doc.Origin)
	if err != nil {
		return fmt.Errorf("storing collection %s: %w", name, err)
	}
	return nil
}

// Ingest copies every document of src into the store in one transaction
// and returns the number stored.
func (s *Store) Ingest(ctx context.Context, src catalog.Source) (int, error) {
	docs, err := src.Documents(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	stored := 0
	for _, doc := range docs {
		if err := s.put(ctx, tx, doc); err != nil {
			if errors.IsValidationError(err) {
				s.logger.Warn().Err(err).Str("origin", doc.Origin).Msg("Skipping document")
				continue
			}
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
			return 0, err
		}
		stored++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug().Int("documents", stored).Str("path", s.path).Msg("Ingested documents")
	return stored, nil
}

// Collections returns every collection name, sorted.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Documents implements catalog.Source. Collections whose name does not
// follow the naming pattern are ignored.
func (s *Store) Documents(ctx context.Context) ([]*icd.Document, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT name, format, body FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("reading collections: %w", err)
	}
	defer rows.Close()

	var docs []*icd.Document
	for rows.Next() {
		var (
			name, format string
			body         []byte
		)
		if err := rows.Scan(&name, &format, &body); err != nil {
			return nil, err
		}
		m := collectionName.FindStringSubmatch(name)
		if m == nil {
			s.logger.Debug().Str("collection", name).Msg("Ignoring collection")
			continue
		}
		kind, _ := icd.ParseDocumentKind(m[3])
		docs = append(docs, &icd.Document{
			Key:    icd.ComponentKey{Subsystem: m[1], Component: m[2]},
			Kind:   kind,
			Origin: name,
			Format: icd.Format(format),
			Data:   body,
		})
	}
	return docs, rows.Err()
}
