// Package store provides the canonical keyed store and search indexes
// over chromosomes and genes. It is backed by DuckDB: a single *sql.DB,
// opened either against a file path (persisted) or an empty path
// (in-memory), with schema creation folded into Open.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding the chromosome/gene schema.
// All writes go through the loader; every other component only reads.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at path. An empty path opens an
// in-memory database, useful for tests and for `gcv-loader ... --no-save`.
func Open(path string) (*Store, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for callers (the loader) that need
// direct batch-write access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the filesystem path this store was opened against, or ""
// for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// Checkpoint forces DuckDB to persist in-memory/WAL state to disk. It is
// the save half of the loader's --no-save toggle.
func (s *Store) Checkpoint(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, "CHECKPOINT")
	return err
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(ddl)
	return err
}
