package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/legumeinfo/gcv/internal/apperr"
)

// WriteVersion sets the stored schema version and compatibility set. The
// loader calls it at the end of every load that is not NoSave.
func (s *Store) WriteVersion(ctx context.Context, version string, compatible []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin version write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_meta (key, value) VALUES ('GCV_SCHEMA_VERSION', ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, version); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_compatible_versions`); err != nil {
		return fmt.Errorf("clear compatible versions: %w", err)
	}
	for _, v := range compatible {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_compatible_versions (version) VALUES (?)`, v); err != nil {
			return fmt.Errorf("write compatible version %q: %w", v, err)
		}
	}

	return tx.Commit()
}

// Version returns the stored schema version, or "" if none has been
// written yet (a brand new store).
func (s *Store) Version(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM schema_meta WHERE key = 'GCV_SCHEMA_VERSION'`).Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// CheckCompatible reads the stored schema version and refuses to proceed
// if it is not in compatibleVersions. A store with no version written yet
// is treated as compatible (nothing has been loaded).
func (s *Store) CheckCompatible(ctx context.Context, compatibleVersions []string) error {
	version, err := s.Version(ctx)
	if err != nil {
		return apperr.DependencyUnavailable("store.CheckCompatible", err)
	}
	if version == "" {
		return nil
	}
	for _, v := range compatibleVersions {
		if v == version {
			return nil
		}
	}
	return apperr.SchemaVersionMismatch("store.CheckCompatible",
		fmt.Errorf("stored schema version %q is not in compatible set %v", version, compatibleVersions))
}
