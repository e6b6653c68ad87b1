package sessiondb

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// sessionsLayout is stored in the database header as PRAGMA user_version.
// Zero means the file has never been initialized.
const sessionsLayout = 1

// ErrSchemaMismatch is returned when sessions.db was written with a different
// table layout than this build reads.
var ErrSchemaMismatch = errors.New("sessions database layout is not supported")

func (s *Store) initSchema(ctx context.Context) error {
	layout, err := s.layoutVersion(ctx)
	if err != nil {
		return err
	}
	switch layout {
	case sessionsLayout:
		return nil
	case 0:
		s.logger.Debug("creating session tables", "path", s.path, "layout", sessionsLayout)
		return s.applyLayout(ctx)
	default:
		return fmt.Errorf("%w: %s uses layout %d, this build reads layout %d; move the file aside to start a fresh history",
			ErrSchemaMismatch, s.path, layout, sessionsLayout)
	}
}

func (s *Store) layoutVersion(ctx context.Context) (int, error) {
	var layout int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&layout); err != nil {
		return 0, fmt.Errorf("read layout of %s: %w", s.path, err)
	}
	return layout, nil
}

// applyLayout creates the tables and stamps the header in one transaction.
func (s *Store) applyLayout(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start layout transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create session tables: %w", err)
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", sessionsLayout)); err != nil {
		return fmt.Errorf("stamp layout %d: %w", sessionsLayout, err)
	}
	return tx.Commit()
}
