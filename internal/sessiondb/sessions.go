package sessiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gedcompare/internal/logging"
	"gedcompare/internal/session"
)

var _ session.Store = (*Store)(nil)

// Save inserts s or replaces the stored session with the same id.
func (s *Store) Save(ctx context.Context, sess session.Session) error {
	if sess.ID == "" {
		return errors.New("save session: id is empty")
	}
	payload, err := session.Marshal(sess)
	if err != nil {
		return err
	}
	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO sessions (id, created_at, updated_at, left_filename, right_filename, payload)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            updated_at = excluded.updated_at,
            left_filename = excluded.left_filename,
            right_filename = excluded.right_filename,
            payload = excluded.payload`,
		sess.ID,
		sess.Timestamp,
		time.Now().UTC().Format(time.RFC3339Nano),
		sess.LeftFilename,
		sess.RightFilename,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// Load fetches a session by id. It returns nil, nil when absent.
func (s *Store) Load(ctx context.Context, id string) (*session.Session, error) {
	ctx = ensureContext(ctx)
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM sessions WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	sess, err := session.Unmarshal([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return &sess, nil
}

// List returns every decodable session, oldest first. Rows that fail to
// decode are logged and skipped.
func (s *Store) List(ctx context.Context) ([]session.Session, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT id, payload FROM sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]session.Session, 0)
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess, err := session.Unmarshal([]byte(payload))
		if err != nil {
			logging.WarnWithContext(s.logger, "skipping unreadable session row", "session_decode_failed",
				logging.String(logging.FieldSessionID, id),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete the session or restore it from an export"),
			)
			continue
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	session.SortByTimestamp(sessions)
	return sessions, nil
}

// Delete removes the session with id. Unknown ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.execWithRetry(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
