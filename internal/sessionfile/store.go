package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"gedcompare/internal/config"
	"gedcompare/internal/fileutil"
	"gedcompare/internal/logging"
	"gedcompare/internal/session"
)

const (
	lockSuffix    = ".lock"
	corruptSuffix = ".corrupt"
	lockRetry     = 25 * time.Millisecond
)

var _ session.Store = (*Store)(nil)

// Store keeps every session in one JSON array file.
type Store struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open prepares a store at <data_dir>/sessions.json. The file is created on
// the first Save.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("sessionfile: config is nil")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return New(cfg.SessionFilePath(), logger), nil
}

// New returns a store backed by path.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		lock:   flock.New(path + lockSuffix),
		logger: logging.NewComponentLogger(logger, "sessionfile"),
	}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases any lock still held.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Close()
}

// Save inserts sess or replaces the stored session with the same id.
func (s *Store) Save(ctx context.Context, sess session.Session) error {
	if sess.ID == "" {
		return errors.New("save session: id is empty")
	}
	return s.update(ctx, func(sessions []session.Session) []session.Session {
		for i := range sessions {
			if sessions[i].ID == sess.ID {
				sessions[i] = sess
				return sessions
			}
		}
		return append(sessions, sess)
	})
}

// Delete removes the session with id. Unknown ids are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.update(ctx, func(sessions []session.Session) []session.Session {
		out := sessions[:0]
		for _, sess := range sessions {
			if sess.ID != id {
				out = append(out, sess)
			}
		}
		return out
	})
}

// Load returns the session with id, or nil, nil when absent.
func (s *Store) Load(ctx context.Context, id string) (*session.Session, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// List returns the stored sessions oldest first. A malformed file yields an
// empty list.
func (s *Store) List(ctx context.Context) ([]session.Session, error) {
	ok, err := s.lock.TryRLockContext(ensureContext(ctx), lockRetry)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.path, err)
	}
	if ok {
		defer func() { _ = s.lock.Unlock() }()
	}

	sessions, _, err := s.read()
	if err != nil {
		return nil, err
	}
	session.SortByTimestamp(sessions)
	return sessions, nil
}

func (s *Store) update(ctx context.Context, mutate func([]session.Session) []session.Session) error {
	ok, err := s.lock.TryLockContext(ensureContext(ctx), lockRetry)
	if err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	if !ok {
		return fmt.Errorf("lock %s: not acquired", s.path)
	}
	defer func() { _ = s.lock.Unlock() }()

	sessions, corrupt, err := s.read()
	if err != nil {
		return err
	}
	if corrupt {
		moved, err := fileutil.MoveAside(s.path, corruptSuffix)
		if err != nil {
			return err
		}
		logging.WarnWithContext(s.logger, "moved malformed session file aside", "session_file_corrupt",
			logging.String("moved_to", moved),
			logging.String(logging.FieldErrorHint, "inspect the moved file to recover sessions by hand"),
		)
	}

	sessions = mutate(sessions)
	session.SortByTimestamp(sessions)
	return s.write(sessions)
}

// read loads the file. A missing file is empty; an undecodable one is
// reported as corrupt with no sessions. Individual entries that fail to
// decode are skipped.
func (s *Store) read() ([]session.Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []session.Session{}, false, nil
		}
		return nil, false, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return []session.Session{}, false, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.WarnWithContext(s.logger, "session file is malformed", "session_file_corrupt",
			logging.String("path", s.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the file will be moved aside on the next save"),
		)
		return []session.Session{}, true, nil
	}

	sessions := make([]session.Session, 0, len(raw))
	for idx, entry := range raw {
		sess, err := session.Unmarshal(entry)
		if err != nil {
			logging.WarnWithContext(s.logger, "skipping unreadable session entry", "session_decode_failed",
				logging.Int("index", idx),
				logging.Error(err),
			)
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, false, nil
}

func (s *Store) write(sessions []session.Session) error {
	docs := make([]json.RawMessage, 0, len(sessions))
	for _, sess := range sessions {
		data, err := session.Marshal(sess)
		if err != nil {
			return err
		}
		docs = append(docs, data)
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
