package session

import "context"

// Store persists sessions. Implementations must be safe for use by a single
// process at a time; cross-process safety is backend specific.
type Store interface {
	// Save inserts or replaces the session with the same id.
	Save(ctx context.Context, s Session) error
	// Load returns nil, nil when no session has the id.
	Load(ctx context.Context, id string) (*Session, error)
	// List returns every readable session ordered by timestamp, oldest first.
	List(ctx context.Context) ([]Session, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	Close() error
}
