package session

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalid reports a decoded session that cannot be used.
var ErrInvalid = errors.New("invalid session")

// Marshal encodes s in the persisted session document format.
func Marshal(s Session) ([]byte, error) {
	data, err := json.Marshal(s.Normalize())
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return data, nil
}

// Unmarshal decodes a persisted session document.
func Unmarshal(data []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if s.ID == "" {
		return Session{}, fmt.Errorf("%w: missing id", ErrInvalid)
	}
	return s.Normalize(), nil
}

// SortByTimestamp orders sessions oldest first, breaking ties by id.
func SortByTimestamp(sessions []Session) {
	slices.SortStableFunc(sessions, func(a, b Session) int {
		return cmp.Or(cmp.Compare(a.Timestamp, b.Timestamp), strings.Compare(a.ID, b.ID))
	})
}
