// Package session keeps the working sets edited through the HTTP API.
//
// A [Session] holds the records loaded from one uploaded spreadsheet plus the
// operator's edits. Sessions expire after a fixed lifetime. Three [Store]
// implementations exist:
//   - [MemoryStore]: single process, the default for `eventlayout serve`
//   - [FileStore]: JSON files, survives restarts
//   - [RedisStore]: shared between server instances
//
// All mutation goes through [Store.Update], which serialises concurrent
// edits of the same session:
//
//	sess, err := store.Update(ctx, id, func(s *session.Session) error {
//	    layout.Recalculate(s.Records)
//	    return nil
//	})
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 24 * time.Hour

// Session is one operator working set.
type Session struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Records   []*field.Record `json:"records"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// New creates a session with a random UUID for records loaded from source.
func New(source string, records []*field.Record, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Source:    source,
		Records:   records,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Record returns the record read from the given sheet line, or nil.
func (s *Session) Record(line int) *field.Record {
	for _, r := range s.Records {
		if r != nil && r.Line == line {
			return r
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Records = make([]*field.Record, 0, len(s.Records))
	for _, r := range s.Records {
		if r != nil {
			c.Records = append(c.Records, r.Clone())
		}
	}
	return &c
}

// ValidID reports whether id has the shape of a session ID. Stores use it
// to reject IDs that could escape their key space.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a copy of a session.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any previous version.
	Set(ctx context.Context, sess *Session) error

	// Update applies fn to the stored session while holding its lock and
	// stores the result. An error from fn aborts the update. A missing or
	// expired session yields an ErrCodeSessionNotFound error.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op).
	Cleanup(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found or expired", id)
}
