// Package session persists the active sign-in under a single well-known
// blob key. It records who is signed in; verifying credentials is the
// identity provider's job, not ours.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cashflow/internal/blob"
)

// Key is the blob key the active session lives under.
const Key = "session"

// ErrStorage marks blob store failures surfaced to callers.
var ErrStorage = errors.New("session storage failure")

// Session is the active sign-in.
type Session struct {
	UserID    string `json:"userId"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type Store struct {
	blobs blob.Store
}

func New(blobs blob.Store) *Store {
	return &Store{blobs: blobs}
}

// Load returns the active session, or nil when none exists. A malformed
// session blob counts as signed out.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	raw, ok, err := s.blobs.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w (%w)", err, ErrStorage)
	}
	if !ok {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.UserID == "" {
		return nil, nil
	}
	return &sess, nil
}

// Save replaces the active session.
func (s *Store) Save(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w (%w)", err, ErrStorage)
	}
	if err := s.blobs.Set(ctx, Key, string(raw)); err != nil {
		return fmt.Errorf("save session: %w (%w)", err, ErrStorage)
	}
	return nil
}

// Clear signs out. Clearing an absent session is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.blobs.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear session: %w (%w)", err, ErrStorage)
	}
	return nil
}
