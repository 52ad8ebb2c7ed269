// Package profile stores per-user profile blobs alongside the ledger.
// The profile supplies the currency code that exports and statements
// are formatted with.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cashflow/internal/blob"
)

// ErrStorage marks blob store failures surfaced to callers.
var ErrStorage = errors.New("profile storage failure")

// KeyPrefix prefixes the per-user profile key in the blob store.
const KeyPrefix = "data:profile_"

// DefaultCurrency is assumed whenever a profile has no currency set.
const DefaultCurrency = "USD"

// Key returns the blob key holding userID's profile.
func Key(userID string) string {
	return KeyPrefix + userID
}

// Profile is everything a user tells us about themselves. All fields
// are optional; Currency falls back to DefaultCurrency on read.
type Profile struct {
	FirstName      string  `json:"firstName,omitempty"`
	LastName       string  `json:"lastName,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Birthday       *string `json:"birthday,omitempty"`
	Currency       string  `json:"currency,omitempty"`
}

type Store struct {
	blobs blob.Store
}

func New(blobs blob.Store) *Store {
	return &Store{blobs: blobs}
}

// Get returns userID's profile with defaults merged in. Absent or
// malformed blobs yield the default profile rather than an error.
func (s *Store) Get(ctx context.Context, userID string) (Profile, error) {
	raw, ok, err := s.blobs.Get(ctx, Key(userID))
	if err != nil {
		return Profile{}, fmt.Errorf("load profile for %s: %w (%w)", userID, err, ErrStorage)
	}
	var p Profile
	if ok {
		// Corrupt profiles are recovered from, not propagated.
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			p = Profile{}
		}
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	return p, nil
}

// Save replaces userID's whole profile blob.
func (s *Store) Save(ctx context.Context, userID string, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile for %s: %w (%w)", userID, err, ErrStorage)
	}
	if err := s.blobs.Set(ctx, Key(userID), string(raw)); err != nil {
		return fmt.Errorf("save profile for %s: %w (%w)", userID, err, ErrStorage)
	}
	return nil
}
