// Package memory provides an in-process blob store, used as the default
// backend and as the failure-injectable fake in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"cashflow/internal/blob"
)

type Store struct {
	mu    sync.Mutex
	blobs map[string]string

	// FailNext makes the next operation fail with ErrUnavailable.
	// Test hook; zero value means nothing fails.
	FailNext bool
}

func New() *Store {
	return &Store{blobs: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failIfArmed("get", key); err != nil {
		return "", false, err
	}
	v, ok := s.blobs[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failIfArmed("set", key); err != nil {
		return err
	}
	s.blobs[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failIfArmed("delete", key); err != nil {
		return err
	}
	delete(s.blobs, key)
	return nil
}

// Len returns the number of stored blobs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

func (s *Store) failIfArmed(op, key string) error {
	if !s.FailNext {
		return nil
	}
	s.FailNext = false
	return fmt.Errorf("%s %q: %w", op, key, blob.ErrUnavailable)
}

var _ blob.Store = (*Store)(nil)
