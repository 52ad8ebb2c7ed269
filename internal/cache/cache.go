// Package cache holds rendered exports so repeated downloads of the
// same statement skip the ledger read and re-render. Entries expire on
// a TTL and are invalidated eagerly whenever the underlying ledger
// mutates, so the TTL is a backstop, not the consistency mechanism.
package cache

import (
	"context"
	"time"
)

// Cache is what the HTTP layer programs against.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)

	// DeletePrefix drops every entry whose key starts with prefix and
	// returns how many were dropped. Used to invalidate all of one
	// user's cached statements after a mutation.
	DeletePrefix(prefix string) int

	Size() int
}

// Cleaner is implemented by caches that can shed expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Janitor periodically sweeps expired entries out of registered caches.
type Janitor struct {
	caches   []Cleaner
	interval time.Duration
}

func NewJanitor(interval time.Duration) *Janitor {
	return &Janitor{interval: interval}
}

// Register adds a cache to the sweep. Not safe to call after Run starts.
func (j *Janitor) Register(c Cleaner) {
	j.caches = append(j.caches, c)
}

// Run sweeps until ctx is cancelled. Always returns nil so it can sit
// in an errgroup without tearing the group down on shutdown.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range j.caches {
				c.CleanExpired()
			}
		case <-ctx.Done():
			return nil
		}
	}
}
