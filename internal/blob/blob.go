// Package blob defines the key-value persistence port the ledger core
// writes through. Values are opaque text blobs; the core owns their shape.
package blob

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the underlying store could not be reached.
// Implementations wrap it so callers can test with errors.Is.
var ErrUnavailable = errors.New("blob store unavailable")

// Store is the outbound port for durable string-keyed storage.
type (
	Store interface {
		// Get returns the blob under key. ok is false when the key is
		// absent; err is reserved for real storage failures.
		Get(ctx context.Context, key string) (value string, ok bool, err error)

		// Set writes the blob under key, replacing any previous value.
		Set(ctx context.Context, key, value string) error

		// Delete removes the key. Deleting an absent key is not an error.
		Delete(ctx context.Context, key string) error
	}
)
