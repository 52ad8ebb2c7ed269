package memory

import (
	"context"
	"errors"
	"testing"

	"cashflow/internal/blob"
)

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete absent key should be a no-op: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d blobs", s.Len())
	}
}

func TestFailNext(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.FailNext = true

	if err := s.Set(ctx, "k", "v"); !errors.Is(err, blob.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	// Failure fires once, then the store recovers.
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
}
