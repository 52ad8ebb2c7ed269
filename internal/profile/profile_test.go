package profile

import (
	"context"
	"errors"
	"testing"

	"cashflow/internal/blob/memory"
)

func TestGetAbsentReturnsDefaults(t *testing.T) {
	store := New(memory.New())

	p, err := store.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Currency != DefaultCurrency {
		t.Fatalf("currency = %q, want %q", p.Currency, DefaultCurrency)
	}
	if p.FirstName != "" || p.ProfilePicture != nil {
		t.Fatalf("absent profile not zero: %+v", p)
	}
}

func TestSaveAndGet(t *testing.T) {
	blobs := memory.New()
	store := New(blobs)
	ctx := context.Background()

	pic := "https://example.com/a.png"
	in := Profile{FirstName: "Ada", LastName: "Lovelace", ProfilePicture: &pic, Currency: "EUR"}
	if err := store.Save(ctx, "ada", in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := store.Get(ctx, "ada")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.FirstName != "Ada" || out.Currency != "EUR" {
		t.Fatalf("round trip = %+v", out)
	}
	if out.ProfilePicture == nil || *out.ProfilePicture != pic {
		t.Fatalf("picture = %v", out.ProfilePicture)
	}

	// Each user's profile lives under its own key.
	if _, ok, _ := blobs.Get(ctx, "data:profile_ada"); !ok {
		t.Fatal("profile not stored under its per-user key")
	}
}

func TestGetMergesDefaultCurrency(t *testing.T) {
	blobs := memory.New()
	store := New(blobs)
	ctx := context.Background()

	if err := store.Save(ctx, "bob", Profile{FirstName: "Bob"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p, err := store.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Currency != DefaultCurrency {
		t.Fatalf("currency = %q, want default", p.Currency)
	}
	if p.FirstName != "Bob" {
		t.Fatalf("stored fields lost: %+v", p)
	}
}

func TestGetCorruptBlobRecovers(t *testing.T) {
	blobs := memory.New()
	ctx := context.Background()
	if err := blobs.Set(ctx, Key("eve"), "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, err := New(blobs).Get(ctx, "eve")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Currency != DefaultCurrency || p.FirstName != "" {
		t.Fatalf("corrupt profile should reset to defaults, got %+v", p)
	}
}

func TestGetStorageFailure(t *testing.T) {
	blobs := memory.New()
	blobs.FailNext = true

	_, err := New(blobs).Get(context.Background(), "alice")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
}
