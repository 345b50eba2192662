package favorites

import (
	"context"
	"testing"

	"brainflip/internal/kvstore"
)

func TestToggleTwiceReturnsToOriginalLength(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore(), nil)
	ctx := context.Background()

	before, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	added, err := ledger.Toggle(ctx, "Q1", "A1")
	if err != nil {
		t.Fatalf("first Toggle failed: %v", err)
	}
	if !added {
		t.Fatalf("first Toggle = false, want true")
	}

	removed, err := ledger.Toggle(ctx, "Q1", "A1")
	if err != nil {
		t.Fatalf("second Toggle failed: %v", err)
	}
	if removed {
		t.Fatalf("second Toggle = true, want false")
	}

	after, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("ledger length changed after toggle pair: %d -> %d", len(before), len(after))
	}
}

func TestIsFavoriteIgnoresAnswerText(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore(), nil)
	ctx := context.Background()

	if _, err := ledger.Toggle(ctx, "Q1", "A1"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	favorite, err := ledger.IsFavorite(ctx, "Q1")
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if !favorite {
		t.Fatalf("expected Q1 to be a favorite")
	}

	// Identity is the question text only: toggling the same question with a
	// different answer removes the existing entry instead of adding a second.
	stillFavorite, err := ledger.Toggle(ctx, "Q1", "completely different answer")
	if err != nil {
		t.Fatalf("Toggle with different answer failed: %v", err)
	}
	if stillFavorite {
		t.Fatalf("same question with different answer should have been treated as the same favorite")
	}

	entries, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty ledger, got %+v", entries)
	}
}

func TestTogglePreservesOtherEntries(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore(), nil)
	ctx := context.Background()

	pairs := [][2]string{{"Q1", "A1"}, {"Q2", "A2"}, {"Q3", "A3"}}
	for _, pair := range pairs {
		if _, err := ledger.Toggle(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("Toggle %s failed: %v", pair[0], err)
		}
	}

	if _, err := ledger.Toggle(ctx, "Q2", "A2"); err != nil {
		t.Fatalf("removal Toggle failed: %v", err)
	}

	entries, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Question != "Q1" || entries[1].Question != "Q3" {
		t.Fatalf("removal disturbed siblings or order: %+v", entries)
	}
}

func TestListUnparsableBlobReadsAsEmpty(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, "favorites", []byte("not-json")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	ledger := NewLedger(store, nil)
	entries, err := ledger.List(ctx)
	if err != nil {
		t.Fatalf("List on corrupt blob failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty ledger for corrupt blob, got %+v", entries)
	}
}

func TestIsFavoriteOnEmptyLedger(t *testing.T) {
	ledger := NewLedger(kvstore.NewMemoryStore(), nil)

	favorite, err := ledger.IsFavorite(context.Background(), "Q1")
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if favorite {
		t.Fatalf("empty ledger reported a favorite")
	}
}
