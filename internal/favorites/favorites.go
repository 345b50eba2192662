// Package favorites keeps the bookmarked flashcard pairs. The ledger is a
// separate collection from the quiz store and has no relation to quiz
// entities.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"brainflip/internal/kvstore"
)

const storageKey = "favorites"

// Entry is one bookmarked card. Identity is the question text alone: two
// cards with the same question collapse into one favorite, as the mobile
// app always behaved.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Ledger does read-modify-write over the whole favorites collection, with
// the same last-write-wins caveat as the quiz repository.
type Ledger struct {
	store  kvstore.Store
	logger *zap.Logger
}

func NewLedger(store kvstore.Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		store:  store,
		logger: logger,
	}
}

// List returns the stored favorites. Absent or unparsable data reads as an
// empty ledger.
func (l *Ledger) List(ctx context.Context) ([]Entry, error) {
	raw, err := l.store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	if raw == nil {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.logger.Warn("favorites blob unparsable, treating as empty", zap.Error(err))
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Toggle flips membership for the question. It reports whether the pair is
// a favorite after the call: true when it was just added, false when it was
// just removed.
func (l *Ledger) Toggle(ctx context.Context, question, answer string) (bool, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return false, err
	}

	kept := entries[:0]
	removed := false
	for _, entry := range entries {
		if entry.Question == question {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}

	favorite := false
	if !removed {
		kept = append(kept, Entry{Question: question, Answer: answer})
		favorite = true
	}

	if err := l.write(ctx, kept); err != nil {
		return false, err
	}
	return favorite, nil
}

// IsFavorite checks membership by question text only.
func (l *Ledger) IsFavorite(ctx context.Context, question string) (bool, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if entry.Question == question {
			return true, nil
		}
	}
	return false, nil
}

func (l *Ledger) write(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := l.store.Set(ctx, storageKey, encoded); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}
