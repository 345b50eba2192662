package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"brainflip/internal/kvstore"
)

// The collection lives as one JSON blob under a single key. Two key literals
// exist in the wild because divergent feature branches of the mobile app
// wrote to different names; the underscored one is canonical here and the
// legacy key is migrated forward once, then removed.
const (
	storageKey       = "brain_flip_quizzes"
	legacyStorageKey = "quizzes"
)

// Repository performs read-modify-write over the whole quiz collection.
// There is no cross-operation lock: two racing saves are last-write-wins on
// the entire collection, same as the original app. Callers that need
// isolation serialize their own operations.
type Repository struct {
	store  kvstore.Store
	logger *zap.Logger
}

func NewRepository(store kvstore.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		store:  store,
		logger: logger,
	}
}

// ListQuizzes returns the stored collection. An absent key reads as an empty
// collection, and so does an unparsable blob: a corrupt store must not brick
// the listing screen. Individual elements that fail to decode into the
// structured shape (legacy flat answers, wrong field types) are skipped with
// a warning rather than poisoning their siblings.
func (r *Repository) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	raw, err := r.store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("read quiz collection: %w", err)
	}

	if raw == nil {
		migrated, err := r.migrateLegacyCollection(ctx)
		if err != nil {
			return nil, err
		}
		raw = migrated
	}
	if raw == nil {
		return []Quiz{}, nil
	}

	return r.decodeCollection(raw), nil
}

// SaveQuiz appends the quiz, or replaces the element with the same id when
// isEditing is set. The whole collection is written back in one store write.
func (r *Repository) SaveQuiz(ctx context.Context, item Quiz, isEditing bool) error {
	collection, err := r.ListQuizzes(ctx)
	if err != nil {
		return err
	}

	if isEditing {
		replaced := false
		for idx := range collection {
			if collection[idx].ID == item.ID {
				collection[idx] = item
				replaced = true
				break
			}
		}
		if !replaced {
			return ErrQuizNotFound
		}
	} else {
		collection = append(collection, item)
	}

	return r.writeCollection(ctx, collection)
}

// DeleteQuiz filters the collection to exclude the id and writes it back.
// Deleting an id that is not present is not an error.
func (r *Repository) DeleteQuiz(ctx context.Context, id string) error {
	collection, err := r.ListQuizzes(ctx)
	if err != nil {
		return err
	}

	kept := collection[:0]
	for _, item := range collection {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	return r.writeCollection(ctx, kept)
}

// FindQuiz scans the loaded collection for the id.
func (r *Repository) FindQuiz(ctx context.Context, id string) (Quiz, error) {
	collection, err := r.ListQuizzes(ctx)
	if err != nil {
		return Quiz{}, err
	}

	for _, item := range collection {
		if item.ID == id {
			return item, nil
		}
	}
	return Quiz{}, ErrQuizNotFound
}

func (r *Repository) writeCollection(ctx context.Context, collection []Quiz) error {
	if collection == nil {
		collection = []Quiz{}
	}
	encoded, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode quiz collection: %w", err)
	}
	if err := r.store.Set(ctx, storageKey, encoded); err != nil {
		return fmt.Errorf("write quiz collection: %w", err)
	}
	return nil
}

func (r *Repository) decodeCollection(raw []byte) []Quiz {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		r.logger.Warn("quiz collection is not a JSON array, treating as empty",
			zap.Error(err))
		return []Quiz{}
	}

	collection := make([]Quiz, 0, len(elements))
	for idx, element := range elements {
		var item Quiz
		if err := json.Unmarshal(element, &item); err != nil {
			// Legacy quizzes stored answers as plain strings with a numeric
			// correct index. That shape is rejected here instead of being
			// silently half-supported.
			r.logger.Warn("skipping quiz with unsupported shape",
				zap.Int("index", idx),
				zap.Error(err))
			continue
		}
		if item.ID == "" {
			r.logger.Warn("skipping quiz without id", zap.Int("index", idx))
			continue
		}
		collection = append(collection, item)
	}
	return collection
}

// migrateLegacyCollection moves data stored under the legacy key to the
// canonical one. Runs at most once per store: after a successful rewrite the
// legacy key is removed.
func (r *Repository) migrateLegacyCollection(ctx context.Context) ([]byte, error) {
	raw, err := r.store.Get(ctx, legacyStorageKey)
	if err != nil {
		return nil, fmt.Errorf("read legacy quiz collection: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	if err := r.store.Set(ctx, storageKey, raw); err != nil {
		return nil, fmt.Errorf("migrate legacy quiz collection: %w", err)
	}
	if err := r.store.Remove(ctx, legacyStorageKey); err != nil {
		return nil, fmt.Errorf("remove legacy quiz collection: %w", err)
	}

	r.logger.Info("migrated quiz collection from legacy storage key",
		zap.String("from", legacyStorageKey),
		zap.String("to", storageKey))
	return raw, nil
}
