// Package flashcards manages the question/answer card deck stored under the
// bootstrap "questions" key. Cards are independent of user-authored quizzes.
package flashcards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brainflip/internal/kvstore"
)

const storageKey = "questions"

var (
	ErrNoCards    = errors.New("no flashcards stored")
	ErrEmptyField = errors.New("question and answer are both required")
)

// Card is one flashcard: a prompt and its answer.
type Card struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Deck does read-modify-write over the whole card collection, newest first,
// matching how the mobile app prepended new cards.
type Deck struct {
	store  kvstore.Store
	logger *zap.Logger
	pick   func(n int) int
}

func NewDeck(store kvstore.Store, logger *zap.Logger) *Deck {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deck{
		store:  store,
		logger: logger,
		pick:   rand.Intn,
	}
}

// List returns the stored cards, newest first. Absent or unparsable data
// reads as an empty deck.
func (d *Deck) List(ctx context.Context) ([]Card, error) {
	raw, err := d.store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("read flashcards: %w", err)
	}
	if raw == nil {
		return []Card{}, nil
	}

	var cards []Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		d.logger.Warn("flashcards blob unparsable, treating as empty", zap.Error(err))
		return []Card{}, nil
	}
	if cards == nil {
		cards = []Card{}
	}
	return cards, nil
}

// Add stores a new card at the front of the deck. Both fields must be
// non-empty after trimming.
func (d *Deck) Add(ctx context.Context, question, answer string) (Card, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return Card{}, ErrEmptyField
	}

	cards, err := d.List(ctx)
	if err != nil {
		return Card{}, err
	}

	card := Card{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   answer,
	}
	cards = append([]Card{card}, cards...)

	if err := d.write(ctx, cards); err != nil {
		return Card{}, err
	}
	return card, nil
}

// Import prepends a batch of cards, assigning ids to any card without one.
// Cards whose question already exists in the deck are skipped. Returns how
// many cards were stored.
func (d *Deck) Import(ctx context.Context, incoming []Card) (int, error) {
	existing, err := d.List(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, card := range existing {
		seen[card.Question] = struct{}{}
	}

	fresh := make([]Card, 0, len(incoming))
	for _, card := range incoming {
		card.Question = strings.TrimSpace(card.Question)
		card.Answer = strings.TrimSpace(card.Answer)
		if card.Question == "" || card.Answer == "" {
			continue
		}
		if _, dup := seen[card.Question]; dup {
			continue
		}
		if card.ID == "" {
			card.ID = uuid.NewString()
		}
		seen[card.Question] = struct{}{}
		fresh = append(fresh, card)
	}

	if len(fresh) == 0 {
		return 0, nil
	}
	if err := d.write(ctx, append(fresh, existing...)); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

// Random picks a card, never returning excludeID twice in a row while more
// than one card exists.
func (d *Deck) Random(ctx context.Context, excludeID string) (Card, error) {
	cards, err := d.List(ctx)
	if err != nil {
		return Card{}, err
	}
	if len(cards) == 0 {
		return Card{}, ErrNoCards
	}
	if len(cards) == 1 {
		return cards[0], nil
	}

	for {
		card := cards[d.pick(len(cards))]
		if card.ID != excludeID {
			return card, nil
		}
	}
}

func (d *Deck) write(ctx context.Context, cards []Card) error {
	encoded, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode flashcards: %w", err)
	}
	if err := d.store.Set(ctx, storageKey, encoded); err != nil {
		return fmt.Errorf("write flashcards: %w", err)
	}
	return nil
}
