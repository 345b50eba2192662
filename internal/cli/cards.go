package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"brainflip/internal/flashcards"
	"brainflip/internal/opentdb"
)

func (a *App) runCards(ctx context.Context, out io.Writer) error {
	cards, err := a.deck.List(ctx)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(out, "No flashcards yet. Use 'add' or 'seed' to create some.")
		return nil
	}

	fmt.Fprintf(out, "%d flashcards, newest first:\n", len(cards))
	for idx, card := range cards {
		fmt.Fprintf(out, "%d. %s\n", idx+1, card.Question)
	}
	return nil
}

func (a *App) runAddCard(ctx context.Context, reader *bufio.Reader, out io.Writer) error {
	question, err := promptLine(reader, out, "Question: ")
	if err != nil {
		return err
	}
	answer, err := promptLine(reader, out, "Answer: ")
	if err != nil {
		return err
	}

	card, err := a.deck.Add(ctx, question, answer)
	if errors.Is(err, flashcards.ErrEmptyField) {
		fmt.Fprintln(out, "Both question and answer are required.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Added card %s\n", card.ID)
	return nil
}

// runRandomCard keeps dealing cards until the user stops, never showing the
// same card twice in a row.
func (a *App) runRandomCard(ctx context.Context, reader *bufio.Reader, out io.Writer) error {
	lastID := ""
	for {
		card, err := a.deck.Random(ctx, lastID)
		if errors.Is(err, flashcards.ErrNoCards) {
			fmt.Fprintln(out, "No flashcards yet. Use 'add' or 'seed' to create some.")
			return nil
		}
		if err != nil {
			return err
		}
		lastID = card.ID

		fmt.Fprintf(out, "\n%s\n", card.Question)

		reveal, err := promptYesNo(reader, out, "Reveal the answer? (yes/no): ")
		if err != nil {
			return err
		}
		if reveal {
			fmt.Fprintf(out, "%s\n", card.Answer)
		}

		favorite, err := promptYesNo(reader, out, "Toggle favorite? (yes/no): ")
		if err != nil {
			return err
		}
		if favorite {
			nowFavorite, toggleErr := a.favorites.Toggle(ctx, card.Question, card.Answer)
			if toggleErr != nil {
				return toggleErr
			}
			if nowFavorite {
				fmt.Fprintln(out, "Added to favorites.")
			} else {
				fmt.Fprintln(out, "Removed from favorites.")
			}
		}

		again, err := promptYesNo(reader, out, "Another card? (yes/no): ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (a *App) runFavorites(ctx context.Context, out io.Writer) error {
	entries, err := a.favorites.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No favorites yet.")
		return nil
	}

	fmt.Fprintf(out, "%d favorites:\n", len(entries))
	for idx, entry := range entries {
		fmt.Fprintf(out, "%d. %s\n   %s\n", idx+1, entry.Question, entry.Answer)
	}
	return nil
}

func (a *App) runSeed(ctx context.Context, out io.Writer, count int) error {
	questions, err := a.trivia.FetchQuestions(ctx, count)
	if err != nil {
		return fmt.Errorf("fetch trivia questions: %w", err)
	}

	stored, err := a.deck.Import(ctx, opentdb.Cards(questions))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seeded %d flashcards.\n", stored)
	return nil
}
