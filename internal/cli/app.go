// Package cli is the interactive terminal front end. It drives the quiz
// repository, the flashcard deck and the favorites ledger directly against
// the local store.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"brainflip/internal/favorites"
	"brainflip/internal/flashcards"
	"brainflip/internal/opentdb"
	"brainflip/internal/player"
	"brainflip/internal/quiz"
)

const defaultSeedCount = 10

type App struct {
	quizzes     *quiz.Repository
	deck        *flashcards.Deck
	favorites   *favorites.Ledger
	trivia      *opentdb.Client
	logger      *zap.Logger
	revealDelay time.Duration

	// sleep is swapped out in tests so the reveal pause does not slow them.
	sleep func(time.Duration)
}

type Options struct {
	Quizzes     *quiz.Repository
	Deck        *flashcards.Deck
	Favorites   *favorites.Ledger
	Trivia      *opentdb.Client
	Logger      *zap.Logger
	RevealDelay time.Duration
}

func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	revealDelay := opts.RevealDelay
	if revealDelay <= 0 {
		revealDelay = player.DefaultRevealDelay
	}
	trivia := opts.Trivia
	if trivia == nil {
		trivia = opentdb.NewClient(nil)
	}
	return &App{
		quizzes:     opts.Quizzes,
		deck:        opts.Deck,
		favorites:   opts.Favorites,
		trivia:      trivia,
		logger:      logger,
		revealDelay: revealDelay,
		sleep:       time.Sleep,
	}
}

func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "brainflip")
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			printHelp(out)
		case "exit":
			return nil
		case "cards":
			if err := a.runCards(ctx, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "add":
			if err := a.runAddCard(ctx, reader, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "random":
			if err := a.runRandomCard(ctx, reader, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "favorites":
			if err := a.runFavorites(ctx, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "seed":
			count, parseErr := parseCount(args, 1, defaultSeedCount)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid seed count: %v\n", parseErr)
				continue
			}
			if err := a.runSeed(ctx, out, count); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "quizzes":
			if err := a.runListQuizzes(ctx, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "create":
			if err := a.runCreateQuiz(ctx, reader, out); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "edit":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: edit <quiz_id>")
				continue
			}
			if err := a.runEditQuiz(ctx, reader, out, args[1]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "delete":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: delete <quiz_id>")
				continue
			}
			if err := a.runDeleteQuiz(ctx, reader, out, args[1]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "play":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: play <quiz_id>")
				continue
			}
			if err := a.runPlayQuiz(ctx, reader, out, args[1]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  cards")
	fmt.Fprintln(out, "  add")
	fmt.Fprintln(out, "  random")
	fmt.Fprintln(out, "  favorites")
	fmt.Fprintln(out, "  seed [count]")
	fmt.Fprintln(out, "  quizzes")
	fmt.Fprintln(out, "  create")
	fmt.Fprintln(out, "  edit <quiz_id>")
	fmt.Fprintln(out, "  delete <quiz_id>")
	fmt.Fprintln(out, "  play <quiz_id>")
	fmt.Fprintln(out, "  exit")
}
