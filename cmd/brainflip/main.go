package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"brainflip/internal/cli"
	"brainflip/internal/config"
	"brainflip/internal/favorites"
	"brainflip/internal/flashcards"
	"brainflip/internal/kvstore"
	"brainflip/internal/logger"
	"brainflip/internal/quiz"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := kvstore.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	if raw, err := store.Get(ctx, kvstore.LegacyScratchKey); err == nil && raw != nil {
		log.Debug("legacy scratch value present", zap.ByteString("value", raw))
	}

	app := cli.NewApp(cli.Options{
		Quizzes:     quiz.NewRepository(store, log),
		Deck:        flashcards.NewDeck(store, log),
		Favorites:   favorites.NewLedger(store, log),
		Logger:      log,
		RevealDelay: cfg.Player.RevealDelay,
	})

	if err := app.Run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
