package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"brainflip/internal/config"
	"brainflip/internal/favorites"
	"brainflip/internal/flashcards"
	"brainflip/internal/httpapi"
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

	addr := flag.String("addr", cfg.HTTP.Addr, "HTTP listen address")
	flag.Parse()

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := kvstore.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer store.Close()

	api := httpapi.NewAPI(
		quiz.NewRepository(store, log),
		flashcards.NewDeck(store, log),
		favorites.NewLedger(store, log),
		log,
	)

	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("brainflip-service listening", zap.String("addr", *addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}
}
