package httpapi

import (
	"go.uber.org/zap"

	"brainflip/internal/favorites"
	"brainflip/internal/flashcards"
	"brainflip/internal/quiz"
)

type API struct {
	quizzes   *quiz.Repository
	deck      *flashcards.Deck
	favorites *favorites.Ledger
	logger    *zap.Logger
}

func NewAPI(quizzes *quiz.Repository, deck *flashcards.Deck, ledger *favorites.Ledger, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		quizzes:   quizzes,
		deck:      deck,
		favorites: ledger,
		logger:    logger,
	}
}
