package httpapi

import (
	"brainflip/internal/favorites"
	"brainflip/internal/flashcards"
	"brainflip/internal/quiz"
)

type quizzesResponse struct {
	Quizzes []quiz.Quiz `json:"quizzes"`
}

type attemptRequest struct {
	Answers []string `json:"answers"`
}

type flashcardsResponse struct {
	Cards []flashcards.Card `json:"cards"`
}

type addFlashcardRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type favoritesResponse struct {
	Favorites []favorites.Entry `json:"favorites"`
}

type toggleFavoriteRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type toggleFavoriteResponse struct {
	Question string `json:"question"`
	Favorite bool   `json:"favorite"`
}

type violationResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error      string              `json:"error"`
	Violations []violationResponse `json:"violations"`
}

type errorResponse struct {
	Error string `json:"error"`
}
