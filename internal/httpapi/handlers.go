package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"brainflip/internal/player"
	"brainflip/internal/quiz"
)

func (a *API) HandleQuizCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listQuizzes(w, r)
	case http.MethodPost:
		a.createQuiz(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (a *API) listQuizzes(w http.ResponseWriter, r *http.Request) {
	items, err := a.quizzes.ListQuizzes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzesResponse{Quizzes: items})
}

func (a *API) createQuiz(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var item quiz.Quiz
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt == "" {
		item.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := quiz.ValidateQuiz(item); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := a.quizzes.SaveQuiz(r.Context(), item, false); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (a *API) HandleQuizItem(w http.ResponseWriter, r *http.Request) {
	quizID := strings.TrimSpace(r.PathValue("quiz_id"))
	if quizID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quiz_id is required"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := a.quizzes.FindQuiz(r.Context(), quizID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut:
		a.updateQuiz(w, r, quizID)
	case http.MethodDelete:
		if err := a.quizzes.DeleteQuiz(r.Context(), quizID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, "GET, PUT, DELETE")
	}
}

func (a *API) updateQuiz(w http.ResponseWriter, r *http.Request, quizID string) {
	defer r.Body.Close()

	var item quiz.Quiz
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	// The path segment owns the identity, not the body.
	item.ID = quizID

	if err := quiz.ValidateQuiz(item); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := a.quizzes.SaveQuiz(r.Context(), item, true); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (a *API) HandleQuizAttempt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	quizID := strings.TrimSpace(r.PathValue("quiz_id"))
	item, err := a.quizzes.FindQuiz(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	defer r.Body.Close()

	var request attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if request.Answers == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "answers is required"})
		return
	}

	writeJSON(w, http.StatusOK, player.Evaluate(item, request.Answers))
}

func (a *API) HandleFlashcards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cards, err := a.deck.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, flashcardsResponse{Cards: cards})
	case http.MethodPost:
		defer r.Body.Close()

		var request addFlashcardRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		card, err := a.deck.Add(r.Context(), request.Question, request.Answer)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, card)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (a *API) HandleRandomFlashcard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	excludeID := strings.TrimSpace(r.URL.Query().Get("exclude_id"))
	card, err := a.deck.Random(r.Context(), excludeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *API) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	entries, err := a.favorites.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: entries})
}

func (a *API) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	defer r.Body.Close()

	var request toggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(request.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
		return
	}

	favorite, err := a.favorites.Toggle(r.Context(), request.Question, request.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleFavoriteResponse{
		Question: request.Question,
		Favorite: favorite,
	})
}
