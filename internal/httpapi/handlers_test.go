package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brainflip/internal/favorites"
	"brainflip/internal/flashcards"
	"brainflip/internal/kvstore"
	"brainflip/internal/player"
	"brainflip/internal/quiz"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := kvstore.NewMemoryStore()
	api := NewAPI(
		quiz.NewRepository(store, nil),
		flashcards.NewDeck(store, nil),
		favorites.NewLedger(store, nil),
		nil,
	)
	return NewRouter(api)
}

func doJSONRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func sampleQuiz(title string) quiz.Quiz {
	return quiz.Quiz{
		Title: title,
		Questions: []quiz.Question{
			{
				ID:           "q1",
				QuestionText: "capital of France?",
				Answers: []quiz.Answer{
					{ID: "1", Text: "Paris", IsCorrect: true},
					{ID: "2", Text: "Lyon"},
				},
				CorrectAnswer: "1",
			},
			{
				ID:           "q2",
				QuestionText: "capital of Japan?",
				Answers: []quiz.Answer{
					{ID: "1", Text: "Osaka"},
					{ID: "2", Text: "Tokyo", IsCorrect: true},
				},
				CorrectAnswer: "2",
			},
		},
	}
}

func TestCreateQuizRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/quizzes", sampleQuiz("Capitals"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created quiz.Quiz
	decodeResponse(t, rec, &created)
	if created.ID == "" {
		t.Fatal("expected server to assign an id")
	}
	if created.CreatedAt == "" {
		t.Fatal("expected server to stamp createdAt")
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/quizzes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	var listed quizzesResponse
	decodeResponse(t, rec, &listed)
	if len(listed.Quizzes) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(listed.Quizzes))
	}
	if listed.Quizzes[0].Title != "Capitals" {
		t.Fatalf("unexpected title %q", listed.Quizzes[0].Title)
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/quizzes/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}
	var fetched quiz.Quiz
	decodeResponse(t, rec, &fetched)
	if fetched.ID != created.ID {
		t.Fatalf("fetched id %q, want %q", fetched.ID, created.ID)
	}
}

func TestCreateQuizValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	invalid := sampleQuiz("   ")
	rec := doJSONRequest(t, router, http.MethodPost, "/quizzes", invalid)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var payload validationErrorResponse
	decodeResponse(t, rec, &payload)
	if len(payload.Violations) == 0 {
		t.Fatal("expected validation violations in response")
	}
	if payload.Violations[0].Field != "title" {
		t.Fatalf("first violation field = %q, want %q", payload.Violations[0].Field, "title")
	}
}

func TestCreateQuizInvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/quizzes", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetQuizNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodGet, "/quizzes/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var payload errorResponse
	decodeResponse(t, rec, &payload)
	if payload.Error != "quiz not found" {
		t.Fatalf("error payload = %q", payload.Error)
	}
}

func TestUpdateQuiz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/quizzes", sampleQuiz("Before"))
	var created quiz.Quiz
	decodeResponse(t, rec, &created)

	edited := created
	edited.Title = "After"
	rec = doJSONRequest(t, router, http.MethodPut, "/quizzes/"+created.ID, edited)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/quizzes/"+created.ID, nil)
	var fetched quiz.Quiz
	decodeResponse(t, rec, &fetched)
	if fetched.Title != "After" {
		t.Fatalf("title after update = %q, want %q", fetched.Title, "After")
	}
}

func TestUpdateQuizUnknownID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPut, "/quizzes/missing", sampleQuiz("Capitals"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDeleteQuiz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/quizzes", sampleQuiz("Capitals"))
	var created quiz.Quiz
	decodeResponse(t, rec, &created)

	rec = doJSONRequest(t, router, http.MethodDelete, "/quizzes/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/quizzes/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	// Deleting an id that never existed is not an error.
	rec = doJSONRequest(t, router, http.MethodDelete, "/quizzes/missing", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete absent status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestQuizAttemptScoring(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/quizzes", sampleQuiz("Capitals"))
	var created quiz.Quiz
	decodeResponse(t, rec, &created)

	rec = doJSONRequest(t, router, http.MethodPost, "/quizzes/"+created.ID+"/attempts", attemptRequest{
		Answers: []string{"1", "1"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("attempt status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result player.Result
	decodeResponse(t, rec, &result)
	if result.Score != 1 || result.Total != 2 || result.Percentage != 50 {
		t.Fatalf("result = %d/%d (%d%%), want 1/2 (50%%)", result.Score, result.Total, result.Percentage)
	}
	if !result.Results[0].Correct || result.Results[1].Correct {
		t.Fatalf("unexpected per-question outcomes: %+v", result.Results)
	}
}

func TestQuizAttemptRequiresAnswers(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/quizzes", sampleQuiz("Capitals"))
	var created quiz.Quiz
	decodeResponse(t, rec, &created)

	rec = doJSONRequest(t, router, http.MethodPost, "/quizzes/"+created.ID+"/attempts", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestQuizAttemptUnknownQuiz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/quizzes/missing/attempts", attemptRequest{Answers: []string{"1"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFlashcardsAddAndList(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/flashcards", addFlashcardRequest{
		Question: "capital of France?",
		Answer:   "Paris",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/flashcards", nil)
	var listed flashcardsResponse
	decodeResponse(t, rec, &listed)
	if len(listed.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(listed.Cards))
	}

	rec = doJSONRequest(t, router, http.MethodPost, "/flashcards", addFlashcardRequest{Question: "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank add status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRandomFlashcardEmptyDeck(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodGet, "/flashcards/random", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRandomFlashcard(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/flashcards", addFlashcardRequest{
		Question: "capital of France?",
		Answer:   "Paris",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/flashcards/random", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var card flashcards.Card
	decodeResponse(t, rec, &card)
	if card.Question != "capital of France?" {
		t.Fatalf("unexpected card %q", card.Question)
	}
}

func TestFavoritesToggleFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/favorites/toggle", toggleFavoriteRequest{
		Question: "capital of France?",
		Answer:   "Paris",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, want %d", rec.Code, http.StatusOK)
	}
	var toggled toggleFavoriteResponse
	decodeResponse(t, rec, &toggled)
	if !toggled.Favorite {
		t.Fatal("expected first toggle to favorite the question")
	}

	rec = doJSONRequest(t, router, http.MethodGet, "/favorites", nil)
	var listed favoritesResponse
	decodeResponse(t, rec, &listed)
	if len(listed.Favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(listed.Favorites))
	}

	rec = doJSONRequest(t, router, http.MethodPost, "/favorites/toggle", toggleFavoriteRequest{
		Question: "capital of France?",
	})
	decodeResponse(t, rec, &toggled)
	if toggled.Favorite {
		t.Fatal("expected second toggle to unfavorite the question")
	}
}

func TestToggleFavoriteRequiresQuestion(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPost, "/favorites/toggle", toggleFavoriteRequest{Answer: "Paris"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSONRequest(t, router, http.MethodPatch, "/quizzes", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if got := rec.Header().Get("Allow"); got != "GET, POST" {
		t.Fatalf("allow header = %q, want %q", got, "GET, POST")
	}
}
