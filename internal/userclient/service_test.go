package userclient

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brainflip/internal/favorites"
	"brainflip/internal/flashcards"
	"brainflip/internal/httpapi"
	"brainflip/internal/kvstore"
	"brainflip/internal/quiz"
)

// newTestService runs the real HTTP API over an in-memory store so the REPL
// is exercised end to end.
func newTestService(t *testing.T) (*httptest.Server, *quiz.Repository, *flashcards.Deck) {
	t.Helper()

	store := kvstore.NewMemoryStore()
	repository := quiz.NewRepository(store, nil)
	deck := flashcards.NewDeck(store, nil)

	api := httpapi.NewAPI(repository, deck, favorites.NewLedger(store, nil), nil)
	server := httptest.NewServer(httpapi.NewRouter(api))
	t.Cleanup(server.Close)

	return server, repository, deck
}

func runScript(t *testing.T, serverURL, script string) string {
	t.Helper()

	var out bytes.Buffer
	cfg := Config{
		ServerURL:   serverURL,
		RevealDelay: time.Nanosecond,
	}
	if err := Run(context.Background(), strings.NewReader(script), &out, cfg); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return out.String()
}

func fixtureQuiz() quiz.Quiz {
	return quiz.Quiz{
		ID:    "fixture",
		Title: "Capitals",
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
		CreatedAt: "2024-01-01T00:00:00Z",
	}
}

func TestRunExitsOnExit(t *testing.T) {
	server, _, _ := newTestService(t)

	output := runScript(t, server.URL, "exit\n")
	if !strings.Contains(output, "Commands:") {
		t.Fatalf("expected help in output, got %q", output)
	}
}

func TestRunExitsCleanlyOnEOF(t *testing.T) {
	server, _, _ := newTestService(t)

	runScript(t, server.URL, "")
}

func TestQuizzesCommandListsServerQuizzes(t *testing.T) {
	server, repository, _ := newTestService(t)
	if err := repository.SaveQuiz(context.Background(), fixtureQuiz(), false); err != nil {
		t.Fatalf("SaveQuiz: %v", err)
	}

	output := runScript(t, server.URL, "quizzes\nexit\n")
	if !strings.Contains(output, `fixture  "Capitals" (2 questions)`) {
		t.Fatalf("expected quiz listing, got %q", output)
	}
}

func TestQuizzesCommandEmptyServer(t *testing.T) {
	server, _, _ := newTestService(t)

	output := runScript(t, server.URL, "quizzes\nexit\n")
	if !strings.Contains(output, "No quizzes on the server yet.") {
		t.Fatalf("expected empty notice, got %q", output)
	}
}

func TestShowCommandPrintsQuestions(t *testing.T) {
	server, repository, _ := newTestService(t)
	if err := repository.SaveQuiz(context.Background(), fixtureQuiz(), false); err != nil {
		t.Fatalf("SaveQuiz: %v", err)
	}

	output := runScript(t, server.URL, "show fixture\nexit\n")
	if !strings.Contains(output, "capital of France?") {
		t.Fatalf("expected question text, got %q", output)
	}
	if !strings.Contains(output, "1. Paris") {
		t.Fatalf("expected answers, got %q", output)
	}
}

func TestShowCommandUnknownQuiz(t *testing.T) {
	server, _, _ := newTestService(t)

	output := runScript(t, server.URL, "show nope\nexit\n")
	if !strings.Contains(output, "No quiz with id nope.") {
		t.Fatalf("expected not-found notice, got %q", output)
	}
}

func TestPlayCommandUsesServerScore(t *testing.T) {
	server, repository, _ := newTestService(t)
	if err := repository.SaveQuiz(context.Background(), fixtureQuiz(), false); err != nil {
		t.Fatalf("SaveQuiz: %v", err)
	}

	script := strings.Join([]string{
		"play fixture",
		"1", // q1 correct
		"1", // q2 wrong
		"exit",
	}, "\n") + "\n"

	output := runScript(t, server.URL, script)
	if !strings.Contains(output, "Correct!") {
		t.Fatalf("expected correct feedback, got %q", output)
	}
	if !strings.Contains(output, "Wrong. Correct answer was Tokyo") {
		t.Fatalf("expected correction, got %q", output)
	}
	if !strings.Contains(output, "Score: 1/2 (50%)") {
		t.Fatalf("expected server score, got %q", output)
	}
}

func TestPlayCommandUnknownQuiz(t *testing.T) {
	server, _, _ := newTestService(t)

	output := runScript(t, server.URL, "play nope\nexit\n")
	if !strings.Contains(output, "No quiz with id nope.") {
		t.Fatalf("expected not-found notice, got %q", output)
	}
}

func TestPlayCommandInvalidAnswerReprompts(t *testing.T) {
	server, repository, _ := newTestService(t)
	if err := repository.SaveQuiz(context.Background(), fixtureQuiz(), false); err != nil {
		t.Fatalf("SaveQuiz: %v", err)
	}

	script := strings.Join([]string{
		"play fixture",
		"9", // invalid id
		"1", // q1 correct
		"2", // q2 correct
		"exit",
	}, "\n") + "\n"

	output := runScript(t, server.URL, script)
	if !strings.Contains(output, `No answer with id "9".`) {
		t.Fatalf("expected invalid answer notice, got %q", output)
	}
	if !strings.Contains(output, "Score: 2/2 (100%)") {
		t.Fatalf("expected perfect score, got %q", output)
	}
}

func TestRandomCommand(t *testing.T) {
	server, _, deck := newTestService(t)
	if _, err := deck.Add(context.Background(), "capital of France?", "Paris"); err != nil {
		t.Fatalf("seed deck: %v", err)
	}

	output := runScript(t, server.URL, "random\nexit\n")
	if !strings.Contains(output, "capital of France?") || !strings.Contains(output, "Paris") {
		t.Fatalf("expected card in output, got %q", output)
	}
}

func TestRandomCommandEmptyServer(t *testing.T) {
	server, _, _ := newTestService(t)

	output := runScript(t, server.URL, "random\nexit\n")
	if !strings.Contains(output, "No flashcards on the server yet.") {
		t.Fatalf("expected empty notice, got %q", output)
	}
}

func TestServiceUnavailableMessage(t *testing.T) {
	server, _, _ := newTestService(t)
	serverURL := server.URL
	server.Close()

	output := runScript(t, serverURL, "quizzes\nexit\n")
	if !strings.Contains(output, "brainflip service unavailable at "+serverURL) {
		t.Fatalf("expected unavailable message, got %q", output)
	}
}
