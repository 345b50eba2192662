// Package userclient is the terminal client for a remote brainflip service.
// Quizzes are played locally for instant feedback, then the full answer set
// is submitted so the service produces the authoritative score.
package userclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"brainflip/internal/player"
	"brainflip/internal/quiz"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultHTTPTimeout = 5 * time.Second
)

type Config struct {
	ServerURL   string
	HTTPTimeout time.Duration
	RevealDelay time.Duration
}

func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	revealDelay := cfg.RevealDelay
	if revealDelay <= 0 {
		revealDelay = player.DefaultRevealDelay
	}

	client := NewHTTPClient(serverURL, &http.Client{Timeout: timeout})
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "brainflip client\nserver=%s\n\n", serverURL)
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
		case "quizzes":
			if err := runList(ctx, out, client, serverURL); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "show":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: show <quiz_id>")
				continue
			}
			if err := runShow(ctx, out, client, args[1], serverURL); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "random":
			if err := runRandom(ctx, out, client, serverURL); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "play":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: play <quiz_id>")
				continue
			}
			if err := runPlay(ctx, reader, out, client, args[1], revealDelay, serverURL); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

func runList(ctx context.Context, out io.Writer, client *HTTPClient, serverURL string) error {
	quizzes, err := client.ListQuizzes(ctx)
	if err != nil {
		return describeClientError(err, serverURL)
	}

	if len(quizzes) == 0 {
		fmt.Fprintln(out, "No quizzes on the server yet.")
		return nil
	}

	fmt.Fprintln(out, "Quizzes:")
	for idx, item := range quizzes {
		fmt.Fprintf(out, "%d. %s  %q (%d questions)\n", idx+1, item.ID, item.Title, len(item.Questions))
	}
	return nil
}

func runShow(ctx context.Context, out io.Writer, client *HTTPClient, quizID, serverURL string) error {
	item, err := client.GetQuiz(ctx, quizID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			fmt.Fprintf(out, "No quiz with id %s.\n", quizID)
			return nil
		}
		return describeClientError(err, serverURL)
	}

	fmt.Fprintf(out, "%s  %q (%d questions)\n", item.ID, item.Title, len(item.Questions))
	for idx, question := range item.Questions {
		printQuestion(out, idx+1, len(item.Questions), question)
	}
	return nil
}

func runRandom(ctx context.Context, out io.Writer, client *HTTPClient, serverURL string) error {
	card, err := client.RandomFlashcard(ctx, "")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			fmt.Fprintln(out, "No flashcards on the server yet.")
			return nil
		}
		return describeClientError(err, serverURL)
	}

	fmt.Fprintf(out, "%s\n%s\n", card.Question, card.Answer)
	return nil
}

func runPlay(ctx context.Context, reader *bufio.Reader, out io.Writer, client *HTTPClient, quizID string, revealDelay time.Duration, serverURL string) error {
	item, err := client.GetQuiz(ctx, quizID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			fmt.Fprintf(out, "No quiz with id %s.\n", quizID)
			return nil
		}
		return describeClientError(err, serverURL)
	}

	attempt, err := player.NewAttempt(item, player.WithRevealDelay(revealDelay))
	if errors.Is(err, player.ErrNoQuestions) {
		fmt.Fprintln(out, "This quiz has no questions.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Playing %q\n", item.Title)

	for attempt.State() == player.StateInProgress {
		question := attempt.CurrentQuestion()
		printQuestion(out, attempt.CurrentIndex()+1, attempt.TotalQuestions(), question)

		answerID, err := promptLine(reader, out, "Your answer: ")
		if err != nil {
			return err
		}

		selection, err := attempt.SelectAnswer(answerID)
		if errors.Is(err, player.ErrUnknownAnswer) {
			fmt.Fprintf(out, "No answer with id %q.\n", answerID)
			continue
		}
		if err != nil {
			return err
		}

		if selection.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			correct, _ := question.AnswerByID(selection.CorrectAnswerID)
			fmt.Fprintf(out, "Wrong. Correct answer was %s\n", correct.Text)
		}

		time.Sleep(attempt.RevealDelay())

		if err := attempt.Advance(); err != nil {
			return err
		}
	}

	result, err := client.SubmitAttempt(ctx, quizID, attempt.UserAnswers())
	if err != nil {
		// The run still counts locally when the submission fails.
		fmt.Fprintf(out, "\nScore (local): %d/%d (%d%%)\n", attempt.Score(), attempt.TotalQuestions(), attempt.Percentage())
		return describeClientError(err, serverURL)
	}

	fmt.Fprintf(out, "\nScore: %d/%d (%d%%)\n", result.Score, result.Total, result.Percentage)
	return nil
}

func printQuestion(out io.Writer, number, total int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Question %d/%d: %s\n\n", number, total, question.QuestionText)
	for _, answer := range question.Answers {
		fmt.Fprintf(out, "%s. %s\n", answer.ID, answer.Text)
	}
	fmt.Fprintln(out)
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  quizzes")
	fmt.Fprintln(out, "  show <quiz_id>")
	fmt.Fprintln(out, "  random")
	fmt.Fprintln(out, "  play <quiz_id>")
	fmt.Fprintln(out, "  exit")
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("brainflip service unavailable at %s", serverURL)
	}
	return err
}
