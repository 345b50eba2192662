package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"brainflip/internal/editor"
	"brainflip/internal/player"
	"brainflip/internal/quiz"
)

func (a *App) runListQuizzes(ctx context.Context, out io.Writer) error {
	items, err := a.quizzes.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No quizzes yet. Use 'create' to build one.")
		return nil
	}

	fmt.Fprintln(out, "Quizzes:")
	for idx, item := range items {
		fmt.Fprintf(out, "%d. %s  %q (%d questions)\n", idx+1, item.ID, item.Title, len(item.Questions))
	}
	return nil
}

func (a *App) runCreateQuiz(ctx context.Context, reader *bufio.Reader, out io.Writer) error {
	draft := editor.NewQuizDraft()

	title, err := promptLine(reader, out, "Title: ")
	if err != nil {
		return err
	}
	draft.SetTitle(title)

	for {
		question, built, err := buildQuestion(reader, out)
		if err != nil {
			return err
		}
		if built {
			draft.AddQuestion(question)
		}

		more, err := promptYesNo(reader, out, "Add another question? (yes/no): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	item, err := draft.Commit()
	var violations quiz.ValidationErrors
	if errors.As(err, &violations) {
		printViolations(out, violations)
		fmt.Fprintln(out, "Quiz was not saved.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.quizzes.SaveQuiz(ctx, item, false); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created quiz %s\n", item.ID)
	return nil
}

// buildQuestion walks one question through the draft editor. The second
// return is false when the user abandons the question after a failed commit.
func buildQuestion(reader *bufio.Reader, out io.Writer) (quiz.Question, bool, error) {
	for {
		draft := editor.NewQuestionDraft()

		text, err := promptLine(reader, out, "Question text: ")
		if err != nil {
			return quiz.Question{}, false, err
		}
		draft.SetQuestionText(text)

		for _, answer := range draft.Answers() {
			answerText, err := promptLine(reader, out, fmt.Sprintf("Answer %s: ", answer.ID))
			if err != nil {
				return quiz.Question{}, false, err
			}
			draft.SetAnswerText(answer.ID, answerText)
		}

		for {
			more, err := promptYesNo(reader, out, "Add another answer? (yes/no): ")
			if err != nil {
				return quiz.Question{}, false, err
			}
			if !more {
				break
			}
			if !draft.AddVariant() {
				fmt.Fprintf(out, "A question can have at most %d answers.\n", quiz.MaxAnswers)
				break
			}
			answers := draft.Answers()
			newest := answers[len(answers)-1]
			answerText, err := promptLine(reader, out, fmt.Sprintf("Answer %s: ", newest.ID))
			if err != nil {
				return quiz.Question{}, false, err
			}
			draft.SetAnswerText(newest.ID, answerText)
		}

		correctID, err := promptLine(reader, out, "Correct answer id: ")
		if err != nil {
			return quiz.Question{}, false, err
		}
		draft.SelectCorrect(correctID)
		if draft.CorrectAnswer() != correctID {
			fmt.Fprintf(out, "No answer with id %q.\n", correctID)
		}

		question, err := draft.Commit()
		if err == nil {
			return question, true, nil
		}

		var violations quiz.ValidationErrors
		if !errors.As(err, &violations) {
			return quiz.Question{}, false, err
		}
		printViolations(out, violations)

		retry, err := promptYesNo(reader, out, "Try this question again? (yes/no): ")
		if err != nil {
			return quiz.Question{}, false, err
		}
		if !retry {
			return quiz.Question{}, false, nil
		}
	}
}

func (a *App) runEditQuiz(ctx context.Context, reader *bufio.Reader, out io.Writer, quizID string) error {
	item, err := a.quizzes.FindQuiz(ctx, quizID)
	if errors.Is(err, quiz.ErrQuizNotFound) {
		fmt.Fprintf(out, "No quiz with id %s.\n", quizID)
		return nil
	}
	if err != nil {
		return err
	}

	draft := editor.EditQuizDraft(item)

	title, err := promptLine(reader, out, fmt.Sprintf("New title (blank keeps %q): ", item.Title))
	if err != nil {
		return err
	}
	if title != "" {
		draft.SetTitle(title)
	}

	fmt.Fprintln(out, "Questions:")
	for idx, question := range draft.Questions() {
		fmt.Fprintf(out, "%d. %s  %s\n", idx+1, question.ID, question.QuestionText)
	}

	remove, err := promptYesNo(reader, out, "Remove a question? (yes/no): ")
	if err != nil {
		return err
	}
	if remove {
		questionID, promptErr := promptLine(reader, out, "Question id: ")
		if promptErr != nil {
			return promptErr
		}
		if !draft.RemoveQuestion(questionID) {
			fmt.Fprintf(out, "No question with id %q.\n", questionID)
		}
	}

	add, err := promptYesNo(reader, out, "Add a question? (yes/no): ")
	if err != nil {
		return err
	}
	if add {
		question, built, buildErr := buildQuestion(reader, out)
		if buildErr != nil {
			return buildErr
		}
		if built {
			draft.AddQuestion(question)
		}
	}

	updated, err := draft.Commit()
	var violations quiz.ValidationErrors
	if errors.As(err, &violations) {
		printViolations(out, violations)
		fmt.Fprintln(out, "Quiz was not saved.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.quizzes.SaveQuiz(ctx, updated, true); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated quiz %s\n", updated.ID)
	return nil
}

func (a *App) runDeleteQuiz(ctx context.Context, reader *bufio.Reader, out io.Writer, quizID string) error {
	confirmed, err := promptYesNo(reader, out, fmt.Sprintf("Delete quiz %s? (yes/no): ", quizID))
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	if err := a.quizzes.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}
	fmt.Fprintln(out, "Deleted.")
	return nil
}

func (a *App) runPlayQuiz(ctx context.Context, reader *bufio.Reader, out io.Writer, quizID string) error {
	item, err := a.quizzes.FindQuiz(ctx, quizID)
	if errors.Is(err, quiz.ErrQuizNotFound) {
		fmt.Fprintf(out, "No quiz with id %s.\n", quizID)
		return nil
	}
	if err != nil {
		return err
	}

	attempt, err := player.NewAttempt(item, player.WithRevealDelay(a.revealDelay))
	if errors.Is(err, player.ErrNoQuestions) {
		fmt.Fprintln(out, "This quiz has no questions.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Playing %q\n", item.Title)

	for {
		if err := a.playRound(reader, out, attempt); err != nil {
			return err
		}

		fmt.Fprintf(out, "\nScore: %d/%d (%d%%)\n", attempt.Score(), attempt.TotalQuestions(), attempt.Percentage())

		again, err := promptYesNo(reader, out, "Play again? (yes/no): ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		attempt.Restart()
	}
}

func (a *App) playRound(reader *bufio.Reader, out io.Writer, attempt *player.Attempt) error {
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
			fmt.Fprintf(out, "Wrong. Correct answer was %s\n", answerTextByID(question, selection.CorrectAnswerID))
		}

		a.sleep(attempt.RevealDelay())

		if err := attempt.Advance(); err != nil {
			return err
		}
	}
	return nil
}
