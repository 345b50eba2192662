package quiz

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinAnswers     = 2
	MaxAnswers     = 6
	MaxTitleLength = 50
)

// ValidateQuestion checks every question-level rule and reports all
// violations in a fixed order. An empty result means the question is
// committable.
func ValidateQuestion(question Question) ValidationErrors {
	var violations ValidationErrors

	if strings.TrimSpace(question.QuestionText) == "" {
		violations = append(violations, ValidationError{
			Field:   "questionText",
			Message: "question text is required",
		})
	}

	if len(question.Answers) < MinAnswers || len(question.Answers) > MaxAnswers {
		violations = append(violations, ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("between %d and %d answers are required", MinAnswers, MaxAnswers),
		})
	}

	for idx, answer := range question.Answers {
		if strings.TrimSpace(answer.Text) == "" {
			violations = append(violations, ValidationError{
				Field:   fmt.Sprintf("answers[%d].text", idx),
				Message: "answer text is required",
			})
		}
	}

	correctCount := 0
	for _, answer := range question.Answers {
		if answer.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		violations = append(violations, ValidationError{
			Field:   "correctAnswer",
			Message: "exactly one answer must be marked correct",
		})
	} else if answer, ok := question.AnswerByID(question.CorrectAnswer); !ok || !answer.IsCorrect {
		violations = append(violations, ValidationError{
			Field:   "correctAnswer",
			Message: "correctAnswer must reference the answer marked correct",
		})
	}

	return violations
}

// ValidateQuiz checks the quiz-level rules and re-validates every question,
// guarding against a corrupted in-memory list reaching the store.
func ValidateQuiz(item Quiz) ValidationErrors {
	var violations ValidationErrors

	title := strings.TrimSpace(item.Title)
	if title == "" {
		violations = append(violations, ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		violations = append(violations, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength),
		})
	}

	if len(item.Questions) == 0 {
		violations = append(violations, ValidationError{
			Field:   "questions",
			Message: "at least one question is required",
		})
	}

	for idx, question := range item.Questions {
		for _, violation := range ValidateQuestion(question) {
			violations = append(violations, ValidationError{
				Field:   fmt.Sprintf("questions[%d].%s", idx, violation.Field),
				Message: violation.Message,
			})
		}
	}

	return violations
}
