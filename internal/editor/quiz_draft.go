package editor

import (
	"time"

	"github.com/google/uuid"

	"brainflip/internal/quiz"
)

// QuizDraft accumulates committed questions under a title until the quiz
// itself is committed for saving.
type QuizDraft struct {
	id        string
	title     string
	questions []quiz.Question
	createdAt string
}

func NewQuizDraft() *QuizDraft {
	return &QuizDraft{id: uuid.NewString()}
}

// EditQuizDraft loads an existing quiz for editing, keeping its id and
// creation time.
func EditQuizDraft(item quiz.Quiz) *QuizDraft {
	questions := make([]quiz.Question, len(item.Questions))
	copy(questions, item.Questions)
	return &QuizDraft{
		id:        item.ID,
		title:     item.Title,
		questions: questions,
		createdAt: item.CreatedAt,
	}
}

func (d *QuizDraft) ID() string    { return d.id }
func (d *QuizDraft) Title() string { return d.title }

func (d *QuizDraft) Questions() []quiz.Question {
	out := make([]quiz.Question, len(d.questions))
	copy(out, d.questions)
	return out
}

func (d *QuizDraft) SetTitle(title string) {
	d.title = title
}

func (d *QuizDraft) AddQuestion(question quiz.Question) {
	d.questions = append(d.questions, question)
}

// ReplaceQuestion swaps the question with the same id. Returns false when no
// question matches.
func (d *QuizDraft) ReplaceQuestion(question quiz.Question) bool {
	for idx := range d.questions {
		if d.questions[idx].ID == question.ID {
			d.questions[idx] = question
			return true
		}
	}
	return false
}

// RemoveQuestion drops the question with the id, preserving order.
func (d *QuizDraft) RemoveQuestion(questionID string) bool {
	for idx := range d.questions {
		if d.questions[idx].ID == questionID {
			d.questions = append(d.questions[:idx], d.questions[idx+1:]...)
			return true
		}
	}
	return false
}

// Validate applies the quiz-level rules, which re-validate every question as
// a guard against a corrupted in-memory list.
func (d *QuizDraft) Validate() quiz.ValidationErrors {
	return quiz.ValidateQuiz(d.snapshot())
}

// Commit returns the quiz ready for the repository, stamping CreatedAt on
// first commit.
func (d *QuizDraft) Commit() (quiz.Quiz, error) {
	if violations := d.Validate(); len(violations) > 0 {
		return quiz.Quiz{}, violations
	}
	item := d.snapshot()
	if item.CreatedAt == "" {
		item.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return item, nil
}

func (d *QuizDraft) snapshot() quiz.Quiz {
	return quiz.Quiz{
		ID:        d.id,
		Title:     d.title,
		Questions: d.Questions(),
		CreatedAt: d.createdAt,
	}
}
