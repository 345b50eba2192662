// Package player runs one pass through a quiz: linear question stepping,
// one locked answer per question, score on completion. The machine holds no
// timers; the reveal delay is carried as data and waited out by whichever
// surface presents the quiz, so every transition stays synchronous and
// testable.
package player

import (
	"errors"
	"math"
	"time"

	"brainflip/internal/quiz"
)

const DefaultRevealDelay = 1000 * time.Millisecond

var (
	ErrNoQuestions   = errors.New("quiz has no questions")
	ErrNotInProgress = errors.New("attempt is not in progress")
	ErrAnswerLocked  = errors.New("answer already selected for this question")
	ErrNoSelection   = errors.New("no answer selected for this question")
	ErrUnknownAnswer = errors.New("answer id does not belong to this question")
)

type State int

const (
	StateInProgress State = iota
	StateCompleted
)

// Selection reports how a just-recorded answer scored, so the UI can reveal
// correctness during the delay before Advance.
type Selection struct {
	AnswerID        string
	Correct         bool
	CorrectAnswerID string
	LastQuestion    bool
}

type Option func(*Attempt)

// WithRevealDelay overrides how long the presenting surface should reveal
// correctness before advancing.
func WithRevealDelay(delay time.Duration) Option {
	return func(a *Attempt) {
		if delay >= 0 {
			a.revealDelay = delay
		}
	}
}

// Attempt is one in-progress or completed pass through a quiz. It is not
// safe for concurrent use; a single surface drives it.
type Attempt struct {
	item         quiz.Quiz
	currentIndex int
	userAnswers  []string
	score        int
	state        State
	locked       bool
	revealDelay  time.Duration
}

func NewAttempt(item quiz.Quiz, opts ...Option) (*Attempt, error) {
	if len(item.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	attempt := &Attempt{
		item:        item,
		userAnswers: make([]string, len(item.Questions)),
		revealDelay: DefaultRevealDelay,
	}
	for _, opt := range opts {
		opt(attempt)
	}
	return attempt, nil
}

func (a *Attempt) State() State                { return a.state }
func (a *Attempt) CurrentIndex() int           { return a.currentIndex }
func (a *Attempt) TotalQuestions() int         { return len(a.item.Questions) }
func (a *Attempt) RevealDelay() time.Duration  { return a.revealDelay }
func (a *Attempt) Quiz() quiz.Quiz             { return a.item }

// CurrentQuestion is only meaningful while the attempt is in progress.
func (a *Attempt) CurrentQuestion() quiz.Question {
	return a.item.Questions[a.currentIndex]
}

// UserAnswers returns a copy of the recorded answer ids, one slot per
// question, empty string for unanswered.
func (a *Attempt) UserAnswers() []string {
	out := make([]string, len(a.userAnswers))
	copy(out, a.userAnswers)
	return out
}

// SelectAnswer records the choice for the current question and locks further
// selection until Advance. The lock is what prevents double-submission while
// the UI reveals correctness.
func (a *Attempt) SelectAnswer(answerID string) (Selection, error) {
	if a.state != StateInProgress {
		return Selection{}, ErrNotInProgress
	}
	if a.locked {
		return Selection{}, ErrAnswerLocked
	}

	question := a.CurrentQuestion()
	if _, ok := question.AnswerByID(answerID); !ok {
		return Selection{}, ErrUnknownAnswer
	}

	a.userAnswers[a.currentIndex] = answerID
	a.locked = true

	return Selection{
		AnswerID:        answerID,
		Correct:         answerID == question.CorrectAnswer,
		CorrectAnswerID: question.CorrectAnswer,
		LastQuestion:    a.currentIndex == len(a.item.Questions)-1,
	}, nil
}

// Advance moves past the revealed question: to the next one, or to
// Completed with the score when the last question was answered.
func (a *Attempt) Advance() error {
	if a.state != StateInProgress {
		return ErrNotInProgress
	}
	if !a.locked {
		return ErrNoSelection
	}

	if a.currentIndex == len(a.item.Questions)-1 {
		a.score = a.computeScore()
		a.state = StateCompleted
		return nil
	}

	a.currentIndex++
	a.locked = false
	return nil
}

// Score is the number of correctly answered questions. It is final once the
// attempt completes and zero before.
func (a *Attempt) Score() int {
	return a.score
}

// Percentage is the display score, rounded to the nearest whole percent.
func (a *Attempt) Percentage() int {
	total := len(a.item.Questions)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(a.score) / float64(total) * 100))
}

// Restart abandons any progress and returns to the first question with all
// answers cleared. Valid from both states.
func (a *Attempt) Restart() {
	a.currentIndex = 0
	a.userAnswers = make([]string, len(a.item.Questions))
	a.score = 0
	a.state = StateInProgress
	a.locked = false
}

func (a *Attempt) computeScore() int {
	score := 0
	for idx, question := range a.item.Questions {
		if a.userAnswers[idx] != "" && a.userAnswers[idx] == question.CorrectAnswer {
			score++
		}
	}
	return score
}
