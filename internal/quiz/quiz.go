// Package quiz holds the user-authored quiz model and its persistence over
// the key-value store. JSON field names match the stored mobile-app payloads
// so existing data keeps loading.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var ErrQuizNotFound = errors.New("quiz not found")

// Answer is one selectable option of a question. IDs are contiguous "1".."n"
// within a question.
type Answer struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a prompt with 2-6 answers, exactly one marked correct once
// committed. CorrectAnswer holds the id of that answer, or "" while a draft
// has none selected.
type Question struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"questionText"`
	Answers       []Answer `json:"answers"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is a titled, ordered set of questions. CreatedAt is an RFC 3339
// timestamp; it stays a string because stored payloads carry the mobile
// app's ISO format and round-tripping must not rewrite it.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

// ValidationError names the rule a draft violates and the field it concerns.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors carries every violated rule in declaration order.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, item := range e {
		messages = append(messages, item.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// AnswerByID returns the answer with the given id, if present.
func (q Question) AnswerByID(id string) (Answer, bool) {
	for _, answer := range q.Answers {
		if answer.ID == id {
			return answer, true
		}
	}
	return Answer{}, false
}
