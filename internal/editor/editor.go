// Package editor holds the in-memory builders used while authoring a quiz.
// A draft owns its state exclusively until Commit hands out an immutable
// snapshot; nothing here touches the store.
package editor

import (
	"strconv"

	"github.com/google/uuid"

	"brainflip/internal/quiz"
)

// QuestionDraft is a single question under construction. Answer ids are kept
// contiguous "1".."n" at all times; deleting a variant re-indexes the rest.
type QuestionDraft struct {
	id            string
	questionText  string
	answers       []quiz.Answer
	correctAnswer string
}

// NewQuestionDraft starts a blank question with two empty answers and no
// correct selection.
func NewQuestionDraft() *QuestionDraft {
	return &QuestionDraft{
		id: uuid.NewString(),
		answers: []quiz.Answer{
			{ID: "1"},
			{ID: "2"},
		},
	}
}

// EditQuestionDraft loads an existing question for editing. The draft works
// on copies; the source question is never mutated.
func EditQuestionDraft(question quiz.Question) *QuestionDraft {
	answers := make([]quiz.Answer, len(question.Answers))
	copy(answers, question.Answers)
	return &QuestionDraft{
		id:            question.ID,
		questionText:  question.QuestionText,
		answers:       answers,
		correctAnswer: question.CorrectAnswer,
	}
}

func (d *QuestionDraft) ID() string           { return d.id }
func (d *QuestionDraft) QuestionText() string { return d.questionText }

// Answers returns a copy of the current answer list.
func (d *QuestionDraft) Answers() []quiz.Answer {
	out := make([]quiz.Answer, len(d.answers))
	copy(out, d.answers)
	return out
}

func (d *QuestionDraft) CorrectAnswer() string { return d.correctAnswer }

func (d *QuestionDraft) SetQuestionText(text string) {
	d.questionText = text
}

// SetAnswerText replaces the matching answer's text. Unknown ids are a no-op.
func (d *QuestionDraft) SetAnswerText(answerID, text string) {
	for idx := range d.answers {
		if d.answers[idx].ID == answerID {
			d.answers[idx].Text = text
			return
		}
	}
}

// SelectCorrect marks the answer correct and clears all siblings, so exactly
// one answer is correct afterwards. Unknown ids are a no-op and leave the
// previous selection in place.
func (d *QuestionDraft) SelectCorrect(answerID string) {
	if _, ok := d.answerByID(answerID); !ok {
		return
	}
	for idx := range d.answers {
		d.answers[idx].IsCorrect = d.answers[idx].ID == answerID
	}
	d.correctAnswer = answerID
}

// AddVariant appends a blank answer with the next sequential id. Returns
// false once the question already holds the maximum number of answers.
func (d *QuestionDraft) AddVariant() bool {
	if len(d.answers) >= quiz.MaxAnswers {
		return false
	}
	d.answers = append(d.answers, quiz.Answer{
		ID: strconv.Itoa(len(d.answers) + 1),
	})
	return true
}

// DeleteVariant removes the answer and re-indexes the remainder to a
// contiguous "1".."n" in stable order. If the removed answer was the correct
// one the selection resets; otherwise the selection follows the answer to
// its new id. Returns false when the id is unknown or only the minimum
// number of answers remains.
func (d *QuestionDraft) DeleteVariant(answerID string) bool {
	if len(d.answers) <= quiz.MinAnswers {
		return false
	}
	if _, ok := d.answerByID(answerID); !ok {
		return false
	}

	kept := make([]quiz.Answer, 0, len(d.answers)-1)
	for _, answer := range d.answers {
		if answer.ID != answerID {
			kept = append(kept, answer)
		}
	}
	for idx := range kept {
		kept[idx].ID = strconv.Itoa(idx + 1)
	}
	d.answers = kept

	d.correctAnswer = ""
	for _, answer := range d.answers {
		if answer.IsCorrect {
			d.correctAnswer = answer.ID
			break
		}
	}
	return true
}

// Validate reports every violated rule for the current draft state.
func (d *QuestionDraft) Validate() quiz.ValidationErrors {
	return quiz.ValidateQuestion(d.snapshot())
}

// Commit returns an immutable snapshot of the question. It fails with the
// full violation list while any rule is unmet.
func (d *QuestionDraft) Commit() (quiz.Question, error) {
	if violations := d.Validate(); len(violations) > 0 {
		return quiz.Question{}, violations
	}
	return d.snapshot(), nil
}

func (d *QuestionDraft) snapshot() quiz.Question {
	return quiz.Question{
		ID:            d.id,
		QuestionText:  d.questionText,
		Answers:       d.Answers(),
		CorrectAnswer: d.correctAnswer,
	}
}

func (d *QuestionDraft) answerByID(answerID string) (quiz.Answer, bool) {
	for _, answer := range d.answers {
		if answer.ID == answerID {
			return answer, true
		}
	}
	return quiz.Answer{}, false
}
