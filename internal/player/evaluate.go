package player

import (
	"math"

	"brainflip/internal/quiz"
)

// QuestionResult is the per-question outcome of a batch evaluation.
type QuestionResult struct {
	QuestionID      string `json:"question_id"`
	AnswerID        string `json:"answer_id"`
	Correct         bool   `json:"correct"`
	CorrectAnswerID string `json:"correct_answer_id"`
}

// Result is the outcome of scoring a full set of submitted answers.
type Result struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage int              `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}

// Evaluate scores one answer id per question, positionally. Missing or
// unknown answer ids count as wrong; extra submitted answers are ignored.
// This is the non-interactive counterpart of driving an Attempt to
// completion and exists for callers that receive all answers at once.
func Evaluate(item quiz.Quiz, answers []string) Result {
	results := make([]QuestionResult, 0, len(item.Questions))
	score := 0

	for idx, question := range item.Questions {
		answerID := ""
		if idx < len(answers) {
			answerID = answers[idx]
		}
		if _, ok := question.AnswerByID(answerID); !ok {
			answerID = ""
		}

		correct := answerID != "" && answerID == question.CorrectAnswer
		if correct {
			score++
		}
		results = append(results, QuestionResult{
			QuestionID:      question.ID,
			AnswerID:        answerID,
			Correct:         correct,
			CorrectAnswerID: question.CorrectAnswer,
		})
	}

	total := len(item.Questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) / float64(total) * 100))
	}

	return Result{
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Results:    results,
	}
}
