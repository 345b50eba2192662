package opentdb

import (
	"html"

	"brainflip/internal/flashcards"
)

// Cards converts trivia results into deck cards. The API entity-encodes
// text, so both fields are unescaped here.
func Cards(questions []RawQuestion) []flashcards.Card {
	cards := make([]flashcards.Card, 0, len(questions))
	for _, q := range questions {
		cards = append(cards, flashcards.Card{
			Question: html.UnescapeString(q.Question),
			Answer:   html.UnescapeString(q.CorrectAnswer),
		})
	}
	return cards
}
