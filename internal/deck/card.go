package deck

import "strings"

// Card is a question/answer pair.
type Card struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// NewCard trims both sides and validates them.
// Returns a *ValidationError if either side is empty after trimming.
func NewCard(question, answer string) (Card, error) {
	c := Card{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}
	if c.Question == "" || c.Answer == "" {
		field := FieldQuestion
		if c.Question != "" {
			field = FieldAnswer
		}
		return Card{}, &ValidationError{Field: field, Err: ErrBothFieldsRequired}
	}
	return c, nil
}

// IsZero reports whether both sides are empty.
func (c Card) IsZero() bool {
	return c.Question == "" && c.Answer == ""
}

// Table maps deck names to their ordered cards.
type Table map[string][]Card

// DeckSummary is a saved deck's name and card count.
type DeckSummary struct {
	Name  string `json:"name" yaml:"name"`
	Cards int    `json:"cards" yaml:"cards"`
}
