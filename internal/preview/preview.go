// Package preview renders a card as a two-sided display that can be flipped
// between its question (front) and answer (back).
package preview

import (
	"flashdeck/internal/deck"

	"github.com/charmbracelet/lipgloss"
)

// Placeholders shown when a side has no content.
const (
	QuestionPlaceholder = "(Question will appear here)"
	AnswerPlaceholder   = "(Answer will appear here)"
)

// Face is the side of the card currently shown.
type Face int

const (
	Front Face = iota
	Back
)

func (f Face) String() string {
	if f == Back {
		return "answer"
	}
	return "question"
}

// Model mirrors one card. The zero value shows placeholders on the front face.
type Model struct {
	Question string
	Answer   string
	face     Face
	Width    int
}

// New returns an empty preview.
func New() *Model {
	m := &Model{Width: 40}
	m.Show(deck.Card{})
	return m
}

// Show displays card and turns the preview to its front face.
func (m *Model) Show(card deck.Card) {
	m.Question = card.Question
	if m.Question == "" {
		m.Question = QuestionPlaceholder
	}
	m.Answer = card.Answer
	if m.Answer == "" {
		m.Answer = AnswerPlaceholder
	}
	m.face = Front
}

// Toggle flips the displayed face.
func (m *Model) Toggle() {
	if m.face == Front {
		m.face = Back
	} else {
		m.face = Front
	}
}

// Face returns the side currently displayed.
func (m *Model) Face() Face {
	return m.face
}

// Text returns the content of the visible side.
func (m *Model) Text() string {
	if m.face == Back {
		return m.Answer
	}
	return m.Question
}

var (
	frontStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86")).
		Padding(1, 2).
		Align(lipgloss.Center)
	backStyle = frontStyle.
		BorderForeground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	placeholderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Italic(true)
)

// View renders the visible side as a bordered card.
func (m *Model) View() string {
	text := m.Text()
	if text == QuestionPlaceholder || text == AnswerPlaceholder {
		text = placeholderStyle.Render(text)
	}
	style := frontStyle
	if m.face == Back {
		style = backStyle
	}
	width := m.Width
	if width <= 0 {
		width = 40
	}
	label := labelStyle.Render(m.face.String() + " · ctrl+f to flip")
	return style.Width(width).Render(text) + "\n" + label
}
