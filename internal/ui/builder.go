package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flashdeck/internal/deck"
	"flashdeck/internal/feedback"
	"flashdeck/internal/preview"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BuilderView is the deck authoring form.
type BuilderView struct {
	Controller *deck.Controller
	Preview    *preview.Model
	Feedback   *feedback.Channel
	Focus      *FocusManager

	inputs map[deck.Field]*textinput.Model
	count  int

	// lastEvent is the most recent controller event, consumed after each gesture.
	lastEvent *deck.Event
}

var _ View = (*BuilderView)(nil)

var fieldLabels = map[deck.Field]string{
	deck.FieldDeckName: "Deck name",
	deck.FieldQuestion: "Question",
	deck.FieldAnswer:   "Answer",
}

// NewBuilderView creates the form bound to c. The question field starts focused.
func NewBuilderView(c *deck.Controller, feedbackDelay time.Duration) *BuilderView {
	b := &BuilderView{
		Controller: c,
		Preview:    preview.New(),
		Feedback:   feedback.New(feedbackDelay),
		Focus:      NewFocusManager(deck.FieldDeckName, deck.FieldQuestion, deck.FieldAnswer),
		inputs:     make(map[deck.Field]*textinput.Model),
	}
	placeholders := map[deck.Field]string{
		deck.FieldDeckName: "e.g. Biology",
		deck.FieldQuestion: "Enter the question",
		deck.FieldAnswer:   "Enter the answer",
	}
	for _, f := range b.Focus.Order {
		ti := textinput.New()
		ti.Placeholder = placeholders[f]
		ti.Width = 48
		ti.Prompt = "> "
		b.inputs[f] = &ti
	}
	b.Focus.OnChange = func(from, to deck.Field) {
		if in, ok := b.inputs[from]; ok {
			in.Blur()
		}
		if in, ok := b.inputs[to]; ok {
			in.Focus()
		}
	}
	b.Focus.SetFocus(deck.FieldQuestion)
	c.SetListener(func(e deck.Event) {
		b.lastEvent = &e
	})
	b.count = c.Len()
	return b
}

// Init implements View.
func (b *BuilderView) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (b *BuilderView) Update(msg tea.Msg) (View, tea.Cmd) {
	if b.Feedback.Update(msg) {
		return b, nil
	}
	switch msg := msg.(type) {
	case AddCardMsg:
		return b, b.addCard()
	case SaveDeckMsg:
		return b, b.saveDeck()
	case FlipPreviewMsg:
		b.Preview.Toggle()
		return b, nil
	case tea.WindowSizeMsg:
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w > 10 {
			b.Preview.Width = w
		}
		return b, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			b.Focus.Next()
			return b, nil
		case "shift+tab", "up":
			b.Focus.Prev()
			return b, nil
		case "enter":
			switch b.Focus.Current {
			case deck.FieldDeckName:
				return b, msgCmd(SaveDeckMsg{})
			case deck.FieldQuestion:
				b.Focus.SetFocus(deck.FieldAnswer)
				return b, nil
			case deck.FieldAnswer:
				return b, msgCmd(AddCardMsg{})
			}
		}
	}
	in, ok := b.inputs[b.Focus.Current]
	if !ok {
		return b, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return b, cmd
}

func (b *BuilderView) addCard() tea.Cmd {
	card, err := b.Controller.AddCard(context.Background(),
		b.inputs[deck.FieldQuestion].Value(),
		b.inputs[deck.FieldAnswer].Value())
	if err != nil {
		b.focusFor(err)
		return b.flushEvent()
	}
	b.Preview.Show(card)
	b.inputs[deck.FieldQuestion].Reset()
	b.inputs[deck.FieldAnswer].Reset()
	b.Focus.SetFocus(deck.FieldQuestion)
	return b.flushEvent()
}

func (b *BuilderView) saveDeck() tea.Cmd {
	_, err := b.Controller.SaveDeck(context.Background(), b.inputs[deck.FieldDeckName].Value())
	if err != nil {
		b.focusFor(err)
		return b.flushEvent()
	}
	// Deck name is kept so the next deck can reuse or edit it.
	b.inputs[deck.FieldQuestion].Reset()
	b.inputs[deck.FieldAnswer].Reset()
	b.Preview.Show(deck.Card{})
	return b.flushEvent()
}

// focusFor moves focus to the field a validation error refers to.
func (b *BuilderView) focusFor(err error) {
	var ve *deck.ValidationError
	if errors.As(err, &ve) {
		b.Focus.SetFocus(ve.Field)
	}
}

// flushEvent turns the pending controller event into a feedback message.
func (b *BuilderView) flushEvent() tea.Cmd {
	e := b.lastEvent
	b.lastEvent = nil
	b.count = b.Controller.Len()
	if e == nil {
		return nil
	}
	b.count = e.Count
	kind := feedback.Success
	if e.Kind == deck.EventError {
		kind = feedback.Error
	}
	return b.Feedback.Show(kind, e.Message)
}

// Value returns the text of field f.
func (b *BuilderView) Value(f deck.Field) string {
	if in, ok := b.inputs[f]; ok {
		return in.Value()
	}
	return ""
}

// SetValue replaces the text of field f.
func (b *BuilderView) SetValue(f deck.Field, v string) {
	if in, ok := b.inputs[f]; ok {
		in.SetValue(v)
	}
}

// Count returns the displayed session size.
func (b *BuilderView) Count() int {
	return b.count
}

// View implements View.
func (b *BuilderView) View() string {
	var sb strings.Builder
	sb.WriteString(Styles.Title.Render("Flashcard deck builder") + "\n\n")
	for _, f := range b.Focus.Order {
		label := Styles.Label
		if f == b.Focus.Current {
			label = Styles.LabelFocus
		}
		sb.WriteString(label.Render(fieldLabels[f]) + "\n")
		sb.WriteString(b.inputs[f].View() + "\n\n")
	}
	sb.WriteString(Styles.Status.Render(fmt.Sprintf("Cards in current deck: %d", b.count)) + "\n")
	sb.WriteString(b.Feedback.View() + "\n")
	return lipgloss.JoinVertical(lipgloss.Left, sb.String(), b.Preview.View())
}
