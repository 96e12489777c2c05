package ui

import (
	"context"
	"testing"
	"time"

	"flashdeck/internal/deck"
	"flashdeck/internal/feedback"
	"flashdeck/internal/preview"
	"flashdeck/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) (*BuilderView, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	c := deck.NewController(storage.NewTableStore(kv, ""))
	return NewBuilderView(c, time.Millisecond), kv
}

// typeText sends s to the focused field one rune at a time.
func typeText(v View, s string) {
	for _, r := range s {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestBuilderView_StartsOnQuestion(t *testing.T) {
	b, _ := newTestBuilder(t)
	assert.Equal(t, deck.FieldQuestion, b.Focus.Current)
	assert.Equal(t, preview.QuestionPlaceholder, b.Preview.Text())
	assert.Contains(t, b.View(), "Cards in current deck: 0")
}

func TestBuilderView_TypingGoesToFocusedField(t *testing.T) {
	b, _ := newTestBuilder(t)
	typeText(b, "What is H2O?")
	b.Update(keyMsg("tab"))
	typeText(b, "Water")

	assert.Equal(t, "What is H2O?", b.Value(deck.FieldQuestion))
	assert.Equal(t, "Water", b.Value(deck.FieldAnswer))
	assert.Empty(t, b.Value(deck.FieldDeckName))
}

func TestBuilderView_AddCard(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.SetValue(deck.FieldQuestion, "  Q1 ")
	b.SetValue(deck.FieldAnswer, "A1")
	b.Focus.SetFocus(deck.FieldAnswer)

	_, cmd := b.Update(AddCardMsg{})
	require.NotNil(t, cmd, "feedback clear must be scheduled")

	assert.Equal(t, 1, b.Count())
	assert.Empty(t, b.Value(deck.FieldQuestion))
	assert.Empty(t, b.Value(deck.FieldAnswer))
	assert.Equal(t, deck.FieldQuestion, b.Focus.Current)
	assert.Equal(t, "Q1", b.Preview.Text())
	assert.Equal(t, feedback.Success, b.Feedback.Kind())
	assert.Equal(t, "Card added successfully!", b.Feedback.Message())
	assert.Contains(t, b.View(), "Cards in current deck: 1")
}

func TestBuilderView_AddCardValidation(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.SetValue(deck.FieldQuestion, "Q")
	b.SetValue(deck.FieldAnswer, "   ")

	b.Update(AddCardMsg{})

	assert.Zero(t, b.Count())
	assert.Zero(t, b.Controller.Len())
	assert.Equal(t, feedback.Error, b.Feedback.Kind())
	assert.Equal(t, deck.FieldAnswer, b.Focus.Current, "focus returns to the empty field")
	assert.Equal(t, "Q", b.Value(deck.FieldQuestion), "inputs are kept on error")
}

func TestBuilderView_EnterFlow(t *testing.T) {
	b, _ := newTestBuilder(t)
	typeText(b, "Q")
	_, cmd := b.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, deck.FieldAnswer, b.Focus.Current, "enter on question moves to answer")

	typeText(b, "A")
	_, cmd = b.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, AddCardMsg{}, cmd())

	b.Focus.SetFocus(deck.FieldDeckName)
	_, cmd = b.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, SaveDeckMsg{}, cmd())
}

func TestBuilderView_SaveDeck(t *testing.T) {
	b, kv := newTestBuilder(t)
	ctx := context.Background()
	for _, c := range []deck.Card{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}} {
		b.SetValue(deck.FieldQuestion, c.Question)
		b.SetValue(deck.FieldAnswer, c.Answer)
		b.Update(AddCardMsg{})
	}
	b.SetValue(deck.FieldDeckName, "Biology")
	b.Preview.Toggle()

	b.Update(SaveDeckMsg{})

	assert.Zero(t, b.Count())
	assert.Zero(t, b.Controller.Len())
	assert.Equal(t, "Biology", b.Value(deck.FieldDeckName), "deck name is kept")
	assert.Equal(t, preview.Front, b.Preview.Face())
	assert.Equal(t, preview.QuestionPlaceholder, b.Preview.Text())
	assert.Equal(t, `Deck "Biology" saved successfully! (2 cards)`, b.Feedback.Message())

	raw, ok, err := kv.Get(ctx, storage.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"Biology":[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]}`, raw)
}

func TestBuilderView_SaveDeckValidation(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.SetValue(deck.FieldDeckName, "   ")
	b.Update(SaveDeckMsg{})
	assert.Equal(t, deck.FieldDeckName, b.Focus.Current)
	assert.Equal(t, "Please enter a name for the deck.", b.Feedback.Message())

	b.SetValue(deck.FieldDeckName, "Bio")
	b.Update(SaveDeckMsg{})
	assert.Equal(t, "Cannot save an empty deck. Add some cards first.", b.Feedback.Message())
	assert.Equal(t, feedback.Error, b.Feedback.Kind())
}

func TestBuilderView_SaveDeckCorruptStorage(t *testing.T) {
	b, kv := newTestBuilder(t)
	require.NoError(t, kv.Set(context.Background(), storage.DefaultKey, "not json"))
	b.SetValue(deck.FieldQuestion, "Q")
	b.SetValue(deck.FieldAnswer, "A")
	b.Update(AddCardMsg{})
	b.SetValue(deck.FieldDeckName, "Bio")

	b.Update(SaveDeckMsg{})

	assert.Equal(t, 1, b.Count(), "session survives a failed save")
	assert.Equal(t, feedback.Error, b.Feedback.Kind())
	assert.Equal(t, "An error occurred while saving the deck.", b.Feedback.Message())
}

func TestBuilderView_FlipPreview(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.Update(FlipPreviewMsg{})
	assert.Equal(t, preview.Back, b.Preview.Face())
	b.Update(FlipPreviewMsg{})
	assert.Equal(t, preview.Front, b.Preview.Face())
}

func TestBuilderView_FeedbackClears(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.Update(AddCardMsg{})
	first := b.Feedback.Message()
	require.NotEmpty(t, first)

	b.Update(feedback.ClearMsg{Gen: 0})
	assert.True(t, b.Feedback.Active(), "stale clear is ignored")
}
