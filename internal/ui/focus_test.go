package ui

import (
	"testing"

	"flashdeck/internal/deck"

	"github.com/stretchr/testify/assert"
)

func TestFocusManager_Rotation(t *testing.T) {
	f := NewFocusManager(deck.FieldDeckName, deck.FieldQuestion, deck.FieldAnswer)
	assert.Equal(t, deck.FieldDeckName, f.Current)

	assert.Equal(t, deck.FieldQuestion, f.Next())
	assert.Equal(t, deck.FieldAnswer, f.Next())
	assert.Equal(t, deck.FieldDeckName, f.Next(), "wraps forward")
	assert.Equal(t, deck.FieldAnswer, f.Prev(), "wraps backward")
}

func TestFocusManager_SetFocusAndOnChange(t *testing.T) {
	f := NewFocusManager(deck.FieldQuestion, deck.FieldAnswer)
	var changes [][2]deck.Field
	f.OnChange = func(from, to deck.Field) { changes = append(changes, [2]deck.Field{from, to}) }

	assert.True(t, f.SetFocus(deck.FieldAnswer))
	assert.True(t, f.SetFocus(deck.FieldAnswer), "refocusing is allowed")
	assert.False(t, f.SetFocus(deck.FieldDeckName), "field not in order")

	assert.Equal(t, [][2]deck.Field{{deck.FieldQuestion, deck.FieldAnswer}}, changes)
}

func TestFocusManager_Empty(t *testing.T) {
	var f FocusManager
	assert.Equal(t, deck.Field(""), f.Next())
	assert.Equal(t, deck.Field(""), f.Prev())
}
