package ui

import "flashdeck/internal/deck"

// AddCardMsg is the add-card gesture (ctrl+a, or enter on the answer field).
type AddCardMsg struct{}

// SaveDeckMsg is the save-deck gesture (ctrl+s, or enter on the deck-name field).
type SaveDeckMsg struct{}

// FlipPreviewMsg is the flip-preview gesture (ctrl+f).
type FlipPreviewMsg struct{}

// ShowDecksMsg opens the saved-decks overlay (C-x l).
type ShowDecksMsg struct{}

// DecksLoadedMsg carries the saved-deck listing for the overlay.
type DecksLoadedMsg struct {
	Decks []deck.DeckSummary
	Err   error
}

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}
