package ui

import (
	"context"

	"flashdeck/internal/deck"

	tea "github.com/charmbracelet/bubbletea"
)

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// loadDecksCmd lists saved decks off the update loop.
func loadDecksCmd(c *deck.Controller) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return DecksLoadedMsg{}
		}
		decks, err := c.Decks(context.Background())
		return DecksLoadedMsg{Decks: decks, Err: err}
	}
}
