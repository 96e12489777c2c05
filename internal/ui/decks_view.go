package ui

import (
	"fmt"

	"flashdeck/internal/deck"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// deckItem adapts a DeckSummary to list.DefaultItem.
type deckItem struct {
	summary deck.DeckSummary
}

func (i deckItem) Title() string       { return i.summary.Name }
func (i deckItem) Description() string { return fmt.Sprintf("%d cards", i.summary.Cards) }
func (i deckItem) FilterValue() string { return i.summary.Name }

// DecksView is the read-only saved-decks overlay.
type DecksView struct {
	list    list.Model
	loading bool
	err     error
}

var _ View = (*DecksView)(nil)

// NewDecksView creates the overlay in its loading state.
func NewDecksView() *DecksView {
	l := list.New(nil, newDeckListDelegate(), 48, 14)
	l.Title = "Saved decks"
	l.Styles.Title = Styles.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return &DecksView{list: l, loading: true}
}

// Init implements View.
func (v *DecksView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *DecksView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case DecksLoadedMsg:
		v.loading = false
		v.err = msg.Err
		items := make([]list.Item, len(msg.Decks))
		for i, d := range msg.Decks {
			items[i] = deckItem{summary: d}
		}
		return v, v.list.SetItems(items)
	case tea.KeyMsg:
		if msg.String() == "esc" || msg.String() == "enter" {
			return v, msgCmd(DismissModalMsg{})
		}
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// Len returns the number of listed decks.
func (v *DecksView) Len() int {
	return len(v.list.Items())
}

// View implements View.
func (v *DecksView) View() string {
	var body string
	switch {
	case v.loading:
		body = Styles.Empty.Render("Loading decks…")
	case v.err != nil:
		body = Styles.Title.Render("Saved decks") + "\n\n" +
			Styles.Empty.Render("Could not read saved decks: "+v.err.Error())
	case len(v.list.Items()) == 0:
		body = Styles.Title.Render("Saved decks") + "\n\n" +
			Styles.Empty.Render("No decks saved yet")
	default:
		body = v.list.View()
	}
	return Styles.Box.Render(body + "\n\n" + Styles.Muted.Render("esc: close"))
}
