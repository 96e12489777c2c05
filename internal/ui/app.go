package ui

import (
	"time"

	"flashdeck/internal/deck"

	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the root model: the builder form plus an overlay stack.
type AppModel struct {
	Mode       AppMode
	Builder    *BuilderView
	Overlays   OverlayStack
	KeyHandler *KeyHandler
	Controller *deck.Controller
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Builder.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.AppModel.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.AppModel.View()
}

// Update routes msg and returns the follow-up command.
func (a *AppModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ShowDecksMsg:
		if a.Mode == ModeDecks {
			return nil
		}
		a.Mode = a.Overlays.Open(Overlay{
			View:        NewDecksView(),
			Mode:        ModeDecks,
			DismissKeys: []string{"esc", "q"},
		})
		return loadDecksCmd(a.Controller)
	case DecksLoadedMsg:
		return a.Overlays.Update(msg)
	case DismissModalMsg:
		a.Mode = a.Overlays.Close()
		return nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if consumed, keyCmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
			return keyCmd
		}
		if cmd, handled := a.Overlays.HandleKey(msg); handled {
			a.Mode = a.Overlays.Mode()
			return cmd
		}
	}

	v, cmd := a.Builder.Update(msg)
	if b, ok := v.(*BuilderView); ok {
		a.Builder = b
	}
	return cmd
}

// View renders the builder, or the top overlay, plus help.
func (a *AppModel) View() string {
	base := a.Builder.View()
	if top, ok := a.Overlays.Top(); ok {
		base = top.View.View()
	}
	if a.KeyHandler.LeaderWaiting {
		return base + "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	}
	return base + "\n" + RenderShortcutHelp(a.KeyHandler.Registry, a.Mode)
}

// NewAppModel creates the root model around c.
func NewAppModel(c *deck.Controller, feedbackDelay time.Duration) *AppModel {
	reg := NewKeybindRegistry()
	builderOnly := []AppMode{ModeBuilder}
	add := msgCmd(AddCardMsg{})
	save := msgCmd(SaveDeckMsg{})
	flip := msgCmd(FlipPreviewMsg{})
	decks := msgCmd(ShowDecksMsg{})

	reg.BindWithDescForMode("ctrl+a", add, "add card", builderOnly)
	reg.BindWithDescForMode("ctrl+s", save, "save deck", builderOnly)
	reg.BindWithDescForMode("ctrl+f", flip, "flip", builderOnly)
	reg.BindWithDescForMode("C-x a", add, "Add card", builderOnly)
	reg.BindWithDescForMode("C-x s", save, "Save deck", builderOnly)
	reg.BindWithDescForMode("C-x f", flip, "Flip preview", builderOnly)
	reg.BindWithDescForMode("C-x l", decks, "Saved decks", builderOnly)
	reg.BindWithDesc("C-x q", tea.Quit, "Quit")

	return &AppModel{
		Mode:       ModeBuilder,
		Builder:    NewBuilderView(c, feedbackDelay),
		KeyHandler: NewKeyHandler(reg),
		Controller: c,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
