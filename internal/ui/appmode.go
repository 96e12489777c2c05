package ui

// AppMode is the top-level screen the app is showing.
type AppMode int

const (
	ModeBuilder AppMode = iota
	ModeDecks
)

func (m AppMode) String() string {
	switch m {
	case ModeBuilder:
		return "Builder"
	case ModeDecks:
		return "Decks"
	default:
		return "Unknown"
	}
}
