package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal view drawn over the builder. Mode is the app mode
// while it is on top.
type Overlay struct {
	View        View
	Mode        AppMode
	DismissKeys []string
}

func (o Overlay) dismissedBy(key string) bool {
	for _, k := range o.DismissKeys {
		if k == key {
			return true
		}
	}
	return false
}

// OverlayStack holds open overlays; the top one receives input and owns the mode.
type OverlayStack struct {
	stack []Overlay
}

// Open pushes o and returns the mode now in effect.
func (s *OverlayStack) Open(o Overlay) AppMode {
	s.stack = append(s.stack, o)
	return s.Mode()
}

// Close pops the top overlay, if any, and returns the mode now in effect.
func (s *OverlayStack) Close() AppMode {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
	return s.Mode()
}

// Mode is the top overlay's mode, or ModeBuilder with nothing open.
func (s *OverlayStack) Mode() AppMode {
	top, ok := s.Top()
	if !ok {
		return ModeBuilder
	}
	return top.Mode
}

func (s *OverlayStack) Top() (Overlay, bool) {
	if len(s.stack) == 0 {
		return Overlay{}, false
	}
	return s.stack[len(s.stack)-1], true
}

func (s *OverlayStack) Len() int {
	return len(s.stack)
}

// HandleKey closes the top overlay on one of its dismiss keys and otherwise
// forwards the key to it. handled is false when no overlay is open.
func (s *OverlayStack) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	top, ok := s.Top()
	if !ok {
		return nil, false
	}
	if top.dismissedBy(msg.String()) {
		s.Close()
		return nil, true
	}
	return s.Update(msg), true
}

// Update passes msg to the top overlay and keeps the view it returns.
func (s *OverlayStack) Update(msg tea.Msg) tea.Cmd {
	if len(s.stack) == 0 {
		return nil
	}
	top := &s.stack[len(s.stack)-1]
	v, cmd := top.View.Update(msg)
	top.View = v
	return cmd
}
