// Package feedback shows a transient status message that clears itself after
// a fixed delay. A newer message supersedes the pending clear of an older one.
package feedback

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultDelay is how long a message stays visible.
const DefaultDelay = 3 * time.Second

// Kind is the message category.
type Kind int

const (
	None Kind = iota
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return ""
	}
}

// ClearMsg is delivered when a message's delay expires.
// Gen identifies the message it was scheduled for.
type ClearMsg struct {
	Gen uint64
}

// Channel holds at most one message. Each Show cancels the previous deferred
// clear by bumping the generation; a ClearMsg from an older generation is ignored.
type Channel struct {
	Delay time.Duration

	text string
	kind Kind
	gen  uint64
}

// New returns a channel with the given delay, or DefaultDelay if delay <= 0.
func New(delay time.Duration) *Channel {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Channel{Delay: delay}
}

// Show replaces the current message and returns the command that clears it.
func (c *Channel) Show(kind Kind, text string) tea.Cmd {
	c.gen++
	c.text = text
	c.kind = kind
	gen := c.gen
	delay := c.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearMsg{Gen: gen}
	})
}

// Update handles ClearMsg. It reports whether msg was consumed.
func (c *Channel) Update(msg tea.Msg) bool {
	cm, ok := msg.(ClearMsg)
	if !ok {
		return false
	}
	if cm.Gen == c.gen {
		c.text = ""
		c.kind = None
	}
	return true
}

// Cancel drops the current message and any pending clear.
func (c *Channel) Cancel() {
	c.gen++
	c.text = ""
	c.kind = None
}

func (c *Channel) Message() string { return c.text }
func (c *Channel) Kind() Kind { return c.kind }
func (c *Channel) Active() bool { return c.text != "" }

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// View renders the message styled by kind; empty when nothing is shown.
func (c *Channel) View() string {
	switch c.kind {
	case Success:
		return successStyle.Render(c.text)
	case Error:
		return errorStyle.Render(c.text)
	default:
		return ""
	}
}
