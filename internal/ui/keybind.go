package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LeaderSeq is how the leader key is written in binding sequences.
// "C-x s" means ctrl+x then s.
const LeaderSeq = "C-x"

// KeybindRegistry maps key sequences to commands.
// Direct shortcuts are single keys ("ctrl+s"); leader bindings are "C-x <key>".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	modeFilter   map[string][]AppMode // empty = all modes
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		modeFilter:   make(map[string][]AppMode),
	}
}

// Bind registers seq without a description.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers seq for all modes.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForMode(seq, cmd, desc, nil)
}

// BindWithDescForMode registers seq for the given modes only.
func (r *KeybindRegistry) BindWithDescForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
	if len(modes) > 0 {
		r.modeFilter[n] = modes
	}
}

// Lookup returns the command bound to seq in mode, or nil.
func (r *KeybindRegistry) Lookup(seq string, mode AppMode) tea.Cmd {
	n := normalizeSeq(seq)
	if !r.appliesToMode(n, mode) {
		return nil
	}
	return r.bindings[n]
}

// LeaderHints returns key -> description for leader bindings active in mode.
func (r *KeybindRegistry) LeaderHints(mode AppMode) map[string]string {
	out := make(map[string]string)
	prefix := LeaderSeq + " "
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) || !r.appliesToMode(seq, mode) {
			continue
		}
		k := strings.TrimPrefix(seq, prefix)
		if d := r.descriptions[seq]; d != "" {
			out[k] = d
		} else {
			out[k] = seq
		}
	}
	return out
}

// Bindings returns help bindings for direct (non-leader) shortcuts active in mode, sorted by key.
func (r *KeybindRegistry) Bindings(mode AppMode) []key.Binding {
	seqs := make([]string, 0, len(r.bindings))
	for seq, cmd := range r.bindings {
		if cmd == nil || strings.HasPrefix(seq, LeaderSeq+" ") || r.descriptions[seq] == "" {
			continue
		}
		if r.appliesToMode(seq, mode) {
			seqs = append(seqs, seq)
		}
	}
	sort.Strings(seqs)
	out := make([]key.Binding, 0, len(seqs))
	for _, seq := range seqs {
		out = append(out, key.NewBinding(key.WithKeys(seq), key.WithHelp(seq, r.descriptions[seq])))
	}
	return out
}

func (r *KeybindRegistry) appliesToMode(seq string, mode AppMode) bool {
	modes, ok := r.modeFilter[seq]
	if !ok || len(modes) == 0 {
		return true
	}
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

// normalizeSeq collapses whitespace and writes the leader key as "C-x".
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "ctrl+x" {
			parts[i] = LeaderSeq
		}
	}
	return strings.Join(parts, " ")
}

// KeyHandler tracks leader state and dispatches to the registry.
// Keys it does not consume go to the focused text field.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string // tea.KeyMsg.String() of the leader, "ctrl+x"
	LeaderWaiting bool
}

// NewKeyHandler creates a handler with ctrl+x as leader.
// Space cannot lead here since it is typed into the fields.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg, LeaderKey: "ctrl+x"}
}

// Handle processes a KeyMsg. consumed means the key must not reach the form.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if s == "esc" && h.LeaderWaiting {
		h.LeaderWaiting = false
		return true, nil
	}

	if s == h.LeaderKey {
		h.LeaderWaiting = !h.LeaderWaiting
		return true, nil
	}

	if h.LeaderWaiting {
		h.LeaderWaiting = false
		return true, h.Registry.Lookup(LeaderSeq+" "+s, mode)
	}

	if c := h.Registry.Lookup(s, mode); c != nil {
		return true, c
	}
	return false, nil
}
