package ui

import "flashdeck/internal/deck"

// FocusManager tracks which form field has focus and rotates through them.
type FocusManager struct {
	Current  deck.Field
	Order    []deck.Field // Tab order
	OnChange func(from, to deck.Field)
}

// NewFocusManager starts on the first field in order.
func NewFocusManager(order ...deck.Field) *FocusManager {
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

// Next moves focus forward, wrapping at the end.
func (f *FocusManager) Next() deck.Field {
	return f.step(1)
}

// Prev moves focus backward, wrapping at the start.
func (f *FocusManager) Prev() deck.Field {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) deck.Field {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := f.index(f.Current)
	if idx < 0 {
		// Unknown current: Next lands on the first field, Prev on the last.
		if delta > 0 {
			idx = n - 1
		} else {
			idx = 0
		}
	}
	next := f.Order[((idx+delta)%n+n)%n]
	f.set(next)
	return f.Current
}

// SetFocus focuses id. Returns false if id is not in Order.
func (f *FocusManager) SetFocus(id deck.Field) bool {
	if f.index(id) < 0 {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) set(id deck.Field) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}

func (f *FocusManager) index(id deck.Field) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}
