// Package deck holds the deck session being authored and the controller that
// mutates it and flushes it to storage.
//
// A Controller owns exactly one Session. Cards are appended in authoring order
// and the session is cleared once per successful save. Saved decks live in a
// Table keyed by deck name; saving an existing name replaces that entry.
package deck
