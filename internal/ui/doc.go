// Package ui is the Bubble Tea front end for authoring a deck.
//
// Structure:
//   - AppModel: root model; routes keys through the KeyHandler and overlays
//   - BuilderView: deck-name/question/answer form, card preview, count and feedback
//   - DecksView: read-only overlay listing saved decks
//   - KeybindRegistry/KeyHandler: direct shortcuts plus a ctrl+x leader with which-key help
package ui
