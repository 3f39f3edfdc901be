// Package server exposes a deck over the flashcard HTTP API:
//
//	GET  /next, /previous, /first, /last   card under the moved cursor
//	POST /goto {"card_number": n}          1-based jump, "error": true when out of range
//	GET  /cards                            whole deck
//	GET  /health                           liveness
//
// Directional endpoints answer an empty deck with a placeholder card at
// position 0 of 0.
package server
