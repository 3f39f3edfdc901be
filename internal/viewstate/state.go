package viewstate

import "github.com/studiowebux/flashdeck/internal/types"

// State is the in-memory record of what is displayed and selected.
// It is owned by a Controller and only mutated through its methods.
type State struct {
	Card             *types.CardSnapshot
	ConjugationTense types.TenseKey
	SentenceTense    types.TenseKey
	Flipped          bool
	ErrorText        string // empty when no error is shown
}

// NewState returns the initial view state: no card, both tenses on past,
// front face up, no error
func NewState() *State {
	return &State{
		ConjugationTense: types.TensePast,
		SentenceTense:    types.TensePast,
	}
}
