package viewstate

import "github.com/studiowebux/flashdeck/internal/types"

// Placeholder texts rendered when a list has no data for the selected tense
const (
	ConjugationPlaceholder = "No conjugation data available"
	SentencePlaceholder    = "No example sentences available"
)

// Region is a text element that can be hidden
type Region struct {
	Text    string
	Visible bool
}

// Tab is one entry of a tense tab-group
type Tab struct {
	Key    types.TenseKey
	Label  string
	Active bool
}

// ConjugationRow is one rendered line of the conjugation list
type ConjugationRow struct {
	Person types.PersonKey
	Label  string
	Arabic string
}

// Surface is the projection of State that a renderer draws. Lists are
// rewritten wholesale on every render.
type Surface struct {
	Flipped       bool
	English       string
	Arabic        string
	Form          Region
	Pronunciation Region
	Counter       string
	GotoMax       int
	Error         Region

	ConjugationTabs        []Tab
	Conjugations           []ConjugationRow
	ConjugationPlaceholder string // set instead of Conjugations when there is no data

	SentenceTabs        []Tab
	Sentences           []types.Sentence
	SentencePlaceholder string // set instead of Sentences when there is no data
}

// clone returns a copy that shares no slices with s
func (s Surface) clone() Surface {
	out := s
	out.ConjugationTabs = append([]Tab(nil), s.ConjugationTabs...)
	out.SentenceTabs = append([]Tab(nil), s.SentenceTabs...)
	if s.Conjugations != nil {
		out.Conjugations = append([]ConjugationRow(nil), s.Conjugations...)
	}
	if s.Sentences != nil {
		out.Sentences = append([]types.Sentence(nil), s.Sentences...)
	}
	return out
}
