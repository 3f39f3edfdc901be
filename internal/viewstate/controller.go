package viewstate

import (
	"errors"
	"fmt"

	"github.com/studiowebux/flashdeck/internal/types"
	"go.uber.org/zap"
)

// ErrUnknownTense is returned when a tense is not one of the rendered tabs
var ErrUnknownTense = errors.New("unknown tense")

// Controller is the single source of truth for what is on screen. Every
// render is a full projection of State onto the Surface, so calling a render
// twice without a state change produces the same Surface.
type Controller struct {
	state   *State
	surface Surface
	tabs    []types.TenseTab
	logger  *zap.Logger
}

// NewController creates a controller over state. tabs lists the tenses both
// tab-groups offer; nil or empty means the default past/present tabs.
// A tense selector that is not among the tabs falls back to the first tab.
func NewController(state *State, tabs []types.TenseTab, logger *zap.Logger) *Controller {
	if state == nil {
		state = NewState()
	}
	if len(tabs) == 0 {
		tabs = types.DefaultTenseTabs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		state:  state,
		tabs:   append([]types.TenseTab(nil), tabs...),
		logger: logger,
	}

	if key, ok := c.canonicalTense(state.ConjugationTense); ok {
		state.ConjugationTense = key
	} else {
		state.ConjugationTense = c.tabs[0].Key
	}
	if key, ok := c.canonicalTense(state.SentenceTense); ok {
		state.SentenceTense = key
	} else {
		state.SentenceTense = c.tabs[0].Key
	}

	c.surface.ConjugationTabs = c.projectTabs(state.ConjugationTense)
	c.surface.SentenceTabs = c.projectTabs(state.SentenceTense)
	c.renderFaces()
	c.renderError()
	_ = c.RenderConjugations()
	c.RenderSentences()

	return c
}

// State returns the view state owned by the controller
func (c *Controller) State() *State {
	return c.state
}

// Surface returns a copy of the current projection
func (c *Controller) Surface() Surface {
	return c.surface.clone()
}

// Tabs returns the configured tense tabs
func (c *Controller) Tabs() []types.TenseTab {
	return append([]types.TenseTab(nil), c.tabs...)
}

// LoadCard replaces the current card and re-renders the faces, counter and
// both lists using the current tense selectors. The returned error comes from
// the conjugation render (see RenderConjugations); the card is loaded either way.
func (c *Controller) LoadCard(card *types.CardSnapshot) error {
	if card == nil {
		return nil
	}

	c.state.Card = card
	c.renderFaces()

	err := c.RenderConjugations()
	c.RenderSentences()
	return err
}

// SetConjugationTense selects the tense shown in the conjugation list.
// Postcondition: exactly one conjugation tab is active and the list shows
// the current card's table for that tense.
func (c *Controller) SetConjugationTense(tense types.TenseKey) error {
	key, ok := c.canonicalTense(tense)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTense, string(tense))
	}

	c.state.ConjugationTense = key
	c.surface.ConjugationTabs = c.projectTabs(key)
	return c.RenderConjugations()
}

// SetSentenceTense selects the tense shown in the sentence list.
// Postcondition: exactly one sentence tab is active and the list shows the
// current card's sentences for that tense.
func (c *Controller) SetSentenceTense(tense types.TenseKey) error {
	key, ok := c.canonicalTense(tense)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTense, string(tense))
	}

	c.state.SentenceTense = key
	c.surface.SentenceTabs = c.projectTabs(key)
	c.RenderSentences()
	return nil
}

// NextConjugationTense selects the tab after the current conjugation tense,
// wrapping around
func (c *Controller) NextConjugationTense() error {
	return c.SetConjugationTense(c.nextTense(c.state.ConjugationTense))
}

// NextSentenceTense selects the tab after the current sentence tense,
// wrapping around
func (c *Controller) NextSentenceTense() error {
	return c.SetSentenceTense(c.nextTense(c.state.SentenceTense))
}

// RenderConjugations rewrites the conjugation list from State. Without a card
// or without a table for the selected tense it renders the placeholder.
// A person outside the label table is rendered under its raw key and
// reported with ErrUnknownPerson.
func (c *Controller) RenderConjugations() error {
	forms, ok := c.state.Card.ConjugationsFor(c.state.ConjugationTense)
	if !ok {
		c.surface.Conjugations = nil
		c.surface.ConjugationPlaceholder = ConjugationPlaceholder
		return nil
	}

	var errs []error
	rows := make([]ConjugationRow, 0, len(forms))
	for _, form := range forms {
		label, err := form.Person.Label()
		if err != nil {
			c.logger.Warn("conjugation row has unknown person",
				zap.String("person", string(form.Person)),
				zap.String("tense", string(c.state.ConjugationTense)),
				zap.String("card", c.state.Card.English),
			)
			errs = append(errs, err)
			label = string(form.Person)
		}
		rows = append(rows, ConjugationRow{
			Person: form.Person,
			Label:  label,
			Arabic: form.Arabic,
		})
	}

	c.surface.Conjugations = rows
	c.surface.ConjugationPlaceholder = ""
	return errors.Join(errs...)
}

// RenderSentences rewrites the sentence list from State, in stored order
func (c *Controller) RenderSentences() {
	sentences, ok := c.state.Card.SentencesFor(c.state.SentenceTense)
	if !ok {
		c.surface.Sentences = nil
		c.surface.SentencePlaceholder = SentencePlaceholder
		return
	}

	c.surface.Sentences = append(make([]types.Sentence, 0, len(sentences)), sentences...)
	c.surface.SentencePlaceholder = ""
}

// ToggleFlip turns the card over and returns the new flipped state
func (c *Controller) ToggleFlip() bool {
	c.state.Flipped = !c.state.Flipped
	c.surface.Flipped = c.state.Flipped
	return c.state.Flipped
}

// FaceFront turns the card to its front face
func (c *Controller) FaceFront() {
	c.state.Flipped = false
	c.surface.Flipped = false
}

// ShowError shows message in the error banner
func (c *Controller) ShowError(message string) {
	c.state.ErrorText = message
	c.renderError()
}

// ClearError hides the error banner
func (c *Controller) ClearError() {
	c.state.ErrorText = ""
	c.renderError()
}

func (c *Controller) renderFaces() {
	c.surface.Flipped = c.state.Flipped

	card := c.state.Card
	if card == nil {
		return
	}

	c.surface.English = card.English
	c.surface.Arabic = card.Arabic
	c.surface.Form = Region{Text: card.Form, Visible: card.HasForm()}
	c.surface.Pronunciation = Region{Text: card.Pronunciation, Visible: card.HasPronunciation()}
	c.surface.Counter = fmt.Sprintf("Card %d of %d", card.Position, card.Total)
	c.surface.GotoMax = card.Total
}

func (c *Controller) renderError() {
	c.surface.Error = Region{
		Text:    c.state.ErrorText,
		Visible: c.state.ErrorText != "",
	}
}

// projectTabs marks the tab whose key equals active
func (c *Controller) projectTabs(active types.TenseKey) []Tab {
	tabs := make([]Tab, len(c.tabs))
	for i, tab := range c.tabs {
		tabs[i] = Tab{
			Key:    tab.Key,
			Label:  tab.Label,
			Active: tab.Key == active,
		}
	}
	return tabs
}

// canonicalTense maps a tense onto the configured tab key, ignoring case
func (c *Controller) canonicalTense(tense types.TenseKey) (types.TenseKey, bool) {
	for _, tab := range c.tabs {
		if tab.Key.Matches(tense) {
			return tab.Key, true
		}
	}
	return "", false
}

func (c *Controller) nextTense(current types.TenseKey) types.TenseKey {
	for i, tab := range c.tabs {
		if tab.Key == current {
			return c.tabs[(i+1)%len(c.tabs)].Key
		}
	}
	return c.tabs[0].Key
}
