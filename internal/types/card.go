package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a card payload lacks a required field
var ErrMissingField = errors.New("missing required field")

// requiredCardFields are checked for presence when decoding a payload.
// Nothing beyond presence is validated.
var requiredCardFields = []string{"english", "arabic", "position", "total"}

// Sentence is one example sentence attached to a tense
type Sentence struct {
	Arabic        string `json:"arabic" yaml:"arabic"`
	English       string `json:"english" yaml:"english"`
	Pronunciation string `json:"pronunciation" yaml:"pronunciation"`
}

// CardSnapshot is the full description of the card currently on screen,
// as returned by the deck service
type CardSnapshot struct {
	English          string                   `json:"english" yaml:"english"`
	Arabic           string                   `json:"arabic" yaml:"arabic"`
	Form             string                   `json:"form,omitempty" yaml:"form,omitempty"`
	Pronunciation    string                   `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	Position         int                      `json:"position" yaml:"position"`
	Total            int                      `json:"total" yaml:"total"`
	Conjugations     map[TenseKey]PersonForms `json:"conjugations,omitempty" yaml:"conjugations,omitempty"`
	ExampleSentences map[TenseKey][]Sentence  `json:"example_sentences,omitempty" yaml:"example_sentences,omitempty"`
}

// HasForm reports whether the card carries a grammatical form label.
// The deck service sends "" for cards without one.
func (c *CardSnapshot) HasForm() bool {
	return c.Form != ""
}

// HasPronunciation reports whether the card carries a pronunciation
func (c *CardSnapshot) HasPronunciation() bool {
	return c.Pronunciation != ""
}

// ConjugationsFor returns the conjugation table for a tense. A tense sent as
// null counts as missing; an empty table does not.
func (c *CardSnapshot) ConjugationsFor(tense TenseKey) (PersonForms, bool) {
	if c == nil || c.Conjugations == nil {
		return nil, false
	}
	forms, ok := c.Conjugations[tense]
	return forms, ok && forms != nil
}

// SentencesFor returns the example sentences for a tense. A tense sent as
// null counts as missing; an empty list does not.
func (c *CardSnapshot) SentencesFor(tense TenseKey) ([]Sentence, bool) {
	if c == nil || c.ExampleSentences == nil {
		return nil, false
	}
	sentences, ok := c.ExampleSentences[tense]
	return sentences, ok && sentences != nil
}

// GotoRequest is the body of POST /goto
type GotoRequest struct {
	CardNumber int `json:"card_number"`
}

// GotoResponse is the body returned by POST /goto. When Error is set the card
// fields describe a placeholder and only Total is meaningful.
type GotoResponse struct {
	CardSnapshot
	Error bool `json:"error"`
}

// DecodeCard decodes a card payload, checking that required fields are present
func DecodeCard(data []byte) (*CardSnapshot, error) {
	if err := checkPresence(data); err != nil {
		return nil, err
	}

	var card CardSnapshot
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("failed to decode card: %w", err)
	}
	return &card, nil
}

// DecodeGotoResponse decodes a POST /goto payload. An out-of-range response
// only needs the error flag and total.
func DecodeGotoResponse(data []byte) (*GotoResponse, error) {
	var probe struct {
		Error bool `json:"error"`
		Total int  `json:"total"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode goto response: %w", err)
	}
	if probe.Error {
		return &GotoResponse{CardSnapshot: CardSnapshot{Total: probe.Total}, Error: true}, nil
	}

	card, err := DecodeCard(data)
	if err != nil {
		return nil, err
	}
	return &GotoResponse{CardSnapshot: *card}, nil
}

func checkPresence(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode card: %w", err)
	}
	for _, name := range requiredCardFields {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	return nil
}
