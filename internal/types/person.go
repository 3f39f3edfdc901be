package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPerson is returned when a conjugation table names a person
// outside the fixed label table
var ErrUnknownPerson = errors.New("unknown person key")

// PersonKey identifies a grammatical person/number/gender slot
type PersonKey string

const (
	PersonHe      PersonKey = "he"
	PersonShe     PersonKey = "she"
	PersonYouMasc PersonKey = "you_m"
	PersonYouFem  PersonKey = "you_f"
	PersonWe      PersonKey = "we"
	PersonThey    PersonKey = "they"
)

// personLabels is the closed display-label table
var personLabels = map[PersonKey]string{
	PersonHe:      "He",
	PersonShe:     "She",
	PersonYouMasc: "You (M)",
	PersonYouFem:  "You (F)",
	PersonWe:      "We",
	PersonThey:    "They",
}

// Persons lists the known person keys in conventional table order
var Persons = []PersonKey{PersonHe, PersonShe, PersonYouMasc, PersonYouFem, PersonWe, PersonThey}

// Label returns the display label for a person key
func (p PersonKey) Label() (string, error) {
	label, ok := personLabels[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPerson, string(p))
	}
	return label, nil
}

// PersonForm is one row of a conjugation table
type PersonForm struct {
	Person PersonKey
	Arabic string
}

// PersonForms is a conjugation table for one tense. It keeps the key order
// of the payload it was decoded from.
type PersonForms []PersonForm

// Get returns the form for a person
func (f PersonForms) Get(person PersonKey) (string, bool) {
	for _, form := range f {
		if form.Person == person {
			return form.Arabic, true
		}
	}
	return "", false
}

// Canonical returns a copy ordered by Persons, unknown persons last in their
// input order. Used when the source order was lost.
func (f PersonForms) Canonical() PersonForms {
	rank := func(p PersonKey) int {
		for i, known := range Persons {
			if known == p {
				return i
			}
		}
		return len(Persons)
	}

	out := append(PersonForms(nil), f...)
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Person) < rank(out[j].Person)
	})
	return out
}

// UnmarshalJSON decodes a JSON object, preserving key order
func (f *PersonForms) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("conjugation table must be an object, got %v", tok)
	}

	forms := PersonForms{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected conjugation key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("conjugation %q: %w", key, err)
		}
		forms = append(forms, PersonForm{Person: PersonKey(key), Arabic: value})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = forms
	return nil
}

// MarshalJSON encodes the table as a JSON object in stored order
func (f PersonForms) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, form := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(form.Person))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(form.Arabic)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping, preserving key order
func (f *PersonForms) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("conjugation table must be a mapping (line %d)", node.Line)
	}

	forms := make(PersonForms, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value string
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("conjugation %q: %w", node.Content[i].Value, err)
		}
		forms = append(forms, PersonForm{Person: PersonKey(node.Content[i].Value), Arabic: value})
	}

	*f = forms
	return nil
}

// MarshalYAML encodes the table as a YAML mapping in stored order
func (f PersonForms) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, form := range f {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(form.Person)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: form.Arabic},
		)
	}
	return node, nil
}
