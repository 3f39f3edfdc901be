/*
Package types defines the data exchanged between the deck service and the
flashcard client.

# Cards

CardSnapshot:
  - Everything needed to draw one flashcard
  - English and Arabic faces, optional form and pronunciation
  - Position and total for the card counter
  - Conjugations and example sentences keyed by tense

Conjugation tables (PersonForms) keep the key order of the payload they were
decoded from, for both JSON and YAML, so rows render in the order the deck
author wrote them.

# Keys

TenseKey is an open set; the tabs a client renders are configured as a list
of TenseTab. PersonKey is closed: he, she, you_m, you_f, we, they. Label()
reports ErrUnknownPerson for anything else.

# Decoding

DecodeCard checks that english, arabic, position and total are present and
returns ErrMissingField otherwise. No other validation is done.

# Example

	{
	  "english": "to write",
	  "arabic": "كَتَبَ",
	  "form": "Form I",
	  "pronunciation": "kataba",
	  "position": 1,
	  "total": 3,
	  "conjugations": {
	    "past": {"he": "كَتَبَ", "she": "كَتَبَتْ"}
	  },
	  "example_sentences": {
	    "past": [{"arabic": "...", "english": "...", "pronunciation": "..."}]
	  }
	}
*/
package types
