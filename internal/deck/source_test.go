package deck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/flashdeck/internal/types"
	"go.uber.org/zap"
)

func writeDeck(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func personOrder(forms types.PersonForms) []types.PersonKey {
	keys := make([]types.PersonKey, len(forms))
	for i, f := range forms {
		keys[i] = f.Person
	}
	return keys
}

const jsoncDeck = `{
	// verbs for lesson one
	"verbs": [
		{
			"english": "to write",
			"arabic": "كَتَبَ",
			"form": "Form I",
			"conjugations": {"past": {"we": "كَتَبْنَا", "he": "كَتَبَ"}},
		},
	],
	"lessons": {"two": {"cards": [{"english": "to go", "arabic": "ذَهَبَ"}]}}
}`

func TestLoadJSONCWithDefaultPath(t *testing.T) {
	cards, err := LoadFile(writeDeck(t, "deck.jsonc", jsoncDeck), DefaultCardsPath)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	assert.Equal(t, "to write", cards[0].English)
	assert.Equal(t, "Form I", cards[0].Form)
	// Plain paths keep the file's key order
	assert.Equal(t, []types.PersonKey{types.PersonWe, types.PersonHe}, personOrder(cards[0].Conjugations[types.TensePast]))
}

func TestLoadJSONWithJMESPath(t *testing.T) {
	path := writeDeck(t, "deck.json", `{
		"verbs": [{"english": "to write", "arabic": "كَتَبَ", "conjugations": {"past": {"we": "كَتَبْنَا", "he": "كَتَبَ"}}}],
		"lessons": {"two": {"cards": [{"english": "to go", "arabic": "ذَهَبَ"}]}}
	}`)

	cards, err := LoadFile(path, "lessons.two.cards")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "to go", cards[0].English)

	filtered, err := LoadFile(path, "verbs[?english=='to write']")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	// Generic decoding loses key order; tables come back in canonical order
	assert.Equal(t, []types.PersonKey{types.PersonHe, types.PersonWe}, personOrder(filtered[0].Conjugations[types.TensePast]))
}

func TestLoadYAMLKeepsOrder(t *testing.T) {
	path := writeDeck(t, "deck.yaml", `
verbs:
  - english: to read
    arabic: قَرَأَ
    pronunciation: qara'a
    conjugations:
      present:
        they: يَقْرَؤُونَ
        she: تَقْرَأُ
    example_sentences:
      present:
        - arabic: تَقْرَأُ الكِتَابَ
          english: She reads the book
          pronunciation: taqra'u al-kitāba
`)

	cards, err := LoadFile(path, "verbs")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	assert.Equal(t, "qara'a", cards[0].Pronunciation)
	assert.Equal(t, []types.PersonKey{types.PersonThey, types.PersonShe}, personOrder(cards[0].Conjugations[types.TensePresent]))
	sentences, ok := cards[0].SentencesFor(types.TensePresent)
	require.True(t, ok)
	assert.Equal(t, "She reads the book", sentences[0].English)
}

func TestLoadDocumentArray(t *testing.T) {
	cards, err := LoadFile(writeDeck(t, "deck.yml", "- english: to go\n  arabic: ذَهَبَ\n"), "")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "to go", cards[0].English)
}

func TestLoadMissingPathIsEmptyDeck(t *testing.T) {
	for _, cardsPath := range []string{"nouns", "lessons.nine"} {
		cards, err := LoadFile(writeDeck(t, "deck.json", `{"verbs": []}`), cardsPath)
		require.NoError(t, err)
		assert.Empty(t, cards, cardsPath)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		cardsPath string
	}{
		{name: "unsupported extension", file: "deck.toml", content: "verbs = []"},
		{name: "malformed json", file: "deck.json", content: `{"verbs": [`, cardsPath: "verbs"},
		{name: "malformed yaml", file: "deck.yaml", content: "verbs: [", cardsPath: "verbs"},
		{name: "invalid jmespath", file: "deck.json", content: `{"verbs": []}`, cardsPath: "verbs[?"},
		{name: "path selects non-list", file: "deck.json", content: `{"a": {"b": 3}}`, cardsPath: "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeDeck(t, tt.file, tt.content), tt.cardsPath)
			assert.Error(t, err)
		})
	}
}

type failingSource struct{}

func (failingSource) Cards(context.Context) ([]types.CardSnapshot, error) {
	return nil, errors.New("unreachable")
}

func TestLoadWithFallback(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	assert.Len(t, LoadWithFallback(ctx, nil, logger), 3)
	assert.Len(t, LoadWithFallback(ctx, failingSource{}, logger), 3)
	assert.Len(t, LoadWithFallback(ctx, FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}, logger), 3)

	one := StaticSource{{English: "to go", Arabic: "ذَهَبَ"}}
	cards := LoadWithFallback(ctx, one, logger)
	require.Len(t, cards, 1)
	assert.Equal(t, "to go", cards[0].English)
}
