package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/studiowebux/flashdeck/internal/types"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultCardsPath selects the card list in a deck file
const DefaultCardsPath = "verbs"

// plainField matches a cards path naming a single top-level key. Such paths
// are resolved without JMESPath so conjugation key order survives.
var plainField = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Source provides the cards of a deck
type Source interface {
	Cards(ctx context.Context) ([]types.CardSnapshot, error)
}

// StaticSource serves a fixed card list
type StaticSource []types.CardSnapshot

func (s StaticSource) Cards(context.Context) ([]types.CardSnapshot, error) {
	return append([]types.CardSnapshot(nil), s...), nil
}

// FileSource reads cards from a JSON, JSONC or YAML file
type FileSource struct {
	Path      string
	CardsPath string
}

func (s FileSource) Cards(context.Context) ([]types.CardSnapshot, error) {
	return LoadFile(s.Path, s.CardsPath)
}

// LoadFile reads a deck file. cardsPath is a JMESPath expression selecting
// the card array; empty means the document itself is the array. A cards path
// that matches nothing yields an empty deck.
func LoadFile(path, cardsPath string) ([]types.CardSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return decodeYAML(data, cardsPath)
	case ".json", ".jsonc":
		// Comments and trailing commas are accepted in both
		return decodeJSON(jsonc.ToJSON(data), cardsPath)
	default:
		return nil, fmt.Errorf("unsupported deck file extension %q", ext)
	}
}

func decodeJSON(data []byte, cardsPath string) ([]types.CardSnapshot, error) {
	var cards []types.CardSnapshot

	switch {
	case cardsPath == "":
		if err := json.Unmarshal(data, &cards); err != nil {
			return nil, fmt.Errorf("failed to decode deck: %w", err)
		}
	case plainField.MatchString(cardsPath):
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode deck: %w", err)
		}
		raw, ok := doc[cardsPath]
		if !ok {
			return nil, nil
		}
		if err := json.Unmarshal(raw, &cards); err != nil {
			return nil, fmt.Errorf("failed to decode cards at %q: %w", cardsPath, err)
		}
	default:
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode deck: %w", err)
		}
		return search(doc, cardsPath)
	}

	return cards, nil
}

func decodeYAML(data []byte, cardsPath string) ([]types.CardSnapshot, error) {
	var cards []types.CardSnapshot

	switch {
	case cardsPath == "":
		if err := yaml.Unmarshal(data, &cards); err != nil {
			return nil, fmt.Errorf("failed to decode deck: %w", err)
		}
	case plainField.MatchString(cardsPath):
		var doc map[string]yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode deck: %w", err)
		}
		node, ok := doc[cardsPath]
		if !ok {
			return nil, nil
		}
		if err := node.Decode(&cards); err != nil {
			return nil, fmt.Errorf("failed to decode cards at %q: %w", cardsPath, err)
		}
	default:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode deck: %w", err)
		}
		return search(doc, cardsPath)
	}

	return cards, nil
}

// search evaluates a JMESPath expression over a generic document. Generic
// maps have no key order, so conjugation tables come back in Persons order.
func search(doc any, cardsPath string) ([]types.CardSnapshot, error) {
	result, err := jmespath.Search(cardsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid cards_path %q: %w", cardsPath, err)
	}
	if result == nil {
		return nil, nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode cards at %q: %w", cardsPath, err)
	}

	var cards []types.CardSnapshot
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("cards_path %q does not select a card list: %w", cardsPath, err)
	}

	for i := range cards {
		for tense, forms := range cards[i].Conjugations {
			cards[i].Conjugations[tense] = forms.Canonical()
		}
	}
	return cards, nil
}

// LoadWithFallback reads cards from src. A failing source falls back to the
// sample deck so the service always starts.
func LoadWithFallback(ctx context.Context, src Source, logger *zap.Logger) []types.CardSnapshot {
	if src == nil {
		logger.Info("No deck source configured, using sample data")
		return SampleCards()
	}

	cards, err := src.Cards(ctx)
	if err != nil {
		logger.Warn("Failed to load deck, using sample data", zap.Error(err))
		return SampleCards()
	}

	logger.Info("Loaded deck", zap.Int("cards", len(cards)))
	return cards
}
