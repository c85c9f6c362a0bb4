package game

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card id and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// ParseDecks decodes a YAML deck file.
func ParseDecks(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// BuildDeck expands a deck entry into card definitions. An unknown id
// surfaces here as a *LookupError, before any match starts.
func BuildDeck(cat Catalog, entry DeckEntry) ([]*Card, error) {
	var cards []*Card
	for _, ce := range entry.Cards {
		card, err := cat.Card(ce.ID)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", entry.Name, err)
		}
		count := ce.Count
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// Deck is a named deck expanded into card definitions.
type Deck struct {
	Name  string
	Cards []*Card
}

// LoadDecks reads a YAML deck file and builds every deck in file order, so
// deck N is LoadDecks(...)[N-1]. Any unknown card id fails the whole file.
func LoadDecks(path string, cat Catalog) ([]Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	df, err := ParseDecks(data)
	if err != nil {
		return nil, err
	}

	decks := make([]Deck, 0, len(df.Decks))
	for _, entry := range df.Decks {
		cards, err := BuildDeck(cat, entry)
		if err != nil {
			return nil, err
		}
		decks = append(decks, Deck{Name: entry.Name, Cards: cards})
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, cat Catalog, n int) (string, []*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	df, err := ParseDecks(data)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	cards, err := BuildDeck(cat, deck)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

// RandomDeck picks n cards at random from the catalog, with repetition.
func RandomDeck(cat Catalog, n int, rng *rand.Rand) ([]*Card, error) {
	ids := cat.CardIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	cards := make([]*Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := cat.Card(ids[rng.Intn(len(ids))])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
