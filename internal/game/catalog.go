package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML layout of a card catalog.
type CatalogFile struct {
	Cards []CatalogEntry `yaml:"cards"`
}

// CatalogEntry describes one card. Enum fields decode from their lower-case
// names (e.g. kind: weather, row: siege, ability: tight_bond).
type CatalogEntry struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Kind       CardKind    `yaml:"kind"`
	Value      int         `yaml:"value"`
	Row        Row         `yaml:"row"`
	Ability    AbilityKind `yaml:"ability"`
	Group      string      `yaml:"group"`
	WeatherRow Row         `yaml:"weather_row"`
	Hero       bool        `yaml:"hero"`
}

// Card converts the entry into a card definition.
func (e CatalogEntry) Card() *Card {
	name := e.Name
	if name == "" {
		name = e.ID
	}
	return &Card{
		ID:      e.ID,
		Name:    name,
		Kind:    e.Kind,
		Value:   e.Value,
		Row:     e.Row,
		Ability: Ability{Kind: e.Ability, Group: e.Group, Row: e.WeatherRow},
		Hero:    e.Hero,
	}
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*MapCatalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	cards := make([]*Card, 0, len(cf.Cards))
	for _, e := range cf.Cards {
		cards = append(cards, e.Card())
	}
	cat, err := NewCatalog(cards...)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cat, nil
}

// LoadCatalog reads a YAML catalog from disk.
func LoadCatalog(path string) (*MapCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}
