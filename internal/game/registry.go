package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card ids to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"blue_stripes_commando": BlueStripesCommando,
	"crinfrid_reavers":      CrinfridReavers,
	"catapult":              Catapult,
	"poor_infantry":         PoorInfantry,
	"prince_stennis":        PrinceStennis,
	"sigismund_dijkstra":    SigismundDijkstra,
	"thaler":                Thaler,
	"arachas":               Arachas,
	"arachas_behemoth":      ArachasBehemoth,
	"nekker":                Nekker,
	"gaunter_darkness":      GaunterDarkness,
	"villentretenmerth":     Villentretenmerth,
	"dun_banner_medic":      DunBannerMedic,
	"ballista":              Ballista,
	"dethmold":              Dethmold,
	"keira_metz":            KeiraMetz,
	"ves":                   Ves,
	"yarpen_zigrin":         YarpenZigrin,
	"siegfried":             Siegfried,
	"sheldon_skaggs":        SheldonSkaggs,
	"barclay_els":           BarclayEls,
	"ciaran":                Ciaran,
	"geralt":                Geralt,
	"ciri":                  Ciri,
	"yennefer":              Yennefer,
	"triss":                 Triss,
	"biting_frost":          BitingFrost,
	"impenetrable_fog":      ImpenetrableFog,
	"torrential_rain":       TorrentialRain,
	"clear_weather":         ClearSkies,
	"scorch":                ScorchCard,
}

// Catalog provides card definitions by id. It is read-only and deterministic.
type Catalog interface {
	CardIDs() []string
	Card(id string) (*Card, error)
}

// MapCatalog is a validated, in-memory catalog.
type MapCatalog struct {
	cards map[string]*Card
}

// NewCatalog validates the cards and indexes them by id.
func NewCatalog(cards ...*Card) (*MapCatalog, error) {
	c := &MapCatalog{cards: make(map[string]*Card, len(cards))}
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.cards[card.ID] = card
	}
	return c, nil
}

// DefaultCatalog returns the builtin card set.
func DefaultCatalog() *MapCatalog {
	cards := make([]*Card, 0, len(CardRegistry))
	for _, ctor := range CardRegistry {
		cards = append(cards, ctor())
	}
	c, err := NewCatalog(cards...)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// CardIDs returns every id in the catalog, sorted.
func (c *MapCatalog) CardIDs() []string {
	ids := make([]string, 0, len(c.cards))
	for id := range c.cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Card looks up a card by id. An unknown id is a *LookupError.
func (c *MapCatalog) Card(id string) (*Card, error) {
	card, ok := c.cards[id]
	if !ok {
		return nil, &LookupError{ID: id}
	}
	return card, nil
}

