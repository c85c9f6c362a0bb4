package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// Side identifies one of the two seats at the table.
type Side int

const (
	SideNone     Side = -1
	SidePlayer   Side = 0
	SideOpponent Side = 1
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "Player"
	case SideOpponent:
		return "Opponent"
	default:
		return "None"
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "player":
		*s = SidePlayer
	case "opponent":
		*s = SideOpponent
	case "none", "":
		*s = SideNone
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

type CardKind int

const (
	KindUnit CardKind = iota
	KindWeather
	KindSpecial
)

func (k CardKind) String() string {
	switch k {
	case KindUnit:
		return "Unit"
	case KindWeather:
		return "Weather"
	case KindSpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

func (k CardKind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

func (k *CardKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "unit", "":
		*k = KindUnit
	case "weather":
		*k = KindWeather
	case "special":
		*k = KindSpecial
	default:
		return fmt.Errorf("unknown card kind %q", text)
	}
	return nil
}

// Row is both a row affinity on a card and a row kind on the board.
type Row int

const (
	RowNone Row = iota
	RowClose
	RowRanged
	RowSiege
	RowAny
)

// CombatRows lists the three board rows in display order.
var CombatRows = [RowCount]Row{RowClose, RowRanged, RowSiege}

// RowCount is the number of combat rows per side.
const RowCount = 3

// IsCombat reports whether r names an actual board row.
func (r Row) IsCombat() bool {
	return r >= RowClose && r <= RowSiege
}

func (r Row) index() int {
	return int(r - RowClose)
}

func (r Row) String() string {
	switch r {
	case RowClose:
		return "Close"
	case RowRanged:
		return "Ranged"
	case RowSiege:
		return "Siege"
	case RowAny:
		return "Any"
	default:
		return "None"
	}
}

func (r Row) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(r.String())), nil
}

func (r *Row) UnmarshalText(text []byte) error {
	parsed, err := ParseRow(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRow accepts a row name or its first letter, case-insensitively.
func ParseRow(s string) (Row, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "close", "c", "melee":
		return RowClose, nil
	case "ranged", "r":
		return RowRanged, nil
	case "siege", "s":
		return RowSiege, nil
	case "any", "agile":
		return RowAny, nil
	case "none", "":
		return RowNone, nil
	default:
		return RowNone, fmt.Errorf("unknown row %q", s)
	}
}

// --- Abilities ---

type AbilityKind int

const (
	AbilityNone AbilityKind = iota
	AbilitySpy
	AbilityMuster
	AbilityScorch
	AbilityTightBond
	AbilityMedic
	AbilityClearWeather
	AbilityWeather
)

var abilityNames = map[AbilityKind]string{
	AbilityNone:         "none",
	AbilitySpy:          "spy",
	AbilityMuster:       "muster",
	AbilityScorch:       "scorch",
	AbilityTightBond:    "tight_bond",
	AbilityMedic:        "medic",
	AbilityClearWeather: "clear_weather",
	AbilityWeather:      "weather",
}

func (a AbilityKind) String() string {
	if name, ok := abilityNames[a]; ok {
		return name
	}
	return "unknown"
}

func (a AbilityKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AbilityKind) UnmarshalText(text []byte) error {
	key := strings.ReplaceAll(strings.ToLower(string(text)), "-", "_")
	if key == "" {
		*a = AbilityNone
		return nil
	}
	for kind, name := range abilityNames {
		if name == key {
			*a = kind
			return nil
		}
	}
	return fmt.Errorf("unknown ability %q", text)
}

// Ability is the tagged ability variant carried by a card. Group is set only
// for Muster and Row only for Weather.
type Ability struct {
	Kind  AbilityKind
	Group string
	Row   Row
}

func NoAbility() Ability          { return Ability{Kind: AbilityNone} }
func Spy() Ability                { return Ability{Kind: AbilitySpy} }
func Muster(group string) Ability { return Ability{Kind: AbilityMuster, Group: group} }
func Scorch() Ability             { return Ability{Kind: AbilityScorch} }
func TightBond() Ability          { return Ability{Kind: AbilityTightBond} }
func Medic() Ability              { return Ability{Kind: AbilityMedic} }
func ClearWeather() Ability       { return Ability{Kind: AbilityClearWeather} }
func WeatherRow(row Row) Ability  { return Ability{Kind: AbilityWeather, Row: row} }

func (a Ability) String() string {
	switch a.Kind {
	case AbilityMuster:
		return fmt.Sprintf("muster(%s)", a.Group)
	case AbilityWeather:
		return fmt.Sprintf("weather(%s)", strings.ToLower(a.Row.String()))
	default:
		return a.Kind.String()
	}
}

// --- Card definition (static, from catalog) ---

type Card struct {
	ID      string
	Name    string
	Kind    CardKind
	Value   int
	Row     Row
	Ability Ability
	Hero    bool // immune to weather, tight bond, scorch and medic
}

func (c *Card) String() string {
	return c.Name
}

// Validate checks that the kind, row affinity and ability agree.
func (c *Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card %q: missing id", c.Name)
	}
	switch c.Kind {
	case KindUnit:
		if !c.Row.IsCombat() && c.Row != RowAny {
			return fmt.Errorf("card %q: unit needs a row affinity, got %s", c.ID, c.Row)
		}
		if c.Value < 0 {
			return fmt.Errorf("card %q: negative value %d", c.ID, c.Value)
		}
		switch c.Ability.Kind {
		case AbilityNone, AbilitySpy, AbilityScorch, AbilityTightBond, AbilityMedic:
		case AbilityMuster:
			if c.Ability.Group == "" {
				return fmt.Errorf("card %q: muster needs a group", c.ID)
			}
		default:
			return fmt.Errorf("card %q: unit cannot carry %s", c.ID, c.Ability)
		}
	case KindWeather:
		if c.Row != RowNone {
			return fmt.Errorf("card %q: weather card cannot have row affinity", c.ID)
		}
		switch c.Ability.Kind {
		case AbilityClearWeather:
		case AbilityWeather:
			if !c.Ability.Row.IsCombat() {
				return fmt.Errorf("card %q: weather needs a combat row", c.ID)
			}
		default:
			return fmt.Errorf("card %q: weather card cannot carry %s", c.ID, c.Ability)
		}
	case KindSpecial:
		if c.Row != RowNone {
			return fmt.Errorf("card %q: special card cannot have row affinity", c.ID)
		}
		if c.Ability.Kind != AbilityScorch {
			return fmt.Errorf("card %q: special card cannot carry %s", c.ID, c.Ability)
		}
	default:
		return fmt.Errorf("card %q: unknown kind %d", c.ID, c.Kind)
	}
	return nil
}

// --- CardInstance (runtime card in deck/hand/board/discard) ---

type CardInstance struct {
	Card  *Card
	ID    int  // unique instance ID within a match
	Owner Side // side whose deck this card came from
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s #%d", ci.Card.Name, ci.ID)
}

// --- Moves ---

type MoveType int

const (
	MovePlay MoveType = iota
	MovePass
)

func (m MoveType) String() string {
	if m == MovePass {
		return "Pass"
	}
	return "Play"
}

func (m MoveType) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(m.String())), nil
}

func (m *MoveType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "play", "":
		*m = MovePlay
	case "pass":
		*m = MovePass
	default:
		return fmt.Errorf("unknown move type %q", text)
	}
	return nil
}

// Move is what an agent proposes on its turn. Card is a hand instance ID and
// Row is required only for cards with affinity Any.
type Move struct {
	Type MoveType `json:"type"`
	Card int      `json:"card,omitempty"`
	Row  Row      `json:"row,omitempty"`
}

// Play builds a play move for the given hand instance.
func Play(card int, row Row) Move {
	return Move{Type: MovePlay, Card: card, Row: row}
}

// Pass builds a pass move.
func Pass() Move {
	return Move{Type: MovePass}
}

func (m Move) String() string {
	if m.Type == MovePass {
		return "Pass"
	}
	if m.Row != RowNone {
		return fmt.Sprintf("Play #%d (%s)", m.Card, m.Row)
	}
	return fmt.Sprintf("Play #%d", m.Card)
}
