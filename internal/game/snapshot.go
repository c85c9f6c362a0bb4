package game

// CardView is a read-only description of a card instance.
type CardView struct {
	Instance   int         `json:"instance"`
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Kind       CardKind    `json:"kind"`
	Row        Row         `json:"row"`
	Value      int         `json:"value"`
	Effective  int         `json:"effective,omitempty"` // on the board only
	Ability    AbilityKind `json:"ability"`
	Group      string      `json:"group,omitempty"`
	WeatherRow Row         `json:"weather_row,omitempty"`
	Hero       bool        `json:"hero,omitempty"`
	Owner      Side        `json:"owner"`
}

// NewCardView describes a card instance.
func NewCardView(ci *CardInstance) CardView {
	c := ci.Card
	return CardView{
		Instance:   ci.ID,
		ID:         c.ID,
		Name:       c.Name,
		Kind:       c.Kind,
		Row:        c.Row,
		Value:      c.Value,
		Ability:    c.Ability.Kind,
		Group:      c.Ability.Group,
		WeatherRow: c.Ability.Row,
		Hero:       c.Hero,
		Owner:      ci.Owner,
	}
}

// Card rebuilds the card definition described by the view.
func (cv CardView) Card() *Card {
	return &Card{
		ID:      cv.ID,
		Name:    cv.Name,
		Kind:    cv.Kind,
		Value:   cv.Value,
		Row:     cv.Row,
		Ability: Ability{Kind: cv.Ability, Group: cv.Group, Row: cv.WeatherRow},
		Hero:    cv.Hero,
	}
}

// RowView is one combat row of one side.
type RowView struct {
	Row    Row        `json:"row"`
	Value  int        `json:"value"`
	Frozen bool       `json:"frozen,omitempty"`
	Cards  []CardView `json:"cards"`
}

// SideView shows one side of the table.
type SideView struct {
	Side         Side              `json:"side"`
	Total        int               `json:"total"`
	Lives        int               `json:"lives"`
	Passed       bool              `json:"passed,omitempty"`
	HandCount    int               `json:"hand_count"`
	DeckCount    int               `json:"deck_count"`
	DiscardCount int               `json:"discard_count"`
	Hand         []CardView        `json:"hand,omitempty"`    // own side only
	Discard      []CardView        `json:"discard,omitempty"` // own side only
	Rows         [RowCount]RowView `json:"rows"`
}

// Snapshot is the match as seen from one side. It shares nothing with the
// live state.
type Snapshot struct {
	Perspective Side     `json:"perspective"`
	Phase       string   `json:"phase"`
	Round       int      `json:"round"`
	Turn        int      `json:"turn"`
	IsYourTurn  bool     `json:"is_your_turn"`
	Weather     []Row    `json:"weather,omitempty"`
	You         SideView `json:"you"`
	Opponent    SideView `json:"opponent"`
	Running     bool     `json:"running"`
	Winner      Side     `json:"winner"`
	Result      string   `json:"result,omitempty"`
	Log         []string `json:"log,omitempty"`
}

// Snapshot builds the view for perspective. The event log text is attached
// by the caller.
func (ms *MatchState) Snapshot(perspective Side) *Snapshot {
	snap := &Snapshot{
		Perspective: perspective,
		Phase:       ms.Phase.String(),
		Round:       ms.Round,
		Turn:        ms.Turn,
		IsYourTurn:  ms.Phase.Actor() == perspective,
		Weather:     ms.Board.Weather(),
		You:         ms.sideView(perspective, true),
		Opponent:    ms.sideView(perspective.Other(), false),
		Running:     ms.Running,
		Winner:      ms.Winner,
		Result:      ms.Result,
	}
	return snap
}

func (ms *MatchState) sideView(side Side, own bool) SideView {
	p := ms.Player(side)
	sv := SideView{
		Side:         side,
		Total:        ms.Board.SideTotal(side),
		Lives:        p.Lives,
		Passed:       ms.Board.Passed[side],
		HandCount:    len(p.Hand),
		DeckCount:    len(p.Deck),
		DiscardCount: len(p.Discard),
	}
	if own {
		for _, c := range p.Hand {
			sv.Hand = append(sv.Hand, NewCardView(c))
		}
		for _, c := range p.Discard {
			sv.Discard = append(sv.Discard, NewCardView(c))
		}
	}
	for i, r := range CombatRows {
		rv := RowView{Row: r, Value: ms.Board.RowValue(side, r), Frozen: ms.Board.Frozen(r)}
		for _, c := range ms.Board.Row(side, r).Cards {
			cv := NewCardView(c)
			cv.Effective = ms.Board.EffectiveValue(side, r, c)
			rv.Cards = append(rv.Cards, cv)
		}
		sv.Rows[i] = rv
	}
	return sv
}

// HandCard finds a card in the perspective side's hand.
func (s *Snapshot) HandCard(instance int) (CardView, bool) {
	for _, c := range s.You.Hand {
		if c.Instance == instance {
			return c, true
		}
	}
	return CardView{}, false
}
