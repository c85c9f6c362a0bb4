package game

import (
	"context"
	"errors"
	"testing"

	"github.com/peterkuimelis/gwentx/internal/log"
)

// ScriptedAgent is an Agent that follows a predefined script of moves.
// Used in tests to deterministically drive a match.
type ScriptedAgent struct {
	t     *testing.T
	name  string
	moves []ScriptedMove
	pos   int

	// For ChooseCard prompts: card ids to pick, in order
	choices   []string
	choicePos int

	rejected []error
	renders  int
	events   []log.GameEvent
}

// ScriptedMove plays the first hand card with the given id, or passes when
// CardID is empty.
type ScriptedMove struct {
	CardID string
	Row    Row
	Raw    *Move // sent as-is, for illegal-move tests
}

func NewScriptedAgent(t *testing.T, name string) *ScriptedAgent {
	return &ScriptedAgent{t: t, name: name}
}

func (sa *ScriptedAgent) AddPlay(cardID string, row Row) *ScriptedAgent {
	sa.moves = append(sa.moves, ScriptedMove{CardID: cardID, Row: row})
	return sa
}

func (sa *ScriptedAgent) AddPass() *ScriptedAgent {
	sa.moves = append(sa.moves, ScriptedMove{})
	return sa
}

func (sa *ScriptedAgent) AddRaw(m Move) *ScriptedAgent {
	sa.moves = append(sa.moves, ScriptedMove{Raw: &m})
	return sa
}

func (sa *ScriptedAgent) AddChoice(cardID string) *ScriptedAgent {
	sa.choices = append(sa.choices, cardID)
	return sa
}

func (sa *ScriptedAgent) SelectMove(ctx context.Context, snap *Snapshot) (Move, error) {
	// Script exhausted: pass
	if sa.pos >= len(sa.moves) {
		return Pass(), nil
	}
	scripted := sa.moves[sa.pos]
	sa.pos++

	if scripted.Raw != nil {
		return *scripted.Raw, nil
	}
	if scripted.CardID == "" {
		return Pass(), nil
	}
	for _, c := range snap.You.Hand {
		if c.ID == scripted.CardID {
			return Play(c.Instance, scripted.Row), nil
		}
	}
	sa.t.Errorf("[%s] scripted card %q not in hand", sa.name, scripted.CardID)
	return Pass(), nil
}

func (sa *ScriptedAgent) ChooseCard(ctx context.Context, snap *Snapshot, prompt string, candidates []CardView) (int, error) {
	if sa.choicePos >= len(sa.choices) {
		return 0, nil
	}
	want := sa.choices[sa.choicePos]
	sa.choicePos++
	for _, c := range candidates {
		if c.ID == want {
			return c.Instance, nil
		}
	}
	return 0, errors.New("scripted choice not among candidates")
}

func (sa *ScriptedAgent) Notify(ctx context.Context, event log.GameEvent) error {
	sa.events = append(sa.events, event)
	return nil
}

// RepromptingAgent is a ScriptedAgent that accepts illegal-move feedback.
type RepromptingAgent struct {
	*ScriptedAgent
}

func (ra RepromptingAgent) Rejected(ctx context.Context, err error) error {
	ra.rejected = append(ra.rejected, err)
	return nil
}

// --- Test card helpers ---

func unit(id string, value int, row Row, ability Ability) *Card {
	return &Card{ID: id, Name: id, Kind: KindUnit, Value: value, Row: row, Ability: ability}
}

func hero(id string, value int, row Row) *Card {
	return &Card{ID: id, Name: id, Kind: KindUnit, Value: value, Row: row, Hero: true}
}

func weather(id string, row Row) *Card {
	return &Card{ID: id, Name: id, Kind: KindWeather, Ability: WeatherRow(row)}
}

func clearWeather() *Card {
	return &Card{ID: "clear", Name: "clear", Kind: KindWeather, Ability: ClearWeather()}
}

func scorchSpecial() *Card {
	return &Card{ID: "scorch", Name: "scorch", Kind: KindSpecial, Ability: Scorch()}
}

// topDeck orders cards so that index 0 is drawn first.
func topDeck(cards ...*Card) []*Card {
	deck := make([]*Card, 0, len(cards))
	for i := len(cards) - 1; i >= 0; i-- {
		deck = append(deck, cards[i])
	}
	return deck
}

// newTestState builds a match state with the given hands and decks (deck
// index 0 is drawn first).
func newTestState(hand0, hand1, deck0, deck1 []*Card) *MatchState {
	ms := NewMatchState()
	add := func(side Side, hand, deck []*Card) {
		p := ms.Player(side)
		for _, c := range hand {
			p.Hand = append(p.Hand, ms.CreateCardInstance(c, side))
		}
		for _, c := range topDeck(deck...) {
			p.Deck = append(p.Deck, ms.CreateCardInstance(c, side))
		}
	}
	add(SidePlayer, hand0, deck0)
	add(SideOpponent, hand1, deck1)
	return ms
}

// mustPlace puts a fresh instance of card straight onto the board.
func mustPlace(t *testing.T, ms *MatchState, card *Card, side Side, row Row) *CardInstance {
	t.Helper()
	ci := ms.CreateCardInstance(card, side)
	if err := ms.Board.Place(ci, side, row); err != nil {
		t.Fatalf("place %s: %v", card.ID, err)
	}
	return ci
}

// handInstance returns the first hand instance of a card id.
func handInstance(t *testing.T, p *Player, id string) *CardInstance {
	t.Helper()
	for _, c := range p.Hand {
		if c.Card.ID == id {
			return c
		}
	}
	t.Fatalf("%s has no %q in hand", p.Side, id)
	return nil
}

// runMatchToCompletion runs a match and returns the logger for inspection.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, p0, p1 Agent) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.NoShuffle = true // deterministic tests
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 100 // reasonable default for tests
	}

	match := NewMatch(cfg, p0, p1)

	winner, err := match.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%s (%s)", winner, match.State.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	return match, logger
}
