package game

import (
	"fmt"
	"math/rand"
)

const (
	StartingLives   = 2
	InitialHandSize = 10
	SpyDraws        = 2
)

// Player represents one side's cards and lives.
type Player struct {
	Side       Side
	Hand       []*CardInstance // order irrelevant
	Deck       []*CardInstance // top of deck is last element (pop from end)
	Discard    []*CardInstance
	Lives      int
	Eliminated bool
}

// DeckCount returns the number of cards remaining in the deck.
func (p *Player) DeckCount() int {
	return len(p.Deck)
}

// HandCount returns the number of cards in hand.
func (p *Player) HandCount() int {
	return len(p.Hand)
}

// DrawCard removes the top card from the deck and adds it to the hand.
// Returns nil if the deck is empty.
func (p *Player) DrawCard() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, card)
	return card
}

// DrawUpTo draws at most n cards and returns the ones drawn. Never fails.
func (p *Player) DrawUpTo(n int) []*CardInstance {
	var drawn []*CardInstance
	for i := 0; i < n; i++ {
		card := p.DrawCard()
		if card == nil {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}

// HandCard finds a hand card by instance ID.
func (p *Player) HandCard(id int) *CardInstance {
	for _, c := range p.Hand {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *Player) RemoveFromHand(card *CardInstance) {
	for i, c := range p.Hand {
		if c.ID == card.ID {
			p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
			return
		}
	}
}

// DiscardCard moves a card to the discard pile.
func (p *Player) DiscardCard(card *CardInstance) {
	p.Discard = append(p.Discard, card)
}

// RemoveFromDiscard takes a card out of the discard pile by instance ID.
func (p *Player) RemoveFromDiscard(card *CardInstance) {
	for i, c := range p.Discard {
		if c.ID == card.ID {
			p.Discard = append(p.Discard[:i:i], p.Discard[i+1:]...)
			return
		}
	}
}

// MedicCandidates returns the discarded non-hero units a medic may return.
func (p *Player) MedicCandidates() []*CardInstance {
	var result []*CardInstance
	for _, c := range p.Discard {
		if c.Card.Kind == KindUnit && !c.Card.Hero {
			result = append(result, c)
		}
	}
	return result
}

// ShuffleDeck randomizes the deck order.
func (p *Player) ShuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

func (p *Player) clone() *Player {
	np := *p
	np.Hand = append([]*CardInstance(nil), p.Hand...)
	np.Deck = append([]*CardInstance(nil), p.Deck...)
	np.Discard = append([]*CardInstance(nil), p.Discard...)
	return &np
}

// --- Phases ---

type Phase int

const (
	PhasePlayerTurn Phase = iota
	PhaseOpponentTurn
	PhaseRoundEnd
	PhaseMatchEnd
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "Player Turn"
	case PhaseOpponentTurn:
		return "Opponent Turn"
	case PhaseRoundEnd:
		return "Round End"
	case PhaseMatchEnd:
		return "Match End"
	default:
		return "Unknown"
	}
}

// TurnPhase returns the turn phase for a side.
func TurnPhase(side Side) Phase {
	if side == SideOpponent {
		return PhaseOpponentTurn
	}
	return PhasePlayerTurn
}

// Actor returns the side whose turn it is, or SideNone outside turn phases.
func (p Phase) Actor() Side {
	switch p {
	case PhasePlayerTurn:
		return SidePlayer
	case PhaseOpponentTurn:
		return SideOpponent
	default:
		return SideNone
	}
}

// RoundEndReason records how a round finished.
type RoundEndReason int

const (
	RoundEndDoublePass RoundEndReason = iota
	RoundEndExhaustion
)

func (r RoundEndReason) String() string {
	if r == RoundEndExhaustion {
		return "both hands exhausted"
	}
	return "both players passed"
}

// RoundResult is the scored outcome of one round.
type RoundResult struct {
	Round  int
	Totals [2]int
	Winner Side // SideNone on a tie
	Reason RoundEndReason
}

// --- MatchState ---

// MatchState holds the complete state of a match.
type MatchState struct {
	Players [2]*Player
	Board   *Board
	Phase   Phase
	Round   int // 1-based round counter
	Turn    int // 1-based turn counter within the match
	Running bool

	Rounds []RoundResult

	// ID counter for card instances
	nextID int

	// Match result
	Winner  Side
	Aborted bool
	Result  string
}

// NewMatchState creates a fresh match state with empty decks.
func NewMatchState() *MatchState {
	return &MatchState{
		Players: [2]*Player{
			{Side: SidePlayer, Lives: StartingLives},
			{Side: SideOpponent, Lives: StartingLives},
		},
		Board:   NewBoard(),
		Phase:   PhasePlayerTurn,
		Round:   1,
		Running: true,
		Winner:  SideNone,
	}
}

// NextID generates a unique card instance ID.
func (ms *MatchState) NextID() int {
	ms.nextID++
	return ms.nextID
}

// CreateCardInstance creates a CardInstance from a Card definition, owned by a side.
func (ms *MatchState) CreateCardInstance(card *Card, owner Side) *CardInstance {
	return &CardInstance{Card: card, ID: ms.NextID(), Owner: owner}
}

// Player returns the state for a side.
func (ms *MatchState) Player(side Side) *Player {
	return ms.Players[side]
}

// CumulativeScore sums a side's totals over every finished round.
func (ms *MatchState) CumulativeScore(side Side) int {
	total := 0
	for _, r := range ms.Rounds {
		total += r.Totals[side]
	}
	return total
}

// CheckInvariants verifies lives, board placement, and that no instance is
// in two places at once.
func (ms *MatchState) CheckInvariants() error {
	if err := ms.Board.CheckInvariants(); err != nil {
		return err
	}
	where := make(map[int]string)
	mark := func(ci *CardInstance, zone string) error {
		if prev, ok := where[ci.ID]; ok {
			return invariant("%s is in both %s and %s", ci, prev, zone)
		}
		where[ci.ID] = zone
		return nil
	}
	for _, u := range ms.Board.Units() {
		if err := mark(u.Card, "board"); err != nil {
			return err
		}
	}
	for _, p := range ms.Players {
		if p.Lives < 0 {
			return invariant("%s has %d lives", p.Side, p.Lives)
		}
		if p.Eliminated != (p.Lives == 0) {
			return invariant("%s eliminated=%t with %d lives", p.Side, p.Eliminated, p.Lives)
		}
		zones := []struct {
			name  string
			cards []*CardInstance
		}{
			{"hand", p.Hand}, {"deck", p.Deck}, {"discard", p.Discard},
		}
		for _, z := range zones {
			for _, c := range z.cards {
				if err := mark(c, fmt.Sprintf("%s %s", p.Side, z.name)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Clone returns a deep copy suitable for trial resolution.
func (ms *MatchState) Clone() *MatchState {
	nms := *ms
	nms.Players = [2]*Player{ms.Players[0].clone(), ms.Players[1].clone()}
	nms.Board = ms.Board.Clone()
	nms.Rounds = append([]RoundResult(nil), ms.Rounds...)
	return &nms
}
