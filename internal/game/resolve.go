package game

import "fmt"

// CardChooser asks the acting side to pick one of the candidates. Returning
// nil declines the choice.
type CardChooser func(prompt string, candidates []*CardInstance) (*CardInstance, error)

// Outcome lists everything a resolved play changed.
type Outcome struct {
	Card     *CardInstance
	Side     Side
	Placed   []PlacedUnit
	Drawn    []*CardInstance
	Scorched []PlacedUnit
	Revived  *CardInstance
	Weather  Row  // row frozen by a weather card
	Cleared  bool // weather lifted
}

// Mustered returns the cards placed alongside the chosen one.
func (o Outcome) Mustered() []PlacedUnit {
	if len(o.Placed) <= 1 {
		return nil
	}
	return o.Placed[1:]
}

// plan is a fully validated play waiting to be applied.
type plan struct {
	card      *CardInstance
	side      Side
	placed    []PlacedUnit
	draws     int
	scorch    bool
	revive    *CardInstance
	weather   Row
	clear     bool
	toDiscard bool
}

// Resolve applies a play move for side. The whole move is validated, and any
// agent choice collected, before the first mutation: on error the state is
// unchanged.
func Resolve(ms *MatchState, side Side, move Move, choose CardChooser) (Outcome, error) {
	pl, err := planMove(ms, side, move, choose)
	if err != nil {
		return Outcome{}, err
	}
	return apply(ms, pl), nil
}

func planMove(ms *MatchState, side Side, move Move, choose CardChooser) (*plan, error) {
	if move.Type != MovePlay {
		return nil, illegalMove("%s is not a play", move.Type)
	}
	if side != SidePlayer && side != SideOpponent {
		return nil, illegalMove("unknown side %d", side)
	}
	p := ms.Player(side)
	ci := p.HandCard(move.Card)
	if ci == nil {
		return nil, illegalMove("card #%d is not in %s's hand", move.Card, side)
	}
	pl := &plan{card: ci, side: side}

	switch ci.Card.Kind {
	case KindUnit:
		return planUnit(ms, pl, move.Row, choose)
	case KindWeather:
		pl.toDiscard = true
		switch ci.Card.Ability.Kind {
		case AbilityWeather:
			pl.weather = ci.Card.Ability.Row
		case AbilityClearWeather:
			pl.clear = true
		default:
			return nil, invariant("weather card %s carries %s", ci.Card.ID, ci.Card.Ability)
		}
	case KindSpecial:
		pl.toDiscard = true
		switch ci.Card.Ability.Kind {
		case AbilityScorch:
			pl.scorch = true
		default:
			return nil, invariant("special card %s carries %s", ci.Card.ID, ci.Card.Ability)
		}
	default:
		return nil, invariant("card %s has unknown kind %d", ci.Card.ID, ci.Card.Kind)
	}
	return pl, nil
}

func planUnit(ms *MatchState, pl *plan, row Row, choose CardChooser) (*plan, error) {
	ci := pl.card
	card := ci.Card
	if card.Row != RowAny {
		if row == RowNone {
			row = card.Row
		}
	} else if row == RowNone {
		return nil, illegalMove("%s can go in any row; choose one", card.Name)
	}

	target := pl.side
	if card.Ability.Kind == AbilitySpy {
		target = pl.side.Other()
	}
	if err := ms.Board.CanPlace(ci, target, row); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	pl.placed = append(pl.placed, PlacedUnit{Card: ci, Side: target, Row: row})

	switch card.Ability.Kind {
	case AbilityNone, AbilityTightBond:
	case AbilitySpy:
		pl.draws = SpyDraws
	case AbilityMuster:
		for _, other := range ms.Player(pl.side).Hand {
			if other.ID == ci.ID || other.Card.Kind != KindUnit {
				continue
			}
			if other.Card.Ability.Kind != AbilityMuster || other.Card.Ability.Group != card.Ability.Group {
				continue
			}
			memberRow := row
			if other.Card.Row != RowAny && other.Card.Row != row {
				memberRow = other.Card.Row
			}
			if err := ms.Board.CanPlace(other, pl.side, memberRow); err != nil {
				return nil, invariant("muster member %s: %v", other, err)
			}
			pl.placed = append(pl.placed, PlacedUnit{Card: other, Side: pl.side, Row: memberRow})
		}
	case AbilityScorch:
		pl.scorch = true
	case AbilityMedic:
		candidates := ms.Player(pl.side).MedicCandidates()
		if len(candidates) == 0 || choose == nil {
			break
		}
		chosen, err := choose(fmt.Sprintf("%s: return a card from your discard pile to your hand", card.Name), candidates)
		if err != nil {
			return nil, err
		}
		if chosen != nil {
			found := false
			for _, c := range candidates {
				if c.ID == chosen.ID {
					found = true
					break
				}
			}
			if !found {
				return nil, illegalMove("%s cannot be returned by %s", chosen, card.Name)
			}
			pl.revive = chosen
		}
	case AbilityClearWeather, AbilityWeather:
		return nil, invariant("unit %s carries %s", card.ID, card.Ability)
	default:
		return nil, invariant("unit %s carries unknown ability %d", card.ID, card.Ability.Kind)
	}
	return pl, nil
}

// apply performs a validated plan. It cannot fail.
func apply(ms *MatchState, pl *plan) Outcome {
	p := ms.Player(pl.side)
	out := Outcome{Card: pl.card, Side: pl.side, Weather: pl.weather, Cleared: pl.clear}

	for _, u := range pl.placed {
		p.RemoveFromHand(u.Card)
		ms.Board.Row(u.Side, u.Row).Cards = append(ms.Board.Row(u.Side, u.Row).Cards, u.Card)
	}
	out.Placed = pl.placed

	if pl.toDiscard {
		p.RemoveFromHand(pl.card)
		p.DiscardCard(pl.card)
	}
	if pl.weather != RowNone {
		ms.Board.SetWeather(pl.weather)
	}
	if pl.clear {
		ms.Board.ClearWeather()
	}
	if pl.draws > 0 {
		out.Drawn = p.DrawUpTo(pl.draws)
	}
	if pl.scorch {
		var exclude *CardInstance
		if pl.card.Card.Kind == KindUnit {
			exclude = pl.card
		}
		out.Scorched = ms.Board.ScorchTargets(exclude)
		for _, u := range out.Scorched {
			ms.Board.Remove(u.Card)
			ms.Player(u.Card.Owner).DiscardCard(u.Card)
		}
	}
	if pl.revive != nil {
		p.RemoveFromDiscard(pl.revive)
		p.Hand = append(p.Hand, pl.revive)
		out.Revived = pl.revive
	}
	return out
}
