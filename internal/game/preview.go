package game

// Preview is the board a move would leave behind, seen from the mover.
type Preview struct {
	Mine     int // mover's total after the move
	Theirs   int // opponent's total after the move
	Drawn    int
	Scorched [2]int // cards lost per side, indexed by Side
	Placed   int
}

// Margin is the mover's lead after the move.
func (p Preview) Margin() int {
	return p.Mine - p.Theirs
}

// PreviewMove resolves move on a scratch state rebuilt from snap. The opponent's
// hand and both decks are unknown to the mover, so decks are stood in by blank
// cards and a medic returns the highest-value candidate.
func PreviewMove(snap *Snapshot, move Move) (Preview, error) {
	ms := stateFromSnapshot(snap)
	me := snap.Perspective
	if move.Type == MovePass {
		return Preview{Mine: ms.Board.SideTotal(me), Theirs: ms.Board.SideTotal(me.Other())}, nil
	}
	out, err := Resolve(ms, me, move, func(_ string, candidates []*CardInstance) (*CardInstance, error) {
		var best *CardInstance
		for _, c := range candidates {
			if best == nil || c.Card.Value > best.Card.Value {
				best = c
			}
		}
		return best, nil
	})
	if err != nil {
		return Preview{}, err
	}
	pv := Preview{
		Mine:   ms.Board.SideTotal(me),
		Theirs: ms.Board.SideTotal(me.Other()),
		Drawn:  len(out.Drawn),
		Placed: len(out.Placed),
	}
	for _, u := range out.Scorched {
		pv.Scorched[u.Side]++
	}
	return pv, nil
}

func stateFromSnapshot(snap *Snapshot) *MatchState {
	ms := NewMatchState()
	me := snap.Perspective
	instance := func(cv CardView) *CardInstance {
		if cv.Instance > ms.nextID {
			ms.nextID = cv.Instance
		}
		return &CardInstance{Card: cv.Card(), ID: cv.Instance, Owner: cv.Owner}
	}
	for _, sv := range []SideView{snap.You, snap.Opponent} {
		for i, rv := range sv.Rows {
			row := ms.Board.Row(sv.Side, CombatRows[i])
			for _, cv := range rv.Cards {
				row.Cards = append(row.Cards, instance(cv))
			}
		}
		ms.Board.Passed[sv.Side] = sv.Passed
		ms.Players[sv.Side].Lives = sv.Lives
	}
	for _, r := range snap.Weather {
		ms.Board.SetWeather(r)
	}
	p := ms.Player(me)
	for _, cv := range snap.You.Hand {
		p.Hand = append(p.Hand, instance(cv))
	}
	for _, cv := range snap.You.Discard {
		p.Discard = append(p.Discard, instance(cv))
	}
	blank := &Card{ID: "unknown", Name: "Unknown", Kind: KindUnit, Row: RowAny}
	for i := 0; i < snap.You.DeckCount; i++ {
		p.Deck = append(p.Deck, ms.CreateCardInstance(blank, me))
	}
	return ms
}
