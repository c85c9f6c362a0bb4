// Package ai provides a computer opponent that plays through the same Agent
// contract as a human seat.
package ai

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// Level selects how the agent picks among its legal moves.
type Level int

const (
	// LevelRandom plays a uniformly random legal move and never passes while
	// it holds a playable card.
	LevelRandom Level = iota
	// LevelGreedy scores every legal move by its effect on the board.
	LevelGreedy
)

func (l Level) String() string {
	switch l {
	case LevelRandom:
		return "random"
	case LevelGreedy:
		return "greedy"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "random", "easy":
		return LevelRandom, nil
	case "greedy", "normal", "":
		return LevelGreedy, nil
	default:
		return 0, fmt.Errorf("unknown AI level %q", s)
	}
}

// Tuning holds the weights of the greedy scorer.
type Tuning struct {
	DrawValue   int // worth of one card drawn by a spy
	PassLead    int // lead at which the agent stops committing cards
	ValueWeight int // divisor applied to a card's base value as its spending cost
}

// DefaultTuning is used by New.
var DefaultTuning = Tuning{
	DrawValue:   4,
	PassLead:    15,
	ValueWeight: 3,
}

// Agent is the computer opponent. It only ever sees snapshots and only ever
// returns moves that PreviewMove accepted, or a pass.
type Agent struct {
	Level  Level
	Tuning Tuning
	Delay  time.Duration // pause before each move
	rng    *rand.Rand
}

// New creates an agent. A zero seed picks one from the clock.
func New(level Level, seed int64) *Agent {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Agent{
		Level:  level,
		Tuning: DefaultTuning,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// candidate is a legal move together with its predicted outcome.
type candidate struct {
	move    game.Move
	card    game.CardView
	preview game.Preview
	score   int
}

// SelectMove returns a legal play from the snapshot's hand or a pass.
func (a *Agent) SelectMove(ctx context.Context, snap *game.Snapshot) (game.Move, error) {
	if a.Delay > 0 {
		t := time.NewTimer(a.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return game.Move{}, ctx.Err()
		case <-t.C:
		}
	}

	cands := legalMoves(snap)
	if len(cands) == 0 {
		return game.Pass(), nil
	}

	switch a.Level {
	case LevelRandom:
		return cands[a.rng.Intn(len(cands))].move, nil
	case LevelGreedy:
		return a.greedy(snap, cands), nil
	default:
		return game.Pass(), fmt.Errorf("unknown AI level %d", a.Level)
	}
}

// legalMoves enumerates every play the snapshot's side could make right now.
// Any-row units appear once per combat row.
func legalMoves(snap *game.Snapshot) []candidate {
	var out []candidate
	for _, cv := range snap.You.Hand {
		rows := []game.Row{game.RowNone}
		if cv.Kind == game.KindUnit {
			if cv.Row == game.RowAny {
				rows = game.CombatRows[:]
			} else {
				rows = []game.Row{cv.Row}
			}
		}
		for _, r := range rows {
			m := game.Play(cv.Instance, r)
			pv, err := game.PreviewMove(snap, m)
			if err != nil {
				continue
			}
			out = append(out, candidate{move: m, card: cv, preview: pv})
		}
	}
	return out
}

func (a *Agent) greedy(snap *game.Snapshot, cands []candidate) game.Move {
	tn := a.Tuning
	margin := snap.You.Total - snap.Opponent.Total

	if snap.Opponent.Passed {
		// Already winning a round the opponent has left: keep the cards.
		if margin > 0 {
			return game.Pass()
		}
		// Cheapest card that takes the lead.
		var winners []candidate
		for _, c := range cands {
			if c.preview.Margin() > 0 {
				c.score = -a.cost(c)
				winners = append(winners, c)
			}
		}
		if len(winners) > 0 {
			return best(winners).move
		}
		if snap.You.Lives > 1 {
			return game.Pass()
		}
	} else if margin >= tn.PassLead && snap.You.HandCount <= snap.Opponent.HandCount+1 {
		return game.Pass()
	}

	for i := range cands {
		c := &cands[i]
		c.score = c.preview.Margin() - margin + c.preview.Drawn*tn.DrawValue - a.cost(*c)
	}
	top := best(cands)
	if top.score <= 0 && !snap.Opponent.Passed && margin > 0 {
		return game.Pass()
	}
	return top.move
}

// cost is the long-term price of spending a card.
func (a *Agent) cost(c candidate) int {
	if a.Tuning.ValueWeight <= 0 || c.card.Ability == game.AbilitySpy {
		return 0
	}
	return c.card.Value / a.Tuning.ValueWeight
}

// best orders by score, then spends the weaker card, then the lower instance
// id so the choice is deterministic.
func best(cands []candidate) candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].card.Value != cands[j].card.Value {
			return cands[i].card.Value < cands[j].card.Value
		}
		return cands[i].card.Instance < cands[j].card.Instance
	})
	return cands[0]
}

// ChooseCard takes the highest-value candidate.
func (a *Agent) ChooseCard(ctx context.Context, snap *game.Snapshot, prompt string, candidates []game.CardView) (int, error) {
	bestID, bestValue := 0, -1
	for _, c := range candidates {
		if c.Value > bestValue {
			bestID, bestValue = c.Instance, c.Value
		}
	}
	return bestID, nil
}

func (a *Agent) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
