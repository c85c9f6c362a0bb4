package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/peterkuimelis/gwentx/internal/log"
)

const maxPromptAttempts = 5

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Deck0     []*Card // player's deck (card definitions)
	Deck1     []*Card // opponent's deck (card definitions)
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for random)
	NoShuffle bool  // skip deck shuffle (for deterministic tests)
	HandSize  int   // cards dealt at match start (0 = InitialHandSize)
	RoundDraw int   // cards each side draws when a new round starts
	MaxTurns  int   // stop after this many turns (0 = 500)
	Observers []Renderer
}

// Match runs a whole match between two agents. It is the single owner of the
// state; agents only ever see snapshots.
type Match struct {
	State     *MatchState
	Agents    [2]Agent
	Logger    log.EventLogger
	observers []Renderer
	ctx       context.Context
	rng       *rand.Rand
	noShuffle bool
	handSize  int
	roundDraw int
	maxTurns  int
	started   bool
	endReason RoundEndReason
}

// NewMatch creates a new match from the given config and agents.
func NewMatch(cfg MatchConfig, player, opponent Agent) *Match {
	ms := NewMatchState()
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	// Build decks as CardInstances
	for _, card := range cfg.Deck0 {
		ms.Players[SidePlayer].Deck = append(ms.Players[SidePlayer].Deck, ms.CreateCardInstance(card, SidePlayer))
	}
	for _, card := range cfg.Deck1 {
		ms.Players[SideOpponent].Deck = append(ms.Players[SideOpponent].Deck, ms.CreateCardInstance(card, SideOpponent))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	handSize := cfg.HandSize
	if handSize == 0 {
		handSize = InitialHandSize
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = 500 // safety limit
	}

	return &Match{
		State:     ms,
		Agents:    [2]Agent{player, opponent},
		Logger:    logger,
		observers: cfg.Observers,
		ctx:       context.Background(),
		rng:       rand.New(rand.NewSource(seed)),
		noShuffle: cfg.NoShuffle,
		handSize:  handSize,
		roundDraw: cfg.RoundDraw,
		maxTurns:  maxTurns,
	}
}

// Run executes the entire match loop. Returns the winner (SideNone for a draw).
func (m *Match) Run(ctx context.Context) (Side, error) {
	m.ctx = ctx
	if !m.started {
		if err := m.Start(ctx); err != nil {
			return SideNone, err
		}
	}
	for m.State.Phase != PhaseMatchEnd {
		if err := m.Step(ctx); err != nil {
			return m.State.Winner, err
		}
		if err := ctx.Err(); err != nil {
			return SideNone, err
		}
	}
	return m.State.Winner, nil
}

// Start shuffles the decks and deals the opening hands.
func (m *Match) Start(ctx context.Context) error {
	if m.started {
		return errors.New("match already started")
	}
	m.ctx = ctx
	m.started = true
	ms := m.State

	if !m.noShuffle {
		ms.Players[SidePlayer].ShuffleDeck(m.rng)
		ms.Players[SideOpponent].ShuffleDeck(m.rng)
	}
	for _, p := range ms.Players {
		p.DrawUpTo(m.handSize)
	}

	m.log(log.NewMatchStartEvent([2]int{len(ms.Players[0].Hand), len(ms.Players[1].Hand)}))
	m.log(log.NewRoundStartEvent(ms.Round, ms.Turn, int(SidePlayer)))
	ms.Phase = TurnPhase(SidePlayer)
	if err := ms.CheckInvariants(); err != nil {
		return m.abort(err)
	}
	m.render()
	return nil
}

// Step performs exactly one state transition.
func (m *Match) Step(ctx context.Context) error {
	m.ctx = ctx
	ms := m.State
	if !m.started {
		return m.Start(ctx)
	}
	if ms.Phase != PhaseMatchEnd && (ms.Players[0].Eliminated || ms.Players[1].Eliminated) {
		m.finish()
		return nil
	}

	switch ms.Phase {
	case PhasePlayerTurn, PhaseOpponentTurn:
		if ms.Turn >= m.maxTurns {
			ms.Phase = PhaseMatchEnd
			ms.Running = false
			ms.Winner = SideNone
			ms.Result = fmt.Sprintf("Turn limit reached (%d turns)", m.maxTurns)
			m.log(log.NewTieEvent(ms.Round, ms.Turn, "turn limit"))
			m.render()
			return nil
		}
		return m.playTurn(ms.Phase.Actor())
	case PhaseRoundEnd:
		return m.endRound()
	case PhaseMatchEnd:
		return nil
	default:
		return m.abort(invariant("unknown phase %d", ms.Phase))
	}
}

// playTurn asks the acting side for a move and applies it.
func (m *Match) playTurn(side Side) error {
	ms := m.State
	p := ms.Player(side)
	ms.Turn++

	if len(p.Hand) == 0 {
		ms.Board.Passed[side] = true
		m.log(log.NewForcedPassEvent(ms.Round, ms.Turn, int(side)))
		return m.afterAction(side)
	}

	agent := m.Agents[side]
	for attempt := 1; ; attempt++ {
		move, err := agent.SelectMove(m.ctx, m.snapshot(side))
		if err != nil {
			return fmt.Errorf("%s select move: %w", side, err)
		}
		if move.Type == MovePass {
			ms.Board.Passed[side] = true
			m.log(log.NewPassEvent(ms.Round, ms.Turn, int(side)))
			break
		}

		out, err := Resolve(ms, side, move, m.chooser(side))
		if err == nil {
			m.logOutcome(out)
			break
		}
		if errors.Is(err, ErrInvariant) {
			return m.abort(err)
		}
		if !errors.Is(err, ErrIllegalMove) {
			return fmt.Errorf("%s resolve: %w", side, err)
		}

		m.log(log.NewIllegalMoveEvent(ms.Round, ms.Turn, int(side), err.Error()))
		if rp, ok := agent.(Reprompter); ok && attempt < maxPromptAttempts {
			if err := rp.Rejected(m.ctx, err); err != nil {
				return fmt.Errorf("%s rejected: %w", side, err)
			}
			continue
		}
		ms.Board.Passed[side] = true
		m.log(log.NewPassEvent(ms.Round, ms.Turn, int(side)))
		break
	}
	return m.afterAction(side)
}

// afterAction checks the round-end conditions and hands the turn on.
func (m *Match) afterAction(side Side) error {
	ms := m.State
	if err := ms.CheckInvariants(); err != nil {
		return m.abort(err)
	}

	switch {
	case len(ms.Players[0].Hand) == 0 && len(ms.Players[1].Hand) == 0:
		m.endReason = RoundEndExhaustion
		ms.Phase = PhaseRoundEnd
	case ms.Board.Passed[0] && ms.Board.Passed[1]:
		m.endReason = RoundEndDoublePass
		ms.Phase = PhaseRoundEnd
	default:
		next := side.Other()
		if ms.Board.Passed[next] {
			next = side
		}
		ms.Phase = TurnPhase(next)
	}
	m.render()
	return nil
}

// endRound scores the round, takes lives and either starts the next round
// or ends the match.
func (m *Match) endRound() error {
	ms := m.State
	totals := [2]int{ms.Board.SideTotal(SidePlayer), ms.Board.SideTotal(SideOpponent)}

	result := RoundResult{Round: ms.Round, Totals: totals, Winner: SideNone, Reason: m.endReason}
	var losers []Side
	switch {
	case totals[0] > totals[1]:
		result.Winner = SidePlayer
		losers = []Side{SideOpponent}
	case totals[1] > totals[0]:
		result.Winner = SideOpponent
		losers = []Side{SidePlayer}
	default:
		losers = []Side{SidePlayer, SideOpponent}
	}
	ms.Rounds = append(ms.Rounds, result)
	m.log(log.NewRoundEndEvent(ms.Round, ms.Turn, int(result.Winner), totals, result.Reason.String()))

	for _, side := range losers {
		p := ms.Player(side)
		old := p.Lives
		p.Lives--
		if p.Lives <= 0 {
			p.Lives = 0
			p.Eliminated = true
		}
		m.log(log.NewLifeLostEvent(ms.Round, ms.Turn, int(side), old, p.Lives))
	}

	if ms.Players[0].Eliminated || ms.Players[1].Eliminated {
		m.finish()
		return nil
	}

	for _, ci := range ms.Board.Clear() {
		ms.Player(ci.Owner).DiscardCard(ci)
	}
	ms.Round++
	m.log(log.NewRoundStartEvent(ms.Round, ms.Turn, int(SidePlayer)))
	for _, p := range ms.Players {
		for _, c := range p.DrawUpTo(m.roundDraw) {
			m.log(log.NewDrawEvent(ms.Round, ms.Turn, int(p.Side), c.Card.Name, "new round"))
		}
	}
	// The player side always opens a round.
	ms.Phase = TurnPhase(SidePlayer)

	if err := ms.CheckInvariants(); err != nil {
		return m.abort(err)
	}
	m.render()
	return nil
}

// finish declares the winner once a side is out of lives.
func (m *Match) finish() {
	ms := m.State
	ms.Phase = PhaseMatchEnd
	ms.Running = false

	p0Out := ms.Players[0].Eliminated
	p1Out := ms.Players[1].Eliminated
	switch {
	case p0Out && !p1Out:
		ms.Winner = SideOpponent
	case p1Out && !p0Out:
		ms.Winner = SidePlayer
	default:
		s0, s1 := ms.CumulativeScore(SidePlayer), ms.CumulativeScore(SideOpponent)
		switch {
		case s0 > s1:
			ms.Winner = SidePlayer
		case s1 > s0:
			ms.Winner = SideOpponent
		default:
			ms.Winner = SideNone
		}
	}

	if ms.Winner == SideNone {
		ms.Result = "Draw: both sides are out of lives with equal scores"
		m.log(log.NewTieEvent(ms.Round, ms.Turn, "both sides out of lives"))
	} else {
		reason := fmt.Sprintf("%s is out of lives", ms.Winner.Other())
		if p0Out && p1Out {
			reason = fmt.Sprintf("both out of lives, cumulative score %d-%d", ms.CumulativeScore(SidePlayer), ms.CumulativeScore(SideOpponent))
		}
		ms.Result = fmt.Sprintf("%s wins: %s", ms.Winner, reason)
		m.log(log.NewWinEvent(ms.Round, ms.Turn, int(ms.Winner), reason))
	}
	m.render()
}

// abort stops the match after an invariant violation.
func (m *Match) abort(cause error) error {
	ms := m.State
	ms.Phase = PhaseMatchEnd
	ms.Running = false
	ms.Aborted = true
	ms.Winner = SideNone
	ms.Result = "Internal error, match aborted"
	m.log(log.NewAbortEvent(ms.Round, ms.Turn, cause.Error()))
	return fmt.Errorf("match aborted: %w", cause)
}

// chooser routes a resolver choice to the acting agent.
func (m *Match) chooser(side Side) CardChooser {
	return func(prompt string, candidates []*CardInstance) (*CardInstance, error) {
		views := make([]CardView, 0, len(candidates))
		for _, c := range candidates {
			views = append(views, NewCardView(c))
		}
		id, err := m.Agents[side].ChooseCard(m.ctx, m.snapshot(side), prompt, views)
		if err != nil {
			return nil, fmt.Errorf("%s choose card: %w", side, err)
		}
		if id == 0 {
			return nil, nil
		}
		for _, c := range candidates {
			if c.ID == id {
				return c, nil
			}
		}
		return nil, illegalMove("card #%d is not one of the choices", id)
	}
}

// logOutcome writes the events for a resolved play.
func (m *Match) logOutcome(out Outcome) {
	ms := m.State
	side := int(out.Side)
	card := out.Card.Card

	row := ""
	if len(out.Placed) > 0 {
		row = out.Placed[0].Row.String()
	}
	m.log(log.NewPlayEvent(ms.Round, ms.Turn, side, card.Name, row))

	switch card.Ability.Kind {
	case AbilitySpy:
		m.log(log.NewSpyEvent(ms.Round, ms.Turn, side, card.Name, len(out.Drawn)))
		for _, c := range out.Drawn {
			m.log(log.NewDrawEvent(ms.Round, ms.Turn, side, c.Card.Name, card.Name))
		}
	case AbilityMuster:
		if mustered := out.Mustered(); len(mustered) > 0 {
			names := make([]string, 0, len(mustered))
			for _, u := range mustered {
				names = append(names, u.Card.Card.Name)
			}
			m.log(log.NewMusterEvent(ms.Round, ms.Turn, side, card.Name, names))
		}
	case AbilityScorch:
		names := make([]string, 0, len(out.Scorched))
		for _, u := range out.Scorched {
			names = append(names, fmt.Sprintf("%s (%s)", u.Card.Card.Name, strings.ToLower(u.Side.String())))
		}
		m.log(log.NewScorchEvent(ms.Round, ms.Turn, side, card.Name, names))
	case AbilityWeather:
		m.log(log.NewWeatherEvent(ms.Round, ms.Turn, side, card.Name, out.Weather.String()))
	case AbilityClearWeather:
		m.log(log.NewClearWeatherEvent(ms.Round, ms.Turn, side, card.Name))
	case AbilityMedic:
		if out.Revived != nil {
			m.log(log.NewReviveEvent(ms.Round, ms.Turn, side, card.Name, out.Revived.Card.Name))
		}
	}
}

// Snapshot returns the current view for a side, including the event log.
func (m *Match) Snapshot(side Side) *Snapshot {
	return m.snapshot(side)
}

func (m *Match) snapshot(side Side) *Snapshot {
	snap := m.State.Snapshot(side)
	snap.Log = log.Details(m.Logger.Events())
	return snap
}

// render pushes a snapshot to every observer and to agents that render.
func (m *Match) render() {
	for i, a := range m.Agents {
		if r, ok := a.(Renderer); ok {
			_ = r.Render(m.ctx, m.snapshot(Side(i)))
		}
	}
	for _, r := range m.observers {
		_ = r.Render(m.ctx, m.snapshot(SidePlayer))
	}
}

// log emits a match event through the logger and notifies both agents. Each
// agent gets its own side's view of the event.
func (m *Match) log(event log.GameEvent) {
	m.Logger.Log(event)
	// Notify agents (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		_ = m.Agents[i].Notify(m.ctx, event.ViewedBy(i))
	}
}
