package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peterkuimelis/gwentx/internal/ai"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/wire"
)

// DecisionType identifies what kind of decision the match is waiting for.
type DecisionType string

const (
	DecisionChooseMove DecisionType = "choose_move"
	DecisionChooseCard DecisionType = "choose_card"
	DecisionGameOver   DecisionType = "game_over"
)

// PendingDecision is a decision the match is waiting for.
type PendingDecision struct {
	Type       DecisionType
	State      *game.Snapshot
	Prompt     string
	Candidates []game.CardView
	Error      string // why the previous move was rejected
}

// Response types sent back from MCP tools to the agent.

type MoveResponse struct {
	Move game.Move
}

type CardResponse struct {
	Instance int // 0 declines
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string           `json:"session_id"`
	Events    []wire.EventView `json:"events"`
	State     *game.Snapshot   `json:"state,omitempty"`
	Pending   *PendingView     `json:"pending,omitempty"`
	GameOver  bool             `json:"game_over"`
	Winner    game.Side        `json:"winner"`
	Result    string           `json:"result,omitempty"`
	Port      string           `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType    `json:"type"`
	Prompt     string          `json:"prompt,omitempty"`
	Candidates []game.CardView `json:"candidates,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// SessionConfig describes one MCP match.
type SessionConfig struct {
	Catalog   game.Catalog
	DecksFile string
	Deck      int // deck number for the MCP seat (0 = random)
	DeckSize  int
	Level     ai.Level
	Seed      int64
	HandSize  int
	RoundDraw int

	// Listener, when set, seats a human instead of the AI: the session
	// accepts one wire client on it and that client plays the player side.
	Listener net.Listener
}

// GameSession holds the state of a single MCP match.
type GameSession struct {
	ID    string
	Side  game.Side
	agent *Agent

	cancel context.CancelFunc
	done   chan struct{}

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []wire.EventView
	last     *game.Snapshot
	gameOver bool
	winner   game.Side
	result   string
}

// NewGameSession builds the decks and starts the match in a goroutine. With
// a listener it first waits for the human to connect.
func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = game.DefaultCatalog()
	}
	if cfg.DeckSize == 0 {
		cfg.DeckSize = 15
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	own, err := loadDeck(cfg, cfg.Deck, rng)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &GameSession{
		ID:        uuid.NewString(),
		cancel:    cancel,
		done:      make(chan struct{}),
		pendingCh: make(chan *PendingDecision, 1),
		winner:    game.SideNone,
	}
	sess.agent = NewAgent(sess)
	matchSeed := rng.Int63()

	if cfg.Listener == nil {
		sess.Side = game.SidePlayer
		other, err := game.RandomDeck(cfg.Catalog, max(len(own), cfg.DeckSize), rng)
		if err != nil {
			cancel()
			return nil, err
		}
		match := game.NewMatch(game.MatchConfig{
			Deck0:     own,
			Deck1:     other,
			Seed:      matchSeed,
			HandSize:  cfg.HandSize,
			RoundDraw: cfg.RoundDraw,
		}, sess.agent, ai.New(cfg.Level, rng.Int63()))
		go sess.run(func() (*game.Match, error) {
			_, err := match.Run(ctx)
			return match, err
		})
		return sess, nil
	}

	// Accept one connection (blocks until the human joins)
	conn, err := cfg.Listener.Accept()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("accept: %w", err)
	}
	sess.Side = game.SideOpponent
	setup := func(join wire.ClientMessage) (game.MatchConfig, game.Agent, error) {
		human, err := loadDeck(cfg, join.DeckNumber, rng)
		if err != nil {
			return game.MatchConfig{}, nil, err
		}
		return game.MatchConfig{
			Deck0:     human,
			Deck1:     own,
			Seed:      matchSeed,
			HandSize:  cfg.HandSize,
			RoundDraw: cfg.RoundDraw,
		}, sess.agent, nil
	}
	go sess.run(func() (*game.Match, error) {
		defer conn.Close()
		return wire.Serve(ctx, conn, setup)
	})
	return sess, nil
}

func loadDeck(cfg SessionConfig, n int, rng *rand.Rand) ([]*game.Card, error) {
	if n == 0 {
		return game.RandomDeck(cfg.Catalog, cfg.DeckSize, rng)
	}
	if cfg.DecksFile == "" {
		return nil, fmt.Errorf("deck %d not found (no decks file)", n)
	}
	_, cards, err := game.DeckByNumber(cfg.DecksFile, cfg.Catalog, n)
	return cards, err
}

// run executes the match and always finishes with a game_over decision.
func (s *GameSession) run(play func() (*game.Match, error)) {
	defer close(s.done)
	match, err := play()

	winner, result := game.SideNone, ""
	var snap *game.Snapshot
	if match != nil {
		snap = match.Snapshot(s.Side)
		winner, result = snap.Winner, snap.Result
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		result = fmt.Sprintf("error: %v", err)
	}

	s.mu.Lock()
	s.gameOver = true
	s.winner = winner
	s.result = result
	if snap != nil {
		s.last = snap
	}
	s.mu.Unlock()

	select {
	case s.pendingCh <- &PendingDecision{Type: DecisionGameOver, State: snap}:
	default:
	}
}

// Close stops the match.
func (s *GameSession) Close() {
	s.cancel()
	<-s.done
}

func (s *GameSession) appendEvent(ev wire.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *GameSession) setSnapshot(snap *game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = snap
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []wire.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []wire.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the match,
// then builds a ToolResponse with accumulated events and the decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending

	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
		State:     pending.State,
		Winner:    game.SideNone,
	}
	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		resp.State = s.last
		s.mu.Unlock()
		return resp, nil
	}
	resp.Pending = pendingView(pending)
	return resp, nil
}

// stateResponse reports the session without consuming a decision.
func (s *GameSession) stateResponse() *ToolResponse {
	resp := &ToolResponse{SessionID: s.ID, Events: s.drainEvents()}
	s.mu.Lock()
	resp.GameOver = s.gameOver
	resp.Winner = s.winner
	resp.Result = s.result
	resp.State = s.last
	s.mu.Unlock()

	if !resp.GameOver && s.currentPending != nil {
		resp.Pending = pendingView(s.currentPending)
		if s.currentPending.State != nil {
			resp.State = s.currentPending.State
		}
	}
	return resp
}

func pendingView(p *PendingDecision) *PendingView {
	return &PendingView{
		Type:       p.Type,
		Prompt:     p.Prompt,
		Candidates: p.Candidates,
		Error:      p.Error,
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

func (s *GameSession) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}
