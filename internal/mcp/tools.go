// Package mcp exposes a match seat as Model Context Protocol tools, so an MCP
// client can play against the AI or against a human on a terminal.
package mcp

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/gwentx/internal/ai"
	"github.com/peterkuimelis/gwentx/internal/game"
)

// Options configures the tool server.
type Options struct {
	Catalog   game.Catalog
	DecksFile string
	Port      string // TCP port a human opponent joins on
	HandSize  int
	RoundDraw int
	DeckSize  int
}

// Tools holds the single active session of one stdio process.
type Tools struct {
	opts Options

	mu     sync.Mutex
	active *GameSession
}

// NewTools creates the tool set.
func NewTools(opts Options) *Tools {
	if opts.Catalog == nil {
		opts.Catalog = game.DefaultCatalog()
	}
	return &Tools{opts: opts}
}

// Register adds all game tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(startMatchTool(), t.handleStartMatch)
	s.AddTool(playCardTool(), t.handlePlayCard)
	s.AddTool(passTool(), t.handlePass)
	s.AddTool(chooseCardTool(), t.handleChooseCard)
	s.AddTool(getMatchStateTool(), t.handleGetMatchState)
}

// Close ends the active session, if any.
func (t *Tools) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		t.active.Close()
		t.active = nil
	}
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new gwentx match. Returns the initial state and the first pending decision. "+
			"With opponent 'human' the call blocks until a player joins with `gwentx -connect localhost:<port>`."),
		mcp.WithNumber("deck", mcp.Description("Deck number from the decks file (0 or omitted deals a random deck)")),
		mcp.WithString("opponent", mcp.Description("'ai' (default) or 'human'")),
		mcp.WithString("level", mcp.Description("AI level: 'greedy' (default) or 'random'")),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible match (0 = random)")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand. Use this when the pending decision type is 'choose_move'."),
		mcp.WithNumber("card", mcp.Required(), mcp.Description("Instance id of the hand card (the 'instance' field)")),
		mcp.WithString("row", mcp.Description("close, ranged or siege; required only for units that can go in any row")),
	)
}

func passTool() mcp.Tool {
	return mcp.NewTool("pass",
		mcp.WithDescription("Pass for the rest of the round. Use this when the pending decision type is 'choose_move'."),
	)
}

func chooseCardTool() mcp.Tool {
	return mcp.NewTool("choose_card",
		mcp.WithDescription("Pick one of the pending candidates. Use this when the pending decision type is 'choose_card'."),
		mcp.WithNumber("card", mcp.Required(), mcp.Description("Instance id of the candidate, or 0 to decline")),
	)
}

func getMatchStateTool() mcp.Tool {
	return mcp.NewTool("get_match_state",
		mcp.WithDescription("Get the current match state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil && !t.active.finished() {
		return mcp.NewToolResultError("A match is already running. Only one match at a time is supported."), nil
	}

	level, err := ai.ParseLevel(request.GetString("level", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := SessionConfig{
		Catalog:   t.opts.Catalog,
		DecksFile: t.opts.DecksFile,
		Deck:      request.GetInt("deck", 0),
		Level:     level,
		Seed:      int64(request.GetInt("seed", 0)),
		HandSize:  t.opts.HandSize,
		RoundDraw: t.opts.RoundDraw,
		DeckSize:  t.opts.DeckSize,
	}
	if cfg.Deck < 0 {
		return mcp.NewToolResultError("deck must be >= 0"), nil
	}

	var port string
	switch opp := request.GetString("opponent", "ai"); opp {
	case "ai", "":
	case "human":
		port = t.opts.Port
		ln, err := net.Listen("tcp", ":"+port)
		if err != nil {
			return mcp.NewToolResultErrorf("listen on port %s: %v", port, err), nil
		}
		defer ln.Close()
		cfg.Listener = ln
	default:
		return mcp.NewToolResultErrorf("unknown opponent %q: use 'ai' or 'human'", opp), nil
	}

	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	t.active = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	resp.Port = port
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// pendingFor returns the active session if it waits for a decision of type want.
func (t *Tools) pendingFor(want DecisionType) (*GameSession, *mcp.CallToolResult) {
	sess := t.active
	if sess == nil {
		return nil, mcp.NewToolResultError("No match is running. Use start_match first.")
	}
	pending := sess.currentPending
	if pending == nil || pending.Type == DecisionGameOver {
		return nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != want {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want))
	}
	return sess, nil
}

func (t *Tools) respond(ctx context.Context, sess *GameSession, response any) (*mcp.CallToolResult, error) {
	select {
	case sess.agent.responseCh <- response:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}
	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, errResult := t.pendingFor(DecisionChooseMove)
	if errResult != nil {
		return errResult, nil
	}

	card := request.GetInt("card", 0)
	if _, ok := sess.currentPending.State.HandCard(card); !ok {
		return mcp.NewToolResultErrorf("Card %d is not in your hand.", card), nil
	}
	row, err := game.ParseRow(request.GetString("row", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return t.respond(ctx, sess, MoveResponse{Move: game.Play(card, row)})
}

func (t *Tools) handlePass(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, errResult := t.pendingFor(DecisionChooseMove)
	if errResult != nil {
		return errResult, nil
	}
	return t.respond(ctx, sess, MoveResponse{Move: game.Pass()})
}

func (t *Tools) handleChooseCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, errResult := t.pendingFor(DecisionChooseCard)
	if errResult != nil {
		return errResult, nil
	}

	card := request.GetInt("card", 0)
	if card != 0 {
		found := false
		for _, cv := range sess.currentPending.Candidates {
			if cv.Instance == card {
				found = true
			}
		}
		if !found {
			return mcp.NewToolResultErrorf("Card %d is not a candidate.", card), nil
		}
	}
	return t.respond(ctx, sess, CardResponse{Instance: card})
}

func (t *Tools) handleGetMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return mcp.NewToolResultError("No match is running. Use start_match first."), nil
	}
	return mcp.NewToolResultText(respondJSON(t.active.stateResponse())), nil
}
