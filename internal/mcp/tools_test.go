package mcp

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/peterkuimelis/gwentx/internal/ai"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/wire"
)

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*ToolResponse, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := handler(ctx, mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	text := res.Content[0].(mcp.TextContent).Text
	if res.IsError {
		return nil, text
	}
	var resp ToolResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("decode %s: %v", text, err)
	}
	return &resp, ""
}

func TestToolsRequireMatch(t *testing.T) {
	tools := NewTools(Options{})
	for name, h := range map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"pass":            tools.handlePass,
		"play_card":       tools.handlePlayCard,
		"choose_card":     tools.handleChooseCard,
		"get_match_state": tools.handleGetMatchState,
	} {
		if _, msg := call(t, h, nil); !strings.Contains(msg, "start_match") {
			t.Errorf("%s without a match: %q", name, msg)
		}
	}
}

func TestStartMatchRejectsBadArguments(t *testing.T) {
	tools := NewTools(Options{})
	tests := []struct {
		args map[string]any
		want string
	}{
		{map[string]any{"level": "godlike"}, "unknown AI level"},
		{map[string]any{"opponent": "cat"}, "unknown opponent"},
		{map[string]any{"deck": -1}, "deck must be"},
		{map[string]any{"deck": 3}, "no decks file"},
	}
	for _, tt := range tests {
		if _, msg := call(t, tools.handleStartMatch, tt.args); !strings.Contains(msg, tt.want) {
			t.Errorf("args %v: error %q, want %q", tt.args, msg, tt.want)
		}
	}
}

// TestPlayMatchThroughTools plays a whole match against the AI by always
// playing the first hand card.
func TestPlayMatchThroughTools(t *testing.T) {
	tools := NewTools(Options{HandSize: 6})
	defer tools.Close()

	resp, msg := call(t, tools.handleStartMatch, map[string]any{"seed": 11, "level": "random"})
	if resp == nil {
		t.Fatalf("start_match: %s", msg)
	}
	if resp.SessionID == "" || resp.Pending == nil || resp.Pending.Type != DecisionChooseMove {
		t.Fatalf("first response = %+v", resp)
	}
	if len(resp.State.You.Hand) != 6 || resp.State.Opponent.Hand != nil {
		t.Fatalf("opening hands: you %d, opponent %v", len(resp.State.You.Hand), resp.State.Opponent.Hand)
	}
	id := resp.SessionID

	if _, msg := call(t, tools.handleChooseCard, map[string]any{"card": 0}); !strings.Contains(msg, "Wrong tool") {
		t.Errorf("choose_card during a move: %q", msg)
	}
	if _, msg := call(t, tools.handlePlayCard, map[string]any{"card": 99999}); !strings.Contains(msg, "not in your hand") {
		t.Errorf("play_card with a foreign card: %q", msg)
	}

	state, _ := call(t, tools.handleGetMatchState, nil)
	if state.Pending == nil || state.Pending.Type != DecisionChooseMove || state.GameOver {
		t.Errorf("get_match_state = %+v", state)
	}

	events := len(resp.Events)
	for steps := 0; !resp.GameOver; steps++ {
		if steps > 200 {
			t.Fatal("match did not finish")
		}
		switch resp.Pending.Type {
		case DecisionChooseCard:
			resp, msg = call(t, tools.handleChooseCard, map[string]any{"card": resp.Pending.Candidates[0].Instance})
		case DecisionChooseMove:
			hand := resp.State.You.Hand
			if len(hand) == 0 {
				resp, msg = call(t, tools.handlePass, nil)
				break
			}
			args := map[string]any{"card": hand[0].Instance}
			if hand[0].Kind == game.KindUnit && hand[0].Row == game.RowAny {
				args["row"] = "siege"
			}
			resp, msg = call(t, tools.handlePlayCard, args)
		}
		if resp == nil {
			t.Fatalf("step %d: %s", steps, msg)
		}
		if resp.SessionID != id {
			t.Fatalf("session id changed to %s", resp.SessionID)
		}
		events += len(resp.Events)
	}

	if resp.Result == "" || resp.State == nil || resp.State.Running {
		t.Errorf("game over response = %+v", resp)
	}
	if events == 0 {
		t.Error("no events were reported")
	}
	if _, msg := call(t, tools.handlePass, nil); !strings.Contains(msg, "No pending decision") {
		t.Errorf("pass after game over: %q", msg)
	}

	// A finished session can be replaced.
	if resp, msg := call(t, tools.handleStartMatch, map[string]any{"seed": 12}); resp == nil || resp.SessionID == id {
		t.Errorf("second start_match: %+v %s", resp, msg)
	}
}

func TestSessionAgainstHuman(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessCh := make(chan *GameSession, 1)
	go func() {
		sess, err := NewGameSession(SessionConfig{Listener: ln, Seed: 4})
		if err != nil {
			t.Error(err)
		}
		sessCh <- sess
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	type clientResult struct {
		snap *game.Snapshot
		err  error
	}
	clientCh := make(chan clientResult, 1)
	go func() {
		snap, err := wire.RunClient(ctx, conn, wire.ClientMessage{}, ai.New(ai.LevelGreedy, 2))
		clientCh <- clientResult{snap, err}
	}()

	sess := <-sessCh
	if sess == nil {
		t.FailNow()
	}
	if sess.Side != game.SideOpponent {
		t.Errorf("MCP seat = %s, want opponent", sess.Side)
	}

	// The MCP seat passes at every turn.
	for {
		resp, err := sess.waitForPending(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if resp.GameOver {
			client := <-clientCh
			if client.err != nil {
				t.Fatalf("client: %v", client.err)
			}
			if client.snap == nil || client.snap.Winner != resp.Winner {
				t.Errorf("client saw %+v, session winner %s", client.snap, resp.Winner)
			}
			if resp.Winner == game.SideOpponent {
				t.Error("the seat that always passes won")
			}
			return
		}
		var answer any = MoveResponse{Move: game.Pass()}
		if resp.Pending.Type == DecisionChooseCard {
			answer = CardResponse{}
		}
		sess.agent.responseCh <- answer
	}
}
