package wire_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"

	"github.com/peterkuimelis/gwentx/internal/ai"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
	"github.com/peterkuimelis/gwentx/internal/wire"
)

func testDeck() []*game.Card {
	return []*game.Card{
		game.BlueStripesCommando(), game.BlueStripesCommando(), game.Catapult(),
		game.Ciaran(), game.Nekker(), game.Nekker(), game.Thaler(),
		game.BitingFrost(), game.ClearSkies(), game.Yennefer(),
	}
}

func setup(join wire.ClientMessage) (game.MatchConfig, game.Agent, error) {
	if join.DeckNumber > 1 {
		return game.MatchConfig{}, nil, errors.New("deck 2 not found (have 1 decks)")
	}
	return game.MatchConfig{Deck0: testDeck(), Deck1: testDeck(), Seed: 3}, ai.New(ai.LevelGreedy, 5), nil
}

type result struct {
	match *game.Match
	err   error
}

// recordingAgent wraps an agent and keeps what the client side saw.
type recordingAgent struct {
	game.Agent
	events   []log.GameEvent
	renders  int
	finals   int // renders of a finished board
	rejected []string
	badFirst bool
}

func (r *recordingAgent) SelectMove(ctx context.Context, snap *game.Snapshot) (game.Move, error) {
	if r.badFirst {
		r.badFirst = false
		return game.Play(424242, game.RowClose), nil
	}
	return r.Agent.SelectMove(ctx, snap)
}

func (r *recordingAgent) Notify(ctx context.Context, e log.GameEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recordingAgent) Render(ctx context.Context, snap *game.Snapshot) error {
	r.renders++
	if !snap.Running {
		r.finals++
	}
	return nil
}

func (r *recordingAgent) Rejected(ctx context.Context, err error) error {
	r.rejected = append(r.rejected, err.Error())
	return nil
}

func TestRoundTripFullMatch(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	ctx := context.Background()
	done := make(chan result, 1)
	go func() {
		m, err := wire.Serve(ctx, server, setup)
		done <- result{m, err}
	}()

	local := &recordingAgent{Agent: ai.New(ai.LevelGreedy, 9), badFirst: true}
	final, err := wire.RunClient(ctx, client, wire.ClientMessage{DeckNumber: 1}, local)
	if err != nil {
		t.Fatalf("RunClient: %v", err)
	}
	res := <-done
	if res.err != nil {
		t.Fatalf("Serve: %v", res.err)
	}

	if final == nil || final.Running {
		t.Fatalf("final snapshot = %+v", final)
	}
	if final.Winner != res.match.State.Winner {
		t.Errorf("client winner %s, server winner %s", final.Winner, res.match.State.Winner)
	}
	if len(local.rejected) != 1 {
		t.Errorf("rejected = %v, want one rejection", local.rejected)
	}
	if local.renders == 0 {
		t.Error("client never rendered")
	}
	if local.finals != 1 {
		t.Errorf("final board drawn %d times, want 1", local.finals)
	}

	// The client saw the same event stream the server logged.
	serverEvents := res.match.Logger.Events()
	if len(local.events) != len(serverEvents) {
		t.Fatalf("client got %d events, server logged %d", len(local.events), len(serverEvents))
	}
	for i, e := range local.events {
		if e.Type != serverEvents[i].Type || e.Details != serverEvents[i].Details {
			t.Fatalf("event %d: client %v, server %v", i, e, serverEvents[i])
		}
	}
}

func TestClientDrawsFinalBoardOnce(t *testing.T) {
	over := &game.Snapshot{Round: 3, Winner: game.SidePlayer, Result: "You win"}
	tests := []struct {
		name string
		msgs []wire.ServerMessage
	}{
		{"state then game over", []wire.ServerMessage{
			{Type: wire.MsgState, State: &game.Snapshot{Round: 3, Running: true}},
			{Type: wire.MsgState, State: over},
			{Type: wire.MsgGameOver, Winner: over.Winner, Result: over.Result, State: over},
		}},
		{"game over only", []wire.ServerMessage{
			{Type: wire.MsgGameOver, Winner: over.Winner, Result: over.Result, State: over},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, client := net.Pipe()
			defer server.Close()
			defer client.Close()

			go func() {
				var join wire.ClientMessage
				if err := json.NewDecoder(server).Decode(&join); err != nil {
					return
				}
				enc := json.NewEncoder(server)
				for _, msg := range tt.msgs {
					if err := enc.Encode(msg); err != nil {
						return
					}
				}
			}()

			local := &recordingAgent{Agent: ai.New(ai.LevelRandom, 1)}
			final, err := wire.RunClient(context.Background(), client, wire.ClientMessage{}, local)
			if err != nil {
				t.Fatalf("RunClient: %v", err)
			}
			if final == nil || final.Winner != game.SidePlayer {
				t.Fatalf("final = %+v", final)
			}
			if local.finals != 1 {
				t.Errorf("final board drawn %d times, want 1", local.finals)
			}
		})
	}
}

func TestServeSetupError(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		_, err := wire.Serve(ctx, server, setup)
		done <- err
	}()

	final, err := wire.RunClient(ctx, client, wire.ClientMessage{DeckNumber: 2}, ai.New(ai.LevelRandom, 1))
	if err != nil {
		t.Fatalf("RunClient: %v", err)
	}
	if final != nil {
		t.Errorf("no match should have run, got %+v", final)
	}
	if err := <-done; err == nil {
		t.Error("Serve should report the setup error")
	}
}

func TestClientMessageJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wire.MoveMessage(game.Play(12, game.RowRanged))); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != `{"type":"play","card":12,"row":"ranged"}`+"\n" {
		t.Errorf("encoded = %s", got)
	}

	var msg wire.ClientMessage
	if err := json.Unmarshal([]byte(`{"type":"play","card":7,"row":"siege"}`), &msg); err != nil {
		t.Fatal(err)
	}
	mv, ok := msg.Move()
	if !ok || mv != game.Play(7, game.RowSiege) {
		t.Errorf("move = %v", mv)
	}

	if mv, ok := (wire.ClientMessage{Type: wire.MsgPass}).Move(); !ok || mv.Type != game.MovePass {
		t.Errorf("pass = %v", mv)
	}
	if _, ok := (wire.ClientMessage{Type: wire.MsgJoin}).Move(); ok {
		t.Error("join is not a move")
	}
}
