package wire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// ErrClosed is returned once the remote end has hung up.
var ErrClosed = errors.New("wire: connection closed")

// StreamAgent implements game.Agent for a remote seat. Every decision is a
// request/response pair on the stream; notifications are one-way.
type StreamAgent struct {
	enc  *json.Encoder
	dec  *json.Decoder
	side game.Side
	mu   sync.Mutex
}

// NewStreamAgent creates an agent for the given side over rw.
func NewStreamAgent(rw io.ReadWriter, side game.Side) *StreamAgent {
	return &StreamAgent{
		enc:  json.NewEncoder(rw),
		dec:  json.NewDecoder(rw),
		side: side,
	}
}

// Side returns the seat this agent plays.
func (sa *StreamAgent) Side() game.Side {
	return sa.side
}

// send sends a server message to the client. Must be called with mu held.
func (sa *StreamAgent) send(msg ServerMessage) error {
	return sa.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (sa *StreamAgent) recv(ctx context.Context) (ClientMessage, error) {
	if err := ctx.Err(); err != nil {
		return ClientMessage{}, err
	}
	var msg ClientMessage
	if err := sa.dec.Decode(&msg); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
			return msg, ErrClosed
		}
		return msg, err
	}
	return msg, nil
}

// Join reads the client's opening handshake.
func (sa *StreamAgent) Join(ctx context.Context) (ClientMessage, error) {
	sa.mu.Lock()
	defer sa.mu.Unlock()

	msg, err := sa.recv(ctx)
	if err != nil {
		return msg, fmt.Errorf("recv join: %w", err)
	}
	if msg.Type != MsgJoin {
		return msg, fmt.Errorf("expected %q, got %q", MsgJoin, msg.Type)
	}
	return msg, nil
}

// SelectMove implements game.Agent.
func (sa *StreamAgent) SelectMove(ctx context.Context, snap *game.Snapshot) (game.Move, error) {
	sa.mu.Lock()
	defer sa.mu.Unlock()

	if err := sa.send(ServerMessage{Type: MsgChooseMove, State: snap}); err != nil {
		return game.Move{}, fmt.Errorf("send choose_move: %w", err)
	}
	resp, err := sa.recv(ctx)
	if err != nil {
		return game.Move{}, fmt.Errorf("recv move: %w", err)
	}
	mv, ok := resp.Move()
	if !ok {
		// Unknown replies are treated as a pass rather than a protocol error.
		return game.Pass(), nil
	}
	return mv, nil
}

// ChooseCard implements game.Agent.
func (sa *StreamAgent) ChooseCard(ctx context.Context, snap *game.Snapshot, prompt string, candidates []game.CardView) (int, error) {
	sa.mu.Lock()
	defer sa.mu.Unlock()

	msg := ServerMessage{
		Type:       MsgChooseCard,
		Prompt:     prompt,
		Candidates: candidates,
		State:      snap,
	}
	if err := sa.send(msg); err != nil {
		return 0, fmt.Errorf("send choose_card: %w", err)
	}
	resp, err := sa.recv(ctx)
	if err != nil {
		return 0, fmt.Errorf("recv choice: %w", err)
	}
	if resp.Type != MsgChoose {
		return 0, nil
	}
	return resp.Card, nil
}

// Rejected implements game.Reprompter.
func (sa *StreamAgent) Rejected(ctx context.Context, cause error) error {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.send(ServerMessage{Type: MsgRejected, Error: cause.Error()})
}

// Render implements game.Renderer.
func (sa *StreamAgent) Render(ctx context.Context, snap *game.Snapshot) error {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.send(ServerMessage{Type: MsgState, State: snap})
}

// Notify implements game.Agent.
func (sa *StreamAgent) Notify(ctx context.Context, event log.GameEvent) error {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.send(ServerMessage{Type: MsgNotify, Event: NewEventView(event)})
}

// SendGameOver sends a game_over message to the client.
func (sa *StreamAgent) SendGameOver(snap *game.Snapshot) error {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	return sa.send(ServerMessage{Type: MsgGameOver, Winner: snap.Winner, Result: snap.Result, State: snap})
}
