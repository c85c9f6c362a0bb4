package wire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// RunClient sends join over rw, then answers server requests with agent until
// the match is over. It returns the final snapshot.
func RunClient(ctx context.Context, rw io.ReadWriter, join ClientMessage, agent game.Agent) (*game.Snapshot, error) {
	enc := json.NewEncoder(rw)
	dec := json.NewDecoder(rw)

	join.Type = MsgJoin
	if err := enc.Encode(join); err != nil {
		return nil, fmt.Errorf("send join: %w", err)
	}

	// The server may push the finished board as a state message before
	// game_over; it is drawn once.
	finalShown := false
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			if msg.Event == nil {
				continue
			}
			if err := agent.Notify(ctx, eventFromView(msg.Event)); err != nil {
				return nil, err
			}

		case MsgState:
			if r, ok := agent.(game.Renderer); ok && msg.State != nil {
				if err := r.Render(ctx, msg.State); err != nil {
					return nil, err
				}
				finalShown = !msg.State.Running
			}

		case MsgChooseMove:
			if msg.State == nil {
				return nil, fmt.Errorf("choose_move without state")
			}
			mv, err := agent.SelectMove(ctx, msg.State)
			if err != nil {
				return nil, fmt.Errorf("select move: %w", err)
			}
			if err := enc.Encode(MoveMessage(mv)); err != nil {
				return nil, fmt.Errorf("send move: %w", err)
			}

		case MsgChooseCard:
			id, err := agent.ChooseCard(ctx, msg.State, msg.Prompt, msg.Candidates)
			if err != nil {
				return nil, fmt.Errorf("choose card: %w", err)
			}
			if err := enc.Encode(ClientMessage{Type: MsgChoose, Card: id}); err != nil {
				return nil, fmt.Errorf("send choice: %w", err)
			}

		case MsgRejected:
			if rp, ok := agent.(game.Reprompter); ok {
				if err := rp.Rejected(ctx, errors.New(msg.Error)); err != nil {
					return nil, err
				}
			}

		case MsgGameOver:
			if r, ok := agent.(game.Renderer); ok && msg.State != nil && !finalShown {
				_ = r.Render(ctx, msg.State)
			}
			return msg.State, nil
		}
	}
}

func eventFromView(ev *EventView) log.GameEvent {
	return log.GameEvent{
		Seq:     ev.Seq,
		Round:   ev.Round,
		Turn:    ev.Turn,
		Player:  ev.Player,
		Type:    log.ParseEventType(ev.Type),
		Card:    ev.Card,
		Details: ev.Details,
	}
}
