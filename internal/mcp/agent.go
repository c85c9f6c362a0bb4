package mcp

import (
	"context"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
	"github.com/peterkuimelis/gwentx/internal/wire"
)

// Agent implements game.Agent by sending decisions to the MCP session's
// pending channel and blocking on a response channel.
type Agent struct {
	session    *GameSession
	responseCh chan any
	rejected   string
}

// NewAgent creates the seat driven by MCP tool calls.
func NewAgent(session *GameSession) *Agent {
	return &Agent{
		session:    session,
		responseCh: make(chan any),
	}
}

func (a *Agent) await(ctx context.Context, d *PendingDecision) (any, error) {
	select {
	case a.session.pendingCh <- d:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-a.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SelectMove implements game.Agent.
func (a *Agent) SelectMove(ctx context.Context, snap *game.Snapshot) (game.Move, error) {
	d := &PendingDecision{Type: DecisionChooseMove, State: snap, Error: a.rejected}
	a.rejected = ""
	resp, err := a.await(ctx, d)
	if err != nil {
		return game.Move{}, err
	}
	return resp.(MoveResponse).Move, nil
}

// ChooseCard implements game.Agent.
func (a *Agent) ChooseCard(ctx context.Context, snap *game.Snapshot, prompt string, candidates []game.CardView) (int, error) {
	resp, err := a.await(ctx, &PendingDecision{
		Type:       DecisionChooseCard,
		State:      snap,
		Prompt:     prompt,
		Candidates: candidates,
	})
	if err != nil {
		return 0, err
	}
	return resp.(CardResponse).Instance, nil
}

// Rejected implements game.Reprompter. The reason is attached to the next
// move decision.
func (a *Agent) Rejected(ctx context.Context, err error) error {
	a.rejected = err.Error()
	return nil
}

// Render implements game.Renderer.
func (a *Agent) Render(ctx context.Context, snap *game.Snapshot) error {
	a.session.setSnapshot(snap)
	return nil
}

// Notify implements game.Agent.
func (a *Agent) Notify(ctx context.Context, event log.GameEvent) error {
	a.session.appendEvent(*wire.NewEventView(event))
	return nil
}
