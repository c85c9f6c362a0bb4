package game

import (
	"context"

	"github.com/peterkuimelis/gwentx/internal/log"
)

// Agent is the interface that every seat implements: the human terminal,
// the heuristic AI, and the remote front ends. It is the only way moves get
// into a match.
type Agent interface {
	// SelectMove is called on the agent's turn and returns a play from its
	// hand or a pass. It must not block forever.
	SelectMove(ctx context.Context, snap *Snapshot) (Move, error)

	// ChooseCard asks the agent to pick one of candidates (e.g. a medic
	// revival). Returning 0 declines.
	ChooseCard(ctx context.Context, snap *Snapshot, prompt string, candidates []CardView) (int, error)

	// Notify sends a match event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Renderer receives a fresh snapshot after every mutation. Agents that also
// implement Renderer are rendered from their own perspective.
type Renderer interface {
	Render(ctx context.Context, snap *Snapshot) error
}

// Reprompter is implemented by interactive agents. An illegal move from such
// an agent is reported back and the agent is asked again; any other agent's
// illegal move becomes a pass.
type Reprompter interface {
	Rejected(ctx context.Context, err error) error
}
