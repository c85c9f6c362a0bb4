package wire

import (
	"context"
	"fmt"
	"io"

	"github.com/peterkuimelis/gwentx/internal/game"
)

// Setup builds the decks for a remote match from the client's join message.
type Setup func(join ClientMessage) (game.MatchConfig, game.Agent, error)

// Serve runs one match with the remote client on rw as the player side. The
// opponent agent and decks come from setup. The client always receives a
// game_over message, even when the match is aborted.
func Serve(ctx context.Context, rw io.ReadWriter, setup Setup) (*game.Match, error) {
	remote := NewStreamAgent(rw, game.SidePlayer)
	join, err := remote.Join(ctx)
	if err != nil {
		return nil, err
	}

	cfg, opponent, err := setup(join)
	if err != nil {
		remote.mu.Lock()
		_ = remote.send(ServerMessage{Type: MsgGameOver, Winner: game.SideNone, Result: err.Error()})
		remote.mu.Unlock()
		return nil, fmt.Errorf("setup: %w", err)
	}

	match := game.NewMatch(cfg, remote, opponent)
	_, runErr := match.Run(ctx)
	if err := remote.SendGameOver(match.Snapshot(game.SidePlayer)); err != nil && runErr == nil {
		runErr = fmt.Errorf("send game_over: %w", err)
	}
	return match, runErr
}
