// Package wire carries a match seat over a byte stream as newline-delimited
// JSON. The same protocol runs over TCP, net.Pipe and websockets.
package wire

import (
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// Server → client message types.
const (
	MsgChooseMove = "choose_move"
	MsgChooseCard = "choose_card"
	MsgRejected   = "rejected"
	MsgNotify     = "notify"
	MsgState      = "state"
	MsgGameOver   = "game_over"
)

// Client → server message types.
const (
	MsgJoin   = "join"
	MsgPlay   = "play"
	MsgPass   = "pass"
	MsgChoose = "choose"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_move", "choose_card", "state" and "game_over"
	State *game.Snapshot `json:"state,omitempty"`

	// For "choose_card"
	Prompt     string          `json:"prompt,omitempty"`
	Candidates []game.CardView `json:"candidates,omitempty"`

	// For "rejected"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Winner game.Side `json:"winner"`
	Result string    `json:"result,omitempty"`
}

// EventView is a match event as sent to clients.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Turn    int    `json:"turn"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// NewEventView converts a logged event.
func NewEventView(e log.GameEvent) *EventView {
	return &EventView{
		Seq:     e.Seq,
		Round:   e.Round,
		Turn:    e.Turn,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "play" (hand instance) and "choose" (candidate instance, 0 declines)
	Card int `json:"card,omitempty"`

	// For "play"; required only for any-row units
	Row game.Row `json:"row,omitempty"`

	// For "join" (initial handshake)
	DeckNumber int    `json:"deck_number,omitempty"`
	Level      string `json:"level,omitempty"`
}

// Move converts a "play" or "pass" message.
func (m ClientMessage) Move() (game.Move, bool) {
	switch m.Type {
	case MsgPlay:
		return game.Play(m.Card, m.Row), true
	case MsgPass:
		return game.Pass(), true
	default:
		return game.Move{}, false
	}
}

// MoveMessage is the inverse of ClientMessage.Move.
func MoveMessage(mv game.Move) ClientMessage {
	if mv.Type == game.MovePass {
		return ClientMessage{Type: MsgPass}
	}
	return ClientMessage{Type: MsgPlay, Card: mv.Card, Row: mv.Row}
}
