package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging match events. The engine only
// appends; it never reads its own log back to make decisions.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// sideName returns "Player" or "Opponent" for display.
func sideName(p int) string {
	if p == 1 {
		return "Opponent"
	}
	return "Player"
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("R%d T%-3d| %s", e.Round, e.Turn, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Details returns the detail text of each event, oldest first.
func Details(events []GameEvent) []string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, e.Details)
	}
	return lines
}

// --- Helper constructors for common events ---

func NewMatchStartEvent(handSizes [2]int) GameEvent {
	return GameEvent{
		Round:   1,
		Player:  -1,
		Type:    EventMatchStart,
		Details: fmt.Sprintf("Match begins (Player %d cards, Opponent %d cards)", handSizes[0], handSizes[1]),
	}
}

func NewRoundStartEvent(round, turn int, opener int) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  opener,
		Type:    EventRoundStart,
		Details: fmt.Sprintf("=== Round %d (%s opens) ===", round, sideName(opener)),
	}
}

func NewDrawEvent(round, turn int, player int, cardName string, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws a card (%s)", sideName(player), reason),
	}
}

func NewPlayEvent(round, turn int, player int, cardName string, row string) GameEvent {
	details := fmt.Sprintf("%s played %s", sideName(player), cardName)
	if row != "" {
		details += fmt.Sprintf(" (%s row)", row)
	}
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventPlay,
		Card:    cardName,
		Details: details,
	}
}

func NewSpyEvent(round, turn int, player int, cardName string, drawn int) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventSpy,
		Card:    cardName,
		Details: fmt.Sprintf("%s spies on %s's side and draws %d card(s)", cardName, sideName(1-player), drawn),
	}
}

func NewMusterEvent(round, turn int, player int, cardName string, mustered []string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventMuster,
		Card:    cardName,
		Details: fmt.Sprintf("%s musters %s", cardName, strings.Join(mustered, ", ")),
	}
}

func NewScorchEvent(round, turn int, player int, cardName string, burned []string) GameEvent {
	details := fmt.Sprintf("%s scorches %s", cardName, strings.Join(burned, ", "))
	if len(burned) == 0 {
		details = fmt.Sprintf("%s finds nothing to scorch", cardName)
	}
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventScorch,
		Card:    cardName,
		Details: details,
	}
}

func NewWeatherEvent(round, turn int, player int, cardName string, row string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventWeather,
		Card:    cardName,
		Details: fmt.Sprintf("%s freezes the %s row on both sides", cardName, row),
	}
}

func NewClearWeatherEvent(round, turn int, player int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventClearWeather,
		Card:    cardName,
		Details: fmt.Sprintf("%s clears all weather", cardName),
	}
}

func NewReviveEvent(round, turn int, player int, medic string, revived string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventRevive,
		Card:    revived,
		Details: fmt.Sprintf("%s returns %s to %s's hand", medic, revived, sideName(player)),
	}
}

func NewPassEvent(round, turn int, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventPass,
		Details: fmt.Sprintf("%s passed", sideName(player)),
	}
}

func NewForcedPassEvent(round, turn int, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventForcedPass,
		Details: fmt.Sprintf("%s has no cards left and passes", sideName(player)),
	}
}

func NewIllegalMoveEvent(round, turn int, player int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventIllegalMove,
		Details: fmt.Sprintf("%s made an invalid move (%s)", sideName(player), reason),
	}
}

func NewRoundEndEvent(round, turn int, winner int, totals [2]int, reason string) GameEvent {
	details := fmt.Sprintf("Round %d ended in a tie %d-%d (%s)", round, totals[0], totals[1], reason)
	if winner >= 0 {
		details = fmt.Sprintf("%s won round %d %d-%d (%s)", sideName(winner), round, totals[0], totals[1], reason)
	}
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  winner,
		Type:    EventRoundEnd,
		Details: details,
	}
}

func NewLifeLostEvent(round, turn int, player int, oldLives, newLives int) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  player,
		Type:    EventLifeLost,
		Details: fmt.Sprintf("%s lives: %d → %d", sideName(player), oldLives, newLives),
	}
}

func NewWinEvent(round, turn int, winner int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins the match! (%s)", sideName(winner), reason),
	}
}

func NewTieEvent(round, turn int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  -1,
		Type:    EventTie,
		Details: fmt.Sprintf("The match is a draw (%s)", reason),
	}
}

func NewAbortEvent(round, turn int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Turn:    turn,
		Player:  -1,
		Type:    EventAbort,
		Details: fmt.Sprintf("Internal error, match aborted (%s)", reason),
	}
}
