package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventRoundStart
	EventDraw
	EventPlay
	EventSpy
	EventMuster
	EventScorch
	EventWeather
	EventClearWeather
	EventRevive
	EventPass
	EventForcedPass
	EventIllegalMove
	EventRoundEnd
	EventLifeLost
	EventWin
	EventTie
	EventAbort
)

func (e EventType) String() string {
	switch e {
	case EventMatchStart:
		return "MatchStart"
	case EventRoundStart:
		return "RoundStart"
	case EventDraw:
		return "Draw"
	case EventPlay:
		return "Play"
	case EventSpy:
		return "Spy"
	case EventMuster:
		return "Muster"
	case EventScorch:
		return "Scorch"
	case EventWeather:
		return "Weather"
	case EventClearWeather:
		return "ClearWeather"
	case EventRevive:
		return "Revive"
	case EventPass:
		return "Pass"
	case EventForcedPass:
		return "ForcedPass"
	case EventIllegalMove:
		return "IllegalMove"
	case EventRoundEnd:
		return "RoundEnd"
	case EventLifeLost:
		return "LifeLost"
	case EventWin:
		return "Win"
	case EventTie:
		return "Tie"
	case EventAbort:
		return "Abort"
	default:
		return "Unknown"
	}
}

// ParseEventType is the inverse of EventType.String. Unknown names map to -1.
func ParseEventType(s string) EventType {
	for t := EventMatchStart; t <= EventAbort; t++ {
		if t.String() == s {
			return t
		}
	}
	return -1
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based)
	Turn    int       // which turn (1-based, counted across the match)
	Player  int       // acting side (0 = player, 1 = opponent, -1 = none)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}

// ViewedBy returns the event as the given side may see it: the name of a
// card drawn by the other side is hidden.
func (e GameEvent) ViewedBy(player int) GameEvent {
	if e.Type == EventDraw && e.Player != player {
		e.Card = ""
	}
	return e
}
