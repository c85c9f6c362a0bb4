package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewMatchStartEvent([2]int{10, 10}))
	l.Log(NewPlayEvent(1, 1, 0, "Geralt of Rivia", "Close"))
	l.Log(NewPassEvent(1, 2, 1))
	l.Log(NewPlayEvent(1, 3, 0, "Scorch", ""))

	events := l.Events()
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d has seq %d", i, e.Seq)
		}
	}
	if plays := l.EventsOfType(EventPlay); len(plays) != 2 {
		t.Errorf("plays = %d", len(plays))
	}
	if last := l.LastEvent(); last.Details != "Player played Scorch" {
		t.Errorf("last = %q", last.Details)
	}
	if got := Details(events)[1]; got != "Player played Geralt of Rivia (Close row)" {
		t.Errorf("details = %q", got)
	}
	if (&MemoryLogger{}).LastEvent().Type != EventMatchStart {
		t.Error("empty logger should return a zero event")
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewPassEvent(2, 14, 1))
	l.Log(NewRoundEndEvent(2, 14, -1, [2]int{9, 9}, "both passed"))

	want := "R2 T14 | Opponent passed\nR2 T14 | Round 2 ended in a tie 9-9 (both passed)\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
	if len(l.Events()) != 2 {
		t.Errorf("text logger kept %d events", len(l.Events()))
	}
	if FormatAll(l.Events()) != want {
		t.Error("FormatAll differs from the streamed lines")
	}
}

func TestParseEventType(t *testing.T) {
	for et := EventMatchStart; et <= EventAbort; et++ {
		if got := ParseEventType(et.String()); got != et {
			t.Errorf("ParseEventType(%q) = %v", et.String(), got)
		}
	}
	if ParseEventType("Fireworks") != -1 {
		t.Error("unknown name should map to -1")
	}
}

func TestEventWording(t *testing.T) {
	tests := []struct {
		e    GameEvent
		want string
	}{
		{NewSpyEvent(1, 3, 1, "Thaler", 2), "Thaler spies on Player's side and draws 2 card(s)"},
		{NewScorchEvent(1, 4, 0, "Scorch", nil), "Scorch finds nothing to scorch"},
		{NewScorchEvent(1, 4, 0, "Scorch", []string{"Ves", "Ves"}), "Scorch scorches Ves, Ves"},
		{NewRoundEndEvent(1, 9, 0, [2]int{12, 7}, "both passed"), "Player won round 1 12-7 (both passed)"},
		{NewLifeLostEvent(1, 9, 1, 2, 1), "Opponent lives: 2 → 1"},
	}
	for _, tt := range tests {
		if tt.e.Details != tt.want {
			t.Errorf("details = %q, want %q", tt.e.Details, tt.want)
		}
		if !strings.Contains(FormatEvent(tt.e), tt.want) {
			t.Errorf("FormatEvent dropped the details: %q", FormatEvent(tt.e))
		}
	}
}

func TestViewedByHidesOtherSidesDraws(t *testing.T) {
	draw := NewDrawEvent(1, 2, 1, "Geralt of Rivia", "Thaler")
	if got := draw.ViewedBy(1); got.Card != "Geralt of Rivia" {
		t.Errorf("own view card = %q", got.Card)
	}
	if got := draw.ViewedBy(0); got.Card != "" || got.Details != draw.Details {
		t.Errorf("other view = %+v", got)
	}
	play := NewPlayEvent(1, 2, 1, "Thaler", "Siege")
	if got := play.ViewedBy(0); got.Card != "Thaler" {
		t.Errorf("plays are public, got card %q", got.Card)
	}
}
