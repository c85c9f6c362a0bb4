package game

import (
	"errors"
	"testing"
)

func TestSideTotalIsSumOfRows(t *testing.T) {
	ms := NewMatchState()
	mustPlace(t, ms, unit("a", 4, RowClose, NoAbility()), SidePlayer, RowClose)
	mustPlace(t, ms, unit("b", 3, RowRanged, NoAbility()), SidePlayer, RowRanged)
	mustPlace(t, ms, unit("c", 6, RowSiege, NoAbility()), SidePlayer, RowSiege)
	mustPlace(t, ms, unit("d", 2, RowAny, NoAbility()), SidePlayer, RowSiege)
	mustPlace(t, ms, unit("e", 9, RowClose, NoAbility()), SideOpponent, RowClose)

	b := ms.Board
	sum := 0
	for _, r := range CombatRows {
		sum += b.RowValue(SidePlayer, r)
	}
	if got := b.SideTotal(SidePlayer); got != sum || got != 15 {
		t.Errorf("SideTotal = %d, rows sum to %d, want 15", got, sum)
	}
	if got := b.RowValue(SidePlayer, RowSiege); got != 8 {
		t.Errorf("siege row = %d, want 8", got)
	}
	if got := b.SideTotal(SideOpponent); got != 9 {
		t.Errorf("opponent total = %d, want 9", got)
	}
}

func TestWeatherSetsUnitsToOne(t *testing.T) {
	ms := NewMatchState()
	mustPlace(t, ms, unit("a", 8, RowSiege, NoAbility()), SidePlayer, RowSiege)
	mustPlace(t, ms, unit("b", 5, RowSiege, NoAbility()), SidePlayer, RowSiege)
	mustPlace(t, ms, unit("c", 6, RowSiege, NoAbility()), SideOpponent, RowSiege)
	mustPlace(t, ms, unit("d", 7, RowClose, NoAbility()), SidePlayer, RowClose)
	g := mustPlace(t, ms, hero("g", 10, RowSiege), SidePlayer, RowSiege)

	ms.Board.SetWeather(RowSiege)
	ms.Board.SetWeather(RowSiege) // idempotent

	// Both sides are affected.
	if got := ms.Board.RowValue(SidePlayer, RowSiege); got != 1+1+10 {
		t.Errorf("player siege = %d, want 12", got)
	}
	if got := ms.Board.RowValue(SideOpponent, RowSiege); got != 1 {
		t.Errorf("opponent siege = %d, want 1", got)
	}
	if got := ms.Board.RowValue(SidePlayer, RowClose); got != 7 {
		t.Errorf("close row should be untouched, got %d", got)
	}
	if got := ms.Board.EffectiveValue(SidePlayer, RowSiege, g); got != 10 {
		t.Errorf("hero under weather = %d, want 10", got)
	}

	ms.Board.ClearWeather()
	if got := ms.Board.RowValue(SidePlayer, RowSiege); got != 23 {
		t.Errorf("after clear = %d, want 23", got)
	}
	if len(ms.Board.Weather()) != 0 {
		t.Errorf("weather still active: %v", ms.Board.Weather())
	}
}

func TestTightBond(t *testing.T) {
	tests := []struct {
		name   string
		copies int
		frozen bool
		want   int
	}{
		{"single", 1, false, 4},
		{"pair doubles", 2, false, 16},  // 2 × (4×2)
		{"three triples", 3, false, 36}, // 3 × (4×3)
		{"pair under weather", 2, true, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := NewMatchState()
			bond := unit("bond", 4, RowClose, TightBond())
			for i := 0; i < tt.copies; i++ {
				mustPlace(t, ms, bond, SidePlayer, RowClose)
			}
			// A same-id copy on the other side does not count.
			mustPlace(t, ms, bond, SideOpponent, RowClose)
			if tt.frozen {
				ms.Board.SetWeather(RowClose)
			}
			if got := ms.Board.RowValue(SidePlayer, RowClose); got != tt.want {
				t.Errorf("row value = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCanPlaceRejectsWrongRow(t *testing.T) {
	ms := NewMatchState()
	ci := ms.CreateCardInstance(unit("sword", 5, RowClose, NoAbility()), SidePlayer)

	err := ms.Board.CanPlace(ci, SidePlayer, RowSiege)
	if !errors.Is(err, ErrIllegalPlacement) {
		t.Fatalf("expected ErrIllegalPlacement, got %v", err)
	}
	if err := ms.Board.Place(ci, SidePlayer, RowSiege); !errors.Is(err, ErrIllegalPlacement) {
		t.Fatalf("Place: expected ErrIllegalPlacement, got %v", err)
	}
	if ms.Board.Count() != 0 {
		t.Errorf("board should be empty, has %d cards", ms.Board.Count())
	}

	w := ms.CreateCardInstance(weather("frost", RowClose), SidePlayer)
	if err := ms.Board.CanPlace(w, SidePlayer, RowClose); !errors.Is(err, ErrIllegalPlacement) {
		t.Errorf("weather card placed in a row: %v", err)
	}
	if err := ms.Board.CanPlace(ci, SidePlayer, RowAny); !errors.Is(err, ErrIllegalPlacement) {
		t.Errorf("Any is not a combat row: %v", err)
	}
}

func TestPlaceTwiceRejected(t *testing.T) {
	ms := NewMatchState()
	ci := mustPlace(t, ms, unit("flex", 3, RowAny, NoAbility()), SidePlayer, RowRanged)
	if err := ms.Board.Place(ci, SideOpponent, RowClose); !errors.Is(err, ErrIllegalPlacement) {
		t.Fatalf("second placement: %v", err)
	}
	side, row, ok := ms.Board.Locate(ci)
	if !ok || side != SidePlayer || row != RowRanged {
		t.Errorf("Locate = %s/%s/%v", side, row, ok)
	}
}

func TestScorchTargets(t *testing.T) {
	t.Run("single highest", func(t *testing.T) {
		ms := NewMatchState()
		top := mustPlace(t, ms, unit("ten", 10, RowClose, NoAbility()), SideOpponent, RowClose)
		mustPlace(t, ms, unit("eight", 8, RowClose, NoAbility()), SidePlayer, RowClose)
		mustPlace(t, ms, unit("three", 3, RowSiege, NoAbility()), SideOpponent, RowSiege)

		targets := ms.Board.ScorchTargets(nil)
		if len(targets) != 1 || targets[0].Card != top {
			t.Fatalf("targets = %v, want only the 10", targets)
		}
	})

	t.Run("tie removes all", func(t *testing.T) {
		ms := NewMatchState()
		mustPlace(t, ms, unit("ten", 10, RowClose, NoAbility()), SideOpponent, RowClose)
		mustPlace(t, ms, unit("ten", 10, RowClose, NoAbility()), SidePlayer, RowClose)
		mustPlace(t, ms, unit("eight", 8, RowClose, NoAbility()), SidePlayer, RowClose)
		if got := len(ms.Board.ScorchTargets(nil)); got != 2 {
			t.Fatalf("targets = %d, want 2", got)
		}
	})

	t.Run("heroes are immune", func(t *testing.T) {
		ms := NewMatchState()
		mustPlace(t, ms, hero("geralt", 15, RowClose), SideOpponent, RowClose)
		seven := mustPlace(t, ms, unit("seven", 7, RowClose, NoAbility()), SideOpponent, RowClose)
		targets := ms.Board.ScorchTargets(nil)
		if len(targets) != 1 || targets[0].Card != seven {
			t.Fatalf("targets = %v, want the 7", targets)
		}
	})

	t.Run("empty board", func(t *testing.T) {
		ms := NewMatchState()
		if got := ms.Board.ScorchTargets(nil); len(got) != 0 {
			t.Fatalf("targets on empty board: %v", got)
		}
	})

	t.Run("zero values survive", func(t *testing.T) {
		ms := NewMatchState()
		mustPlace(t, ms, unit("zero", 0, RowClose, NoAbility()), SideOpponent, RowClose)
		if got := ms.Board.ScorchTargets(nil); len(got) != 0 {
			t.Fatalf("zero-value unit targeted: %v", got)
		}
	})

	t.Run("uses effective value", func(t *testing.T) {
		ms := NewMatchState()
		mustPlace(t, ms, unit("big", 10, RowSiege, NoAbility()), SideOpponent, RowSiege)
		five := mustPlace(t, ms, unit("five", 5, RowClose, NoAbility()), SidePlayer, RowClose)
		ms.Board.SetWeather(RowSiege)
		targets := ms.Board.ScorchTargets(nil)
		if len(targets) != 1 || targets[0].Card != five {
			t.Fatalf("targets = %v, want the 5 (siege is frozen)", targets)
		}
	})
}

func TestBoardClear(t *testing.T) {
	ms := NewMatchState()
	mustPlace(t, ms, unit("a", 1, RowClose, NoAbility()), SidePlayer, RowClose)
	mustPlace(t, ms, unit("b", 2, RowRanged, NoAbility()), SideOpponent, RowRanged)
	ms.Board.SetWeather(RowRanged)
	ms.Board.Passed = [2]bool{true, true}

	removed := ms.Board.Clear()
	if len(removed) != 2 {
		t.Errorf("removed %d cards, want 2", len(removed))
	}
	if ms.Board.Count() != 0 || len(ms.Board.Weather()) != 0 {
		t.Error("board not empty after Clear")
	}
	if ms.Board.Passed[0] || ms.Board.Passed[1] {
		t.Error("pass flags not reset")
	}
}

func TestBoardCheckInvariants(t *testing.T) {
	ms := NewMatchState()
	ci := mustPlace(t, ms, unit("a", 1, RowClose, NoAbility()), SidePlayer, RowClose)
	if err := ms.Board.CheckInvariants(); err != nil {
		t.Fatalf("valid board: %v", err)
	}
	// Force the same instance into a second row.
	r := ms.Board.Row(SideOpponent, RowClose)
	r.Cards = append(r.Cards, ci)
	if err := ms.Board.CheckInvariants(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}
