package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/gwentx/internal/game"
)

const rule = "══════════════════════════════════════════════════════"

// RenderBoard draws the table from the snapshot's perspective: opponent rows
// on top (siege outermost), own rows below, hand last.
func RenderBoard(w io.Writer, snap *game.Snapshot) {
	if snap == nil {
		return
	}
	opp, you := snap.Opponent, snap.You

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔"+rule)
	fmt.Fprintf(w, "║  OPPONENT  %s\n", sideSummary(opp))
	for i := len(opp.Rows) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "║  %s\n", formatRow(opp.Rows[i]))
	}

	weather := "clear"
	if len(snap.Weather) > 0 {
		names := make([]string, 0, len(snap.Weather))
		for _, r := range snap.Weather {
			names = append(names, r.String())
		}
		weather = strings.Join(names, ", ")
	}
	fmt.Fprintf(w, "║──── Score %d : %d ──── Weather: %s\n", you.Total, opp.Total, weather)

	for _, rv := range you.Rows {
		fmt.Fprintf(w, "║  %s\n", formatRow(rv))
	}
	fmt.Fprintf(w, "║  YOU       %s\n", sideSummary(you))
	fmt.Fprintln(w, "╚"+rule)

	turnInfo := fmt.Sprintf("Round %d | Turn %d", snap.Round, snap.Turn)
	switch {
	case !snap.Running:
		turnInfo += " | Match over"
	case snap.IsYourTurn:
		turnInfo += " | Your turn"
	default:
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintln(w, "\nHand:")
		for i, cv := range you.Hand {
			fmt.Fprintf(w, "  %2d) %s\n", i+1, FormatCard(cv))
		}
	}
}

// RenderGameOver prints the final banner.
func RenderGameOver(w io.Writer, snap *game.Snapshot) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "          MATCH OVER")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, snap.Result)
	for _, line := range roundLines(snap) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, rule)
}

func roundLines(snap *game.Snapshot) []string {
	var lines []string
	for _, l := range snap.Log {
		if strings.Contains(l, "won round") || strings.Contains(l, "ended in a tie") {
			lines = append(lines, "  "+l)
		}
	}
	return lines
}

func sideSummary(sv game.SideView) string {
	s := fmt.Sprintf("Lives: %s  Hand: %d  Deck: %d  Discard: %d  Total: %d",
		lives(sv.Lives), sv.HandCount, sv.DeckCount, sv.DiscardCount, sv.Total)
	if sv.Passed {
		s += "  [passed]"
	}
	return s
}

func lives(n int) string {
	if n <= 0 {
		return "-"
	}
	return strings.Repeat("♥", n)
}

func formatRow(rv game.RowView) string {
	label := fmt.Sprintf("%-6s %3d", rv.Row, rv.Value)
	if rv.Frozen {
		label += " ❄"
	} else {
		label += "  "
	}
	if len(rv.Cards) == 0 {
		return label + " |"
	}
	parts := make([]string, 0, len(rv.Cards))
	for _, cv := range rv.Cards {
		parts = append(parts, fmt.Sprintf("[%s %d]", cv.Name, cv.Effective))
	}
	return label + " | " + strings.Join(parts, " ")
}

// FormatCard describes a hand or discard card on one line.
func FormatCard(cv game.CardView) string {
	var b strings.Builder
	b.WriteString(cv.Name)
	switch cv.Kind {
	case game.KindUnit:
		fmt.Fprintf(&b, " (%s %d", cv.Row, cv.Value)
		if cv.Hero {
			b.WriteString(", hero")
		}
		switch cv.Ability {
		case game.AbilityNone:
		case game.AbilityMuster:
			fmt.Fprintf(&b, ", muster %s", cv.Group)
		default:
			fmt.Fprintf(&b, ", %s", strings.ReplaceAll(cv.Ability.String(), "_", " "))
		}
		b.WriteString(")")
	case game.KindWeather:
		if cv.Ability == game.AbilityClearWeather {
			b.WriteString(" (clear weather)")
		} else {
			fmt.Fprintf(&b, " (weather: %s)", cv.WeatherRow)
		}
	case game.KindSpecial:
		fmt.Fprintf(&b, " (%s)", cv.Ability)
	}
	return b.String()
}
