// Package term is the interactive terminal seat: it draws the table and reads
// moves from a line-oriented input.
package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
)

// ErrQuit is returned when the user leaves the match.
var ErrQuit = errors.New("player quit")

const helpText = `Commands:
  <n>            play hand card n (fixed-row units, weather, specials)
  <n> <row>      play hand card n into close/ranged/siege (c/r/s)
  p, pass        pass for the rest of the round
  l, log         show the match log
  h, help        show this help
  q, quit        leave the match`

// Agent is a human player at a terminal.
type Agent struct {
	in  *bufio.Reader
	out io.Writer

	// Watch draws the table after every change, not only on this seat's turn.
	Watch bool
}

// New creates a terminal agent reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Agent {
	return &Agent{in: bufio.NewReader(in), out: out}
}

func (a *Agent) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", ErrQuit
		}
	}
	return strings.TrimSpace(line), nil
}

// SelectMove implements game.Agent.
func (a *Agent) SelectMove(ctx context.Context, snap *game.Snapshot) (game.Move, error) {
	RenderBoard(a.out, snap)
	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		fmt.Fprint(a.out, "> ")
		line, err := a.readLine()
		if err != nil {
			return game.Move{}, err
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "h", "help", "?":
			fmt.Fprintln(a.out, helpText)
			continue
		case "l", "log":
			for _, l := range snap.Log {
				fmt.Fprintln(a.out, "  "+l)
			}
			continue
		case "q", "quit", "exit":
			return game.Move{}, ErrQuit
		}

		mv, err := ParseCommand(line, snap.You.Hand)
		if err != nil {
			fmt.Fprintf(a.out, "%v (type h for help)\n", err)
			continue
		}
		return mv, nil
	}
}

// ParseCommand turns a typed command into a move. Card numbers are 1-based
// positions in hand.
func ParseCommand(line string, hand []game.CardView) (game.Move, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return game.Move{}, errors.New("empty command")
	}
	if fields[0] == "p" || fields[0] == "pass" {
		return game.Pass(), nil
	}
	if fields[0] == "play" {
		fields = fields[1:]
	}
	if len(fields) == 0 || len(fields) > 2 {
		return game.Move{}, errors.New("expected a card number and an optional row")
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > len(hand) {
		return game.Move{}, fmt.Errorf("enter a card number between 1 and %d", len(hand))
	}
	cv := hand[n-1]

	row := game.RowNone
	if len(fields) == 2 {
		row, err = game.ParseRow(fields[1])
		if err != nil || !row.IsCombat() {
			return game.Move{}, fmt.Errorf("unknown row %q: use close, ranged or siege", fields[1])
		}
	}
	if cv.Kind == game.KindUnit && cv.Row == game.RowAny && row == game.RowNone {
		return game.Move{}, fmt.Errorf("%s can go in any row: add c, r or s", cv.Name)
	}
	return game.Play(cv.Instance, row), nil
}

// ChooseCard implements game.Agent.
func (a *Agent) ChooseCard(ctx context.Context, snap *game.Snapshot, prompt string, candidates []game.CardView) (int, error) {
	fmt.Fprintf(a.out, "\n%s\n", prompt)
	for i, cv := range candidates {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, FormatCard(cv))
	}
	fmt.Fprintln(a.out, "  0) none")
	for {
		fmt.Fprint(a.out, "> ")
		line, err := a.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > len(candidates) {
			fmt.Fprintf(a.out, "Enter a number between 0 and %d\n", len(candidates))
			continue
		}
		if n == 0 {
			return 0, nil
		}
		return candidates[n-1].Instance, nil
	}
}

// Rejected implements game.Reprompter.
func (a *Agent) Rejected(ctx context.Context, err error) error {
	fmt.Fprintf(a.out, "Invalid move, try again: %v\n", err)
	return nil
}

// Render implements game.Renderer.
func (a *Agent) Render(ctx context.Context, snap *game.Snapshot) error {
	if !snap.Running {
		RenderBoard(a.out, snap)
		RenderGameOver(a.out, snap)
		return nil
	}
	if a.Watch {
		RenderBoard(a.out, snap)
	}
	return nil
}

// Notify implements game.Agent.
func (a *Agent) Notify(ctx context.Context, event log.GameEvent) error {
	fmt.Fprintln(a.out, log.FormatEvent(event))
	return nil
}
