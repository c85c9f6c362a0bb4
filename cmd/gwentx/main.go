package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/gwentx/internal/ai"
	"github.com/peterkuimelis/gwentx/internal/config"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/log"
	"github.com/peterkuimelis/gwentx/internal/term"
	"github.com/peterkuimelis/gwentx/internal/wire"
)

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	deck := flag.Int("deck", 0, "your deck number from the decks file (0 deals a random deck)")
	oppDeck := flag.Int("opp-deck", 0, "AI deck number (0 deals a random deck)")
	decksFile := flag.String("decks", env.DecksFile, "path to decks YAML file")
	catalogFile := flag.String("catalog", env.CatalogFile, "path to a card catalog YAML file (builtin cards when empty)")
	level := flag.String("level", "greedy", "AI level: greedy or random")
	seed := flag.Int64("seed", env.Seed, "random seed (0 = random)")
	handSize := flag.Int("hand", env.HandSize, "cards dealt at match start")
	roundDraw := flag.Int("round-draw", env.RoundDraw, "cards each side draws when a new round starts")
	deckSize := flag.Int("deck-size", env.DeckSize, "size of randomly dealt decks")
	delay := flag.Duration("delay", env.AIDelay, "pause before each AI move")
	watch := flag.Bool("watch", false, "redraw the table after every move")
	logFile := flag.String("log", "", "write the match event log to this file")
	connect := flag.String("connect", "", "join a remote match instead (ws://host:port/ws or host:port)")
	flag.Parse()

	env.HandSize, env.DeckSize, env.RoundDraw = *handSize, *deckSize, *roundDraw
	if err := env.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	human := term.New(os.Stdin, os.Stdout)
	human.Watch = *watch

	if *connect != "" {
		err = runRemote(ctx, *connect, wire.ClientMessage{DeckNumber: *deck, Level: *level}, human)
	} else {
		env.CatalogFile = *catalogFile
		err = runLocal(ctx, localOptions{
			env:       env,
			deck:      *deck,
			oppDeck:   *oppDeck,
			decks:     *decksFile,
			level:     *level,
			seed:      *seed,
			handSize:  *handSize,
			roundDraw: *roundDraw,
			deckSize:  *deckSize,
			delay:     *delay,
			logFile:   *logFile,
		}, human)
	}
	if err != nil && !errors.Is(err, term.ErrQuit) && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type localOptions struct {
	env       config.Config
	deck      int
	oppDeck   int
	decks     string
	level     string
	seed      int64
	handSize  int
	roundDraw int
	deckSize  int
	delay     time.Duration
	logFile   string
}

// runLocal plays a match against the AI in this process.
func runLocal(ctx context.Context, opts localOptions, human *term.Agent) error {
	cat, err := opts.env.Catalog()
	if err != nil {
		return err
	}
	lvl, err := ai.ParseLevel(opts.level)
	if err != nil {
		return err
	}
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	deck0, err := pickDeck(cat, opts.decks, opts.deck, opts.deckSize, rng)
	if err != nil {
		return fmt.Errorf("your deck: %w", err)
	}
	deck1, err := pickDeck(cat, opts.decks, opts.oppDeck, opts.deckSize, rng)
	if err != nil {
		return fmt.Errorf("AI deck: %w", err)
	}

	var logger log.EventLogger
	if opts.logFile != "" {
		f, err := os.Create(opts.logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.NewTextLogger(f)
	}

	opponent := ai.New(lvl, rng.Int63())
	opponent.Delay = opts.delay
	match := game.NewMatch(game.MatchConfig{
		Deck0:     deck0,
		Deck1:     deck1,
		Logger:    logger,
		Seed:      rng.Int63(),
		HandSize:  opts.handSize,
		RoundDraw: opts.roundDraw,
	}, human, opponent)

	_, err = match.Run(ctx)
	return err
}

func pickDeck(cat game.Catalog, decksFile string, n, size int, rng *rand.Rand) ([]*game.Card, error) {
	if n == 0 {
		return game.RandomDeck(cat, size, rng)
	}
	name, cards, err := game.DeckByNumber(decksFile, cat, n)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Deck %d: %s (%d cards)\n", n, name, len(cards))
	return cards, nil
}

// runRemote joins a match served by gwentx-web (websocket) or gwentx-mcp (TCP).
func runRemote(ctx context.Context, addr string, join wire.ClientMessage, human *term.Agent) error {
	var conn net.Conn
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return fmt.Errorf("dial %s: %w", addr, err)
		}
		defer c.CloseNow()
		conn = websocket.NetConn(ctx, c, websocket.MessageText)
	} else {
		var d net.Dialer
		c, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("dial %s: %w", addr, err)
		}
		conn = c
	}
	defer conn.Close()

	fmt.Printf("Connected to %s, waiting for the match to start...\n", addr)
	final, err := wire.RunClient(ctx, conn, join, human)
	if err != nil {
		return err
	}
	if final == nil {
		return errors.New("the server did not start a match")
	}
	return nil
}
