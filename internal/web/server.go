// Package web serves the browser front end: static assets, card and deck
// listings, a join QR code and a websocket endpoint where the browser plays
// one seat against the AI.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/peterkuimelis/gwentx/internal/ai"
	"github.com/peterkuimelis/gwentx/internal/game"
	"github.com/peterkuimelis/gwentx/internal/wire"
)

//go:embed static
var staticFiles embed.FS

// DefaultDeckSize is the size of the random deck dealt when no deck number is given.
const DefaultDeckSize = 15

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Kind       game.CardKind    `json:"kind"`
	Value      int              `json:"value,omitempty"`
	Row        game.Row         `json:"row,omitempty"`
	Ability    game.AbilityKind `json:"ability"`
	Group      string           `json:"group,omitempty"`
	WeatherRow game.Row         `json:"weather_row,omitempty"`
	Hero       bool             `json:"hero,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"`
}

// Options configures a Server.
type Options struct {
	Catalog   game.Catalog
	DecksFile string
	PublicURL string // encoded in /qr.png; the request host when empty
	HandSize  int
	RoundDraw int   // cards each side draws when a new round starts
	DeckSize  int   // random deck size (0 = DefaultDeckSize)
	Seed      int64 // 0 seeds each match from the clock
	AIDelay   time.Duration
}

// Server is the gwentx web UI server.
type Server struct {
	opts    Options
	mux     *http.ServeMux
	matches atomic.Int64
}

// NewServer creates a new web server.
func NewServer(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		opts.Catalog = game.DefaultCatalog()
	}
	if opts.DeckSize == 0 {
		opts.DeckSize = DefaultDeckSize
	}
	if opts.DecksFile != "" {
		if _, err := os.Stat(opts.DecksFile); err != nil {
			log.Printf("Warning: decks file unavailable, only random decks will be dealt: %v", err)
			opts.DecksFile = ""
		}
	}
	s := &Server{opts: opts, mux: http.NewServeMux()}
	s.setupRoutes()
	return s, nil
}

// Handler returns the server's request multiplexer.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /qr.png", s.handleQR)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, id := range s.opts.Catalog.CardIDs() {
		c, err := s.opts.Catalog.Card(id)
		if err != nil {
			continue
		}
		cards = append(cards, CardInfo{
			ID:         c.ID,
			Name:       c.Name,
			Kind:       c.Kind,
			Value:      c.Value,
			Row:        c.Row,
			Ability:    c.Ability.Kind,
			Group:      c.Ability.Group,
			WeatherRow: c.Ability.Row,
			Hero:       c.Hero,
		})
	}
	writeJSON(w, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := []DeckInfo{}
	if s.opts.DecksFile == "" {
		writeJSON(w, decks)
		return
	}
	loaded, err := game.LoadDecks(s.opts.DecksFile, s.opts.Catalog)
	if err != nil {
		log.Printf("decks: %v", err)
		http.Error(w, "could not load decks file", http.StatusInternalServerError)
		return
	}

	for i, d := range loaded {
		di := DeckInfo{Number: i + 1, Name: d.Name, Size: len(d.Cards)}
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			if !seen[c.ID] {
				di.Cards = append(di.Cards, c.ID)
				seen[c.ID] = true
			}
		}
		decks = append(decks, di)
	}
	writeJSON(w, decks)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int64{"active_matches": s.matches.Load()})
}

// handleQR serves a PNG QR code pointing phones at the UI.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	url := s.opts.PublicURL
	if url == "" {
		url = "http://" + r.Host + "/"
	}
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "could not generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	id := uuid.NewString()
	s.matches.Add(1)
	defer s.matches.Add(-1)
	log.Printf("match %s: browser connected from %s", id, r.RemoteAddr)

	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)
	match, err := wire.Serve(ctx, conn, s.setup)
	switch {
	case err != nil:
		log.Printf("match %s: %v", id, err)
	case match != nil:
		log.Printf("match %s: %s", id, match.State.Result)
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// setup deals the browser's deck (numbered from the decks file, or random
// when none is given) and a random deck for the AI.
func (s *Server) setup(join wire.ClientMessage) (game.MatchConfig, game.Agent, error) {
	level, err := ai.ParseLevel(join.Level)
	if err != nil {
		return game.MatchConfig{}, nil, err
	}
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var deck0 []*game.Card
	if join.DeckNumber > 0 {
		if s.opts.DecksFile == "" {
			return game.MatchConfig{}, nil, fmt.Errorf("deck %d not found (no decks file)", join.DeckNumber)
		}
		_, deck0, err = game.DeckByNumber(s.opts.DecksFile, s.opts.Catalog, join.DeckNumber)
	} else {
		deck0, err = game.RandomDeck(s.opts.Catalog, s.opts.DeckSize, rng)
	}
	if err != nil {
		return game.MatchConfig{}, nil, err
	}
	deck1, err := game.RandomDeck(s.opts.Catalog, max(len(deck0), s.opts.DeckSize), rng)
	if err != nil {
		return game.MatchConfig{}, nil, err
	}

	opponent := ai.New(level, rng.Int63())
	opponent.Delay = s.opts.AIDelay
	cfg := game.MatchConfig{
		Deck0:     deck0,
		Deck1:     deck1,
		Seed:      rng.Int63(),
		HandSize:  s.opts.HandSize,
		RoundDraw: s.opts.RoundDraw,
	}
	return cfg, opponent, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
