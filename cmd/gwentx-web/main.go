package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/gwentx/internal/config"
	"github.com/peterkuimelis/gwentx/internal/web"
)

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	port := flag.Int("port", env.Port, "HTTP port to listen on")
	decksFile := flag.String("decks", env.DecksFile, "path to decks YAML file")
	publicURL := flag.String("public-url", env.PublicURL, "URL encoded in the join QR code")
	flag.Parse()

	cat, err := env.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv, err := web.NewServer(web.Options{
		Catalog:   cat,
		DecksFile: *decksFile,
		PublicURL: *publicURL,
		HandSize:  env.HandSize,
		RoundDraw: env.RoundDraw,
		DeckSize:  env.DeckSize,
		Seed:      env.Seed,
		AIDelay:   env.AIDelay,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("gwentx web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
