package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/gwentx/internal/config"
	gwentxmcp "github.com/peterkuimelis/gwentx/internal/mcp"
)

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	decks := flag.String("decks", env.DecksFile, "path to decks YAML file")
	port := flag.String("port", env.MCPPort, "TCP port for a human opponent to join on")
	flag.Parse()

	cat, err := env.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tools := gwentxmcp.NewTools(gwentxmcp.Options{
		Catalog:   cat,
		DecksFile: *decks,
		Port:      *port,
		HandSize:  env.HandSize,
		RoundDraw: env.RoundDraw,
		DeckSize:  env.DeckSize,
	})
	defer tools.Close()

	s := server.NewMCPServer("gwentx", "1.0.0")
	tools.Register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
