package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/epicview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/epicview/config.toml)")
	base := flag.String("base", "", "API base prefixed to /api/latest and image paths; empty means same-origin")
	origin := flag.String("origin", "", "origin that same-origin requests resolve against (default http://127.0.0.1:5000)")
	serveAddr := flag.String("serve", "", "serve the HTML page on this address instead of running the terminal UI")
	refreshSeconds := flag.Int("refresh", 0, "auto-refresh interval in seconds from the ready state (0 disables)")
	discardStale := flag.Bool("discard-stale", false, "ignore responses older than the latest refresh")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Serve: *serveAddr != ""}

	// Only flags given on the command line override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base":
			opts.Overrides.APIBase = base
		case "origin":
			opts.Overrides.Origin = origin
		case "serve":
			opts.Overrides.Listen = serveAddr
		case "refresh":
			every := time.Duration(*refreshSeconds) * time.Second
			opts.Overrides.RefreshEvery = &every
		case "discard-stale":
			opts.Overrides.DiscardStale = discardStale
		}
	})

	if *refreshSeconds < 0 {
		fmt.Fprintln(os.Stderr, "epicview: -refresh must not be negative")
		return 1
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "epicview: %v\n", err)
		return 1
	}
	return 0
}
