package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ayomide-o/sportify/internal/preview"
	"github.com/ayomide-o/sportify/internal/session"
	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/ayomide-o/sportify/internal/spotify"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var sessions *session.Manager
	var recents *session.Recents
	var catalog *spotify.Client

	if db, err := shared.NewDatabase(config.Database.Path); err != nil {
		logger.Warn("failed to open credential store", "error", err)
	} else if store, err := session.NewSQLiteStore(db); err != nil {
		logger.Warn("failed to initialize credential store", "error", err)
	} else {
		sessions = session.NewManager(store, logger)
		recents = session.NewRecents(store)
		catalog = spotify.NewClient(sessions, logger, spotify.WithMarket(config.Spotify.Market))
	}

	previews := preview.NewClient(config.Preview.BaseURL, nil)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Sessions:   sessions,
		Recents:    recents,
		Catalog:    catalog,
		Previews:   previews,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "sportify",
		Usage:    "Browse Spotify and play track previews from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
