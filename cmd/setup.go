package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ayomide-o/sportify/internal/session"
	"github.com/ayomide-o/sportify/internal/shared"
)

// Setup creates the config file if missing and initializes the credential store.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing credential store", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if _, err := session.NewSQLiteStore(db); err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	r.writePlain("✓ Config: %s\n", configPath)
	r.writePlain("✓ Credential store: %s\n", config.Database.Path)
	if config.Spotify.ClientID == "" {
		r.writePlainln("Next: set spotify.client_id in %s, then run 'sportify auth login'", configPath)
	}
	return nil
}
