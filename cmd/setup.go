package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nabende1/CineMate/internal/cache"
	"github.com/nabende1/CineMate/internal/shared"
	"github.com/nabende1/CineMate/internal/storage"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config file and initializes the state directory and
// listing cache.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
		if loaded, err := shared.LoadConfig(configPath); err == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.logger.Info("config file created", "path", configPath)
	}

	if _, err := storage.NewStore(config.Storage.StateDir, r.logger); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	r.logger.Info("state directory ready", "path", config.Storage.StateDir)

	store, err := cache.Open(config.Cache, r.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize listing cache: %w", err)
	}
	defer store.Close()
	r.logger.Info("listing cache ready", "path", config.Cache.Path)

	if config.Catalog.Key() == "" {
		r.writePlain("No API key configured. Set catalog.api_key in %s or export CINEMATE_TMDB_KEY.\n", configPath)
	}
	return r.writePlain("Setup complete.\n")
}
