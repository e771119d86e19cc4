package main

import (
	"context"
	"os"

	"github.com/nabende1/CineMate/internal/cache"
	"github.com/nabende1/CineMate/internal/catalog"
	"github.com/nabende1/CineMate/internal/filters"
	"github.com/nabende1/CineMate/internal/shared"
	"github.com/nabende1/CineMate/internal/storage"
	"github.com/nabende1/CineMate/internal/watchlist"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	files, err := storage.NewStore(config.Storage.StateDir, logger)
	if err != nil {
		logger.Fatalf("failed to open state directory: %v", err)
	}

	// A missing cache database is not fatal; listings just lose their
	// offline fallback.
	var listingCache *cache.Store
	if c, err := cache.Open(config.Cache, logger); err == nil {
		listingCache = c
		defer c.Close()
	} else {
		logger.Warn("listing cache unavailable", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Catalog:   catalog.NewClient(config.Catalog, nil, logger),
		Files:     files,
		Watchlist: watchlist.NewStore(files, logger),
		Filters:   filters.NewState(logger),
		Cache:     listingCache,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "cinemate",
		Usage:    "Browse, search, and save movies from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
