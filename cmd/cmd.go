// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize local state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// popularCommand lists the popular movies feed
func popularCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "popular",
		Usage: "List popular movies",
		Flags: append(listingFlags(),
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page to fetch",
				Value: 1,
			},
		),
		Action: r.Popular,
	}
}

// trendingCommand lists the trending feed for a day or week window
func trendingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "trending",
		Usage: "List trending movies",
		Flags: append(listingFlags(),
			&cli.StringFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Trending window: day or week",
				Value:   "day",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page to fetch",
				Value: 1,
			},
		),
		Action: r.Trending,
	}
}

// searchCommand runs a text search with optional local narrowing
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search movies by title",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: append(listingFlags(),
			&cli.StringFlag{
				Name:  "genres",
				Usage: "Comma-separated genre IDs to keep",
			},
			&cli.StringFlag{
				Name:  "year",
				Usage: "Release year to keep",
			},
			&cli.StringFlag{
				Name:  "rating",
				Usage: "Minimum rating to keep",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page to fetch",
				Value: 1,
			},
		),
		Action: r.Search,
	}
}

// movieCommand shows the full detail page for one movie
func movieCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "movie",
		Usage: "Show details, cast, and similar titles for a movie",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags:  listingFlags(),
		Action: r.Movie,
	}
}

// genresCommand prints the genre catalog used by filters
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "genres",
		Usage:  "List movie genres",
		Flags:  listingFlags(),
		Action: r.Genres,
	}
}

// watchlistCommand manages the saved-movies list
func watchlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watchlist",
		Aliases: []string{"wl"},
		Usage:   "Manage the saved-movies list",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show saved movies",
				Flags:  listingFlags(),
				Action: r.WatchlistList,
			},
			{
				Name:  "add",
				Usage: "Save a movie by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.WatchlistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a saved movie by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.WatchlistRemove,
			},
			{
				Name:  "export",
				Usage: "Export saved movies to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, or text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.WatchlistExport,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive movie browser",
		Action: r.TUI,
	}
}

func listingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}
