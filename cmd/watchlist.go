package main

import (
	"context"
	"fmt"

	"github.com/nabende1/CineMate/internal/formatter"
	"github.com/urfave/cli/v3"
)

// WatchlistList prints the saved movies.
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	entries := r.watchlist.List()

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		return r.writePlain("Watchlist is empty.\n")
	}
	for _, e := range entries {
		movie := e.Movie()
		if err := r.writePlain("%d\t%s (%s)  ★ %s\n", movie.ID, movie.Title, movie.Year, movie.RatingLabel()); err != nil {
			return err
		}
	}
	return nil
}

// WatchlistAdd fetches the movie by ID and saves it.
func (r *Runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := movieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	movie, _, _, err := r.catalog.Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	if r.watchlist.Add(movie) {
		return r.writePlain("Added %q to watchlist.\n", movie.Title)
	}
	return r.writePlain("%q is already in the watchlist.\n", movie.Title)
}

// WatchlistRemove removes a saved movie by ID.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := movieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if r.watchlist.Remove(id) {
		return r.writePlain("Removed movie %d from watchlist.\n", id)
	}
	return r.writePlain("Movie %d is not in the watchlist.\n", id)
}

// WatchlistExport writes the saved movies to a file in the requested format.
func (r *Runner) WatchlistExport(ctx context.Context, cmd *cli.Command) error {
	format := formatter.Format(cmd.String("format"))

	path, err := formatter.WriteExport(r.watchlist.List(), format, cmd.String("output"))
	if err != nil {
		return fmt.Errorf("failed to export watchlist: %w", err)
	}
	return r.writePlain("Exported watchlist to %s.\n", path)
}
