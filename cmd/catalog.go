package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nabende1/CineMate/internal/catalog"
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/search"
	"github.com/nabende1/CineMate/internal/shared"
	"github.com/urfave/cli/v3"
)

// Popular prints the popular movies feed.
func (r *Runner) Popular(ctx context.Context, cmd *cli.Command) error {
	movies, err := r.catalog.Popular(ctx, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("failed to fetch popular movies: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}
	return r.writeMovieList(movies)
}

// Trending prints the trending feed for the requested window.
func (r *Runner) Trending(ctx context.Context, cmd *cli.Command) error {
	window := catalog.TrendingWindow(cmd.String("window"))
	movies, err := r.catalog.Trending(ctx, window, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("failed to fetch trending movies: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}
	return r.writeMovieList(movies)
}

// Search runs a text search, narrowed locally by any genre/year/rating flags.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	params := url.Values{}
	if genres := cmd.String("genres"); genres != "" {
		params.Set("genres", genres)
	}
	if year := cmd.String("year"); year != "" {
		params.Set("year", year)
	}
	if rating := cmd.String("rating"); rating != "" {
		params.Set("rating", rating)
	}
	r.filters.SetFromQueryParams(params)

	query := cmd.StringArg("query")
	if query == "" && !r.filters.HasActiveFilters() {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	results, err := search.Execute(ctx, r.catalog, r.filters, query, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	label := "results"
	if results.TotalResults == 1 {
		label = "result"
	}
	r.writePlain("%d %s for %q", results.TotalResults, label, results.Query)
	if results.Filtered {
		r.writePlain(" (%d shown after filters)", len(results.Movies))
	}
	r.writePlain("\n\n")
	return r.writeMovieList(results.Movies)
}

// Movie prints the full detail page for one movie ID.
func (r *Runner) Movie(ctx context.Context, cmd *cli.Command) error {
	id, err := movieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	detail, err := r.catalog.FullDetail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlain("%s (%s)  ★ %s\n", detail.Movie.Title, detail.Movie.Year, detail.Movie.RatingLabel())
	if detail.Runtime > 0 {
		r.writePlain("Runtime: %dm\n", detail.Runtime)
	}
	if len(detail.Genres) > 0 {
		r.writePlain("Genres:")
		for _, g := range detail.Genres {
			r.writePlain(" %s", g.Name)
		}
		r.writePlain("\n")
	}
	if detail.Movie.Overview != "" {
		r.writePlain("\n%s\n", detail.Movie.Overview)
	}
	if trailer, ok := detail.Trailer(); ok {
		r.writePlain("\nTrailer: https://www.youtube.com/watch?v=%s\n", trailer.Key)
	}
	if len(detail.Cast) > 0 {
		r.writePlain("\nCast:\n")
		for _, c := range detail.Cast {
			if c.Character != "" {
				r.writePlain("  %s as %s\n", c.Name, c.Character)
			} else {
				r.writePlain("  %s\n", c.Name)
			}
		}
	}
	if len(detail.Similar) > 0 {
		r.writePlain("\nMore like this:\n")
		if err := r.writeMovieList(detail.Similar); err != nil {
			return err
		}
	}
	return nil
}

// Genres prints the genre catalog.
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	genres, err := r.catalog.Genres(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}
	for _, g := range genres {
		r.writePlain("%d\t%s\n", g.ID, g.Name)
	}
	return nil
}

func (r *Runner) writeMovieList(movies []models.Movie) error {
	if len(movies) == 0 {
		return r.writePlain("No movies to show.\n")
	}
	for _, m := range movies {
		if err := r.writePlain("%d\t%s (%s)  ★ %s\n", m.ID, m.Title, m.Year, m.RatingLabel()); err != nil {
			return err
		}
	}
	return nil
}

func movieID(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}
