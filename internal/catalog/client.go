package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// TrendingWindow selects the trending aggregation period.
type TrendingWindow string

const (
	TrendingDay  TrendingWindow = "day"
	TrendingWeek TrendingWindow = "week"
)

// Client talks to the remote movie catalog.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	images     posterResolver
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a catalog client from configuration. A nil httpClient
// falls back to [http.DefaultClient]; a nil logger to the default logger.
func NewClient(cfg shared.CatalogConfig, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 4
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.Key(),
		language:   cfg.Language,
		images:     posterResolver{base: cfg.ImageBaseURL, size: cfg.PosterSize},
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(limit), 1),
		logger:     logger,
	}
}

// SearchResult carries one page of search hits plus the catalog's totals,
// which the search page reports alongside locally filtered counts.
type SearchResult struct {
	Movies       []models.Movie
	Page         int
	TotalPages   int
	TotalResults int
}

// Popular returns one page of the popular-movies listing.
func (c *Client) Popular(ctx context.Context, page int) ([]models.Movie, error) {
	var payload pagedResponse
	if err := c.getJSON(ctx, "/movie/popular", pageQuery(page), &payload); err != nil {
		return nil, err
	}
	return c.normalizeAll(payload.Results), nil
}

// Trending returns one page of trending movies for the given window.
func (c *Client) Trending(ctx context.Context, window TrendingWindow, page int) ([]models.Movie, error) {
	if window != TrendingDay && window != TrendingWeek {
		return nil, fmt.Errorf("%w: trending window %q", shared.ErrInvalidArgument, window)
	}

	var payload pagedResponse
	if err := c.getJSON(ctx, "/trending/movie/"+string(window), pageQuery(page), &payload); err != nil {
		return nil, err
	}
	return c.normalizeAll(payload.Results), nil
}

// Search runs a full-text title search. Genre/year/rating narrowing is always
// applied locally by the caller; the remote endpoint only filters by text.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	q := pageQuery(page)
	q.Set("query", query)

	var payload pagedResponse
	if err := c.getJSON(ctx, "/search/movie", q, &payload); err != nil {
		return nil, err
	}

	return &SearchResult{
		Movies:       c.normalizeAll(payload.Results),
		Page:         payload.Page,
		TotalPages:   payload.TotalPages,
		TotalResults: payload.TotalResults,
	}, nil
}

// Detail fetches a single movie's detail record.
func (c *Client) Detail(ctx context.Context, id int) (models.Movie, int, []models.Genre, error) {
	var payload detailResponse
	if err := c.getJSON(ctx, "/movie/"+strconv.Itoa(id), nil, &payload); err != nil {
		return models.Movie{}, 0, nil, err
	}

	movie := c.normalize(payload.movieResult)
	genres := make([]models.Genre, 0, len(payload.Genres))
	for _, g := range payload.Genres {
		genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
		movie.GenreIDs = append(movie.GenreIDs, g.ID)
	}

	return movie, payload.Runtime, genres, nil
}

// Credits fetches a movie's cast list.
func (c *Client) Credits(ctx context.Context, id int) ([]models.Credit, error) {
	var payload creditsResponse
	if err := c.getJSON(ctx, "/movie/"+strconv.Itoa(id)+"/credits", nil, &payload); err != nil {
		return nil, err
	}

	cast := make([]models.Credit, 0, len(payload.Cast))
	for _, member := range payload.Cast {
		cast = append(cast, models.Credit{
			Name:       member.Name,
			Character:  member.Character,
			ProfileURL: c.images.profile(member.ProfilePath),
		})
	}
	return cast, nil
}

// Similar fetches movies related to the given one.
func (c *Client) Similar(ctx context.Context, id int) ([]models.Movie, error) {
	var payload pagedResponse
	if err := c.getJSON(ctx, "/movie/"+strconv.Itoa(id)+"/similar", nil, &payload); err != nil {
		return nil, err
	}
	return c.normalizeAll(payload.Results), nil
}

// Videos fetches a movie's trailer/clip listings.
func (c *Client) Videos(ctx context.Context, id int) ([]models.Video, error) {
	var payload videosResponse
	if err := c.getJSON(ctx, "/movie/"+strconv.Itoa(id)+"/videos", nil, &payload); err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(payload.Results))
	for _, v := range payload.Results {
		videos = append(videos, models.Video{Key: v.Key, Name: v.Name, Site: v.Site, Type: v.Type})
	}
	return videos, nil
}

// Genres fetches the catalog's genre table.
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var payload genresResponse
	if err := c.getJSON(ctx, "/genre/movie/list", nil, &payload); err != nil {
		return nil, err
	}

	genres := make([]models.Genre, 0, len(payload.Genres))
	for _, g := range payload.Genres {
		genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

// FullDetail fans out the detail, credits, similar, and videos lookups
// concurrently and joins them. All four must succeed; any failure fails the
// whole page, which renders a single error instead of a partial view.
func (c *Client) FullDetail(ctx context.Context, id int) (*models.MovieDetail, error) {
	detail := &models.MovieDetail{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movie, runtime, genres, err := c.Detail(ctx, id)
		if err != nil {
			return err
		}
		detail.Movie, detail.Runtime, detail.Genres = movie, runtime, genres
		return nil
	})
	g.Go(func() error {
		cast, err := c.Credits(ctx, id)
		if err != nil {
			return err
		}
		detail.Cast = cast
		return nil
	})
	g.Go(func() error {
		similar, err := c.Similar(ctx, id)
		if err != nil {
			return err
		}
		detail.Similar = similar
		return nil
	})
	g.Go(func() error {
		videos, err := c.Videos(ctx, id)
		if err != nil {
			return err
		}
		detail.Videos = videos
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// getJSON performs a rate-limited GET against the catalog and decodes the
// body into out. The API credential is checked before anything goes on the
// wire.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: set catalog.api_key or CINEMATE_TMDB_KEY", shared.ErrMissingAPIKey)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}

	fullURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("catalog request failed", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: %s returned %d", shared.ErrAPIRequest, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}

	return nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}
