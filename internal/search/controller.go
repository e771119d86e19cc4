package search

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nabende1/CineMate/internal/catalog"
	"github.com/nabende1/CineMate/internal/filters"
	"github.com/nabende1/CineMate/internal/models"
)

// Defaults mirror the interactive tuning the views use.
const (
	DefaultMinQueryLength = 2
	DefaultDebounce       = 300 * time.Millisecond
	SuggestionLimit       = 5
)

// Phase is the search session state.
type Phase int

const (
	Idle Phase = iota
	Suggesting
	Navigating
)

// Token identifies one issued suggestion fetch.
type Token uint64

// Controller owns the current query string and the issuance order of
// suggestion fetches.
type Controller struct {
	minLen   int
	debounce time.Duration

	mu    sync.Mutex
	query string
	phase Phase
	seq   Token
}

// NewController creates a controller; non-positive arguments take the
// defaults.
func NewController(minLen int, debounce time.Duration) *Controller {
	if minLen <= 0 {
		minLen = DefaultMinQueryLength
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{minLen: minLen, debounce: debounce}
}

// Debounce returns the quiet interval callers wait before firing a fetch.
func (c *Controller) Debounce() time.Duration { return c.debounce }

// Query returns the current query string.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Phase returns the current session phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Input records a keystroke. When the trimmed query is long enough it issues
// a new token and returns fire=true: the caller schedules the debounce timer
// and checks [Controller.Ready] when it fires. Shorter input clears the
// session back to idle immediately, with no network call.
func (c *Controller) Input(query string) (Token, bool) {
	query = strings.TrimSpace(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	c.seq++

	if len([]rune(query)) < c.minLen {
		c.phase = Idle
		return 0, false
	}

	c.phase = Suggesting
	return c.seq, true
}

// Ready reports whether a debounce timer that just fired is still current.
// A newer keystroke supersedes the pending fetch.
func (c *Controller) Ready(token Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.seq && c.phase == Suggesting
}

// Accept reports whether a resolved fetch may render. Last-issued-wins:
// anything but the most recently issued token is stale, regardless of
// response arrival order.
func (c *Controller) Accept(token Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.seq && c.phase == Suggesting
}

// Navigate commits the session. Returns the canonical results URL, or
// ok=false when there is nothing to search: an empty query with no active
// filters is a no-op.
func (c *Controller) Navigate(path string, sel filters.Selection) (string, bool) {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()

	if query == "" && !sel.Active() {
		return "", false
	}

	c.mu.Lock()
	c.phase = Navigating
	c.mu.Unlock()

	return BuildURL(path, query, sel), true
}

// Reset returns the session to idle, clearing the query.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = ""
	c.phase = Idle
	c.seq++
}

// BuildURL encodes query plus filter selection as a shareable results URL,
// omitting empty parts: path?q=<query>&genres=..&year=..&rating=..
func BuildURL(path, query string, sel filters.Selection) string {
	parts := make([]string, 0, 4)
	if query != "" {
		parts = append(parts, "q="+url.QueryEscape(query))
	}

	filterParams := sel.QueryParams()
	for _, key := range []string{"genres", "year", "rating"} {
		if v := filterParams.Get(key); v != "" {
			parts = append(parts, key+"="+url.QueryEscape(v))
		}
	}

	if len(parts) == 0 {
		return path
	}
	return path + "?" + strings.Join(parts, "&")
}

// ParseURL reconstructs query and filter selection from query parameters,
// the deep-linking inverse of [BuildURL].
func ParseURL(params url.Values) (string, filters.Selection) {
	return params.Get("q"), filters.ParseSelection(params)
}

// Searcher is the slice of the catalog client a results fetch needs.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*catalog.SearchResult, error)
}

// Results is one fully post-filtered results page.
type Results struct {
	Query        string
	Movies       []models.Movie
	TotalResults int
	Filtered     bool
}

// Execute runs the text search and applies the filter state locally. The
// remote endpoint only understands text; genre/year/rating narrowing always
// happens here. An empty query with active filters searches a broad seed
// term so there is a result set to narrow.
func Execute(ctx context.Context, src Searcher, state *filters.State, query string, page int) (*Results, error) {
	fetchQuery := query
	if fetchQuery == "" {
		fetchQuery = "a"
	}

	result, err := src.Search(ctx, fetchQuery, page)
	if err != nil {
		return nil, err
	}

	return &Results{
		Query:        query,
		Movies:       state.Apply(result.Movies),
		TotalResults: result.TotalResults,
		Filtered:     state.HasActiveFilters(),
	}, nil
}
