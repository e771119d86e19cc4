package filters

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/shared"
)

// Selection is the active filter state. The zero value means "no filtering".
type Selection struct {
	Genres []int
	Year   string
	Rating string
}

// Active reports whether any field narrows results.
func (sel Selection) Active() bool {
	return len(sel.Genres) > 0 || sel.Year != "" || sel.Rating != ""
}

// Matches applies AND semantics across fields and OR semantics within the
// genre set. A record without genre ids fails an active genre filter. Records
// missing a year or rating pass those filters; only present values are
// compared.
func (sel Selection) Matches(m models.Movie) bool {
	if len(sel.Genres) > 0 {
		found := false
		for _, id := range sel.Genres {
			if m.HasGenre(id) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if sel.Year != "" && m.Year != "" && m.Year != sel.Year {
		return false
	}

	if sel.Rating != "" && m.Rating != nil {
		if threshold, err := strconv.ParseFloat(sel.Rating, 64); err == nil && *m.Rating < threshold {
			return false
		}
	}

	return true
}

// hasGenre reports membership in the selection itself.
func (sel Selection) hasGenre(id int) bool {
	for _, g := range sel.Genres {
		if g == id {
			return true
		}
	}
	return false
}

// ParseSelection reads a selection from URL query parameters. Non-numeric
// genre entries are dropped; duplicates collapse keeping first position.
func ParseSelection(params url.Values) Selection {
	sel := Selection{
		Year:   params.Get("year"),
		Rating: params.Get("rating"),
	}

	for _, part := range strings.Split(params.Get("genres"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || sel.hasGenre(id) {
			continue
		}
		sel.Genres = append(sel.Genres, id)
	}

	return sel
}

// QueryParams is the inverse of [ParseSelection]; empty fields are omitted,
// so an empty selection encodes to zero parameters.
func (sel Selection) QueryParams() url.Values {
	params := url.Values{}

	if len(sel.Genres) > 0 {
		parts := make([]string, len(sel.Genres))
		for i, id := range sel.Genres {
			parts[i] = strconv.Itoa(id)
		}
		params.Set("genres", strings.Join(parts, ","))
	}
	if sel.Year != "" {
		params.Set("year", sel.Year)
	}
	if sel.Rating != "" {
		params.Set("rating", sel.Rating)
	}

	return params
}

// GenreSource is the slice of the catalog client this package needs.
type GenreSource interface {
	Genres(ctx context.Context) ([]models.Genre, error)
}

type listener struct {
	token string
	fn    func()
}

// State holds the committed selection plus the session genre catalog.
type State struct {
	logger *log.Logger

	mu        sync.Mutex
	sel       Selection
	genres    []models.Genre
	loaded    bool
	inflight  chan struct{}
	listeners []listener
}

// NewState creates an empty filter state.
func NewState(logger *log.Logger) *State {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &State{logger: logger}
}

// LoadGenres fetches the genre catalog once per session. Concurrent and
// repeated calls share a single fetch. A failed fetch installs the static
// fallback table instead of leaving the catalog empty, and is not an error
// to the caller.
func (s *State) LoadGenres(ctx context.Context, src GenreSource) {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return
	}
	if s.inflight != nil {
		wait := s.inflight
		s.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
		}
		return
	}
	s.inflight = make(chan struct{})
	done := s.inflight
	s.mu.Unlock()

	genres, err := src.Genres(ctx)
	if err != nil {
		s.logger.Warn("genre catalog fetch failed, using fallback table", "err", err)
		genres = models.FallbackGenres
	}

	s.mu.Lock()
	s.genres = genres
	s.loaded = true
	s.inflight = nil
	s.mu.Unlock()
	close(done)
}

// Genres returns the loaded genre catalog.
func (s *State) Genres() []models.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genres
}

// GenreName resolves a genre id to its display name.
func (s *State) GenreName(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.genres {
		if g.ID == id {
			return g.Name
		}
	}
	return strconv.Itoa(id)
}

// Selection returns a copy of the committed selection.
func (s *State) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.sel
	sel.Genres = append([]int(nil), s.sel.Genres...)
	return sel
}

// SetSelection replaces the selection atomically and emits one change
// notification.
func (s *State) SetSelection(sel Selection) {
	s.mu.Lock()
	s.sel = sel
	s.mu.Unlock()
	s.notify()
}

// SetFromQueryParams replaces the selection from URL parameters atomically,
// emitting one change notification for the whole parse.
func (s *State) SetFromQueryParams(params url.Values) {
	s.SetSelection(ParseSelection(params))
}

// QueryParams encodes the committed selection.
func (s *State) QueryParams() url.Values {
	return s.Selection().QueryParams()
}

// Apply returns the subsequence of records passing the committed selection.
func (s *State) Apply(records []models.Movie) []models.Movie {
	sel := s.Selection()
	if !sel.Active() {
		return records
	}

	passed := make([]models.Movie, 0, len(records))
	for _, m := range records {
		if sel.Matches(m) {
			passed = append(passed, m)
		}
	}
	return passed
}

// HasActiveFilters reports whether the committed selection narrows results.
func (s *State) HasActiveFilters() bool {
	return s.Selection().Active()
}

// Clear resets the selection and emits one change notification.
func (s *State) Clear() {
	s.SetSelection(Selection{})
}

// Subscribe registers a callback invoked once per committed change, in
// registration order.
func (s *State) Subscribe(fn func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := shared.GenerateID()
	s.listeners = append(s.listeners, listener{token: token, fn: fn})
	return token
}

// Unsubscribe removes a previously registered callback.
func (s *State) Unsubscribe(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.listeners {
		if l.token == token {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *State) notify() {
	s.mu.Lock()
	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}

// Edit stages per-field mutations so a filter form commits as one logical
// action with one notification.
type Edit struct {
	state *State
	sel   Selection
}

// Begin snapshots the committed selection for staging.
func (s *State) Begin() *Edit {
	return &Edit{state: s, sel: s.Selection()}
}

// ToggleGenre adds or removes one genre id from the staged set.
func (e *Edit) ToggleGenre(id int) *Edit {
	for i, g := range e.sel.Genres {
		if g == id {
			e.sel.Genres = append(e.sel.Genres[:i], e.sel.Genres[i+1:]...)
			return e
		}
	}
	e.sel.Genres = append(e.sel.Genres, id)
	return e
}

// SetYear stages the year filter.
func (e *Edit) SetYear(year string) *Edit {
	e.sel.Year = year
	return e
}

// SetRating stages the minimum-rating filter.
func (e *Edit) SetRating(rating string) *Edit {
	e.sel.Rating = rating
	return e
}

// Selection exposes the staged state for form rendering.
func (e *Edit) Selection() Selection { return e.sel }

// Commit replaces the committed selection with the staged one, emitting a
// single notification for the whole edit.
func (e *Edit) Commit() {
	e.state.SetSelection(e.sel)
}
