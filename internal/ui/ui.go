package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/nabende1/CineMate/internal/cache"
	"github.com/nabende1/CineMate/internal/catalog"
	"github.com/nabende1/CineMate/internal/filters"
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/render"
	"github.com/nabende1/CineMate/internal/search"
	"github.com/nabende1/CineMate/internal/shared"
	"github.com/nabende1/CineMate/internal/storage"
	"github.com/nabende1/CineMate/internal/watchlist"
)

// ViewState describes which page the model is currently displaying.
type ViewState int

const (
	HomeView ViewState = iota
	TrendingView
	SearchView
	DetailView
	WatchlistView
	FilterView
)

// Deps bundles the components the model is built from.
type Deps struct {
	Catalog   *catalog.Client
	Watchlist *watchlist.Store
	Filters   *filters.State
	Files     *storage.Store
	Cache     *cache.Store
	Config    shared.UIConfig
	Logger    *log.Logger
}

// Model is the root bubbletea model hosting all five views.
type Model struct {
	ctx  context.Context
	deps Deps

	keys    keyMap
	help    help.Model
	palette *render.Palette
	ctrl    *search.Controller

	view     ViewState
	prevView ViewState
	width    int
	height   int
	theme    string

	bannerInterval time.Duration
	bannerSize     int
	bannerMovies   []models.Movie
	banner         *render.Carousel
	bannerErr      error

	popular        *render.Grid
	popularStale   bool
	popularErr     error
	popularLoading bool
	homeCursor     int

	trendGrid    *render.Grid
	trendWindow  string
	trendPage    int
	trendStale   bool
	trendErr     error
	trendLoading bool
	trendCursor  int

	input           textinput.Model
	typing          bool
	suggestions     []models.Movie
	suggestionErr   error
	sugCursor       int
	results         *render.Grid
	resultsInfo     string
	resultsErr      error
	resultsLoading  bool
	resultsRevision int
	resultCursor    int
	searched        bool

	form       *filters.Edit
	formCursor int
	formField  int // 0 genre list, 1 year, 2 rating
	yearInput  textinput.Model
	rateInput  textinput.Model

	detail        *models.MovieDetail
	detailID      int
	detailErr     error
	detailLoading bool
	similarGrid   *render.Grid
	similarCursor int

	watchGrid   *render.Grid
	watchCursor int

	watchChanges  chan struct{}
	filterChanges chan struct{}

	watchlistToken string
	filterToken    string
}

// NewModel wires the movie browser UI over the given dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	input := textinput.New()
	input.Placeholder = "Search for movies..."
	input.CharLimit = 120

	yearInput := textinput.New()
	yearInput.Placeholder = "year (e.g. 2020)"
	yearInput.CharLimit = 4

	rateInput := textinput.New()
	rateInput.Placeholder = "min rating (e.g. 7.5)"
	rateInput.CharLimit = 4

	minLen := deps.Config.MinQueryLength
	if minLen <= 0 {
		minLen = search.DefaultMinQueryLength
	}
	debounce := time.Duration(deps.Config.DebounceMS) * time.Millisecond
	if debounce <= 0 {
		debounce = search.DefaultDebounce
	}
	interval := time.Duration(deps.Config.BannerIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	size := deps.Config.BannerSize
	if size <= 0 {
		size = 5
	}

	m := &Model{
		ctx:            ctx,
		deps:           deps,
		keys:           newKeyMap(),
		help:           help.New(),
		palette:        render.NewPalette(),
		ctrl:           search.NewController(minLen, debounce),
		view:           HomeView,
		theme:          deps.Files.Theme(),
		bannerInterval: interval,
		bannerSize:     size,
		popular:        render.NewGrid(deps.Watchlist),
		trendGrid:      render.NewGrid(deps.Watchlist),
		results:        render.NewGrid(deps.Watchlist),
		similarGrid:    render.NewGrid(deps.Watchlist),
		watchGrid:      render.NewGrid(deps.Watchlist),
		trendWindow:    string(catalog.TrendingDay),
		trendPage:      1,
		input:          input,
		yearInput:      yearInput,
		rateInput:      rateInput,
		watchChanges:   make(chan struct{}, 1),
		filterChanges:  make(chan struct{}, 1),
		popularLoading: true,
	}

	// Coalescing bridges: change callbacks fire outside the bubbletea loop, a
	// full buffer means a refresh is already pending.
	m.watchlistToken = deps.Watchlist.Subscribe(func() {
		select {
		case m.watchChanges <- struct{}{}:
		default:
		}
	})
	m.filterToken = deps.Filters.Subscribe(func() {
		select {
		case m.filterChanges <- struct{}{}:
		default:
		}
	})
	m.watchGrid.SetMovies(entriesToMovies(deps.Watchlist.List()))
	return m
}

func entriesToMovies(entries []models.WatchlistEntry) []models.Movie {
	movies := make([]models.Movie, 0, len(entries))
	for _, e := range entries {
		movies = append(movies, e.Movie())
	}
	return movies
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadGenresCmd(),
		m.fetchPopularCmd(),
		m.fetchBannerCmd(),
		m.waitForChangeCmd(),
		m.waitForFilterCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case popularFetchedMsg:
		m.popularLoading = false
		m.popularErr = msg.err
		m.popularStale = msg.stale
		if msg.err == nil {
			m.popular.SetMovies(msg.movies)
			m.homeCursor = clamp(m.homeCursor, m.popular.Len())
		}
		return m, nil

	case bannerFetchedMsg:
		m.bannerErr = msg.err
		if msg.err == nil {
			m.bannerMovies = msg.movies
			return m, m.restartBanner()
		}
		return m, nil

	case bannerTickMsg:
		if m.banner == nil || !m.banner.Advance(msg.generation) {
			return m, nil
		}
		return m, m.bannerTickCmd(m.banner.Generation())

	case trendingFetchedMsg:
		// A window flip mid-flight makes the old page irrelevant.
		if msg.window != m.trendWindow {
			return m, nil
		}
		m.trendLoading = false
		m.trendErr = msg.err
		m.trendStale = msg.stale
		if msg.err == nil {
			if msg.page <= 1 {
				m.trendGrid.SetMovies(msg.movies)
				m.trendCursor = 0
			} else {
				m.trendGrid.Append(msg.movies)
			}
			m.trendPage = msg.page
		}
		return m, nil

	case genresLoadedMsg:
		return m, nil

	case debounceFiredMsg:
		if !m.ctrl.Ready(msg.token) {
			return m, nil
		}
		return m, m.suggestCmd(msg.token, m.ctrl.Query())

	case suggestionsMsg:
		if !m.ctrl.Accept(msg.token) {
			return m, nil
		}
		m.suggestionErr = msg.err
		if msg.err == nil {
			m.suggestions = msg.movies
		} else {
			m.suggestions = nil
		}
		m.sugCursor = 0
		return m, nil

	case resultsMsg:
		if msg.revision != m.resultsRevision {
			return m, nil
		}
		m.resultsLoading = false
		m.resultsErr = msg.err
		m.searched = true
		if msg.err == nil {
			m.results.SetMovies(msg.results.Movies)
			m.resultsInfo = resultsInfo(msg.results)
			m.resultCursor = 0
		}
		return m, nil

	case detailFetchedMsg:
		m.detailLoading = false
		m.detailErr = msg.err
		m.detail = msg.detail
		if msg.err == nil {
			m.similarGrid.SetMovies(msg.detail.Similar)
			m.similarCursor = 0
		}
		return m, nil

	case watchlistChangedMsg:
		m.refreshWatchlist()
		return m, m.waitForChangeCmd()

	case filtersChangedMsg:
		cmd := m.waitForFilterCmd()
		if m.view == SearchView && m.searched {
			m.resultsRevision++
			m.resultsLoading = true
			return m, tea.Batch(cmd, m.resultsCmd(m.resultsRevision, m.ctrl.Query()))
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// refreshWatchlist syncs every card registry and rebuilds the saved-list
// view after a local or external change.
func (m *Model) refreshWatchlist() {
	m.popular.Refresh()
	m.trendGrid.Refresh()
	m.results.Refresh()
	m.similarGrid.Refresh()
	m.watchGrid.SetMovies(entriesToMovies(m.deps.Watchlist.List()))
	m.watchCursor = clamp(m.watchCursor, m.watchGrid.Len())
}

// restartBanner rebuilds the carousel from the latest banner movies and
// schedules the first rotation tick.
func (m *Model) restartBanner() tea.Cmd {
	if m.banner != nil {
		m.banner.Stop()
	}
	m.banner = render.NewCarousel(m.bannerMovies, m.bannerSize)
	if !m.banner.Rotating() {
		return nil
	}
	return m.bannerTickCmd(m.banner.Generation())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry modes swallow everything except commit and cancel keys.
	if m.view == SearchView && m.typing {
		return m.handleSearchTyping(msg)
	}
	if m.view == FilterView {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		if m.banner != nil {
			m.banner.Stop()
		}
		m.deps.Watchlist.Unsubscribe(m.watchlistToken)
		m.deps.Filters.Unsubscribe(m.filterToken)
		return m, tea.Quit

	case key.Matches(msg, m.keys.search):
		return m.openSearch()

	case key.Matches(msg, m.keys.trending):
		return m.openTrending(false)

	case key.Matches(msg, m.keys.watchlist):
		m.switchView(WatchlistView)
		return m, nil

	case key.Matches(msg, m.keys.home):
		return m.openHome()

	case key.Matches(msg, m.keys.filter):
		m.openFilters()
		return m, nil

	case key.Matches(msg, m.keys.theme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.back):
		return m.goBack()
	}

	switch m.view {
	case HomeView:
		return m.handleHomeKey(msg)
	case TrendingView:
		return m.handleTrendingKey(msg)
	case SearchView:
		return m.handleResultsKey(msg)
	case DetailView:
		return m.handleDetailKey(msg)
	case WatchlistView:
		return m.handleWatchlistKey(msg)
	}
	return m, nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.homeCursor = dec(m.homeCursor)
	case key.Matches(msg, m.keys.down):
		m.homeCursor = inc(m.homeCursor, m.popular.Len())
	case key.Matches(msg, m.keys.toggle):
		m.popular.Toggle(m.homeCursor, m.deps.Watchlist)
	case key.Matches(msg, m.keys.enter):
		return m.openDetail(m.popular, m.homeCursor)
	case key.Matches(msg, m.keys.retry):
		if m.popularErr != nil || m.bannerErr != nil || m.popularStale {
			m.popularLoading = true
			m.popularErr = nil
			m.bannerErr = nil
			return m, tea.Batch(m.fetchPopularCmd(), m.fetchBannerCmd())
		}
	}
	return m, nil
}

func (m *Model) handleTrendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.trendCursor = dec(m.trendCursor)
	case key.Matches(msg, m.keys.down):
		m.trendCursor = inc(m.trendCursor, m.trendGrid.Len())
	case key.Matches(msg, m.keys.toggle):
		m.trendGrid.Toggle(m.trendCursor, m.deps.Watchlist)
	case key.Matches(msg, m.keys.enter):
		return m.openDetail(m.trendGrid, m.trendCursor)
	case key.Matches(msg, m.keys.window):
		if m.trendWindow == string(catalog.TrendingDay) {
			m.trendWindow = string(catalog.TrendingWeek)
		} else {
			m.trendWindow = string(catalog.TrendingDay)
		}
		return m.openTrending(true)
	case key.Matches(msg, m.keys.more):
		if !m.trendLoading && m.trendErr == nil {
			m.trendLoading = true
			return m, m.fetchTrendingCmd(m.trendWindow, m.trendPage+1)
		}
	case key.Matches(msg, m.keys.retry):
		if m.trendErr != nil || m.trendStale {
			return m.openTrending(true)
		}
	}
	return m, nil
}

func (m *Model) handleSearchTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.typing = false
		m.input.Blur()
		m.suggestions = nil
		return m, nil

	case key.Matches(msg, m.keys.enter):
		// A highlighted suggestion wins over the raw query.
		if len(m.suggestions) > 0 && m.sugCursor < len(m.suggestions) {
			picked := m.suggestions[m.sugCursor]
			m.typing = false
			m.input.Blur()
			m.suggestions = nil
			return m.openDetailByID(picked.ID)
		}
		if _, ok := m.ctrl.Navigate("/search", m.deps.Filters.Selection()); !ok {
			return m, nil
		}
		m.typing = false
		m.input.Blur()
		m.suggestions = nil
		m.resultsRevision++
		m.resultsLoading = true
		return m, m.resultsCmd(m.resultsRevision, m.ctrl.Query())

	case key.Matches(msg, m.keys.up):
		if len(m.suggestions) > 0 {
			m.sugCursor = dec(m.sugCursor)
			return m, nil
		}

	case key.Matches(msg, m.keys.down):
		if len(m.suggestions) > 0 {
			m.sugCursor = inc(m.sugCursor, len(m.suggestions))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	token, ok := m.ctrl.Input(m.input.Value())
	if !ok {
		m.suggestions = nil
		m.sugCursor = 0
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounceCmd(token))
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.resultCursor = dec(m.resultCursor)
	case key.Matches(msg, m.keys.down):
		m.resultCursor = inc(m.resultCursor, m.results.Len())
	case key.Matches(msg, m.keys.toggle):
		m.results.Toggle(m.resultCursor, m.deps.Watchlist)
	case key.Matches(msg, m.keys.enter):
		return m.openDetail(m.results, m.resultCursor)
	case key.Matches(msg, m.keys.retry):
		if m.resultsErr != nil {
			m.resultsRevision++
			m.resultsLoading = true
			m.resultsErr = nil
			return m, m.resultsCmd(m.resultsRevision, m.ctrl.Query())
		}
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.similarCursor = dec(m.similarCursor)
	case key.Matches(msg, m.keys.down):
		m.similarCursor = inc(m.similarCursor, m.similarGrid.Len())
	case key.Matches(msg, m.keys.toggle):
		if m.detail != nil {
			if m.deps.Watchlist.Contains(m.detail.Movie.ID) {
				m.deps.Watchlist.Remove(m.detail.Movie.ID)
			} else {
				m.deps.Watchlist.Add(m.detail.Movie)
			}
		}
	case key.Matches(msg, m.keys.enter):
		return m.openDetail(m.similarGrid, m.similarCursor)
	case key.Matches(msg, m.keys.retry):
		if m.detailErr != nil {
			m.detailErr = nil
			m.detailLoading = true
			return m, m.detailCmd(m.detailID)
		}
	}
	return m, nil
}

func (m *Model) handleWatchlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.watchCursor = dec(m.watchCursor)
	case key.Matches(msg, m.keys.down):
		m.watchCursor = inc(m.watchCursor, m.watchGrid.Len())
	case key.Matches(msg, m.keys.toggle):
		m.watchGrid.Toggle(m.watchCursor, m.deps.Watchlist)
	case key.Matches(msg, m.keys.enter):
		return m.openDetail(m.watchGrid, m.watchCursor)
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	genres := m.deps.Filters.Genres()

	switch {
	case key.Matches(msg, m.keys.back):
		// Discard the staged edit.
		m.form = nil
		m.view = m.prevView
		return m, nil

	case key.Matches(msg, m.keys.enter):
		m.form.SetYear(m.yearInput.Value())
		m.form.SetRating(m.rateInput.Value())
		m.form.Commit()
		m.form = nil
		m.view = m.prevView
		return m, nil

	case key.Matches(msg, m.keys.left), key.Matches(msg, m.keys.right):
		m.formField = (m.formField + 1) % 3
		m.yearInput.Blur()
		m.rateInput.Blur()
		switch m.formField {
		case 1:
			m.yearInput.Focus()
		case 2:
			m.rateInput.Focus()
		}
		return m, nil
	}

	switch m.formField {
	case 0:
		switch {
		case key.Matches(msg, m.keys.up):
			m.formCursor = dec(m.formCursor)
		case key.Matches(msg, m.keys.down):
			m.formCursor = inc(m.formCursor, len(genres))
		case key.Matches(msg, m.keys.toggle):
			if m.formCursor < len(genres) {
				m.form.ToggleGenre(genres[m.formCursor].ID)
			}
		}
		return m, nil
	case 1:
		var cmd tea.Cmd
		m.yearInput, cmd = m.yearInput.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.rateInput, cmd = m.rateInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) openSearch() (tea.Model, tea.Cmd) {
	m.switchView(SearchView)
	m.typing = true
	m.suggestions = nil
	m.sugCursor = 0
	return m, m.input.Focus()
}

func (m *Model) openTrending(refetch bool) (tea.Model, tea.Cmd) {
	first := m.view != TrendingView && m.trendGrid.Len() == 0
	m.switchView(TrendingView)
	if !refetch && !first {
		return m, nil
	}
	m.trendLoading = true
	m.trendErr = nil
	return m, m.fetchTrendingCmd(m.trendWindow, 1)
}

func (m *Model) openHome() (tea.Model, tea.Cmd) {
	if m.view == HomeView {
		return m, nil
	}
	m.switchView(HomeView)
	return m, m.restartBanner()
}

func (m *Model) openFilters() {
	if m.view == FilterView {
		return
	}
	m.prevView = m.view
	m.view = FilterView
	m.form = m.deps.Filters.Begin()
	m.formCursor = 0
	m.formField = 0
	sel := m.form.Selection()
	m.yearInput.SetValue(sel.Year)
	m.rateInput.SetValue(sel.Rating)
	m.yearInput.Blur()
	m.rateInput.Blur()
}

func (m *Model) openDetail(grid *render.Grid, cursor int) (tea.Model, tea.Cmd) {
	card := grid.Card(cursor)
	if card == nil {
		return m, nil
	}
	return m.openDetailByID(card.Movie().ID)
}

func (m *Model) openDetailByID(id int) (tea.Model, tea.Cmd) {
	m.switchView(DetailView)
	m.detailID = id
	m.detail = nil
	m.detailErr = nil
	m.detailLoading = true
	m.similarGrid.SetMovies(nil)
	return m, m.detailCmd(id)
}

func (m *Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := "dark"
	if m.theme == "dark" {
		next = "light"
	}
	if err := m.deps.Files.SetTheme(next); err != nil {
		m.deps.Logger.Warn("failed to persist theme", "err", err)
		return m, nil
	}
	m.theme = next
	return m, nil
}

func (m *Model) goBack() (tea.Model, tea.Cmd) {
	switch m.view {
	case DetailView:
		m.switchView(m.prevView)
	case HomeView:
	default:
		return m.openHome()
	}
	return m, nil
}

// switchView moves between pages, tearing down the home carousel when
// leaving it so stale ticks become no-ops.
func (m *Model) switchView(next ViewState) {
	if m.view == next {
		return
	}
	if m.view == HomeView && m.banner != nil {
		m.banner.Stop()
	}
	m.prevView = m.view
	m.view = next
}

func resultsInfo(r *search.Results) string {
	label := "results"
	if r.TotalResults == 1 {
		label = "result"
	}
	info := fmt.Sprintf("%d %s for %q", r.TotalResults, label, r.Query)
	if r.Filtered {
		info += fmt.Sprintf(" (%d shown after filters)", len(r.Movies))
	}
	return info
}

func clamp(cursor, size int) int {
	if size == 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	return cursor
}

func dec(cursor int) int {
	if cursor > 0 {
		return cursor - 1
	}
	return cursor
}

func inc(cursor, size int) int {
	if cursor < size-1 {
		return cursor + 1
	}
	return cursor
}
