package ui

import (
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/search"
)

// sectionData is a fetched listing plus whether it came from the stale cache
// fallback rather than the live catalog.
type sectionData struct {
	movies []models.Movie
	stale  bool
	err    error
}

type popularFetchedMsg struct {
	sectionData
}

type bannerFetchedMsg struct {
	sectionData
}

type trendingFetchedMsg struct {
	sectionData
	window string
	page   int
}

// bannerTickMsg carries the carousel generation it was scheduled under; a
// tick from before a teardown no longer matches and is dropped.
type bannerTickMsg struct {
	generation int
}

// debounceFiredMsg fires after the quiet interval for one keystroke token.
type debounceFiredMsg struct {
	token search.Token
}

type suggestionsMsg struct {
	token  search.Token
	movies []models.Movie
	err    error
}

// resultsMsg carries the revision of the query+filter state it was issued
// under. A result for an older revision must not render over a newer state.
type resultsMsg struct {
	revision int
	results  *search.Results
	err      error
}

type detailFetchedMsg struct {
	detail *models.MovieDetail
	err    error
}

type genresLoadedMsg struct{}

// filtersChangedMsg signals a committed filter edit; active result views
// re-issue their query against the new selection.
type filtersChangedMsg struct{}

// watchlistChangedMsg signals that the saved list changed, locally or in
// another process. Deliveries coalesce: one message refreshes every view.
type watchlistChangedMsg struct{}
