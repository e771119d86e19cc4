package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nabende1/CineMate/internal/cache"
	"github.com/nabende1/CineMate/internal/catalog"
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/search"
)

// fetchSection runs a live listing fetch, falling back to the cache on
// failure and refreshing the cache on success.
func (m *Model) fetchSection(section string, page int, live func() ([]models.Movie, error)) sectionData {
	movies, err := live()
	if err == nil {
		if m.deps.Cache != nil {
			if cacheErr := m.deps.Cache.Put(section, page, movies); cacheErr != nil {
				m.deps.Logger.Warn("failed to refresh listing cache", "section", section, "err", cacheErr)
			}
		}
		return sectionData{movies: movies}
	}

	m.deps.Logger.Warn("live fetch failed", "section", section, "err", err)

	if m.deps.Cache != nil {
		if cached, _, cacheErr := m.deps.Cache.Get(section, page); cacheErr == nil {
			return sectionData{movies: cached, stale: true}
		}
	}
	return sectionData{err: err}
}

func (m *Model) fetchPopularCmd() tea.Cmd {
	return func() tea.Msg {
		return popularFetchedMsg{m.fetchSection(cache.SectionPopular, 1, func() ([]models.Movie, error) {
			return m.deps.Catalog.Popular(m.ctx, 1)
		})}
	}
}

func (m *Model) fetchBannerCmd() tea.Cmd {
	return func() tea.Msg {
		return bannerFetchedMsg{m.fetchSection(cache.SectionTrendingDay, 1, func() ([]models.Movie, error) {
			return m.deps.Catalog.Trending(m.ctx, catalog.TrendingDay, 1)
		})}
	}
}

func (m *Model) fetchTrendingCmd(window string, page int) tea.Cmd {
	return func() tea.Msg {
		data := m.fetchSection(cache.TrendingSection(window), page, func() ([]models.Movie, error) {
			return m.deps.Catalog.Trending(m.ctx, catalog.TrendingWindow(window), page)
		})
		return trendingFetchedMsg{sectionData: data, window: window, page: page}
	}
}

func (m *Model) loadGenresCmd() tea.Cmd {
	return func() tea.Msg {
		m.deps.Filters.LoadGenres(m.ctx, m.deps.Catalog)
		return genresLoadedMsg{}
	}
}

func (m *Model) bannerTickCmd(generation int) tea.Cmd {
	return tea.Tick(m.bannerInterval, func(time.Time) tea.Msg {
		return bannerTickMsg{generation: generation}
	})
}

func (m *Model) debounceCmd(token search.Token) tea.Cmd {
	return tea.Tick(m.ctrl.Debounce(), func(time.Time) tea.Msg {
		return debounceFiredMsg{token: token}
	})
}

func (m *Model) suggestCmd(token search.Token, query string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.deps.Catalog.Search(m.ctx, query, 1)
		if err != nil {
			return suggestionsMsg{token: token, err: err}
		}
		movies := result.Movies
		if len(movies) > search.SuggestionLimit {
			movies = movies[:search.SuggestionLimit]
		}
		return suggestionsMsg{token: token, movies: movies}
	}
}

func (m *Model) resultsCmd(revision int, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := search.Execute(m.ctx, m.deps.Catalog, m.deps.Filters, query, 1)
		return resultsMsg{revision: revision, results: results, err: err}
	}
}

func (m *Model) detailCmd(id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.deps.Catalog.FullDetail(m.ctx, id)
		return detailFetchedMsg{detail: detail, err: err}
	}
}

// waitForChangeCmd blocks on the coalescing watchlist change channel.
func (m *Model) waitForChangeCmd() tea.Cmd {
	return func() tea.Msg {
		<-m.watchChanges
		return watchlistChangedMsg{}
	}
}

// waitForFilterCmd blocks on the filter change channel; one message per
// committed edit.
func (m *Model) waitForFilterCmd() tea.Cmd {
	return func() tea.Msg {
		<-m.filterChanges
		return filtersChangedMsg{}
	}
}
