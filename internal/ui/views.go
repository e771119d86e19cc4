package ui

import (
	"fmt"
	"strings"

	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/search"
)

const castLimit = 12

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.view {
	case HomeView:
		b.WriteString(m.homeView())
	case TrendingView:
		b.WriteString(m.trendingView())
	case SearchView:
		b.WriteString(m.searchView())
	case DetailView:
		b.WriteString(m.detailView())
	case WatchlistView:
		b.WriteString(m.watchlistView())
	case FilterView:
		b.WriteString(m.filterView())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) headerView() string {
	title := m.palette.Title.Render("CineMate")
	parts := []string{title, m.viewLabel()}
	if m.theme != "" {
		parts = append(parts, "theme: "+m.theme)
	}
	if m.deps.Filters.HasActiveFilters() {
		parts = append(parts, m.palette.Saved.Render(m.filterSummary()))
	}
	return strings.Join(parts, m.palette.Meta.Render("  ·  "))
}

func (m *Model) viewLabel() string {
	switch m.view {
	case HomeView:
		return m.palette.Meta.Render("home")
	case TrendingView:
		return m.palette.Meta.Render("trending · " + m.trendWindow)
	case SearchView:
		return m.palette.Meta.Render("search")
	case DetailView:
		return m.palette.Meta.Render("detail")
	case WatchlistView:
		return m.palette.Meta.Render("watchlist")
	case FilterView:
		return m.palette.Meta.Render("filters")
	}
	return ""
}

// filterSummary renders the active selection with genre names resolved.
func (m *Model) filterSummary() string {
	sel := m.deps.Filters.Selection()
	var parts []string
	for _, id := range sel.Genres {
		parts = append(parts, m.deps.Filters.GenreName(id))
	}
	if sel.Year != "" {
		parts = append(parts, "year "+sel.Year)
	}
	if sel.Rating != "" {
		parts = append(parts, "★ ≥ "+sel.Rating)
	}
	return "filters: " + strings.Join(parts, ", ")
}

func (m *Model) homeView() string {
	var b strings.Builder

	if m.bannerErr != nil {
		b.WriteString(m.palette.ErrorBox("Could not load the trending banner."))
	} else if m.banner != nil {
		b.WriteString(m.banner.Render(m.palette))
	}
	b.WriteString("\n\n")
	b.WriteString(m.palette.Title.Render("Popular Now"))
	if m.popularStale {
		b.WriteString("  " + m.palette.StaleTag.Render("(offline copy)"))
	}
	b.WriteString("\n")

	switch {
	case m.popularLoading:
		b.WriteString(m.palette.NoticeBox("Loading popular movies..."))
	case m.popularErr != nil:
		b.WriteString(m.palette.ErrorBox("Could not load popular movies."))
	default:
		b.WriteString(m.popular.Render(m.palette, m.homeCursor))
	}
	return b.String()
}

func (m *Model) trendingView() string {
	var b strings.Builder
	b.WriteString(m.palette.Title.Render("Trending"))
	if m.trendStale {
		b.WriteString("  " + m.palette.StaleTag.Render("(offline copy)"))
	}
	b.WriteString("\n")

	switch {
	case m.trendLoading && m.trendGrid.Len() == 0:
		b.WriteString(m.palette.NoticeBox("Loading trending movies..."))
	case m.trendErr != nil:
		b.WriteString(m.palette.ErrorBox("Could not load trending movies."))
	default:
		b.WriteString(m.trendGrid.Render(m.palette, m.trendCursor))
		if m.trendLoading {
			b.WriteString("\n" + m.palette.NoticeBox("Loading more..."))
		}
	}
	return b.String()
}

func (m *Model) searchView() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.typing {
		b.WriteString(m.suggestionsView())
		return b.String()
	}

	switch {
	case m.resultsLoading:
		b.WriteString("\n" + m.palette.NoticeBox("Searching..."))
	case m.resultsErr != nil:
		b.WriteString("\n" + m.palette.ErrorBox("Search failed."))
	case !m.searched:
		b.WriteString("\n" + m.palette.NoticeBox("Press / and type to search."))
	case m.results.Len() == 0:
		b.WriteString("\n" + m.palette.Meta.Render(m.resultsInfo))
		b.WriteString("\n" + m.palette.NoticeBox("No movies matched."))
	default:
		b.WriteString("\n" + m.palette.Meta.Render(m.resultsInfo))
		b.WriteString("\n" + m.results.Render(m.palette, m.resultCursor))
	}
	return b.String()
}

func (m *Model) suggestionsView() string {
	if m.ctrl.Phase() == search.Idle {
		return m.palette.NoticeBox("Keep typing for suggestions.")
	}
	if m.suggestionErr != nil {
		return m.palette.NoticeBox("Suggestions unavailable.")
	}
	if len(m.suggestions) == 0 {
		return m.palette.NoticeBox("No suggestions.")
	}

	var b strings.Builder
	for i, movie := range m.suggestions {
		marker := "  "
		if i == m.sugCursor {
			marker = m.palette.Cursor.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, movie.Title, m.palette.Meta.Render(movie.Year)))
	}
	b.WriteString(m.palette.Help.Render("enter opens · esc closes"))
	return b.String()
}

func (m *Model) detailView() string {
	switch {
	case m.detailLoading:
		return m.palette.NoticeBox("Loading movie details...")
	case m.detailErr != nil:
		return m.palette.ErrorBox("Could not load movie details.")
	case m.detail == nil:
		return m.palette.NoticeBox("No movie selected.")
	}

	d := m.detail
	var b strings.Builder
	b.WriteString(m.palette.Title.Render(d.Movie.Title))
	b.WriteString("\n")

	meta := []string{d.Movie.Year, "★ " + d.Movie.RatingLabel()}
	if d.Runtime > 0 {
		meta = append(meta, fmt.Sprintf("%dm", d.Runtime))
	}
	if names := genreNames(d.Genres); names != "" {
		meta = append(meta, names)
	}
	b.WriteString(m.palette.Meta.Render(strings.Join(meta, "  ·  ")))
	b.WriteString("\n\n")

	overview := d.Movie.Overview
	if overview == "" {
		overview = "No description available."
	}
	b.WriteString(overview)
	b.WriteString("\n\n")

	saved := m.deps.Watchlist.Contains(d.Movie.ID)
	if saved {
		b.WriteString(m.palette.Saved.Render("✓ In Watchlist"))
	} else {
		b.WriteString("+ Add to Watchlist (space)")
	}
	b.WriteString("\n")

	if trailer, ok := d.Trailer(); ok {
		b.WriteString(m.palette.Meta.Render("Trailer: https://www.youtube.com/watch?v=" + trailer.Key))
		b.WriteString("\n")
	}

	if len(d.Cast) > 0 {
		b.WriteString("\n" + m.palette.Title.Render("Cast") + "\n")
		b.WriteString(m.palette.Meta.Render(castLine(d.Cast)))
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.palette.Title.Render("More Like This") + "\n")
	b.WriteString(m.similarGrid.Render(m.palette, m.similarCursor))
	return b.String()
}

func genreNames(genres []models.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func castLine(cast []models.Credit) string {
	if len(cast) > castLimit {
		cast = cast[:castLimit]
	}
	parts := make([]string, 0, len(cast))
	for _, c := range cast {
		if c.Character != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, c.Character))
		} else {
			parts = append(parts, c.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func (m *Model) watchlistView() string {
	var b strings.Builder
	b.WriteString(m.palette.Title.Render("My Watchlist"))
	b.WriteString("\n")
	if m.watchGrid.Len() == 0 {
		b.WriteString(m.palette.NoticeBox("Your watchlist is empty. Press space on any movie to save it."))
		return b.String()
	}
	b.WriteString(m.watchGrid.Render(m.palette, m.watchCursor))
	return b.String()
}

func (m *Model) filterView() string {
	var b strings.Builder
	b.WriteString(m.palette.Title.Render("Filters"))
	b.WriteString("\n")
	b.WriteString(m.palette.Help.Render("h/l switches field · space toggles genre · enter applies · esc cancels"))
	b.WriteString("\n\n")

	sel := m.form.Selection()
	genres := m.deps.Filters.Genres()

	label := func(field int, name string) string {
		if m.formField == field {
			return m.palette.Cursor.Render("▸ " + name)
		}
		return m.palette.Meta.Render("  " + name)
	}

	b.WriteString(label(0, "Genres") + "\n")
	for i, g := range genres {
		marker := "  "
		if m.formField == 0 && i == m.formCursor {
			marker = m.palette.Cursor.Render("> ")
		}
		box := "[ ]"
		if hasGenre(sel.Genres, g.ID) {
			box = m.palette.Saved.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", marker, box, g.Name))
	}

	b.WriteString("\n" + label(1, "Year") + "  " + m.yearInput.View())
	b.WriteString("\n" + label(2, "Min rating") + "  " + m.rateInput.View())
	return b.String()
}

func hasGenre(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
