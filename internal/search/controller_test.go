package search

import (
	"context"
	"net/url"
	"testing"

	"github.com/nabende1/CineMate/internal/catalog"
	"github.com/nabende1/CineMate/internal/filters"
	"github.com/nabende1/CineMate/internal/models"
)

func TestController(t *testing.T) {
	t.Run("Short Input Clears Without Fetch", func(t *testing.T) {
		c := NewController(2, 0)

		if _, fire := c.Input("a"); fire {
			t.Error("one character must not fire a fetch")
		}
		if c.Phase() != Idle {
			t.Error("short input returns the session to idle")
		}

		if _, fire := c.Input("ab"); !fire {
			t.Error("two characters should fire")
		}
		if c.Phase() != Suggesting {
			t.Error("expected suggesting phase")
		}
	})

	t.Run("Debounce Supersession", func(t *testing.T) {
		c := NewController(2, 0)

		first, _ := c.Input("du")
		second, _ := c.Input("dun")

		if c.Ready(first) {
			t.Error("superseded timer must not fire its fetch")
		}
		if !c.Ready(second) {
			t.Error("latest timer should fire")
		}
	})

	t.Run("Stale Response Discarded By Issuance Order", func(t *testing.T) {
		c := NewController(2, 0)

		tokenA, _ := c.Input("a1")
		tokenAB, _ := c.Input("ab")

		// The "ab" fetch resolves first and renders.
		if !c.Accept(tokenAB) {
			t.Error("latest issued token must render")
		}
		// The older "a1" fetch resolves afterwards; it must be discarded even
		// though it arrived last.
		if c.Accept(tokenA) {
			t.Error("stale token must be discarded")
		}
	})

	t.Run("Navigate Requires Query Or Filters", func(t *testing.T) {
		c := NewController(2, 0)

		if _, ok := c.Navigate("/search", filters.Selection{}); ok {
			t.Error("empty query with no filters is a no-op")
		}

		c.Input("dune")
		target, ok := c.Navigate("/search", filters.Selection{})
		if !ok || target != "/search?q=dune" {
			t.Errorf("expected /search?q=dune, got %q ok=%v", target, ok)
		}
		if c.Phase() != Navigating {
			t.Error("expected navigating phase")
		}
	})

	t.Run("Navigate With Filters Only", func(t *testing.T) {
		c := NewController(2, 0)
		sel := filters.Selection{Genres: []int{28}}

		target, ok := c.Navigate("/search", sel)
		if !ok || target != "/search?genres=28" {
			t.Errorf("expected /search?genres=28, got %q ok=%v", target, ok)
		}
	})

	t.Run("Reset Invalidates Pending Tokens", func(t *testing.T) {
		c := NewController(2, 0)

		token, _ := c.Input("dune")
		c.Reset()

		if c.Accept(token) {
			t.Error("reset must discard in-flight results")
		}
		if c.Query() != "" {
			t.Error("reset clears the query")
		}
	})
}

func TestURLs(t *testing.T) {
	t.Run("Build Omits Empty Parts", func(t *testing.T) {
		sel := filters.Selection{Genres: []int{28, 12}, Year: "2020"}
		got := BuildURL("/search", "dune part", sel)

		want := "/search?q=dune+part&genres=28%2C12&year=2020"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("Deep Link Round Trip", func(t *testing.T) {
		sel := filters.Selection{Genres: []int{28, 12}, Year: "2020", Rating: "7"}
		built := BuildURL("/search", "dune", sel)

		u, err := url.Parse(built)
		if err != nil {
			t.Fatalf("built URL does not parse: %v", err)
		}

		query, parsed := ParseURL(u.Query())
		if query != "dune" {
			t.Errorf("query lost: %q", query)
		}
		if len(parsed.Genres) != 2 || parsed.Genres[0] != 28 || parsed.Genres[1] != 12 {
			t.Errorf("genres lost: %v", parsed.Genres)
		}
		if parsed.Year != "2020" || parsed.Rating != "7" {
			t.Errorf("year/rating lost: %+v", parsed)
		}
	})
}

type stubSearcher struct {
	result *catalog.SearchResult
	err    error
	gotQ   string
}

func (s *stubSearcher) Search(ctx context.Context, query string, page int) (*catalog.SearchResult, error) {
	s.gotQ = query
	return s.result, s.err
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies Filters Locally", func(t *testing.T) {
		src := &stubSearcher{result: &catalog.SearchResult{
			Movies: []models.Movie{
				{ID: 1, GenreIDs: []int{28}},
				{ID: 2, GenreIDs: []int{12}},
			},
			TotalResults: 2,
		}}

		state := filters.NewState(nil)
		state.SetSelection(filters.Selection{Genres: []int{28}})

		results, err := Execute(ctx, src, state, "dune", 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(results.Movies) != 1 || results.Movies[0].ID != 1 {
			t.Errorf("expected only record 1, got %+v", results.Movies)
		}
		if results.TotalResults != 2 {
			t.Error("catalog totals must be preserved for the info line")
		}
		if !results.Filtered {
			t.Error("expected filtered flag")
		}
	})

	t.Run("Empty Query Searches Broad Seed", func(t *testing.T) {
		src := &stubSearcher{result: &catalog.SearchResult{}}
		state := filters.NewState(nil)
		state.SetSelection(filters.Selection{Year: "2020"})

		if _, err := Execute(ctx, src, state, "", 1); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if src.gotQ != "a" {
			t.Errorf("expected broad seed query, got %q", src.gotQ)
		}
	})
}
