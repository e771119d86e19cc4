package render

import (
	"strings"
	"testing"

	"github.com/nabende1/CineMate/internal/models"
)

// memberSet is a WatchlistToggler over a plain set.
type memberSet map[int]bool

func (s memberSet) Contains(id int) bool { return s[id] }
func (s memberSet) Add(m models.Movie) bool {
	if s[m.ID] {
		return false
	}
	s[m.ID] = true
	return true
}
func (s memberSet) Remove(id int) bool {
	if !s[id] {
		return false
	}
	delete(s, id)
	return true
}

func movie(id int, title string) models.Movie {
	return models.Movie{ID: id, Title: title, Year: "2020"}
}

func TestGrid(t *testing.T) {
	palette := NewPalette()

	t.Run("Empty Renders Exactly One Placeholder", func(t *testing.T) {
		grid := NewGrid(memberSet{})
		grid.SetMovies(nil)

		out := grid.Render(palette, -1)
		if grid.Len() != 0 {
			t.Errorf("expected zero cards, got %d", grid.Len())
		}
		if count := strings.Count(out, EmptyPlaceholder); count != 1 {
			t.Errorf("expected exactly one placeholder, got %d", count)
		}
	})

	t.Run("SetMovies Is Idempotent", func(t *testing.T) {
		grid := NewGrid(memberSet{})
		movies := []models.Movie{movie(1, "Dune"), movie(2, "Heat")}

		grid.SetMovies(movies)
		first := grid.Render(palette, -1)

		grid.SetMovies(movies)
		second := grid.Render(palette, -1)

		if first != second {
			t.Error("re-rendering the same input must produce identical output")
		}
		if grid.Len() != 2 {
			t.Errorf("expected 2 cards, got %d", grid.Len())
		}
	})

	t.Run("SetMovies Replaces Wholesale", func(t *testing.T) {
		grid := NewGrid(memberSet{})
		grid.SetMovies([]models.Movie{movie(1, "Dune"), movie(2, "Heat")})
		grid.SetMovies([]models.Movie{movie(3, "Alien")})

		if grid.Len() != 1 {
			t.Errorf("expected 1 card after replacement, got %d", grid.Len())
		}
		if grid.CardFor(1) != nil {
			t.Error("replaced cards must leave the registry")
		}
		if grid.CardFor(3) == nil {
			t.Error("new card missing from registry")
		}
	})

	t.Run("Append Dedupes By ID Across Pages", func(t *testing.T) {
		grid := NewGrid(memberSet{})
		grid.SetMovies([]models.Movie{movie(1, "Dune"), movie(2, "Heat")})

		// Overlapping next page, as fast successive requests can return.
		grid.Append([]models.Movie{movie(2, "Heat"), movie(3, "Alien")})

		if grid.Len() != 3 {
			t.Fatalf("expected 3 cards, got %d", grid.Len())
		}

		order := grid.Movies()
		if order[0].ID != 1 || order[1].ID != 2 || order[2].ID != 3 {
			t.Errorf("expected input order preserved, got %+v", order)
		}
	})

	t.Run("Preserves Input Order", func(t *testing.T) {
		grid := NewGrid(memberSet{})
		grid.SetMovies([]models.Movie{movie(5, "E"), movie(1, "A"), movie(3, "C")})

		order := grid.Movies()
		if order[0].ID != 5 || order[1].ID != 1 || order[2].ID != 3 {
			t.Errorf("order not preserved: %+v", order)
		}
	})
}

func TestCard(t *testing.T) {
	palette := NewPalette()

	t.Run("Label Reflects Membership At Render Time", func(t *testing.T) {
		members := memberSet{7: true}

		saved := NewCard(movie(7, "Dune"), members)
		if !saved.Saved() || saved.ToggleLabel() != "✓ In Watchlist" {
			t.Error("card for saved movie should render the saved control")
		}

		unsaved := NewCard(movie(8, "Heat"), members)
		if unsaved.Saved() || unsaved.ToggleLabel() != "+ Add to Watchlist" {
			t.Error("card for unsaved movie should render the add control")
		}
	})

	t.Run("Toggle Updates Only That Card", func(t *testing.T) {
		members := memberSet{}
		grid := NewGrid(members)
		grid.SetMovies([]models.Movie{movie(1, "Dune"), movie(2, "Heat")})

		before := grid.Card(1).Render(palette, false)

		grid.Toggle(0, members)

		if !grid.Card(0).Saved() {
			t.Error("toggled card should be saved")
		}
		if !members.Contains(1) {
			t.Error("store should hold the toggled movie")
		}
		if grid.Card(1).Render(palette, false) != before {
			t.Error("untouched card must be unaffected")
		}

		grid.Toggle(0, members)
		if grid.Card(0).Saved() || members.Contains(1) {
			t.Error("second toggle should remove")
		}
	})

	t.Run("Missing Rating Renders NA", func(t *testing.T) {
		card := NewCard(movie(1, "Dune"), memberSet{})
		if !strings.Contains(card.Render(palette, false), "N/A") {
			t.Error("missing rating should render as N/A")
		}
	})

	t.Run("Refresh Syncs External Change", func(t *testing.T) {
		members := memberSet{}
		grid := NewGrid(members)
		grid.SetMovies([]models.Movie{movie(1, "Dune")})

		members[1] = true // external writer
		grid.Refresh()

		if !grid.Card(0).Saved() {
			t.Error("refresh should pick up external membership")
		}
	})
}

func TestCarousel(t *testing.T) {
	palette := NewPalette()

	movies := []models.Movie{
		movie(1, "A"), movie(2, "B"), movie(3, "C"),
		movie(4, "D"), movie(5, "E"), movie(6, "F"), movie(7, "G"),
	}

	t.Run("Window Is Bounded", func(t *testing.T) {
		c := NewCarousel(movies, 5)
		if c.Len() != 5 {
			t.Errorf("expected window of 5, got %d", c.Len())
		}
	})

	t.Run("Advance Wraps", func(t *testing.T) {
		c := NewCarousel(movies[:3], 5)

		for i := 0; i < 3; i++ {
			if !c.Advance(c.Generation()) {
				t.Fatal("live advance should succeed")
			}
		}

		current, ok := c.Current()
		if !ok || current.ID != 1 {
			t.Errorf("expected wrap back to first item, got %+v", current)
		}
	})

	t.Run("Stop Invalidates Outstanding Ticks", func(t *testing.T) {
		c := NewCarousel(movies[:3], 5)

		generation := c.Generation() // tick scheduled...
		c.Stop()                     // ...page torn down before it fires

		if c.Advance(generation) {
			t.Error("tick from before teardown must not advance")
		}
		if c.Rotating() {
			t.Error("stopped carousel must not schedule new ticks")
		}
	})

	t.Run("Single Item Does Not Rotate", func(t *testing.T) {
		c := NewCarousel(movies[:1], 5)
		if c.Rotating() {
			t.Error("one banner needs no rotation")
		}
		if c.Advance(c.Generation()) {
			t.Error("nothing to advance to")
		}
	})

	t.Run("Empty Renders Placeholder", func(t *testing.T) {
		c := NewCarousel(nil, 5)
		if out := c.Render(palette); !strings.Contains(out, "No trending movies") {
			t.Errorf("expected placeholder, got %q", out)
		}
	})

	t.Run("Long Overview Truncated", func(t *testing.T) {
		long := movie(1, "A")
		long.Overview = strings.Repeat("x", 400)
		c := NewCarousel([]models.Movie{long}, 5)

		if strings.Contains(c.Render(palette), strings.Repeat("x", 200)) {
			t.Error("overview should be truncated")
		}
	})
}
