package filters

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/nabende1/CineMate/internal/models"
)

func ratingOf(v float64) *float64 { return &v }

func TestSelection(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		params := url.Values{}
		params.Set("genres", "28,12")
		params.Set("year", "2020")
		params.Set("rating", "7")

		sel := ParseSelection(params)
		encoded := sel.QueryParams()

		if encoded.Get("genres") != "28,12" {
			t.Errorf("genres lost: %q", encoded.Get("genres"))
		}
		if encoded.Get("year") != "2020" || encoded.Get("rating") != "7" {
			t.Errorf("year/rating lost: %v", encoded)
		}

		// Second round trip is stable.
		again := ParseSelection(encoded).QueryParams()
		if again.Encode() != encoded.Encode() {
			t.Errorf("round trip not stable: %q vs %q", again.Encode(), encoded.Encode())
		}
	})

	t.Run("Empty Selection Encodes To Nothing", func(t *testing.T) {
		if encoded := (Selection{}).QueryParams(); len(encoded) != 0 {
			t.Errorf("expected no parameters, got %v", encoded)
		}
	})

	t.Run("Drops Non Numeric Genres", func(t *testing.T) {
		params := url.Values{}
		params.Set("genres", "28,abc,12,,28")

		sel := ParseSelection(params)
		if len(sel.Genres) != 2 || sel.Genres[0] != 28 || sel.Genres[1] != 12 {
			t.Errorf("expected [28 12], got %v", sel.Genres)
		}
	})

	t.Run("Genre Filter", func(t *testing.T) {
		records := []models.Movie{
			{ID: 1, GenreIDs: []int{28}},
			{ID: 2, GenreIDs: []int{12}},
			{ID: 3, GenreIDs: []int{}},
		}

		state := NewState(nil)
		state.SetSelection(Selection{Genres: []int{28}})

		passed := state.Apply(records)
		if len(passed) != 1 || passed[0].ID != 1 {
			t.Errorf("expected exactly record 1, got %+v", passed)
		}
	})

	t.Run("Genre OR Within Set", func(t *testing.T) {
		sel := Selection{Genres: []int{28, 12}}

		if !sel.Matches(models.Movie{ID: 2, GenreIDs: []int{12}}) {
			t.Error("record with any selected genre should pass")
		}
		if sel.Matches(models.Movie{ID: 3, GenreIDs: []int{99}}) {
			t.Error("record with no selected genre should fail")
		}
	})

	t.Run("AND Across Fields", func(t *testing.T) {
		sel := Selection{Genres: []int{28}, Year: "2020", Rating: "7"}

		pass := models.Movie{ID: 1, GenreIDs: []int{28}, Year: "2020", Rating: ratingOf(7.5)}
		if !sel.Matches(pass) {
			t.Error("record passing all fields should pass")
		}

		wrongYear := pass
		wrongYear.Year = "2019"
		if sel.Matches(wrongYear) {
			t.Error("wrong year should fail")
		}

		lowRating := pass
		lowRating.Rating = ratingOf(6.0)
		if sel.Matches(lowRating) {
			t.Error("rating below threshold should fail")
		}
	})

	t.Run("Missing Year And Rating Pass", func(t *testing.T) {
		sel := Selection{Year: "2020", Rating: "7"}
		m := models.Movie{ID: 1}

		if !sel.Matches(m) {
			t.Error("records without year/rating data are not excluded by those filters")
		}
	})

	t.Run("Inactive Selection Passes Everything", func(t *testing.T) {
		state := NewState(nil)
		records := []models.Movie{{ID: 1}, {ID: 2}}

		if len(state.Apply(records)) != 2 {
			t.Error("empty selection must not filter")
		}
		if state.HasActiveFilters() {
			t.Error("empty selection is not active")
		}
	})
}

type stubGenreSource struct {
	mu     sync.Mutex
	calls  int
	genres []models.Genre
	err    error
}

func (s *stubGenreSource) Genres(ctx context.Context) ([]models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.genres, s.err
}

func TestLoadGenres(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads Once Per Session", func(t *testing.T) {
		src := &stubGenreSource{genres: []models.Genre{{ID: 28, Name: "Action"}}}
		state := NewState(nil)

		state.LoadGenres(ctx, src)
		state.LoadGenres(ctx, src)
		state.LoadGenres(ctx, src)

		if src.calls != 1 {
			t.Errorf("expected 1 fetch, got %d", src.calls)
		}
		if state.GenreName(28) != "Action" {
			t.Errorf("expected Action, got %s", state.GenreName(28))
		}
	})

	t.Run("Concurrent Calls Share One Fetch", func(t *testing.T) {
		src := &stubGenreSource{genres: []models.Genre{{ID: 28, Name: "Action"}}}
		state := NewState(nil)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				state.LoadGenres(ctx, src)
			}()
		}
		wg.Wait()

		if src.calls != 1 {
			t.Errorf("expected 1 fetch, got %d", src.calls)
		}
	})

	t.Run("Failure Installs Fallback Table", func(t *testing.T) {
		src := &stubGenreSource{err: errors.New("network down")}
		state := NewState(nil)

		state.LoadGenres(ctx, src)

		if len(state.Genres()) != len(models.FallbackGenres) {
			t.Fatalf("expected fallback table, got %d genres", len(state.Genres()))
		}
		if state.GenreName(878) != "Science Fiction" {
			t.Errorf("expected Science Fiction, got %s", state.GenreName(878))
		}

		// Failure still counts as loaded; no retry storm.
		state.LoadGenres(ctx, src)
		if src.calls != 1 {
			t.Errorf("expected 1 fetch after failure, got %d", src.calls)
		}
	})
}

func TestNotifications(t *testing.T) {
	t.Run("One Notification Per Committed Edit", func(t *testing.T) {
		state := NewState(nil)

		calls := 0
		state.Subscribe(func() { calls++ })

		state.Begin().ToggleGenre(28).ToggleGenre(12).SetYear("2020").SetRating("7").Commit()

		if calls != 1 {
			t.Errorf("expected 1 notification for the whole edit, got %d", calls)
		}

		sel := state.Selection()
		if len(sel.Genres) != 2 || sel.Year != "2020" || sel.Rating != "7" {
			t.Errorf("staged edit lost fields: %+v", sel)
		}
	})

	t.Run("SetFromQueryParams Notifies Once", func(t *testing.T) {
		state := NewState(nil)

		calls := 0
		state.Subscribe(func() { calls++ })

		params := url.Values{}
		params.Set("genres", "28")
		params.Set("year", "2020")
		state.SetFromQueryParams(params)

		if calls != 1 {
			t.Errorf("expected 1 notification, got %d", calls)
		}
	})

	t.Run("Toggle Removes Present Genre", func(t *testing.T) {
		state := NewState(nil)
		state.SetSelection(Selection{Genres: []int{28, 12}})

		state.Begin().ToggleGenre(28).Commit()

		sel := state.Selection()
		if len(sel.Genres) != 1 || sel.Genres[0] != 12 {
			t.Errorf("expected [12], got %v", sel.Genres)
		}
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		state := NewState(nil)

		calls := 0
		token := state.Subscribe(func() { calls++ })
		state.Clear()
		state.Unsubscribe(token)
		state.Clear()

		if calls != 1 {
			t.Errorf("expected 1 notification, got %d", calls)
		}
	})
}
