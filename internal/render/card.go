package render

import (
	"fmt"

	"github.com/nabende1/CineMate/internal/models"
)

// WatchlistState is the read side a card consults at render time.
type WatchlistState interface {
	Contains(id int) bool
}

// WatchlistToggler is the full store surface the toggle control uses.
// Components never reach past it to the durable layer.
type WatchlistToggler interface {
	WatchlistState
	Add(m models.Movie) bool
	Remove(id int) bool
}

// Card is one rendered movie with its toggle control. The source record is
// held here, in memory, keyed by identity, never serialized into output.
type Card struct {
	movie models.Movie
	saved bool
}

// NewCard builds a card whose toggle state reflects membership at render
// time.
func NewCard(m models.Movie, state WatchlistState) *Card {
	saved := false
	if state != nil {
		saved = state.Contains(m.ID)
	}
	return &Card{movie: m, saved: saved}
}

// Movie returns the originating record.
func (c *Card) Movie() models.Movie { return c.movie }

// Saved returns the rendered toggle state.
func (c *Card) Saved() bool { return c.saved }

// ToggleLabel is the control text for the current state.
func (c *Card) ToggleLabel() string {
	if c.saved {
		return "✓ In Watchlist"
	}
	return "+ Add to Watchlist"
}

// Toggle flips membership through the store and updates only this card's
// state; callers re-render this card alone, not the grid.
func (c *Card) Toggle(store WatchlistToggler) {
	if c.saved {
		if store.Remove(c.movie.ID) {
			c.saved = false
		}
		return
	}
	if store.Add(c.movie) {
		c.saved = true
	}
}

// Refresh re-reads membership, used when an external change invalidated the
// rendered state.
func (c *Card) Refresh(state WatchlistState) {
	c.saved = state.Contains(c.movie.ID)
}

// Render produces the card line. selected marks the cursor position.
func (c *Card) Render(p *Palette, selected bool) string {
	marker := "  "
	if selected {
		marker = p.Cursor.Render("> ")
	}

	title := p.Title.Render(c.movie.Title)
	meta := fmt.Sprintf("%s  ★ %s", c.movie.Year, c.movie.RatingLabel())

	line := marker + title + "  " + p.Meta.Render(meta)
	if c.saved {
		line += "  " + p.Saved.Render("✓ saved")
	}
	return line
}
