package render

import (
	"fmt"
	"strings"

	"github.com/nabende1/CineMate/internal/models"
)

// overviewLimit bounds the banner synopsis, matching the card layout.
const overviewLimit = 150

// Carousel rotates a bounded window of featured movies on a timer owned by
// the caller. Stop invalidates outstanding timers via a generation counter,
// so a tick scheduled before teardown can never advance a dead carousel.
type Carousel struct {
	items      []models.Movie
	current    int
	generation int
	stopped    bool
}

// NewCarousel takes the first size records as the rotation window.
func NewCarousel(movies []models.Movie, size int) *Carousel {
	if size <= 0 {
		size = 5
	}
	if len(movies) > size {
		movies = movies[:size]
	}
	items := make([]models.Movie, len(movies))
	copy(items, movies)
	return &Carousel{items: items}
}

// Len returns the window size.
func (c *Carousel) Len() int { return len(c.items) }

// Current returns the featured movie, or false for an empty carousel.
func (c *Carousel) Current() (models.Movie, bool) {
	if len(c.items) == 0 {
		return models.Movie{}, false
	}
	return c.items[c.current], true
}

// Generation tags a scheduled rotation tick. A tick only advances the
// carousel if its generation still matches when it fires.
func (c *Carousel) Generation() int { return c.generation }

// Rotating reports whether timer ticks should keep being scheduled. A
// single-item window needs no rotation.
func (c *Carousel) Rotating() bool {
	return !c.stopped && len(c.items) > 1
}

// Advance moves to the next item if the tick's generation is still live.
// Returns whether the caller should schedule the next tick.
func (c *Carousel) Advance(generation int) bool {
	if c.stopped || generation != c.generation || len(c.items) < 2 {
		return false
	}
	c.current = (c.current + 1) % len(c.items)
	return true
}

// Stop tears the carousel down; any outstanding tick becomes a no-op.
func (c *Carousel) Stop() {
	c.stopped = true
	c.generation++
}

// Render draws the featured banner.
func (c *Carousel) Render(p *Palette) string {
	movie, ok := c.Current()
	if !ok {
		return p.NoticeBox("No trending movies available.")
	}

	overview := movie.Overview
	if runes := []rune(overview); len(runes) > overviewLimit {
		overview = string(runes[:overviewLimit]) + "…"
	}
	if overview == "" {
		overview = "No description available."
	}

	dots := make([]string, len(c.items))
	for i := range c.items {
		if i == c.current {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}

	body := fmt.Sprintf("%s  %s\n%s\n\n%s",
		p.Title.Render(movie.Title),
		p.Meta.Render(movie.Year+"  ★ "+movie.RatingLabel()),
		overview,
		p.Meta.Render(strings.Join(dots, " ")),
	)
	return p.Banner.Render(body)
}
