package render

import (
	"strings"

	"github.com/nabende1/CineMate/internal/models"
)

// EmptyPlaceholder is the single node an empty grid renders instead of a
// bare container.
const EmptyPlaceholder = "No movies to show."

// Grid renders an ordered set of cards and owns the registry mapping card
// identity back to source records.
type Grid struct {
	state WatchlistState
	cards []*Card
	byID  map[int]*Card
}

// NewGrid creates an empty grid reading membership from state.
func NewGrid(state WatchlistState) *Grid {
	return &Grid{state: state, byID: make(map[int]*Card)}
}

// SetMovies replaces the grid's contents entirely, in input order. Calling
// it again with the same records reproduces the same structure; nothing
// accumulates.
func (g *Grid) SetMovies(movies []models.Movie) {
	g.cards = g.cards[:0]
	g.byID = make(map[int]*Card, len(movies))
	g.Append(movies)
}

// Append adds records without clearing, for paginated loads. Records whose
// id is already present are skipped, so overlapping pages from fast
// successive requests never duplicate cards.
func (g *Grid) Append(movies []models.Movie) {
	for _, m := range movies {
		if _, dup := g.byID[m.ID]; dup {
			continue
		}
		card := NewCard(m, g.state)
		g.cards = append(g.cards, card)
		g.byID[m.ID] = card
	}
}

// Len returns the number of cards.
func (g *Grid) Len() int { return len(g.cards) }

// Card returns the card at position i.
func (g *Grid) Card(i int) *Card {
	if i < 0 || i >= len(g.cards) {
		return nil
	}
	return g.cards[i]
}

// CardFor resolves a rendered card by record identity.
func (g *Grid) CardFor(id int) *Card { return g.byID[id] }

// Movies returns the records in display order.
func (g *Grid) Movies() []models.Movie {
	movies := make([]models.Movie, len(g.cards))
	for i, c := range g.cards {
		movies[i] = c.movie
	}
	return movies
}

// Toggle flips watchlist membership for the card at position i through the
// store, touching only that card.
func (g *Grid) Toggle(i int, store WatchlistToggler) {
	if card := g.Card(i); card != nil {
		card.Toggle(store)
	}
}

// Refresh re-reads membership for every card, used after an external
// watchlist change arrives as one batched invalidation.
func (g *Grid) Refresh() {
	for _, c := range g.cards {
		c.Refresh(g.state)
	}
}

// Render produces the grid. cursor is the selected row, -1 for none. An
// empty grid renders exactly one placeholder line.
func (g *Grid) Render(p *Palette, cursor int) string {
	if len(g.cards) == 0 {
		return p.NoticeBox(EmptyPlaceholder)
	}

	var b strings.Builder
	for i, card := range g.cards {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(card.Render(p, i == cursor))
	}
	return b.String()
}
