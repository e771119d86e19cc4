package models

import (
	"fmt"
	"strings"
)

// PlaceholderPoster is the deterministic fallback used whenever the catalog
// has no poster for a movie.
const PlaceholderPoster = "https://placehold.co/500x750?text=No+Poster"

// Movie is the canonical movie record. Only catalog normalization produces it.
type Movie struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	PosterURL string   `json:"posterUrl"`
	Year      string   `json:"year"`
	Overview  string   `json:"overview"`
	Rating    *float64 `json:"rating"`
	GenreIDs  []int    `json:"genreIds,omitempty"`
}

// Same reports whether other refers to the same catalog entity.
func (m Movie) Same(other Movie) bool {
	return m.ID == other.ID
}

// RatingLabel formats the rating for display, rendering a missing rating as
// "N/A" rather than a zero.
func (m Movie) RatingLabel() string {
	if m.Rating == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *m.Rating)
}

// HasGenre reports whether the movie carries the given catalog genre id.
// Detail responses carry no genre ids; those records report false.
func (m Movie) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// WatchlistEntry is the persisted subset of [Movie]. Entries are created on
// add and removed on remove, never mutated in place.
type WatchlistEntry struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	PosterURL string   `json:"posterUrl"`
	Rating    *float64 `json:"rating"`
	Overview  string   `json:"overview"`
	Year      string   `json:"year"`
}

// NewWatchlistEntry projects a canonical movie into its persisted form.
func NewWatchlistEntry(m Movie) WatchlistEntry {
	return WatchlistEntry{
		ID:        m.ID,
		Title:     m.Title,
		PosterURL: m.PosterURL,
		Rating:    m.Rating,
		Overview:  m.Overview,
		Year:      m.Year,
	}
}

// Movie converts the entry back into a canonical record for rendering.
func (e WatchlistEntry) Movie() Movie {
	return Movie{
		ID:        e.ID,
		Title:     e.Title,
		PosterURL: e.PosterURL,
		Rating:    e.Rating,
		Overview:  e.Overview,
		Year:      e.Year,
	}
}

// Genre is one entry of the catalog's genre table.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credit is one cast member of a movie's credits.
type Credit struct {
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profileUrl"`
}

// Video is one trailer/clip listing for a movie.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// IsTrailer reports whether the video is a YouTube trailer, the only kind the
// detail page embeds.
func (v Video) IsTrailer() bool {
	return strings.EqualFold(v.Type, "Trailer") && strings.EqualFold(v.Site, "YouTube")
}

// MovieDetail bundles everything the detail page renders.
type MovieDetail struct {
	Movie   Movie
	Runtime int
	Genres  []Genre
	Cast    []Credit
	Similar []Movie
	Videos  []Video
}

// Trailer returns the first embeddable trailer, or false when none exists.
func (d MovieDetail) Trailer() (Video, bool) {
	for _, v := range d.Videos {
		if v.IsTrailer() {
			return v, true
		}
	}
	return Video{}, false
}

// FallbackGenres is the static genre table installed when the catalog's genre
// endpoint is unreachable, so genre filtering keeps working offline.
var FallbackGenres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}
