package catalog

import (
	"strings"

	"github.com/nabende1/CineMate/internal/models"
)

// movieResult is the shape shared by list-style and detail responses.
type movieResult struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	Overview    string   `json:"overview"`
	VoteAverage *float64 `json:"vote_average"`
	GenreIDs    []int    `json:"genre_ids"`
}

// pagedResponse is the envelope of every list endpoint.
type pagedResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type genreEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// detailResponse carries inline genre objects instead of genre_ids.
type detailResponse struct {
	movieResult
	Runtime int          `json:"runtime"`
	Genres  []genreEntry `json:"genres"`
}

type creditsResponse struct {
	Cast []struct {
		Name        string `json:"name"`
		Character   string `json:"character"`
		ProfilePath string `json:"profile_path"`
	} `json:"cast"`
}

type videosResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

type genresResponse struct {
	Genres []genreEntry `json:"genres"`
}

// posterResolver builds fully qualified image URLs from catalog paths.
type posterResolver struct {
	base string
	size string
}

func (r posterResolver) poster(path string) string {
	if path == "" {
		return models.PlaceholderPoster
	}
	return r.base + "/" + r.size + "/" + strings.TrimPrefix(path, "/")
}

// profile uses the fixed w185 size the cast grid renders at.
func (r posterResolver) profile(path string) string {
	if path == "" {
		return models.PlaceholderPoster
	}
	return r.base + "/w185/" + strings.TrimPrefix(path, "/")
}

// normalize converts one raw result into the canonical record. An unrated
// movie (absent or zero vote average) normalizes to a nil rating so the UI
// renders "N/A" instead of 0.
func (c *Client) normalize(raw movieResult) models.Movie {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = "Untitled"
	}

	year := ""
	if len(raw.ReleaseDate) >= 4 {
		year = raw.ReleaseDate[:4]
	}

	var rating *float64
	if raw.VoteAverage != nil && *raw.VoteAverage > 0 {
		v := *raw.VoteAverage
		rating = &v
	}

	return models.Movie{
		ID:        raw.ID,
		Title:     title,
		PosterURL: c.images.poster(raw.PosterPath),
		Year:      year,
		Overview:  raw.Overview,
		Rating:    rating,
		GenreIDs:  raw.GenreIDs,
	}
}

func (c *Client) normalizeAll(raw []movieResult) []models.Movie {
	movies := make([]models.Movie, 0, len(raw))
	for _, r := range raw {
		movies = append(movies, c.normalize(r))
	}
	return movies
}
