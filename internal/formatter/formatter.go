// package formatter provides functions to export the watchlist to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/shared"
)

// Format identifies one supported export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ExportToCSV converts watchlist entries to CSV format with columns: ID, Title, Year, Rating, Overview
func ExportToCSV(entries []models.WatchlistEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating", "Overview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		movie := entry.Movie()
		record := []string{
			strconv.Itoa(movie.ID),
			movie.Title,
			movie.Year,
			movie.RatingLabel(),
			movie.Overview,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts watchlist entries to Markdown format
func ExportToMarkdown(title string, entries []models.WatchlistEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(entries)))

	for i, entry := range entries {
		movie := entry.Movie()
		yearPart := ""
		if movie.Year != "" {
			yearPart = fmt.Sprintf(" (%s)", movie.Year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [★ %s]\n", i+1, movie.Title, yearPart, movie.RatingLabel()))
	}

	return buf.Bytes(), nil
}

// ExportToText converts watchlist entries to plain text format
func ExportToText(title string, entries []models.WatchlistEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(entries)))

	for i, entry := range entries {
		movie := entry.Movie()
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, movie.Title, movie.Year))
	}

	return buf.Bytes(), nil
}

// WriteExport renders the entries in the requested format and writes them to
// path, defaulting the filename by format. Returns the written path.
func WriteExport(entries []models.WatchlistEntry, format Format, path string) (string, error) {
	var data []byte
	var err error
	var fallback string

	switch format {
	case FormatCSV:
		data, err = ExportToCSV(entries)
		fallback = "watchlist.csv"
	case FormatMarkdown:
		data, err = ExportToMarkdown("My Watchlist", entries)
		fallback = "watchlist.md"
	case FormatText:
		data, err = ExportToText("My Watchlist", entries)
		fallback = "watchlist.txt"
	default:
		return "", fmt.Errorf("%w: format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fallback
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
