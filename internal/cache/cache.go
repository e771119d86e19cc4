// Package cache persists the last successful catalog listings in SQLite.
//
// When a live fetch fails, views fall back to the cached set (rendered with a
// stale marker) instead of showing only an error. The cache is advisory:
// read and write failures are logged and degrade to a miss, never a crash.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/shared"
)

// Listing sections the cache knows about.
const (
	SectionPopular      = "popular"
	SectionTrendingDay  = "trending_day"
	SectionTrendingWeek = "trending_week"
)

const schema = `
	CREATE TABLE IF NOT EXISTS catalog_cache (
		section    TEXT NOT NULL,
		page       INTEGER NOT NULL,
		body       TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		PRIMARY KEY (section, page)
	)
`

// Store is a SQLite-backed listing cache.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (creating if needed) the cache database at the configured path.
func Open(cfg shared.CacheConfig, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put replaces the cached movies for one section page.
func (s *Store) Put(section string, page int, movies []models.Movie) error {
	body, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	query := `
		INSERT INTO catalog_cache (section, page, body, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (section, page) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`
	if _, err := s.db.Exec(query, section, page, string(body), time.Now().Unix()); err != nil {
		return fmt.Errorf("%w: caching %s page %d: %v", shared.ErrStorage, section, page, err)
	}
	return nil
}

// Get returns the cached movies for a section page plus when they were
// fetched. A missing entry is [shared.ErrCacheMiss].
func (s *Store) Get(section string, page int) ([]models.Movie, time.Time, error) {
	var body string
	var fetchedAt int64

	row := s.db.QueryRow("SELECT body, fetched_at FROM catalog_cache WHERE section = ? AND page = ?", section, page)
	if err := row.Scan(&body, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, fmt.Errorf("%w: %s page %d", shared.ErrCacheMiss, section, page)
		}
		return nil, time.Time{}, fmt.Errorf("%w: reading %s page %d: %v", shared.ErrStorage, section, page, err)
	}

	var movies []models.Movie
	if err := json.Unmarshal([]byte(body), &movies); err != nil {
		// A corrupt row is as good as no row.
		s.logger.Warn("corrupt cache entry", "section", section, "page", page, "err", err)
		return nil, time.Time{}, fmt.Errorf("%w: %s page %d", shared.ErrCacheMiss, section, page)
	}

	return movies, time.Unix(fetchedAt, 0), nil
}

// TrendingSection maps a trending window to its cache section.
func TrendingSection(window string) string {
	if window == "week" {
		return SectionTrendingWeek
	}
	return SectionTrendingDay
}
