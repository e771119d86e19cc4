package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/nabende1/CineMate/internal/shared"
)

// Durable key names. One key, one file.
const (
	WatchlistKey = "watchlist"
	ThemeKey     = "theme"
)

// Store is a file-per-key durable store rooted at a state directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore creates the state directory if needed and returns a store over it.
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating state dir: %v", shared.ErrStorage, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the state directory path.
func (s *Store) Dir() string { return s.dir }

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read returns the raw contents of a key. A missing key returns nil with no
// error; callers treat that as the empty value.
func (s *Store) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", shared.ErrStorage, key, err)
	}
	return data, nil
}

// Write replaces a key's contents atomically (write to a temp file, then
// rename), so a watcher in another process never sees a half-written value.
func (s *Store) Write(key string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", shared.ErrStorage, key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: writing %s: %v", shared.ErrStorage, key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: writing %s: %v", shared.ErrStorage, key, err)
	}

	if err := os.Rename(tmp.Name(), s.keyPath(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: writing %s: %v", shared.ErrStorage, key, err)
	}
	return nil
}

// Watch invokes fn whenever another writer replaces the given key, until ctx
// is cancelled. Events caused by this process are indistinguishable from
// external ones; callers debounce via their own revision checks.
func (s *Store) Watch(ctx context.Context, key string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: watching %s: %v", shared.ErrStorage, key, err)
	}

	// Watch the directory, not the file: atomic renames replace the inode.
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("%w: watching %s: %v", shared.ErrStorage, key, err)
	}

	target := s.keyPath(key)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != target {
					continue
				}
				if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Rename) {
					fn()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("storage watcher error", "key", key, "err", err)
			}
		}
	}()

	return nil
}

// Theme returns the persisted UI theme preference, defaulting to "light".
func (s *Store) Theme() string {
	data, err := s.Read(ThemeKey)
	if err != nil {
		s.logger.Warn("failed to read theme preference", "err", err)
		return "light"
	}

	theme := strings.TrimSpace(strings.Trim(string(data), `"`))
	if theme != "dark" {
		return "light"
	}
	return "dark"
}

// SetTheme persists the UI theme preference. Unknown values are rejected.
func (s *Store) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("%w: theme %q", shared.ErrInvalidArgument, theme)
	}
	return s.Write(ThemeKey, []byte(`"`+theme+`"`))
}
