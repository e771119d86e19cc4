package watchlist

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nabende1/CineMate/internal/models"
	"github.com/nabende1/CineMate/internal/shared"
	"github.com/nabende1/CineMate/internal/storage"
)

type listener struct {
	token string
	fn    func()
}

// Store exposes the watchlist over the durable state directory and notifies
// subscribers on every successful mutation.
type Store struct {
	files  *storage.Store
	logger *log.Logger

	mu        sync.Mutex
	lastRaw   string
	listeners []listener
}

// NewStore creates a watchlist store over the given state directory.
func NewStore(files *storage.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{files: files, logger: logger}
}

// List returns the current persisted entries. It never fails: a missing or
// unparsable key is an empty watchlist.
func (s *Store) List() []models.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads and decodes the durable key. Callers hold s.mu.
func (s *Store) load() []models.WatchlistEntry {
	data, err := s.files.Read(storage.WatchlistKey)
	if err != nil {
		s.logger.Warn("failed to read watchlist", "err", err)
		return nil
	}
	if len(data) == 0 {
		s.lastRaw = ""
		return nil
	}

	var entries []models.WatchlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("corrupt watchlist data, treating as empty", "err", err)
		return nil
	}

	s.lastRaw = string(data)
	return entries
}

// Contains reports whether the movie with the given id is saved.
func (s *Store) Contains(id int) bool {
	for _, e := range s.List() {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Add appends the movie and persists. Re-adding an existing id is a no-op
// returning false; a real insertion returns true and notifies subscribers
// exactly once. A failed durable write is logged, not surfaced: the mutation
// already happened as far as this session is concerned.
func (s *Store) Add(m models.Movie) bool {
	s.mu.Lock()

	entries := s.load()
	for _, e := range entries {
		if e.ID == m.ID {
			s.mu.Unlock()
			return false
		}
	}

	entries = append(entries, models.NewWatchlistEntry(m))
	s.persist(entries)
	s.mu.Unlock()

	s.notify()
	return true
}

// Remove deletes the entry with the given id. Returns false when absent;
// otherwise persists and notifies subscribers exactly once.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()

	entries := s.load()
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if len(kept) == len(entries) {
		s.mu.Unlock()
		return false
	}

	s.persist(kept)
	s.mu.Unlock()

	s.notify()
	return true
}

// persist writes entries to the durable key. Callers hold s.mu.
func (s *Store) persist(entries []models.WatchlistEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Error("failed to encode watchlist", "err", err)
		return
	}

	// Record what we wrote before the filesystem watcher can observe it, so
	// our own writes don't echo back as external changes.
	s.lastRaw = string(data)

	if err := s.files.Write(storage.WatchlistKey, data); err != nil {
		s.logger.Error("failed to persist watchlist, continuing in memory", "err", err)
	}
}

// Subscribe registers a change callback, invoked synchronously after every
// successful mutation, in registration order. The returned token cancels the
// subscription via [Store.Unsubscribe].
func (s *Store) Subscribe(fn func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := shared.GenerateID()
	s.listeners = append(s.listeners, listener{token: token, fn: fn})
	return token
}

// Unsubscribe removes a previously registered callback.
func (s *Store) Unsubscribe(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.listeners {
		if l.token == token {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// notify invokes listeners outside the lock so callbacks may re-enter the
// store.
func (s *Store) notify() {
	s.mu.Lock()
	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}

// WatchExternal observes the durable key for writes made by other processes
// and forwards genuine changes to subscribers. Our own writes are filtered
// out by comparing the on-disk bytes against the last value this store wrote.
func (s *Store) WatchExternal(ctx context.Context) error {
	return s.files.Watch(ctx, storage.WatchlistKey, func() {
		s.mu.Lock()
		data, err := s.files.Read(storage.WatchlistKey)
		if err != nil || string(data) == s.lastRaw {
			s.mu.Unlock()
			return
		}
		s.lastRaw = string(data)
		s.mu.Unlock()

		s.notify()
	})
}
