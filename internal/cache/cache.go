// Package cache persists the set of previously notified alerts between
// polling passes. The store is a single flat JSON file mapping alert id to
// the last snapshot acted upon, bounded to a fixed number of entries.
//
// One orchestrator run owns the store at a time: load once at pass start,
// mutate in memory, save once at pass end. There is no file locking; the
// poll scheduler guarantees passes do not overlap.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/couchcryptid/storm-alert-notifier/internal/domain"
)

// Store is a bounded, file-backed map of alert id to alert snapshot.
type Store struct {
	path    string
	logger  *slog.Logger
	entries map[string]domain.Alert
}

// New creates a Store backed by the given file path. Call Load before use.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:    path,
		logger:  logger,
		entries: make(map[string]domain.Alert),
	}
}

// Load reads the persisted state, replacing any in-memory entries. A
// missing, unreadable, or corrupt file is treated as an empty cache and
// never fails the caller.
func (s *Store) Load() {
	s.entries = make(map[string]domain.Alert)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("alert cache unreadable, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var entries map[string]domain.Alert
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("alert cache corrupt, starting empty", "path", s.path, "error", err)
		return
	}
	s.entries = entries
}

// Get returns the cached snapshot for an alert id.
func (s *Store) Get(id string) (domain.Alert, bool) {
	a, ok := s.entries[id]
	return a, ok
}

// Put inserts or overwrites the snapshot for the alert's id.
func (s *Store) Put(a domain.Alert) {
	s.entries[a.ID] = a
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Trim drops the least recently updated entries until at most maxEntries
// remain. Entries with equal updated times are ordered by id so eviction is
// deterministic.
func (s *Store) Trim(maxEntries int) {
	if maxEntries < 0 || len(s.entries) <= maxEntries {
		return
	}

	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.SortStableFunc(ids, func(a, b string) int {
		ua, ub := s.entries[a].UpdatedAt, s.entries[b].UpdatedAt
		if ua.After(ub) {
			return -1
		}
		if ub.After(ua) {
			return 1
		}
		return strings.Compare(a, b)
	})

	for _, id := range ids[maxEntries:] {
		delete(s.entries, id)
	}
}

// Save overwrites the persisted state with the in-memory entries. The write
// goes to a temp file in the same directory and is renamed into place so the
// next Load never observes a partial file.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alert cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write alert cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace alert cache: %w", err)
	}
	return nil
}
