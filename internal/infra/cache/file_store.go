// Package cache implements the version cache repository as a single JSON
// file: a top-level object mapping application identifier to its last
// observed release state.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"appwatch/internal/domain/entity"
)

// DefaultPath is the well-known location of the cache file relative to the
// working directory.
const DefaultPath = "version_cache.json"

// FileStore persists the version cache to a JSON file.
// It implements repository.VersionCache.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the given path.
// An empty path falls back to DefaultPath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

// Load reads the cache file and returns its mapping.
//
// Load never fails: a missing file yields an empty map (the cold-start
// signal), and a file that cannot be parsed as a JSON object of entries is
// treated as corruption, logged, and also yields an empty map.
func (s *FileStore) Load() map[string]entity.CacheEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("version cache unreadable, starting empty",
				slog.String("path", s.path),
				slog.Any("error", err))
		}
		return map[string]entity.CacheEntry{}
	}

	var cache map[string]entity.CacheEntry
	if err := json.Unmarshal(data, &cache); err != nil {
		slog.Warn("version cache corrupt, starting empty",
			slog.String("path", s.path),
			slog.Any("error", err))
		return map[string]entity.CacheEntry{}
	}
	if cache == nil {
		return map[string]entity.CacheEntry{}
	}
	return cache
}

// Save replaces the cache file with the given mapping.
//
// The write is atomic with respect to readers of the previous run: the new
// content goes to a temp file in the same directory, which is then renamed
// over the target. A failure is returned for logging but must not abort the
// run; the in-memory classification already happened.
func (s *FileStore) Save(cache map[string]entity.CacheEntry) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal version cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".version_cache-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
