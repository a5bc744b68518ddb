package finder

import (
	"encoding/json"
	"os"
	"time"
)

// cacheStore reads and writes the persisted index snapshot. The cache is
// a best-effort accelerator: both Load and Save degrade silently so a
// broken cache file can never block or fail a search.
type cacheStore struct {
	path string
}

func newCacheStore(path string) *cacheStore {
	return &cacheStore{path: path}
}

// Load returns the persisted snapshot, or an empty cache on any read or
// decode failure. Files is never nil.
func (s *cacheStore) Load() FileCache {
	empty := FileCache{Files: []SearchResult{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		logDebug("cache: read %s: %v", s.path, err)
		return empty
	}

	var cache FileCache
	if err := json.Unmarshal(data, &cache); err != nil {
		logWarn("cache: corrupt snapshot at %s: %v", s.path, err)
		return empty
	}
	if cache.Files == nil {
		cache.Files = []SearchResult{}
	}
	return cache
}

// Save overwrites the snapshot. Write failures are logged and dropped.
func (s *cacheStore) Save(cache FileCache) {
	if cache.Files == nil {
		cache.Files = []SearchResult{}
	}

	data, err := json.Marshal(cache)
	if err != nil {
		logError("cache: encode snapshot: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		logWarn("cache: write %s: %v", s.path, err)
		return
	}
	logDebug("cache: saved %d entries to %s", len(cache.Files), s.path)
}

// snapshot builds a cache stamped with the current time.
func snapshot(files []SearchResult) FileCache {
	return FileCache{
		LastUpdated: time.Now().Unix(),
		Files:       files,
	}
}
