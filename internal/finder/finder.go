// Package finder locates files on the local machine by name and keeps a
// persisted index snapshot so results are available before a fresh scan
// completes. None of its search operations return errors: the worst
// outcome is an empty or stale result list, never a failure that could
// block the host application.
package finder

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Finder is the search and indexing engine bound to one home directory.
type Finder struct {
	home  string
	store *cacheStore
}

// New creates a Finder rooted at the user's home directory. When $HOME
// is unset the current working directory is used as a degraded mode.
func New() *Finder {
	return NewAt(resolveHome())
}

// NewAt creates a Finder rooted at an explicit directory. The cache
// snapshot lives directly under it.
func NewAt(home string) *Finder {
	return &Finder{
		home:  home,
		store: newCacheStore(filepath.Join(home, cacheFileName)),
	}
}

// Home returns the directory this Finder scans and caches under.
func (f *Finder) Home() string {
	return f.home
}

func resolveHome() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// LoadCachedIndex returns the last persisted index for instant startup.
// A missing or corrupt cache yields an empty list.
func (f *Finder) LoadCachedIndex() []SearchResult {
	return f.store.Load().Files
}

// RebuildIndex re-walks the curated folders, persists the fresh snapshot
// and returns it ordered by recency. Intended to run in the background;
// the whole sequence is kept, truncation is left to the read paths.
func (f *Finder) RebuildIndex() []SearchResult {
	start := time.Now()

	results := scanTree(f.curatedRoots(), scanConfig{
		MaxDepth: indexDepth,
		Threads:  walkThreads,
		Accept: func(name string, isDir bool) bool {
			if isDir {
				return true
			}
			ext := strings.TrimPrefix(filepath.Ext(name), ".")
			return ext != "" && indexedExtensions[strings.ToLower(ext)]
		},
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DateValue > results[j].DateValue
	})

	f.store.Save(snapshot(results))
	logInfo("index rebuilt: %d entries in %s", len(results), time.Since(start))
	return results
}

// SearchFiles fuzzy-matches entry names across the whole home directory
// and returns the best 50 hits ordered by match score. Blank queries
// yield an empty list.
func (f *Finder) SearchFiles(query string) []SearchResult {
	if isBlank(query) {
		return []SearchResult{}
	}

	results := scanTree([]string{f.home}, scanConfig{
		MaxDepth: searchDepth,
		Threads:  walkThreads,
		Cap:      searchSinkCap,
		Score: func(name string) (int64, bool) {
			return fuzzyScore(name, query)
		},
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// GetRecentFiles returns cached entries whose best date falls within the
// last 7 days, newest first, capped at 50. It reads the persisted
// snapshot rather than re-walking, so freshness is bounded by the last
// RebuildIndex.
func (f *Finder) GetRecentFiles() []SearchResult {
	weekAgo := time.Now().Unix() - recentWindowSeconds

	recent := []SearchResult{}
	for _, r := range f.store.Load().Files {
		if r.DateValue > weekAgo {
			recent = append(recent, r)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].DateValue > recent[j].DateValue
	})
	if len(recent) > maxResults {
		recent = recent[:maxResults]
	}
	return recent
}

// curatedRoots resolves the indexable folders that actually exist.
func (f *Finder) curatedRoots() []string {
	var roots []string
	for _, name := range curatedFolders {
		dir := filepath.Join(f.home, name)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		roots = append(roots, dir)
	}
	return roots
}
