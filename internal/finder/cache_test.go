package finder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *cacheStore {
	t.Helper()
	return newCacheStore(filepath.Join(t.TempDir(), cacheFileName))
}

func TestCacheRoundTrip(t *testing.T) {
	s := tempStore(t)
	cache := FileCache{
		LastUpdated: 1700000000,
		Files: []SearchResult{
			{FileName: "report.pdf", FilePath: "/home/u/Documents/report.pdf", FileSize: 1234, Score: 170, DateValue: 170, DateKind: "Modified", FileKind: "PDF Document"},
			{FileName: "Downloads", FilePath: "/home/u/Downloads", IsFolder: true, DateKind: "Created", FileKind: "Folder"},
		},
	}
	s.Save(cache)

	got := s.Load()
	assert.Equal(t, cache.LastUpdated, got.LastUpdated)
	assert.Equal(t, cache.Files, got.Files)
}

func TestCacheLoadMissingFile(t *testing.T) {
	s := tempStore(t)
	got := s.Load()
	assert.Equal(t, int64(0), got.LastUpdated)
	assert.NotNil(t, got.Files)
	assert.Empty(t, got.Files)
}

func TestCacheLoadCorruptJSON(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("{not json!!"), 0o644))

	got := s.Load()
	assert.Equal(t, int64(0), got.LastUpdated)
	assert.Empty(t, got.Files)
}

func TestCacheSaveNilFiles(t *testing.T) {
	s := tempStore(t)
	s.Save(FileCache{LastUpdated: 42})

	got := s.Load()
	assert.Equal(t, int64(42), got.LastUpdated)
	assert.NotNil(t, got.Files)
	assert.Empty(t, got.Files)
}

func TestCacheSaveUnwritablePath(t *testing.T) {
	s := newCacheStore(filepath.Join(t.TempDir(), "missing", "nested", cacheFileName))
	// Must not panic or error out; the cache is best-effort.
	s.Save(FileCache{LastUpdated: 1})
	assert.Empty(t, s.Load().Files)
}
