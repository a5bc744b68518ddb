package finder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureHome(t *testing.T) *Finder {
	t.Helper()
	return NewAt(t.TempDir())
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func names(results []SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.FileName
	}
	return out
}

func TestSearchFilesBlankQuery(t *testing.T) {
	f := fixtureHome(t)
	assert.Empty(t, f.SearchFiles(""))
	assert.Empty(t, f.SearchFiles("   \t  "))
}

func TestSearchFilesMembership(t *testing.T) {
	f := fixtureHome(t)
	writeFile(t, filepath.Join(f.Home(), "report.pdf"))
	writeFile(t, filepath.Join(f.Home(), "sub", "airport.txt"))
	writeFile(t, filepath.Join(f.Home(), "zebra.bin"))

	results := f.SearchFiles("rpt")
	got := names(results)
	assert.Contains(t, got, "report.pdf")
	assert.Contains(t, got, "airport.txt")
	assert.NotContains(t, got, "zebra.bin")
	assert.LessOrEqual(t, len(results), maxResults)

	// Sorted by score, descending or equal.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearchFilesPopulatesMetadata(t *testing.T) {
	f := fixtureHome(t)
	writeFile(t, filepath.Join(f.Home(), "report.pdf"))

	results := f.SearchFiles("report")
	require.NotEmpty(t, results)

	r := results[0]
	assert.Equal(t, "report.pdf", r.FileName)
	assert.Equal(t, filepath.Join(f.Home(), "report.pdf"), r.FilePath)
	assert.Equal(t, int64(len("content")), r.FileSize)
	assert.False(t, r.IsFolder)
	assert.Equal(t, "PDF Document", r.FileKind)
	assert.Greater(t, r.DateValue, int64(0))
}

func TestRebuildIndexEmptyHome(t *testing.T) {
	f := fixtureHome(t)

	results := f.RebuildIndex()
	assert.Empty(t, results)

	// The snapshot is persisted even when empty.
	_, err := os.Stat(filepath.Join(f.Home(), cacheFileName))
	require.NoError(t, err)
	assert.Empty(t, f.LoadCachedIndex())
	assert.Greater(t, f.store.Load().LastUpdated, int64(0))
}

func TestRebuildIndexCuratedFolders(t *testing.T) {
	f := fixtureHome(t)
	writeFile(t, filepath.Join(f.Home(), "Documents", "report.pdf"))
	writeFile(t, filepath.Join(f.Home(), "Documents", "sub", "notes.txt"))
	writeFile(t, filepath.Join(f.Home(), "Downloads", "movie.mkv"))
	// Not indexable: off-allowlist extension, no extension, outside curated folders.
	writeFile(t, filepath.Join(f.Home(), "Documents", "core.bin"))
	writeFile(t, filepath.Join(f.Home(), "Documents", "LICENSE"))
	writeFile(t, filepath.Join(f.Home(), "stray.pdf"))

	results := f.RebuildIndex()
	got := names(results)
	assert.Contains(t, got, "report.pdf")
	assert.Contains(t, got, "notes.txt")
	assert.Contains(t, got, "movie.mkv")
	assert.Contains(t, got, "sub", "directories bypass the allowlist")
	assert.NotContains(t, got, "core.bin")
	assert.NotContains(t, got, "LICENSE")
	assert.NotContains(t, got, "stray.pdf")

	// Recency ordering and score mirroring.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].DateValue, results[i].DateValue)
	}
	for _, r := range results {
		assert.Equal(t, r.DateValue, r.Score)
	}

	// The persisted snapshot matches what was returned, order included.
	assert.Equal(t, results, f.LoadCachedIndex())
}

func TestLoadCachedIndexIdempotent(t *testing.T) {
	f := fixtureHome(t)
	writeFile(t, filepath.Join(f.Home(), "Documents", "report.pdf"))
	f.RebuildIndex()

	first := f.LoadCachedIndex()
	second := f.LoadCachedIndex()
	assert.Equal(t, first, second)
}

func TestGetRecentFilesWindow(t *testing.T) {
	f := fixtureHome(t)
	now := time.Now().Unix()

	f.store.Save(FileCache{
		LastUpdated: now,
		Files: []SearchResult{
			{FileName: "notes.txt", FilePath: "/h/notes.txt", DateValue: now - 10*24*60*60, DateKind: "Modified"},
			{FileName: "report.pdf", FilePath: "/h/report.pdf", DateValue: now - 1*24*60*60, DateKind: "Modified"},
			{FileName: "today.md", FilePath: "/h/today.md", DateValue: now, DateKind: "Modified"},
		},
	})

	recent := f.GetRecentFiles()
	got := names(recent)
	assert.Contains(t, got, "report.pdf")
	assert.Contains(t, got, "today.md")
	assert.NotContains(t, got, "notes.txt")

	// Newest first.
	for i := 1; i < len(recent); i++ {
		assert.GreaterOrEqual(t, recent[i-1].DateValue, recent[i].DateValue)
	}
}

func TestGetRecentFilesCap(t *testing.T) {
	f := fixtureHome(t)
	now := time.Now().Unix()

	files := make([]SearchResult, 80)
	for i := range files {
		files[i] = SearchResult{FileName: "f", DateValue: now - int64(i)}
	}
	f.store.Save(FileCache{LastUpdated: now, Files: files})

	assert.Len(t, f.GetRecentFiles(), maxResults)
}

func TestGetRecentFilesEmptyCache(t *testing.T) {
	f := fixtureHome(t)
	got := f.GetRecentFiles()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewAtUsesGivenHome(t *testing.T) {
	home := t.TempDir()
	f := NewAt(home)
	assert.Equal(t, home, f.Home())
}
