package finder

import (
	"io/fs"

	"golang.org/x/sync/errgroup"
)

// scanConfig folds the three ranking policies into one traversal routine:
// rebuild, search and recent-scan differ only in depth, capacity, the
// extension predicate and the scorer.
type scanConfig struct {
	MaxDepth int
	Threads  int
	Cap      int // sink capacity, 0 = unbounded

	// Accept filters entries by base name before any metadata is read.
	// nil accepts everything.
	Accept func(name string, isDir bool) bool

	// Score produces the ranking score for a base name, or false to drop
	// the entry. When nil, entries are scored by their best date.
	Score func(name string) (int64, bool)
}

// scanTree walks every root concurrently and collects matching entries
// into one bounded sink. Roots that do not exist contribute nothing.
func scanTree(roots []string, cfg scanConfig) []SearchResult {
	sink := newResultSink(cfg.Cap)

	var g errgroup.Group
	for _, root := range roots {
		root := root
		g.Go(func() error {
			Walk(root, WalkOptions{MaxDepth: cfg.MaxDepth, Threads: cfg.Threads}, func(path string, entry fs.DirEntry) WalkState {
				return visit(path, entry, cfg, sink)
			})
			return nil
		})
	}
	g.Wait() //nolint:errcheck // walkers never report errors

	return sink.drain()
}

// visit classifies a single walked entry and pushes it into the sink.
func visit(path string, entry fs.DirEntry, cfg scanConfig, sink *resultSink) WalkState {
	name := entry.Name()
	isDir := entry.IsDir()

	if cfg.Accept != nil && !cfg.Accept(name, isDir) {
		return WalkContinue
	}

	var score int64
	if cfg.Score != nil {
		s, ok := cfg.Score(name)
		if !ok {
			return WalkContinue
		}
		score = s
	}

	result := SearchResult{
		FileName: name,
		FilePath: path,
		IsFolder: isDir,
		FileKind: classifyKind(name, isDir),
		DateKind: "Unknown",
	}

	info, err := entry.Info()
	if err != nil {
		// Recency-ranked scans have nothing to sort such an entry by;
		// scored scans still surface it with zeroed metadata.
		if cfg.Score == nil {
			return WalkContinue
		}
	} else {
		result.DateValue, result.DateKind = bestDate(info)
		if !isDir {
			result.FileSize = info.Size()
		}
	}

	if cfg.Score == nil {
		result.Score = result.DateValue
	} else {
		result.Score = score
	}

	return sink.push(result)
}
