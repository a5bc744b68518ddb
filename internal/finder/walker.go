package finder

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"
)

// WalkState is the continuation signal a WalkFunc returns.
type WalkState int

const (
	// WalkContinue keeps the current worker going.
	WalkContinue WalkState = iota
	// WalkQuit stops the current worker's subtree. Sibling subtrees keep
	// running; a global stop must be layered on by gating the callback
	// itself (the bounded sink does exactly that).
	WalkQuit
)

// WalkFunc is invoked for every successfully visited entry. It may be
// called concurrently from different workers for different entries.
type WalkFunc func(path string, entry fs.DirEntry) WalkState

// WalkOptions bounds a concurrent walk.
type WalkOptions struct {
	MaxDepth int // directory levels below the root to descend into
	Threads  int // concurrent subtree workers
}

// ignoreRule is one compiled .gitignore scoped to the directory it was
// found in; entries are matched by their path relative to that base.
type ignoreRule struct {
	base  string
	rules *ignore.GitIgnore
}

// Walk traverses root with a small worker pool, invoking fn per entry.
// Hidden entries are always skipped and .gitignore rules apply to the
// subtree below the file that declares them. Entries that fail to stat
// are skipped silently; a missing root is a no-op, not an error.
func Walk(root string, opts WalkOptions, fn WalkFunc) {
	info, err := os.Stat(root)
	if err != nil {
		logDebug("walk: root %s unavailable: %v", root, err)
		return
	}
	if opts.Threads <= 0 {
		opts.Threads = walkThreads
	}

	if fn(root, fs.FileInfoToDirEntry(info)) == WalkQuit {
		return
	}
	if !info.IsDir() {
		return
	}

	w := &walker{
		opts: opts,
		fn:   fn,
		sem:  make(chan struct{}, opts.Threads),
	}
	w.walkDir(root, 1, nil)
	w.wg.Wait()
}

type walker struct {
	opts WalkOptions
	fn   WalkFunc
	sem  chan struct{}
	wg   sync.WaitGroup
}

// walkDir visits one directory level and recurses into subdirectories,
// handing them to the pool when a slot is free and walking them inline
// otherwise. Returning early on WalkQuit abandons only this subtree.
func (w *walker) walkDir(dir string, depth int, chain []ignoreRule) {
	if depth > w.opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logDebug("walk: read dir %s: %v", dir, err)
		return
	}

	if rules, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore")); err == nil {
		chain = append(chain[:len(chain):len(chain)], ignoreRule{base: dir, rules: rules})
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if ignored(chain, path, entry.IsDir()) {
			continue
		}
		if w.fn(path, entry) == WalkQuit {
			return
		}
		if entry.IsDir() {
			subdirs = append(subdirs, path)
		}
	}

	for _, sub := range subdirs {
		select {
		case w.sem <- struct{}{}:
			w.wg.Add(1)
			go func(d string) {
				defer func() {
					<-w.sem
					w.wg.Done()
				}()
				w.walkDir(d, depth+1, chain)
			}(sub)
		default:
			w.walkDir(sub, depth+1, chain)
		}
	}
}

// ignored reports whether any .gitignore on the chain excludes the path.
func ignored(chain []ignoreRule, path string, isDir bool) bool {
	for _, rule := range chain {
		rel, err := filepath.Rel(rule.base, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isDir {
			rel += "/"
		}
		if rule.rules.MatchesPath(rel) {
			return true
		}
	}
	return false
}
