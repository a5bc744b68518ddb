package finder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// rebuildDebounce coalesces bursts of filesystem events into one rebuild.
var rebuildDebounce = 2 * time.Second

// Watch monitors the curated folders and rebuilds the index after things
// change, debounced so a burst of writes triggers a single re-walk. New
// directories created at runtime join the watch set. onRebuild (if
// non-nil) receives each fresh index. Blocks until ctx is cancelled.
func (f *Finder) Watch(ctx context.Context, onRebuild func([]SearchResult)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, root := range f.curatedRoots() {
		if err := addDirsRecursive(w, root); err != nil {
			logWarn("watch: add %s: %v", root, err)
		}
	}
	logInfo("watch: started over %v", f.curatedRoots())

	var rebuildTimer *time.Timer
	var rebuildCh <-chan time.Time

	scheduleRebuild := func() {
		if rebuildTimer == nil {
			rebuildTimer = time.NewTimer(rebuildDebounce)
			rebuildCh = rebuildTimer.C
		} else {
			rebuildTimer.Reset(rebuildDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			logInfo("watch: stopped")
			return nil

		case <-rebuildCh:
			results := f.RebuildIndex()
			if onRebuild != nil {
				onRebuild(results)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logWarn("watch: add new dir %s: %v", ev.Name, addErr)
					}
				}
			}
			logDebug("watch: %s %s", ev.Op, ev.Name)
			scheduleRebuild()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logWarn("watch: %v", err)
		}
	}
}

// addDirsRecursive registers root and every non-hidden directory below
// it with the watcher, down to the index depth.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	if err := w.Add(root); err != nil {
		return err
	}
	depth := strings.Count(root, string(os.PathSeparator))
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if strings.Count(path, string(os.PathSeparator))-depth > indexDepth {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logDebug("watch: add %s: %v", path, err)
		}
		return nil
	})
}
