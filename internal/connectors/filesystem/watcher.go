package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/inah-tools/archivo/internal/core/ports/driven"
	"github.com/inah-tools/archivo/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher reports file and directory changes under a tree using fsnotify.
// fsnotify watches single directories, so every directory below the root
// is added, including ones created while watching. It covers the same tree
// the Collector walks, hidden directories included. Permission-only changes
// are ignored.
type Watcher struct{}

// NewWatcher creates a new filesystem watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch starts watching root. The returned channel carries changed paths
// and is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context, root string) (<-chan string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", root, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := addTree(fw, absRoot); err != nil {
		fw.Close()
		return nil, err
	}

	changes := make(chan string, channelBuffer)
	go func() {
		defer close(changes)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				if ev.Has(fsnotify.Create) {
					if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() {
						if err := addTree(fw, ev.Name); err != nil {
							logger.Warn("Cannot watch %s: %v", ev.Name, err)
						}
					}
				}
				select {
				case changes <- ev.Name:
				case <-ctx.Done():
					return
				}

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// relevant reports whether ev can change the index.
func relevant(ev fsnotify.Event) bool {
	return ev.Op != fsnotify.Chmod
}

// addTree watches dir and every directory below it. Only a
// failure on dir itself is returned.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			logger.Warn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			if path == dir {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			logger.Warn("Cannot watch %s: %v", path, err)
			return fs.SkipDir
		}
		return nil
	})
}
