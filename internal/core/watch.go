package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// How long to wait after the last change before rebuilding
const watchDebounce = 500 * time.Millisecond

// Watch rebuilds the manifest each time a post changes, until the context is canceled.
// The callback receives the result of every rebuild.
func (b *Builder) Watch(ctx context.Context, onBuild func(*Manifest, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// fsnotify is not recursive: add each directory
	root := b.config.ContentDir()
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			CurrentLogger().Warnf("Error walking %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				CurrentLogger().Warnf("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	CurrentLogger().Infof("Watching %s for changes...", root)

	var mu sync.Mutex
	var buildTimer *time.Timer
	rebuild := func() {
		manifest, err := b.Build(ctx)
		if err == nil {
			err = b.Write(manifest)
		}
		onBuild(manifest, err)
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if buildTimer != nil {
				buildTimer.Stop()
			}
			mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if b.ignoreEvent(event.Name) {
				continue
			}
			CurrentLogger().Debugf("Change detected: %s (%s)", event.Name, event.Op.String())

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					CurrentLogger().Warnf("Failed to watch %s: %v", event.Name, err)
				}
			}

			mu.Lock()
			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(watchDebounce, rebuild)
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			CurrentLogger().Warnf("Watcher error: %v", err)
		}
	}
}

// ignoreEvent filters the changes made by the builder itself.
func (b *Builder) ignoreEvent(path string) bool {
	if path == b.config.ManifestPath() {
		return true
	}
	// Temporary files created by atomic writes
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}
