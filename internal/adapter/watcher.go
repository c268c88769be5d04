package adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// Watcher reports changes to a file until its context is cancelled.
type Watcher interface {
	Watch(ctx context.Context, path m.Path, onChange func()) error
}

// FSWatcher watches files with fsnotify. A burst of events collapses into
// one callback, fired once the file has been quiet for Debounce.
type FSWatcher struct {
	Debounce time.Duration
}

// NewFSWatcher constructs an FSWatcher with a 100ms debounce.
func NewFSWatcher() *FSWatcher {
	return &FSWatcher{Debounce: 100 * time.Millisecond}
}

// Watch calls onChange after path is written or re-created. onChange runs
// on the calling goroutine. The parent
// directory is watched so editors that replace files are noticed too.
func (w *FSWatcher) Watch(ctx context.Context, path m.Path, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(string(path))
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	quiet := time.NewTimer(w.Debounce)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}

			quiet.Reset(w.Debounce)
		case <-quiet.C:
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}
