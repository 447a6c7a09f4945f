package roster

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
)

const notifyOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Notify emits a signal whenever the roster file at path is touched.
// Signals are coalesced: at most one is pending at a time. The directory is
// watched instead of the file so editors that replace the file keep working.
// The channel is closed when ctx is done.
func Notify(ctx context.Context, path string, logger *pterm.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = &pterm.DefaultLogger
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roster path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&notifyOps == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("File watcher error", logger.Args("path", target, "error", err))
			}
		}
	}()

	return changes, nil
}
