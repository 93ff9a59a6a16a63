package reflux

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// SnapshotWatcher watches a snapshot file and emits its contents whenever
// the file is rewritten. It powers cross-process rehydration: several
// stores persisting to the same file converge on the last written state.
type SnapshotWatcher struct {
	path string
}

// NewSnapshotWatcher creates a SnapshotWatcher for the given file path.
// The file's directory must exist; the file itself may not yet.
func NewSnapshotWatcher(path string) *SnapshotWatcher {
	return &SnapshotWatcher{path: path}
}

// Watch begins watching the file and returns a channel that emits the file
// contents whenever the file is written or created. The channel is closed
// when the context is canceled.
//
// The watch is established on the file's directory rather than the file:
// snapshots are saved by renaming a fresh file over the path, which
// replaces the inode a direct file watch would be pinned to.
func (w *SnapshotWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch snapshot directory %s: %w", dir, err)
	}

	base := filepath.Base(w.path)
	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Base(event.Name) != base {
					continue
				}

				// Only emit on write or create events; a rename onto the
				// path surfaces as a create in the directory.
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				data, err := os.ReadFile(w.path)
				if err != nil {
					continue
				}

				select {
				case out <- data:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return out, nil
}
