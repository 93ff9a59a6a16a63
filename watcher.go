package reflux

import "context"

// Watcher observes a snapshot source and emits raw snapshot bytes on a
// channel. SnapshotWatcher is the file-backed implementation; custom
// implementations can feed rehydration from any source that produces
// encoded state.
type Watcher interface {
	// Watch begins observing the source and returns a channel that emits
	// raw snapshot bytes when the source changes. The channel is closed
	// when the context is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}
