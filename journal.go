package reflux

import (
	"sync"
	"time"
)

// JournalEntry records one applied dispatch.
type JournalEntry struct {
	// Tag is the tag of the applied action.
	Tag string

	// Payload is the action's payload as dispatched.
	Payload any

	// At is the time the action was applied, per the store's clock.
	At time.Time
}

// journal is a thread-safe ring buffer of recent dispatches.
type journal struct {
	mu      sync.RWMutex
	entries []JournalEntry
	size    int
	head    int
	count   int
}

// newJournal creates a journal with the given capacity.
// If size is 0 or negative, the journal is disabled.
func newJournal(size int) *journal {
	if size <= 0 {
		return nil
	}
	return &journal{
		entries: make([]JournalEntry, size),
		size:    size,
	}
}

// record adds an entry to the journal.
func (j *journal) record(entry JournalEntry) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[j.head] = entry
	j.head = (j.head + 1) % j.size
	if j.count < j.size {
		j.count++
	}
}

// clear removes all entries from the journal.
func (j *journal) clear() {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	for i := range j.entries {
		j.entries[i] = JournalEntry{}
	}
	j.head = 0
	j.count = 0
}

// all returns all entries in the journal, oldest first.
func (j *journal) all() []JournalEntry {
	if j == nil {
		return nil
	}
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.count == 0 {
		return nil
	}

	result := make([]JournalEntry, j.count)
	start := (j.head - j.count + j.size) % j.size
	for i := 0; i < j.count; i++ {
		result[i] = j.entries[(start+i)%j.size]
	}
	return result
}
