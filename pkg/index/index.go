// Package index implements the key index (C3): an append-only set of keys
// for one (remote, bucket) pair, with a monotone sequence counter, mutated
// by the indexer task and read by the navigation, search, and deletion
// engines (spec.md §3, §4.3).
package index

import "sync"

// SnapshotView is a consistent, non-blocking read view of the index at a
// given sequence counter value (spec.md §4.3 "snapshot"). It is cheap to
// produce: Index.Snapshot copies only the slice header under its mutex, not
// the backing array, which is safe because the index only ever appends to
// or wholesale-replaces that array, never mutates an entry in place.
type SnapshotView struct {
	keys     []string
	Complete bool
	Err      error
}

// Keys returns the keys visible in this snapshot, in insertion order.
// Callers must not mutate the returned slice.
func (v SnapshotView) Keys() []string { return v.keys }

// Len is the number of keys visible in this snapshot.
func (v SnapshotView) Len() int { return len(v.keys) }

// Index is the append-only key set for one (remote, bucket) pair. All
// fields are guarded by a single mutex; critical sections are bounded by
// one page's worth of insertions, matching spec.md §9's design note that a
// mutex-guarded structure is acceptable as long as readers never observe
// torn state and the sequence counter advances atomically with insertion.
type Index struct {
	mu       sync.Mutex
	keys     []string
	set      map[string]struct{}
	seq      uint64
	complete bool
	err      error
}

// New creates an empty index for a freshly entered (remote, bucket) pair.
// Switching buckets constructs a new Index rather than resetting an
// existing one (spec.md §4.3 "discards the index... before constructing a
// new one"), so the old index's snapshots remain valid for any reader
// still holding one from the previous epoch.
func New() *Index {
	return &Index{set: make(map[string]struct{})}
}

// Insert adds key if not already present, bumping the sequence counter.
// Idempotent: returns whether the key was new (spec.md §4.3).
func (idx *Index) Insert(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.set[key]; exists {
		return false
	}
	idx.set[key] = struct{}{}
	idx.keys = append(idx.keys, key)
	idx.seq++
	return true
}

// RemoveMany deletes keys from the index, used only by the deletion engine
// after a delete-batch resolves (spec.md §4.3, §4.7.4). It rebuilds the key
// slice rather than mutating in place, so snapshots taken before the
// removal remain valid views of the prior state.
func (idx *Index) RemoveMany(keys []string) {
	if len(keys) == 0 {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	toRemove := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := idx.set[k]; ok {
			toRemove[k] = struct{}{}
			delete(idx.set, k)
		}
	}
	if len(toRemove) == 0 {
		return
	}
	newKeys := make([]string, 0, len(idx.keys)-len(toRemove))
	for _, k := range idx.keys {
		if _, removed := toRemove[k]; !removed {
			newKeys = append(newKeys, k)
		}
	}
	idx.keys = newKeys
	idx.seq++
}

// Snapshot produces a consistent observer view plus the sequence counter at
// the moment it was taken. Readers must not hold a snapshot across a
// suspension point that could let the indexer advance; if they need to
// re-evaluate afterward, they re-snapshot (spec.md §4.3).
func (idx *Index) Snapshot() (uint64, SnapshotView) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.seq, SnapshotView{keys: idx.keys, Complete: idx.complete, Err: idx.err}
}

// Seq returns the current sequence counter without building a full
// snapshot, for the cheap "has anything changed since last frame" check.
func (idx *Index) Seq() uint64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.seq
}

// SetComplete flips complete to true; called by the indexer on natural
// end-of-stream (spec.md §4.3, §4.4).
func (idx *Index) SetComplete() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.complete = true
}

// SetError latches a transport error and is terminal for the indexer task
// that reported it: the task stops but the index keeps everything it has
// collected so far (spec.md §4.4 failure policy, §9 Open Question #1).
func (idx *Index) SetError(err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.err = err
}

// Len reports the current key count.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.keys)
}
