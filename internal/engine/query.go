package engine

import "sync"

// QueryEngine is the copy-on-write cache sitting at the edge of the
// compiler core for language-server style use: a shared, immutable
// snapshot plus a thread-local overlay that is promoted into the snapshot
// only by an explicit Commit. Cancellation simply drops the overlay.
//
// This is the one place in the compiler where more than one goroutine is
// expected to touch shared state concurrently; everywhere else the core
// runs single-threaded.
type QueryEngine[K comparable, V any] struct {
	mu sync.RWMutex
	snapshot map[K]V
}

// NewQueryEngine returns an engine with an empty snapshot.
func NewQueryEngine[K comparable, V any]() *QueryEngine[K, V] {
	return &QueryEngine[K, V]{snapshot: make(map[K]V)}
}

// Overlay is a writable, thread-local view over a QueryEngine's snapshot.
// Reads fall through to the snapshot when the key hasn't been overlaid.
type Overlay[K comparable, V any] struct {
	engine *QueryEngine[K, V]
	pending map[K]V
	dropped map[K]struct{}
}

// Begin opens a new overlay over the engine's current snapshot.
func (e *QueryEngine[K, V]) Begin() *Overlay[K, V] {
	return &Overlay[K, V]{engine: e, pending: make(map[K]V), dropped: make(map[K]struct{})}
}

// Get reads k, preferring the overlay's pending writes over the snapshot.
func (o *Overlay[K, V]) Get(k K) (V, bool) {
	if _, gone := o.dropped[k]; gone {
		var zero V
		return zero, false
	}
	if v, ok := o.pending[k]; ok {
		return v, true
	}
	o.engine.mu.RLock()
	defer o.engine.mu.RUnlock()
	v, ok := o.engine.snapshot[k]
	return v, ok
}

// Set stages a write in the overlay, invisible to other overlays until
// Commit.
func (o *Overlay[K, V]) Set(k K, v V) {
	delete(o.dropped, k)
	o.pending[k] = v
}

// Delete stages a removal.
func (o *Overlay[K, V]) Delete(k K) {
	delete(o.pending, k)
	o.dropped[k] = struct{}{}
}

// Commit promotes every staged write/delete into the engine's shared
// snapshot under the engine's write lock, then clears the overlay.
func (o *Overlay[K, V]) Commit() {
	o.engine.mu.Lock()
	defer o.engine.mu.Unlock()
	for k, v := range o.pending {
		o.engine.snapshot[k] = v
	}
	for k := range o.dropped {
		delete(o.engine.snapshot, k)
	}
	o.pending = make(map[K]V)
	o.dropped = make(map[K]struct{})
}

// Cancel discards every staged write/delete without touching the shared
// snapshot.
func (o *Overlay[K, V]) Cancel() {
	o.pending = make(map[K]V)
	o.dropped = make(map[K]struct{})
}
