// Package registry provides typed, cheap-to-copy opaque handles and the
// process-wide tables that map them to owning records. Generalized from
// hal/registry.go's lock-protected-map-plus-accessor-function pattern
// (there used once for backend registration) into a generic Table[T]
// usable per object kind, with a monotonic counter seeded at 1 so that 0
// stays reserved for NULL.
package registry

import (
	"sync"
	"sync/atomic"

	"github.com/LynnColeArt/kronos-compute/kerr"
)

// Table holds every live record of one object kind behind a single
// RWMutex. Handles are allocated from a monotonically increasing counter
// and are never reused within the table's lifetime, per spec.md §3's
// Handle<T> invariant.
type Table[T any] struct {
	mu      sync.RWMutex
	counter atomic.Uint64
	records map[uint64]T
}

// NewTable builds an empty table whose first issued handle is 1.
func NewTable[T any]() *Table[T] {
	t := &Table[T]{records: make(map[uint64]T)}
	t.counter.Store(1)
	return t
}

// Insert stores rec under a freshly allocated handle and returns it.
func (t *Table[T]) Insert(rec T) uint64 {
	h := t.counter.Add(1) - 1
	t.mu.Lock()
	t.records[h] = rec
	t.mu.Unlock()
	return h
}

// Lookup returns a copy of the record stored under h. The bool result is
// false for handle 0 or any handle not currently present, which callers
// translate to kerr.ErrUnknownHandle.
func (t *Table[T]) Lookup(h uint64) (T, bool) {
	var zero T
	if h == 0 {
		return zero, false
	}
	t.mu.RLock()
	rec, ok := t.records[h]
	t.mu.RUnlock()
	return rec, ok
}

// MustLookup is Lookup wrapped as a kerr.Error for call sites that want to
// return early on a miss without repeating the translation.
func (t *Table[T]) MustLookup(subsystem, operation string, h uint64) (T, error) {
	rec, ok := t.Lookup(h)
	if !ok {
		return rec, kerr.New(kerr.CategoryProtocol, subsystem, operation, kerr.ErrUnknownHandle)
	}
	return rec, nil
}

// Remove deletes the record under h. A remove of an already-absent handle
// is a double-free; spec.md §4.1 says this is "detected and ignored with a
// warning" rather than treated as fatal, so Remove reports whether h was
// actually present and leaves logging the warning to the caller (which
// knows the subsystem name to tag the log line with).
func (t *Table[T]) Remove(h uint64) (T, bool) {
	var zero T
	if h == 0 {
		return zero, false
	}
	t.mu.Lock()
	rec, ok := t.records[h]
	if ok {
		delete(t.records, h)
	}
	t.mu.Unlock()
	return rec, ok
}

// Update replaces the record under h in place, used by subsystems that
// mutate a record's small fields (e.g. a dispatch-table snapshot swap)
// without reallocating the handle. Returns false if h is absent.
func (t *Table[T]) Update(h uint64, rec T) bool {
	if h == 0 {
		return false
	}
	t.mu.Lock()
	_, ok := t.records[h]
	if ok {
		t.records[h] = rec
	}
	t.mu.Unlock()
	return ok
}

// Len reports the number of live records, mainly for tests and metrics.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	n := len(t.records)
	t.mu.RUnlock()
	return n
}

// Range calls fn for every live record. fn must not call back into the
// table (Insert/Remove/Update) — Range holds the read lock for its
// duration.
func (t *Table[T]) Range(fn func(handle uint64, rec T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for h, rec := range t.records {
		if !fn(h, rec) {
			return
		}
	}
}
