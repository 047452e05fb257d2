// Package handles maps Go values to integer handles that can be handed to C
// as an opaque pointer and resolved again inside a callback.
//
// Go pointers may not be stored in C memory, so AVIO callbacks receive a
// handle instead and look the owning value up here.
package handles

import "sync"

// Table is a concurrency-safe handle table for values of type T.
// The zero value is not usable; call New.
type Table[T any] struct {
	mu     sync.RWMutex
	values map[uintptr]T
	next   uintptr
}

// New returns an empty table. Handles start at 1 so that 0 never
// resolves and can be used as "no handle".
func New[T any]() *Table[T] {
	return &Table[T]{values: make(map[uintptr]T), next: 1}
}

// Put stores v and returns its handle. v stays reachable until Delete.
func (t *Table[T]) Put(v T) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.next
	t.next++
	t.values[id] = v
	return id
}

// Get returns the value for id and whether it was present.
func (t *Table[T]) Get(id uintptr) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.values[id]
	return v, ok
}

// Delete forgets id. Deleting an unknown id is a no-op.
func (t *Table[T]) Delete(id uintptr) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.values, id)
}

// Len returns the number of live handles. Tests use it to detect leaks.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}
