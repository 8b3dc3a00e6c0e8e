package intern

import "sync"

// Table is a generic thread-safe interning table: at most one value
// ever exists per key, created on first request and kept until Clear.
//
// Unlike an LRU cache, a Table never evicts. Interned values are handed
// out as non-owning references, so dropping one behind the holder's
// back would dangle it; the holder of the Table decides when the whole
// set can go.
//
// Table is safe for concurrent use.
// Table must not be copied after creation (has mutex).
type Table[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
	hits    uint64
	misses  uint64
}

// New creates an empty table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves an interned value.
// Returns (value, true) if present, (zero, false) otherwise.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[key]
	if ok {
		t.hits++
	} else {
		t.misses++
	}
	return v, ok
}

// GetOrCreate returns the interned value for key, calling create to
// make it on first request. create runs under the table lock so a key
// is never created twice; if create fails, nothing is interned and the
// error is returned.
func (t *Table[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.entries[key]; ok {
		t.hits++
		return v, nil
	}
	t.misses++

	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	t.entries[key] = v
	return v, nil
}

// Range calls fn for every interned entry. The table lock is held for
// the whole iteration; fn must not call back into the table.
func (t *Table[K, V]) Range(fn func(key K, value V)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k, v := range t.entries {
		fn(k, v)
	}
}

// Clear drops every entry. The caller is responsible for having
// released whatever the values refer to.
func (t *Table[K, V]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[K]V)
}

// Len returns the number of interned entries.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Stats contains table statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that had to create (or failed to
	// find) an entry.
	Misses uint64
}

// Stats returns table statistics.
func (t *Table[K, V]) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		Len:    len(t.entries),
		Hits:   t.hits,
		Misses: t.misses,
	}
}
