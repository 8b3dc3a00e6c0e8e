// Package intern provides a generic interning table.
//
// # Table[K, V]
//
// A thread-safe map from key to a single canonical value, created on
// first request and never evicted:
//
//	table := intern.New[string, *Thing]()
//	thing, err := table.GetOrCreate("key", makeThing)
//
// The no-eviction policy is the point: interned values are shared by
// reference without ownership bookkeeping, so the table keeps them
// alive until the owner clears the whole set.
//
// # Thread Safety
//
// Table is safe for concurrent use. It must not be copied after
// creation (it contains a mutex).
package intern
