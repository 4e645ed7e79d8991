// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Storage is the string-keyed cache store shared by the network cache layer
// and the analysis result cache. Implementations must make Put atomic per
// key: a crash mid-write must never leave a partially written record.
//
// Concurrent writers to the same key resolve last-writer-wins, which is
// acceptable because all writers for a key compute the same value from the
// same upstream source.
type Storage interface {
	// Get returns the record stored under key, or nil if none exists.
	// A nil result with nil error means "no record"; absence is not an error.
	Get(key string) ([]byte, error)

	// Put stores value under key, overwriting any prior record wholesale.
	Put(key string, value []byte) error

	// Delete removes the record under key.
	// Idempotent: deleting a nonexistent key is not an error.
	Delete(key string) error

	// Keys returns all stored keys with the given prefix, in no
	// particular order. Used by cache eviction sweeps.
	Keys(prefix string) ([]string, error)
}
