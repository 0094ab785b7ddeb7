// Package storage defines the key-value persistence port used by all repos,
// with in-memory and Postgres implementations. The port mirrors the simple
// get/set/remove surface the data model was designed around, so core logic
// stays testable without a database.
package storage

import "context"

// Store is the persistence port. Values are opaque byte slices; callers own
// serialization. Get reports presence separately from errors so a missing
// key is not an error condition.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes the value for key, creating or replacing it.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys beginning with prefix, in lexicographic order.
	List(ctx context.Context, prefix string) ([]string, error)
}
