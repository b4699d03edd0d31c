// Package kvstore is the string key-value store that portfolio state and
// favorites are persisted to.
package kvstore

import "context"

// Store is an asynchronous string key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all entries. Implementations that support it commit
	// them atomically.
	SetMany(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, key string) error
}
