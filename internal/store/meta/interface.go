package meta

import "context"

// Repository is a small key/value store for sync bookkeeping that must
// survive restarts (e.g. the last successful sync time).
type Repository interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces a value.
	Set(ctx context.Context, key, value string) error
}

// KeyLastSync holds the RFC 3339 time of the last successful sync run.
const KeyLastSync = "last_sync"
