// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been set or was removed.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the string key-value operations the persistence gateway needs.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// Redis, memory) without changing the invoice store.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
