// Package kv provides the key/value repository backing the client's durable
// state: the cached code set and the persistent client ID.
package kv

import "context"

type Repository interface {
	// Get returns the value stored under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
