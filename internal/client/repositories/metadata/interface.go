// Package metadata is a small durable key-value store for client state,
// backed by SQLite. The persisted session (token, user record) lives here.
package metadata

import (
	"context"
)

// Repository stores opaque values under string keys.
// Get returns (nil, nil) when the key does not exist.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
