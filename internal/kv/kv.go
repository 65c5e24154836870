// Package kv defines the durable key-value storage used for cart snapshots.
//
// The interface mirrors the narrow contract the storefront needs from its
// persistence layer: get, set and delete of a single opaque value per key.
// Implementations live in internal/storage.
package kv

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// Store is a scoped key-value store surviving process restarts.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
