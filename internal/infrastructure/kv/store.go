// internal/infrastructure/kv/store.go
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("kv: key not found")

// Store is the key-value persistence contract used to mirror session state.
// Values are opaque strings; callers own serialization. Writes are
// last-write-wins, no merge.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
