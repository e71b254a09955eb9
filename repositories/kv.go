package repositories

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the namespace/key pair has no
// stored value.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the opaque key/value store the finalist data is persisted
// in. Values are opaque byte blobs keyed by a namespace (the storage
// prefix) and a key within it.
type KVStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	ClearNamespace(ctx context.Context, namespace string) error
}
