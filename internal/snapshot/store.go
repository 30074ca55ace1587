package snapshot

import (
	"context"
	"errors"
)

// SelectionKey is the fixed key the kiosk selection is saved under.
const SelectionKey = "selectedItems"

var ErrNotFound = errors.New("snapshot not found")

// Store is a key-value store scoped by namespace. Put overwrites.
type Store interface {
	Put(ctx context.Context, namespace, key string, value []byte) error
	Get(ctx context.Context, namespace, key string) ([]byte, error)
}
