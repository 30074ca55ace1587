package snapshot

import (
	"context"
	"errors"
	"path"
	"strings"

	"kiosk/internal/storage"
)

// ObjectClient is the subset of storage.R2Client the object store needs.
type ObjectClient interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// ObjectStore keeps each snapshot as <prefix>/<namespace>/<key>.json.
type ObjectStore struct {
	client ObjectClient
	prefix string
}

func NewObjectStore(client ObjectClient, prefix string) *ObjectStore {
	return &ObjectStore{client: client, prefix: strings.Trim(prefix, "/")}
}

func (s *ObjectStore) objectKey(namespace, key string) string {
	return path.Join(s.prefix, namespace, key+".json")
}

func (s *ObjectStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	return s.client.PutObject(ctx, s.objectKey(namespace, key), value, "application/json")
}

func (s *ObjectStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	value, err := s.client.GetObject(ctx, s.objectKey(namespace, key))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}
