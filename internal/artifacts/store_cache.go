package artifacts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"resume-generator/internal/shared/storage/object"
)

// StoreCache keeps artifacts in an object store (local disk or S3). Entries do
// not expire here; bucket lifecycle rules or a cron prune old keys.
type StoreCache struct {
	Store object.ObjectStore
	Label string
}

// NewStoreCache wraps store. label names the backend in logs.
func NewStoreCache(store object.ObjectStore, label string) *StoreCache {
	return &StoreCache{Store: store, Label: label}
}

func (c *StoreCache) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := c.Store.Open(ctx, key)
	if errors.Is(err, object.ErrNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrMiss
	}
	return data, nil
}

func (c *StoreCache) Put(ctx context.Context, key string, pdf []byte) error {
	if _, err := c.Store.Put(ctx, key, ContentType, bytes.NewReader(pdf)); err != nil {
		return fmt.Errorf("store artifact: %w", err)
	}
	return nil
}

func (c *StoreCache) Name() string {
	if c.Label == "" {
		return "store"
	}
	return c.Label
}
