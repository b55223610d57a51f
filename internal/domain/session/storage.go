package session

import (
	"context"
	"errors"
)

// ErrClosed is returned by a backend after Close
var ErrClosed = errors.New("storage closed")

// Storage is a namespaced string key/value store
type Storage interface {
	Get(ctx context.Context, ns, key string) (string, bool, error)
	Set(ctx context.Context, ns, key, value string) error
	Delete(ctx context.Context, ns, key string) error
	Close() error
}

// KV is a Storage bound to one namespace
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Namespace binds a Storage to one visitor
type Namespace struct {
	storage Storage
	ns      string
}

// Bind returns the view of storage scoped to ns
func Bind(storage Storage, ns string) Namespace {
	return Namespace{storage: storage, ns: ns}
}

func (n Namespace) Get(ctx context.Context, key string) (string, bool, error) {
	return n.storage.Get(ctx, n.ns, key)
}

func (n Namespace) Set(ctx context.Context, key, value string) error {
	return n.storage.Set(ctx, n.ns, key, value)
}

func (n Namespace) Delete(ctx context.Context, key string) error {
	return n.storage.Delete(ctx, n.ns, key)
}
