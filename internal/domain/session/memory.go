package session

import (
	"context"
	"sync"
	"sync/atomic"
)

// Memory keeps entries in process memory
type Memory struct {
	entries sync.Map
	closed  atomic.Bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

type memKey struct {
	ns, key string
}

func (m *Memory) Get(ctx context.Context, ns, key string) (string, bool, error) {
	if m.closed.Load() {
		return "", false, ErrClosed
	}
	v, ok := m.entries.Load(memKey{ns, key})
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (m *Memory) Set(ctx context.Context, ns, key, value string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.entries.Store(memKey{ns, key}, value)
	return nil
}

func (m *Memory) Delete(ctx context.Context, ns, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.entries.Delete(memKey{ns, key})
	return nil
}

func (m *Memory) Close() error {
	m.closed.Store(true)
	return nil
}
