package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoStorage is returned when a Session is used without a backing Storage.
var ErrNoStorage = errors.New("session storage not configured")

// Storage is the persisted key-value state a session lives in. Values survive
// until removed; implementations never expire them on their own.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

type namespaced struct {
	prefix string
	inner  Storage
}

// Namespaced scopes every key of inner under one browser id so many browsers
// can share a store.
func Namespaced(inner Storage, browserID string) Storage {
	return &namespaced{prefix: browserID + ":", inner: inner}
}

func (n *namespaced) GetItem(ctx context.Context, key string) (string, bool, error) {
	return n.inner.GetItem(ctx, n.prefix+key)
}

func (n *namespaced) SetItem(ctx context.Context, key, value string) error {
	return n.inner.SetItem(ctx, n.prefix+key, value)
}

func (n *namespaced) RemoveItem(ctx context.Context, key string) error {
	return n.inner.RemoveItem(ctx, n.prefix+key)
}
