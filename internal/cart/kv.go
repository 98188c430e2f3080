package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound : aucune valeur persistée pour cette clé
var ErrNotFound = errors.New("clé absente")

// KV est le port de persistance du panier : un stockage clé/valeur injecté,
// jamais accédé de façon ambiante. L'implémentation Redis vit dans redis.go ;
// MemoryKV sert au développement sans Redis et aux tests.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// MemoryKV est un KV en mémoire, sûr pour un accès concurrent
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
