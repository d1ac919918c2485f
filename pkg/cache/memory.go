// pkg/cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"
)

type item struct {
	value      []byte
	expiration int64
}

// Memory is an in-process Store. It backs tests and cache-less deployments;
// production uses the Redis-backed store.
type Memory struct {
	items map[string]item
	mu    sync.RWMutex
}

func NewMemory() *Memory {
	m := &Memory{
		items: make(map[string]item),
	}
	go m.startGC()
	return m
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = item{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, found := m.items[key]
	if !found {
		return nil, false, nil
	}

	if time.Now().UnixNano() > it.expiration {
		return nil, false, nil
	}

	return it.value, true, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) startGC() {
	ticker := time.NewTicker(time.Minute)
	for {
		<-ticker.C
		m.mu.Lock()
		for k, v := range m.items {
			if time.Now().UnixNano() > v.expiration {
				delete(m.items, k)
			}
		}
		m.mu.Unlock()
	}
}
