// Package savelock refuses a second save for the same application while one is in flight.
package savelock

import (
	"context"
	"errors"
	"sync"
)

// ErrLocked is returned by Acquire when the key is already held.
var ErrLocked = errors.New("savelock: key is held by another save")

// Guard hands out exclusive, non-blocking holds on a key.
type Guard interface {
	// Acquire takes the key or fails with ErrLocked. The returned release is idempotent.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Memory is a process-local Guard.
type Memory struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{held: make(map[string]struct{})}
}

func (m *Memory) Acquire(_ context.Context, key string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.held[key]; ok {
		return nil, ErrLocked
	}
	m.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.held, key)
			m.mu.Unlock()
		})
	}, nil
}
