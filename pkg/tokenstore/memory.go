package tokenstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Credentials held here do not survive a
// restart, which is exactly what a non-remembered session wants.
type Memory struct {
	mu   sync.RWMutex
	cred Credential
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cred, nil
}

func (m *Memory) Set(_ context.Context, cred Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = cred
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = Credential{}
	return nil
}
