package store

import (
	"context"
	"sync"
)

// Memory keeps collections in process memory. It backs tests and serves as
// the runtime medium when no database is reachable at boot, which keeps the
// service usable in demo mode.
type Memory struct {
	mu          sync.Mutex
	collections map[string][]byte
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]byte)}
}

// ReadCollection decodes the named collection into out.
func (m *Memory) ReadCollection(ctx context.Context, name string, out interface{}) error {
	m.mu.Lock()
	data := m.collections[name]
	m.mu.Unlock()
	return unmarshalRecords(data, out)
}

// WriteCollection replaces the named collection.
func (m *Memory) WriteCollection(ctx context.Context, name string, records interface{}) error {
	payload, err := marshalRecords(records)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.collections[name] = payload
	m.mu.Unlock()
	return nil
}
