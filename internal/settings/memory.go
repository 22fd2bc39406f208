// ABOUTME: In-memory settings store.
// ABOUTME: Used by tests and by the memory backend, which writes nothing to disk.
package settings

import (
	"strconv"
	"sync"
)

// MemoryStore is a Store held in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	image   []byte
	session *Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store, as on a first launch.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) GetBool(key string, def bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, err
	}
	return v, nil
}

func (m *MemoryStore) SetBool(key string, v bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = strconv.FormatBool(v)
	return nil
}

func (m *MemoryStore) Image() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.image == nil {
		return nil, nil
	}
	return append([]byte(nil), m.image...), nil
}

func (m *MemoryStore) SetImage(data []byte) error {
	if err := ValidateImage(data); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) ClearImage() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = nil
	return nil
}

func (m *MemoryStore) TimerSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	s := *m.session
	return &s, nil
}

func (m *MemoryStore) SaveTimerSession(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.session = &cp
	return nil
}

func (m *MemoryStore) ClearTimerSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *MemoryStore) Close() error { return nil }
