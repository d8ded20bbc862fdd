package cart

import "sync"

// LocalStorage is the tab-local string store guest carts live in.
type LocalStorage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)
}

type MemoryLocal struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryLocal creates empty tab storage.
func NewMemoryLocal() *MemoryLocal {
	return &MemoryLocal{items: make(map[string]string)}
}

func (m *MemoryLocal) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryLocal) SetItem(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

func (m *MemoryLocal) RemoveItem(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}
