package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

type memCollection struct {
	docs  map[string]map[string]any
	order []string
}

// MemoryStore keeps documents in process memory. Queries return documents
// in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

func (s *MemoryStore) GetDocument(ctx context.Context, collection, key string) (Document, error) {
	if err := validCollection(collection); err != nil {
		return Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	data, ok := c.docs[key]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{Key: key, Data: clone(data)}, nil
}

func (s *MemoryStore) SetDocument(ctx context.Context, collection, key string, data map[string]any, merge bool) error {
	if err := validCollection(collection); err != nil {
		return err
	}
	copied, err := plain(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	existing, ok := c.docs[key]
	if !ok {
		c.order = append(c.order, key)
		c.docs[key] = copied
		return nil
	}
	if !merge {
		c.docs[key] = copied
		return nil
	}
	for field, value := range copied {
		existing[field] = value
	}
	return nil
}

func (s *MemoryStore) QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}
	want, err := plainValue(value)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return []Document{}, nil
	}
	out := make([]Document, 0)
	for _, key := range c.order {
		data := c.docs[key]
		if got, ok := data[field]; ok && reflect.DeepEqual(got, want) {
			out = append(out, Document{Key: key, Data: clone(data)})
		}
	}
	return out, nil
}

func (s *MemoryStore) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	key := uuid.NewString()
	if err := s.SetDocument(ctx, collection, key, data, false); err != nil {
		return "", err
	}
	return key, nil
}

func (s *MemoryStore) DeleteDocument(ctx context.Context, collection, key string) error {
	if err := validCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil
	}
	if _, ok := c.docs[key]; !ok {
		return nil
	}
	delete(c.docs, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports how many documents a collection holds.
func (s *MemoryStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.collections[collection]; ok {
		return len(c.docs)
	}
	return 0
}

func (s *MemoryStore) collection(name string) *memCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

// plain normalizes caller data to the same shapes a backend round trip yields.
func plain(data map[string]any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	return out, nil
}

func plainValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("query value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("query value: %w", err)
	}
	return out, nil
}

func clone(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return clone(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return t
	}
}
