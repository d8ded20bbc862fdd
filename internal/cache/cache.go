package cache

import (
	"encoding/json"
	"sync"
	"time"
)

type Item struct {
	Value      any
	Expiration int64
}

// Cache is a TTL map. Expired items are invisible to readers and are
// removed by a background sweep until Close is called.
type Cache struct {
	items map[string]Item
	mu    sync.RWMutex
	ttl   time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	onEvict  func(key string, value any)
}

// New creates a cache and starts its sweep, which runs every sweepEvery
// (the default ttl is used when sweepEvery is zero).
func New(defaultTTL, sweepEvery time.Duration) *Cache {
	if sweepEvery <= 0 {
		sweepEvery = defaultTTL
	}
	c := &Cache{
		items: make(map[string]Item),
		ttl:   defaultTTL,
		stop:  make(chan struct{}),
	}
	go c.cleanupExpired(sweepEvery)
	return c
}

// OnEvict registers a callback for items the sweep removes.
func (c *Cache) OnEvict(fn func(key string, value any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Set stores value for the given ttl, or the default ttl when none is given.
func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}
	c.items[key] = Item{
		Value:      value,
		Expiration: time.Now().Add(duration).UnixNano(),
	}
}

// GetValue returns a live item.
func (c *Cache) GetValue(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || time.Now().UnixNano() > item.Expiration {
		return nil, false
	}
	return item.Value, true
}

// Touch extends a live item by the default ttl.
func (c *Cache) Touch(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, found := c.items[key]
	now := time.Now()
	if !found || now.UnixNano() > item.Expiration {
		return false
	}
	item.Expiration = now.Add(c.ttl).UnixNano()
	c.items[key] = item
	return true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Close stops the background sweep.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Marshal stores value as JSON.
func (c *Cache) Marshal(key string, value any, ttl ...time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.Set(key, data, ttl...)
	return nil
}

// Unmarshal decodes a value stored by Marshal into target.
func (c *Cache) Unmarshal(key string, target any) (bool, error) {
	data, found := c.GetValue(key)
	if !found {
		return false, nil
	}
	bytes, ok := data.([]byte)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(bytes, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	now := time.Now().UnixNano()
	evicted := make(map[string]any)
	for key, item := range c.items {
		if now > item.Expiration {
			evicted[key] = item.Value
			delete(c.items, key)
		}
	}
	onEvict := c.onEvict
	c.mu.Unlock()

	if onEvict != nil {
		for key, value := range evicted {
			onEvict(key, value)
		}
	}
}
