package tenant

import (
	"context"
	"sync"
)

// History is the navigation stack of one tab. Every change of the current
// entry is delivered to subscribers once, in order.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
	nextID  int
	subs    map[int]func(ctx context.Context, path string)
}

// NewHistory creates a history positioned at initial.
func NewHistory(initial string) *History {
	if initial == "" {
		initial = "/"
	}
	return &History{
		entries: []string{initial},
		subs:    make(map[int]func(context.Context, string)),
	}
}

// Current returns the path at the current position.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Subscribe registers fn and returns a function that removes it.
func (h *History) Subscribe(fn func(ctx context.Context, path string)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Push drops any forward entries and appends path.
func (h *History) Push(ctx context.Context, path string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index = len(h.entries) - 1
	h.mu.Unlock()
	h.notify(ctx, path)
}

// Replace swaps the current entry for path and notifies listeners.
func (h *History) Replace(ctx context.Context, path string) {
	h.mu.Lock()
	h.entries[h.index] = path
	h.mu.Unlock()
	h.notify(ctx, path)
}

// Back reports false when there is no earlier entry.
func (h *History) Back(ctx context.Context) bool {
	return h.move(ctx, -1)
}

// Forward reports false when there is no later entry.
func (h *History) Forward(ctx context.Context) bool {
	return h.move(ctx, 1)
}

func (h *History) move(ctx context.Context, delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	path := h.entries[next]
	h.mu.Unlock()

	h.notify(ctx, path)
	return true
}

func (h *History) notify(ctx context.Context, path string) {
	h.mu.Lock()
	subs := make([]func(context.Context, string), 0, len(h.subs))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(ctx, path)
	}
}
