// Package tenant works out which storefront a navigation location belongs to.
package tenant

import (
	"context"
	"strings"
	"sync"
)

const sitePrefix = "/site/"

// SlugFromPath returns the storefront slug of "/site/<slug>[/...]" paths and
// "" for every other path (admin or preview mode).
func SlugFromPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, sitePrefix) {
		return ""
	}
	rest := path[len(sitePrefix):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// Resolver follows a History and reports the active slug.
type Resolver struct {
	mu        sync.Mutex
	slug      string
	listeners []func(ctx context.Context, slug string)
	unsub     func()
}

// NewResolver starts tracking the slug of h and subscribes to its navigation.
func NewResolver(h *History) *Resolver {
	r := &Resolver{slug: SlugFromPath(h.Current())}
	r.unsub = h.Subscribe(r.observe)
	return r
}

// Slug returns the slug of the current path, or "" in admin mode.
func (r *Resolver) Slug() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slug
}

// OnChange registers fn for slug changes. Navigation inside the same
// storefront does not trigger it.
func (r *Resolver) OnChange(fn func(ctx context.Context, slug string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Close detaches the resolver from its history.
func (r *Resolver) Close() {
	if r.unsub != nil {
		r.unsub()
	}
}

func (r *Resolver) observe(ctx context.Context, path string) {
	slug := SlugFromPath(path)

	r.mu.Lock()
	if slug == r.slug {
		r.mu.Unlock()
		return
	}
	r.slug = slug
	listeners := append([]func(context.Context, string){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, slug)
	}
}
