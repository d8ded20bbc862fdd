package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/auth"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cache"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cart"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/likes"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/site"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/tenant"
)

const tabCachePrefix = "tab:"

// Tab is one remote client tab: its navigation history and its store.
type Tab struct {
	ID      string
	History *tenant.History
	Store   *Store
}

// Shared holds the collaborators every tab is built from.
type Shared struct {
	Loader  *site.Loader
	Backend repository.DocumentStore
	Auth    *auth.Service
	Cart    *cart.Service
	Likes   *likes.Tracker
	Log     *logrus.Entry
}

// Registry keeps open tabs in a TTL cache. A tab that is not used for the
// cache ttl is closed by the sweep.
type Registry struct {
	tabs   *cache.Cache
	shared Shared
	log    *logrus.Entry
}

// NewRegistry keeps tabs in tabs and closes their stores when they expire.
func NewRegistry(tabs *cache.Cache, shared Shared) *Registry {
	if shared.Log == nil {
		shared.Log = logger.WithComponent("session")
	}
	r := &Registry{tabs: tabs, shared: shared, log: shared.Log}
	tabs.OnEvict(func(key string, value any) {
		if tab, ok := value.(*Tab); ok {
			tab.Store.Close()
			r.log.WithField("session_id", tab.ID).Debug("idle session closed")
		}
	})
	return r
}

// Open creates a tab at path. A non-empty token restores the identity it was
// issued to; a token that cannot be restored fails the open.
func (r *Registry) Open(ctx context.Context, path, token string) (*Tab, error) {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, logger.SessionIDKey, id)

	history := tenant.NewHistory(path)
	store := New(ctx, Deps{
		Loader:   r.shared.Loader,
		Backend:  r.shared.Backend,
		Auth:     auth.NewClient(r.shared.Auth),
		Resolver: tenant.NewResolver(history),
		Cart:     r.shared.Cart,
		Likes:    r.shared.Likes,
		Local:    cart.NewMemoryLocal(),
		Log:      r.shared.Log.WithField("session_id", id),
	})
	if token != "" {
		if _, err := store.Restore(ctx, token); err != nil {
			store.Close()
			return nil, fmt.Errorf("restore session: %w", err)
		}
	}

	tab := &Tab{ID: id, History: history, Store: store}
	r.tabs.Set(tabCachePrefix+id, tab)
	return tab, nil
}

// Get returns a live tab and extends its lifetime.
func (r *Registry) Get(id string) (*Tab, bool) {
	value, ok := r.tabs.GetValue(tabCachePrefix + id)
	if !ok {
		return nil, false
	}
	tab, ok := value.(*Tab)
	if !ok {
		return nil, false
	}
	r.tabs.Touch(tabCachePrefix + id)
	return tab, true
}

// Close closes a tab. It reports false when the tab was not open.
func (r *Registry) Close(id string) bool {
	tab, ok := r.Get(id)
	if !ok {
		return false
	}
	r.tabs.Delete(tabCachePrefix + id)
	tab.Store.Close()
	return true
}
