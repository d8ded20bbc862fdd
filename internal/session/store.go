// Package session holds the configuration draft of one tab and keeps it in
// step with navigation and sign-in state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/auth"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cart"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/likes"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/site"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/tenant"
)

type State int

const (
	StateLoading State = iota + 1
	StateReady
	StateSiteNotFound
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSiteNotFound:
		return "site_not_found"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for _, known := range []State{StateLoading, StateReady, StateSiteNotFound, StateLoadFailed} {
		if known.String() == string(text) {
			*s = known
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

var (
	ErrNoDraft = errors.New("no site configuration is loaded")
	ErrLoading = errors.New("the site is still loading")
)

// Snapshot is the observable state of a Store.
type Snapshot struct {
	State           State          `json:"state"`
	Slug            string         `json:"slug,omitempty"`
	User            *auth.Identity `json:"user"`
	Loading         bool           `json:"loading"`
	LikedProductIDs []string       `json:"likedProductIds"`
}

// Deps are the collaborators of a Store. Local holds the guest cart of the tab.
type Deps struct {
	Loader   *site.Loader
	Backend  repository.DocumentStore
	Auth     *auth.Client
	Resolver *tenant.Resolver
	Cart     *cart.Service
	Likes    *likes.Tracker
	Local    cart.LocalStorage
	Log      *logrus.Entry
}

// Store owns the single draft of a tab. Loads are started on every slug or
// identity change; only the result of the latest one is applied.
type Store struct {
	loader   *site.Loader
	backend  repository.DocumentStore
	auth     *auth.Client
	resolver *tenant.Resolver
	cart     *cart.Service
	likes    *likes.Tracker
	local    cart.LocalStorage
	log      *logrus.Entry

	mu          sync.Mutex
	generation  uint64
	draft       *models.TenantConfiguration
	loadedSlug  string
	state       State
	loading     bool
	slug        string
	user        *auth.Identity
	liked       map[string]struct{}
	subscribers map[int]func(Snapshot)
	nextSub     int
	closed      bool
}

// New wires a store to its resolver and identity client and runs the first
// load before returning.
func New(ctx context.Context, d Deps) *Store {
	if d.Log == nil {
		d.Log = logger.WithComponent("session")
	}
	if d.Local == nil {
		d.Local = cart.NewMemoryLocal()
	}
	s := &Store{
		loader:      d.Loader,
		backend:     d.Backend,
		auth:        d.Auth,
		resolver:    d.Resolver,
		cart:        d.Cart,
		likes:       d.Likes,
		local:       d.Local,
		log:         d.Log,
		state:       StateLoading,
		slug:        d.Resolver.Slug(),
		liked:       map[string]struct{}{},
		subscribers: make(map[int]func(Snapshot)),
	}
	d.Resolver.OnChange(s.onSlugChange)
	// the identity client reports the current identity right away
	d.Auth.OnIdentityChange(ctx, s.onIdentityChange)
	return s
}

// Close stops the store from reacting to further changes.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.subscribers = make(map[int]func(Snapshot))
	s.mu.Unlock()
	s.resolver.Close()
}

// Config returns a copy of the draft, or nil when no site is loaded.
func (s *Store) Config() *models.TenantConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConfig(s.draft)
}

// State returns the outcome of the last applied load.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Slug returns the storefront slug, or "" in admin mode.
func (s *Store) Slug() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slug
}

// User returns a copy of the signed-in identity, or nil.
func (s *Store) User() *auth.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyIdentity(s.user)
}

// Loading is true while a load is in flight. Site content must not be
// rendered meanwhile.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LikedProductIDs returns the liked product ids in sorted order.
func (s *Store) LikedProductIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return likedIDs(s.liked)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for the snapshot published after each applied load
// and returns a function that removes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		State:           s.state,
		Slug:            s.slug,
		User:            copyIdentity(s.user),
		Loading:         s.loading,
		LikedProductIDs: likedIDs(s.liked),
	}
}

func (s *Store) onSlugChange(ctx context.Context, slug string) {
	s.mu.Lock()
	s.slug = slug
	s.mu.Unlock()
	s.reload(ctx, "navigation")
}

func (s *Store) onIdentityChange(ctx context.Context, id *auth.Identity) {
	s.mu.Lock()
	prev := s.user
	s.user = copyIdentity(id)
	slug := s.slug
	s.mu.Unlock()

	if id != nil && (prev == nil || prev.UserID != id.UserID) && slug != "" {
		s.cart.Migrate(ctx, slug, id.UserID, s.local)
	}
	s.refreshLikes(ctx, id)
	s.reload(ctx, "identity")
}

// refreshLikes reloads the liked ids of id, dropping the result when the
// identity changed while the query ran.
func (s *Store) refreshLikes(ctx context.Context, id *auth.Identity) {
	liked := map[string]struct{}{}
	if id != nil {
		liked = s.likes.Load(ctx, id.UserID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !sameUser(s.user, id) {
		return
	}
	s.liked = liked
}

// reload runs the orchestration for the current slug and identity. A load
// started later supersedes this one; its result is then discarded.
func (s *Store) reload(ctx context.Context, reason string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	slug := s.slug
	user := copyIdentity(s.user)
	s.loading = true
	s.state = StateLoading
	s.mu.Unlock()

	log := logger.WithContext(ctx, s.log).WithFields(logrus.Fields{
		"site_slug":  slug,
		"generation": gen,
		"reason":     reason,
	})

	draft, state := s.load(ctx, slug, user)

	s.mu.Lock()
	if gen != s.generation || s.closed {
		s.mu.Unlock()
		log.Debug("discarding superseded load")
		return
	}
	s.draft = draft
	s.state = state
	s.loading = false
	s.loadedSlug = ""
	if draft != nil {
		s.loadedSlug = draft.SiteSlug
	}
	snap := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	log.WithField("state", state.String()).Debug("site loaded")
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) load(ctx context.Context, slug string, user *auth.Identity) (*models.TenantConfiguration, State) {
	if slug != "" {
		// a storefront always shows its owner's site, whoever is signed in
		res := s.loader.LoadBySlug(ctx, slug)
		switch res.Status {
		case site.StatusFound:
			return res.Config, StateReady
		case site.StatusNotFound:
			return nil, StateSiteNotFound
		default:
			return nil, StateLoadFailed
		}
	}

	if user == nil {
		return site.Defaults(""), StateReady
	}
	res := s.loader.LoadByOwnerID(ctx, user.UserID)
	switch res.Status {
	case site.StatusFound:
		return res.Config, StateReady
	case site.StatusNotFound:
		return site.Defaults(user.UserID), StateReady
	default:
		// defaults here would overwrite the stored site on the next save
		return nil, StateLoadFailed
	}
}

func (s *Store) subscribersLocked() []func(Snapshot) {
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subscribers[id])
	}
	return out
}

// edit runs fn on the draft under the lock. While a load is in flight the
// draft may belong to the previous site and is not editable.
func (s *Store) edit(fn func(cfg *models.TenantConfiguration) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrLoading
	}
	if s.draft == nil {
		return ErrNoDraft
	}
	return fn(s.draft)
}

func cloneConfig(cfg *models.TenantConfiguration) *models.TenantConfiguration {
	if cfg == nil {
		return nil
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil
	}
	var out models.TenantConfiguration
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return &out
}

func copyIdentity(id *auth.Identity) *auth.Identity {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameUser(a, b *auth.Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.UserID == b.UserID
}

func likedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
