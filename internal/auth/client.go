package auth

import (
	"context"
	"sync"
)

// Client is the identity provider as one tab sees it: a current identity and
// listeners told about every change.
type Client struct {
	svc *Service

	mu        sync.Mutex
	current   *Identity
	listeners []func(ctx context.Context, id *Identity)
}

// NewClient creates a signed-out client backed by svc.
func NewClient(svc *Service) *Client {
	return &Client{svc: svc}
}

func (c *Client) Service() *Service { return c.svc }

// Current returns a copy of the signed-in identity, or nil.
func (c *Client) Current() *Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	id := *c.current
	return &id
}

// OnIdentityChange calls fn right away with the current identity (nil when
// signed out) and again after every sign-in and sign-out.
func (c *Client) OnIdentityChange(ctx context.Context, fn func(ctx context.Context, id *Identity)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
	fn(ctx, c.Current())
}

// SignInWithCredentials authenticates and, when accept approves the identity,
// makes it current. A rejected identity is never published.
func (c *Client) SignInWithCredentials(ctx context.Context, email, secret, scope string, accept func(context.Context, Identity) error) (Identity, error) {
	id, err := c.svc.Authenticate(ctx, email, secret, scope)
	if err != nil {
		return Identity{}, err
	}
	if accept != nil {
		if err := accept(ctx, id); err != nil {
			return Identity{}, err
		}
	}
	c.set(ctx, &id)
	return id, nil
}

// SignUp registers a user and signs it in.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) (Identity, error) {
	id, err := c.svc.SignUp(ctx, in)
	if err != nil {
		return Identity{}, err
	}
	c.set(ctx, &id)
	return id, nil
}

// Restore re-establishes the identity a token was issued to, gated by accept
// like SignInWithCredentials.
func (c *Client) Restore(ctx context.Context, token string, accept func(context.Context, Identity) error) (Identity, error) {
	userID, err := c.svc.ParseToken(token)
	if err != nil {
		return Identity{}, err
	}
	id, err := c.svc.Lookup(ctx, userID)
	if err != nil {
		return Identity{}, err
	}
	if accept != nil {
		if err := accept(ctx, id); err != nil {
			return Identity{}, err
		}
	}
	c.set(ctx, &id)
	return id, nil
}

// SignOut clears the identity. Listeners are only called when one was set.
func (c *Client) SignOut(ctx context.Context) {
	c.mu.Lock()
	wasSignedIn := c.current != nil
	c.mu.Unlock()
	if wasSignedIn {
		c.set(ctx, nil)
	}
}

func (c *Client) set(ctx context.Context, id *Identity) {
	c.mu.Lock()
	c.current = id
	listeners := append([]func(context.Context, *Identity){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		var copied *Identity
		if id != nil {
			v := *id
			copied = &v
		}
		fn(ctx, copied)
	}
}
