package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/auth"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cache"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cart"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/likes"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/site"
)

func newRegistry(t *testing.T, b *backend) (*Registry, *auth.Service) {
	t.Helper()
	log := logger.Discard()
	tabs := cache.New(time.Hour, time.Hour)
	t.Cleanup(tabs.Close)
	svc := auth.NewService(b, "test-secret", time.Hour, log)
	return NewRegistry(tabs, Shared{
		Loader:  site.NewLoader(b, nil, 0, log),
		Backend: b,
		Auth:    svc,
		Cart:    cart.NewService(b, log),
		Likes:   likes.NewTracker(b, log),
		Log:     log,
	}), svc
}

func TestRegistryOpenGetClose(t *testing.T) {
	b := newBackend()
	seedSite(t, b, "owner-1", "acme", "Acme")
	r, _ := newRegistry(t, b)

	tab, err := r.Open(context.Background(), "/site/acme", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme", tab.Store.Config().DisplayTitle)

	got, ok := r.Get(tab.ID)
	require.True(t, ok)
	assert.Same(t, tab, got)

	assert.True(t, r.Close(tab.ID))
	assert.False(t, r.Close(tab.ID))
	_, ok = r.Get(tab.ID)
	assert.False(t, ok)
}

func TestRegistryRestoresToken(t *testing.T) {
	b := newBackend()
	r, svc := newRegistry(t, b)
	ctx := context.Background()

	id, err := svc.SignUp(ctx, auth.SignUpInput{Email: "owner@shop.test", Password: "secret1"})
	require.NoError(t, err)
	token, err := svc.IssueToken(id)
	require.NoError(t, err)

	tab, err := r.Open(ctx, "/", token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, tab.Store.User().UserID)
	assert.Equal(t, id.UserID, tab.Store.Config().TenantID)

	_, err = r.Open(ctx, "/", "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
