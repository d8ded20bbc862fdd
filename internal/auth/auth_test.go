package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

func newService() *Service {
	return NewService(repository.NewMemoryStore(), "test-secret", time.Hour, logger.Discard())
}

func TestSignUpAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.SignUp(ctx, SignUpInput{Email: " Owner@Example.com ", Password: "secret1", DisplayName: "Owner"})
	require.NoError(t, err)
	assert.NotEmpty(t, id.UserID)
	assert.Equal(t, "owner@example.com", id.Email)

	got, err := svc.Authenticate(ctx, "owner@example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = svc.Authenticate(ctx, "owner@example.com", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpValidatesInput(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.SignUp(ctx, SignUpInput{Email: "no-at-sign", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "123"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestEmailUniquePerScope(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1", SiteSlug: "acme"})
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1", SiteSlug: "acme"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	beta, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "other22", SiteSlug: "beta"})
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "a@b.c", "other22", "beta")
	require.NoError(t, err)
	assert.Equal(t, beta.UserID, got.UserID)

	// shopper accounts of another storefront are not tried
	_, err = svc.Authenticate(ctx, "a@b.c", "other22", "acme")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokens(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	id, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	token, err := svc.IssueToken(id)
	require.NoError(t, err)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, userID)

	other := NewService(repository.NewMemoryStore(), "other-secret", time.Hour, logger.Discard())
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewService(repository.NewMemoryStore(), "test-secret", time.Hour, logger.Discard())
	expired.tokenTTL = -time.Minute
	stale, err := expired.IssueToken(id)
	require.NoError(t, err)
	_, err = svc.ParseToken(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClientPublishesIdentityChanges(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	c := NewClient(svc)
	var seen []*Identity
	c.OnIdentityChange(ctx, func(_ context.Context, id *Identity) { seen = append(seen, id) })
	require.Len(t, seen, 1)
	assert.Nil(t, seen[0])

	id, err := c.SignInWithCredentials(ctx, "a@b.c", "secret1", "", nil)
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, id.UserID, seen[1].UserID)
	assert.Equal(t, id.UserID, c.Current().UserID)

	c.SignOut(ctx)
	c.SignOut(ctx)
	require.Len(t, seen, 3)
	assert.Nil(t, seen[2])
	assert.Nil(t, c.Current())
}

func TestClientRejectedIdentityIsNotPublished(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	c := NewClient(svc)
	calls := 0
	c.OnIdentityChange(ctx, func(context.Context, *Identity) { calls++ })

	reject := assert.AnError
	_, err = c.SignInWithCredentials(ctx, "a@b.c", "secret1", "", func(context.Context, Identity) error { return reject })
	assert.ErrorIs(t, err, reject)
	assert.Equal(t, 1, calls)
	assert.Nil(t, c.Current())
}

func TestClientRestore(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	id, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1", SiteSlug: "acme"})
	require.NoError(t, err)
	token, err := svc.IssueToken(id)
	require.NoError(t, err)

	c := NewClient(svc)
	restored, err := c.Restore(ctx, token, nil)
	require.NoError(t, err)
	assert.Equal(t, id, restored)

	_, err = c.Restore(ctx, "garbage", nil)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
