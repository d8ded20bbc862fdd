package session

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/auth"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
)

// ErrUnauthorizedTenant is returned when valid credentials belong to an
// account that may not use the active site.
var ErrUnauthorizedTenant = errors.New("this account cannot sign in to this site")

// SignIn authenticates against the active site. On a storefront the account
// must be a member of that storefront or its owner; in admin mode it must be
// an owner account. A rejected identity is never made current.
func (s *Store) SignIn(ctx context.Context, email, secret string) (auth.Identity, error) {
	slug := s.Slug()
	return s.auth.SignInWithCredentials(ctx, email, secret, slug, s.authorize(slug))
}

// SignUp registers a shopper of the active storefront, or an owner in admin
// mode, and signs it in.
func (s *Store) SignUp(ctx context.Context, in auth.SignUpInput) (auth.Identity, error) {
	in.SiteSlug = s.Slug()
	return s.auth.SignUp(ctx, in)
}

// Restore signs in with a previously issued token, under the same rule as SignIn.
func (s *Store) Restore(ctx context.Context, token string) (auth.Identity, error) {
	return s.auth.Restore(ctx, token, s.authorize(s.Slug()))
}

// SignOut signs the viewer out. The site reloads for the anonymous viewer.
func (s *Store) SignOut(ctx context.Context) {
	s.auth.SignOut(ctx)
}

// Token issues a bearer token for the current identity.
func (s *Store) Token() (string, error) {
	id := s.User()
	if id == nil {
		return "", auth.ErrUserNotFound
	}
	return s.auth.Service().IssueToken(*id)
}

func (s *Store) authorize(slug string) func(context.Context, auth.Identity) error {
	return func(ctx context.Context, id auth.Identity) error {
		if slug == "" {
			if id.SiteSlug == "" {
				return nil
			}
			return s.rejected(ctx, id, slug)
		}
		if id.SiteSlug == slug {
			return nil
		}
		if id.SiteSlug == "" {
			res := s.loader.LoadBySlug(ctx, slug)
			if res.Found() && res.Config.TenantID == id.UserID {
				return nil
			}
		}
		return s.rejected(ctx, id, slug)
	}
}

func (s *Store) rejected(ctx context.Context, id auth.Identity, slug string) error {
	logger.WithContext(ctx, s.log).WithFields(logrus.Fields{
		"user_id":   id.UserID,
		"site_slug": slug,
	}).Warn("sign-in refused for this site")
	return ErrUnauthorizedTenant
}
