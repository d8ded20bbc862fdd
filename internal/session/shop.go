package session

import (
	"context"
	"fmt"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cart"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/likes"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
)

// cartScope is the cart of the active storefront and viewer.
func (s *Store) cartScope() cart.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	scope := cart.Scope{Slug: s.slug, Local: s.local}
	if s.user != nil {
		scope.ViewerID = s.user.UserID
	}
	return scope
}

func (s *Store) product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil || s.loading {
		return models.Product{}, false
	}
	for _, p := range s.draft.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// AddToCart adds a product of the loaded site to the viewer's cart.
func (s *Store) AddToCart(ctx context.Context, productID string, quantity int, options map[string]string) ([]models.CartItem, error) {
	scope := s.cartScope()
	if scope.Slug == "" {
		return []models.CartItem{}, nil
	}
	if s.Loading() {
		return nil, ErrLoading
	}
	p, ok := s.product(productID)
	if !ok {
		return nil, fmt.Errorf("%w: product %s", ErrUnknownID, productID)
	}
	return s.cart.Add(ctx, scope, p, quantity, options), nil
}

// Cart lists the viewer's cart for the current storefront.
func (s *Store) Cart(ctx context.Context) []models.CartItem {
	return s.cart.List(ctx, s.cartScope())
}

func (s *Store) UpdateCartQuantity(ctx context.Context, productID string, options map[string]string, quantity int) []models.CartItem {
	return s.cart.UpdateQuantity(ctx, s.cartScope(), productID, options, quantity)
}

func (s *Store) RemoveFromCart(ctx context.Context, productID string, options map[string]string) []models.CartItem {
	return s.cart.Remove(ctx, s.cartScope(), productID, options)
}

// ClearCart empties the viewer's cart.
func (s *Store) ClearCart(ctx context.Context) {
	s.cart.Clear(ctx, s.cartScope())
}

// CartCount is the total quantity in the viewer's cart.
func (s *Store) CartCount(ctx context.Context) int {
	return s.cart.Count(ctx, s.cartScope())
}

// ToggleLike flips the viewer's like of productID and reports the new state.
// Guests get likes.ErrSignInRequired.
func (s *Store) ToggleLike(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	viewer := copyIdentity(s.user)
	slug := s.slug
	s.mu.Unlock()
	if viewer == nil {
		return false, likes.ErrSignInRequired
	}

	liked, err := s.likes.Toggle(ctx, viewer.UserID, slug, productID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if sameUser(s.user, viewer) {
		if liked {
			s.liked[productID] = struct{}{}
		} else {
			delete(s.liked, productID)
		}
	}
	s.mu.Unlock()
	return liked, nil
}

func (s *Store) IsLiked(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[productID]
	return ok
}
