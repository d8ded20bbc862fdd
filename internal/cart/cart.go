// Package cart keeps a storefront cart either in tab-local storage (guests)
// or in a remote document per viewer (signed-in shoppers).
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

// Scope selects the cart an operation works on. Without a ViewerID the guest
// cart in Local is used.
type Scope struct {
	Slug     string
	ViewerID string
	Local    LocalStorage
}

func (s Scope) guest() bool { return s.ViewerID == "" }

// LocalKey is the tab-local storage key of the guest cart of slug.
func LocalKey(slug string) string { return "cart_" + slug }

type Service struct {
	store repository.DocumentStore
	log   *logrus.Entry
	now   func() time.Time
}

// NewService creates a cart service over store.
func NewService(store repository.DocumentStore, log *logrus.Entry) *Service {
	if log == nil {
		log = logger.WithComponent("cart")
	}
	return &Service{store: store, log: log, now: time.Now}
}

// Add puts quantity of product into the cart. A line with the same product
// and options is incremented instead of duplicated.
func (s *Service) Add(ctx context.Context, scope Scope, product models.Product, quantity int, options map[string]string) []models.CartItem {
	if scope.Slug == "" || product.ID == "" {
		return []models.CartItem{}
	}
	if quantity < 1 {
		quantity = 1
	}
	items, ok := s.read(ctx, scope)
	if !ok {
		return []models.CartItem{}
	}

	key := lineKey(product.ID, options)
	found := false
	for i := range items {
		if lineKey(items[i].ProductID, items[i].Options) == key {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		var price float64
		if product.Price != nil {
			price = *product.Price
		}
		items = append(items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     price,
			SalePrice: product.SalePrice,
			Image:     product.Image,
			Quantity:  quantity,
			Options:   normalizeOptions(options),
			AddedAt:   s.now().UTC(),
		})
	}
	return s.write(ctx, scope, items)
}

// List returns the lines of the cart.
func (s *Service) List(ctx context.Context, scope Scope) []models.CartItem {
	if scope.Slug == "" {
		return []models.CartItem{}
	}
	items, _ := s.read(ctx, scope)
	return items
}

// UpdateQuantity sets the quantity of one line; quantities below one remove it.
func (s *Service) UpdateQuantity(ctx context.Context, scope Scope, productID string, options map[string]string, quantity int) []models.CartItem {
	if scope.Slug == "" {
		return []models.CartItem{}
	}
	if quantity < 1 {
		return s.Remove(ctx, scope, productID, options)
	}
	items, ok := s.read(ctx, scope)
	if !ok {
		return []models.CartItem{}
	}
	key := lineKey(productID, options)
	for i := range items {
		if lineKey(items[i].ProductID, items[i].Options) == key {
			if items[i].Quantity == quantity {
				return items
			}
			items[i].Quantity = quantity
			return s.write(ctx, scope, items)
		}
	}
	return items
}

// Remove drops the line with the given product and options.
func (s *Service) Remove(ctx context.Context, scope Scope, productID string, options map[string]string) []models.CartItem {
	if scope.Slug == "" {
		return []models.CartItem{}
	}
	items, ok := s.read(ctx, scope)
	if !ok {
		return []models.CartItem{}
	}
	key := lineKey(productID, options)
	kept := items[:0]
	for _, item := range items {
		if lineKey(item.ProductID, item.Options) != key {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return items
	}
	return s.write(ctx, scope, kept)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, scope Scope) {
	if scope.Slug == "" {
		return
	}
	if scope.guest() {
		if scope.Local != nil {
			scope.Local.RemoveItem(LocalKey(scope.Slug))
		}
		return
	}
	s.write(ctx, scope, []models.CartItem{})
}

// Count is the total quantity over all lines.
func (s *Service) Count(ctx context.Context, scope Scope) int {
	total := 0
	for _, item := range s.List(ctx, scope) {
		total += item.Quantity
	}
	return total
}

// Migrate moves the guest cart of slug into the remote cart of viewerID and
// deletes the local copy. Guest lines are appended after the remote ones
// without deduplication. With an empty guest cart nothing is written.
func (s *Service) Migrate(ctx context.Context, slug, viewerID string, local LocalStorage) int {
	if slug == "" || viewerID == "" || local == nil {
		return 0
	}
	guest, _ := s.read(ctx, Scope{Slug: slug, Local: local})
	if len(guest) == 0 {
		return 0
	}
	remote, ok := s.read(ctx, Scope{Slug: slug, ViewerID: viewerID})
	if !ok {
		// keep the guest copy so the next sign-in can retry
		return 0
	}

	merged := append(remote, guest...)
	data := map[string]any{"items": toData(merged), "updatedAt": s.now().UTC().Format(time.RFC3339)}
	if err := s.store.SetDocument(ctx, repository.CartCollection(slug), viewerID, data, true); err != nil {
		// keep the guest copy so the next sign-in can retry
		s.warn(ctx, err, "migrate guest cart", slug, viewerID)
		return 0
	}
	local.RemoveItem(LocalKey(slug))

	s.log.WithFields(logrus.Fields{"site_slug": slug, "viewer_id": viewerID, "lines": len(guest)}).Info("guest cart migrated")
	return len(guest)
}

// read returns the current lines and whether they could be read.
func (s *Service) read(ctx context.Context, scope Scope) ([]models.CartItem, bool) {
	if scope.guest() {
		if scope.Local == nil {
			return []models.CartItem{}, true
		}
		raw, ok := scope.Local.GetItem(LocalKey(scope.Slug))
		if !ok || raw == "" {
			return []models.CartItem{}, true
		}
		var items []models.CartItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.log.WithError(err).WithField("site_slug", scope.Slug).Warn("discarding unreadable guest cart")
			return []models.CartItem{}, true
		}
		return items, true
	}

	doc, err := s.store.GetDocument(ctx, repository.CartCollection(scope.Slug), scope.ViewerID)
	if errors.Is(err, repository.ErrNotFound) {
		return []models.CartItem{}, true
	}
	if err != nil {
		s.warn(ctx, err, "read cart", scope.Slug, scope.ViewerID)
		return []models.CartItem{}, false
	}
	var stored struct {
		Items []models.CartItem `json:"items"`
	}
	if err := repository.Decode(doc.Data, &stored); err != nil {
		s.warn(ctx, err, "decode cart", scope.Slug, scope.ViewerID)
		return []models.CartItem{}, false
	}
	if stored.Items == nil {
		stored.Items = []models.CartItem{}
	}
	return stored.Items, true
}

// write stores items and returns what the cart now holds.
func (s *Service) write(ctx context.Context, scope Scope, items []models.CartItem) []models.CartItem {
	if scope.guest() {
		if scope.Local == nil {
			return items
		}
		raw, err := json.Marshal(items)
		if err != nil {
			s.log.WithError(err).Warn("encode guest cart")
			return items
		}
		scope.Local.SetItem(LocalKey(scope.Slug), string(raw))
		return items
	}

	data := map[string]any{"items": toData(items), "updatedAt": s.now().UTC().Format(time.RFC3339)}
	if err := s.store.SetDocument(ctx, repository.CartCollection(scope.Slug), scope.ViewerID, data, true); err != nil {
		s.warn(ctx, err, "write cart", scope.Slug, scope.ViewerID)
		current, _ := s.read(ctx, scope)
		return current
	}
	return items
}

func (s *Service) warn(ctx context.Context, err error, op, slug, viewerID string) {
	logger.WithContext(ctx, s.log).WithError(err).WithFields(logrus.Fields{
		"site_slug": slug,
		"viewer_id": viewerID,
	}).Warn(op + " failed")
}

func toData(items []models.CartItem) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		data, err := repository.Encode(item)
		if err != nil {
			continue
		}
		out = append(out, data)
	}
	return out
}

func normalizeOptions(options map[string]string) map[string]string {
	if options == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(options))
	for k, v := range options {
		out[k] = v
	}
	return out
}

// lineKey identifies a cart line. encoding/json writes map keys sorted, so
// equal option sets always encode the same way.
func lineKey(productID string, options map[string]string) string {
	raw, _ := json.Marshal(normalizeOptions(options))
	return productID + "|" + string(raw)
}
