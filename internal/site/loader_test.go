package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cache"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

type failingStore struct {
	*repository.MemoryStore
	failCollection string
	queries        int
}

func (s *failingStore) GetDocument(ctx context.Context, collection, key string) (repository.Document, error) {
	if collection == s.failCollection {
		return repository.Document{}, repository.ErrUnavailable
	}
	return s.MemoryStore.GetDocument(ctx, collection, key)
}

func (s *failingStore) QueryByField(ctx context.Context, collection, field string, value any) ([]repository.Document, error) {
	s.queries++
	if collection == s.failCollection {
		return nil, repository.ErrUnavailable
	}
	return s.MemoryStore.QueryByField(ctx, collection, field, value)
}

func seed(t *testing.T, store repository.DocumentStore, owner string, config, slides map[string]any) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SetDocument(ctx, repository.SiteConfigs, owner, config, false))
	if slides != nil {
		require.NoError(t, store.SetDocument(ctx, repository.SliderImages, owner, slides, false))
	}
}

func TestLoadByOwnerIDNotFound(t *testing.T) {
	l := NewLoader(repository.NewMemoryStore(), nil, 0, logger.Discard())
	res := l.LoadByOwnerID(context.Background(), "owner-1")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Nil(t, res.Config)
}

func TestLoadByOwnerIDMergesSlides(t *testing.T) {
	store := repository.NewMemoryStore()
	seed(t, store, "owner-1", map[string]any{
		"siteSlug":      "acme",
		"displayTitle":  "Acme",
		"sliderVariant": "FadeBannerSlider",
		"categories":    []any{map[string]any{"id": "c1", "name": "Tops"}},
		"products":      []any{map[string]any{"id": "p1", "name": "Tee", "price": 10.0, "categoryId": "c1"}},
	}, map[string]any{
		"FadeBannerSlider":  []any{"/fade.jpg"},
		"BasicHeroCarousel": []any{},
	})

	l := NewLoader(store, nil, 0, logger.Discard())
	res := l.LoadByOwnerID(context.Background(), "owner-1")
	require.True(t, res.Found())

	cfg := res.Config
	assert.Equal(t, "owner-1", cfg.TenantID)
	assert.Equal(t, "Acme", cfg.DisplayTitle)
	assert.Equal(t, models.LogoText, cfg.LogoMode)
	assert.Equal(t, models.SliderFadeBanner, cfg.SliderVariant)
	assert.Equal(t, []models.Subcategory{}, cfg.Categories[0].Subcategories)
	require.Len(t, cfg.SliderImages[models.SliderFadeBanner], 1)
	assert.Equal(t, "/fade.jpg", cfg.SliderImages[models.SliderFadeBanner][0].Img)
	assert.Equal(t, DefaultSlides(models.SliderBasicHero), cfg.SliderImages[models.SliderBasicHero])
	assert.Equal(t, DefaultBadges(), cfg.Badges)
}

func TestLoadByOwnerIDInlineSlidesFallback(t *testing.T) {
	store := repository.NewMemoryStore()
	seed(t, store, "owner-1", map[string]any{
		"displayTitle": "Old",
		"sliderImages": map[string]any{"BasicHeroCarousel": []any{map[string]any{"src": "/old.jpg"}}},
	}, nil)

	res := NewLoader(store, nil, 0, logger.Discard()).LoadByOwnerID(context.Background(), "owner-1")
	require.True(t, res.Found())
	assert.Equal(t, "/old.jpg", res.Config.SliderImages[models.SliderBasicHero][0].Img)
}

func TestLoadByOwnerIDFailures(t *testing.T) {
	store := &failingStore{MemoryStore: repository.NewMemoryStore(), failCollection: repository.SliderImages}
	seed(t, store.MemoryStore, "owner-1", map[string]any{"displayTitle": "Acme"}, nil)

	res := NewLoader(store, nil, 0, logger.Discard()).LoadByOwnerID(context.Background(), "owner-1")
	assert.Equal(t, StatusFailed, res.Status)
	assert.True(t, errors.Is(res.Err, repository.ErrUnavailable))

	bad := repository.NewMemoryStore()
	seed(t, bad, "owner-2", map[string]any{"displayTitle": 7.0}, nil)
	res = NewLoader(bad, nil, 0, logger.Discard()).LoadByOwnerID(context.Background(), "owner-2")
	assert.Equal(t, StatusFailed, res.Status)
}

func TestLoadBySlug(t *testing.T) {
	store := repository.NewMemoryStore()
	seed(t, store, "owner-1", map[string]any{"siteSlug": "acme", "displayTitle": "Acme"}, map[string]any{
		"BasicHeroCarousel": map[string]any{"slides": []any{"/hero.jpg"}},
	})
	l := NewLoader(store, nil, 0, logger.Discard())

	res := l.LoadBySlug(context.Background(), "acme")
	require.True(t, res.Found())
	assert.Equal(t, "owner-1", res.Config.TenantID)
	assert.Equal(t, "/hero.jpg", res.Config.SliderImages[models.SliderBasicHero][0].Img)

	assert.Equal(t, StatusNotFound, l.LoadBySlug(context.Background(), "nobody").Status)
	assert.Equal(t, StatusNotFound, l.LoadBySlug(context.Background(), "").Status)
}

func TestLoadBySlugDuplicateUsesFirstMatch(t *testing.T) {
	store := repository.NewMemoryStore()
	seed(t, store, "owner-b", map[string]any{"siteSlug": "dup", "displayTitle": "B"}, nil)
	seed(t, store, "owner-a", map[string]any{"siteSlug": "dup", "displayTitle": "A"}, nil)

	res := NewLoader(store, nil, 0, logger.Discard()).LoadBySlug(context.Background(), "dup")
	require.True(t, res.Found())
	assert.Equal(t, "owner-b", res.Config.TenantID)
}

func TestLoadBySlugQueryFailure(t *testing.T) {
	store := &failingStore{MemoryStore: repository.NewMemoryStore(), failCollection: repository.SiteConfigs}
	res := NewLoader(store, nil, 0, logger.Discard()).LoadBySlug(context.Background(), "acme")
	assert.Equal(t, StatusFailed, res.Status)
	assert.Error(t, res.Err)
}

func TestLoadBySlugCachesAndInvalidates(t *testing.T) {
	store := &failingStore{MemoryStore: repository.NewMemoryStore()}
	seed(t, store.MemoryStore, "owner-1", map[string]any{"siteSlug": "acme", "displayTitle": "Acme"}, nil)

	c := cache.New(time.Minute, time.Minute)
	defer c.Close()
	l := NewLoader(store, c, time.Minute, logger.Discard())
	ctx := context.Background()

	first := l.LoadBySlug(ctx, "acme")
	require.True(t, first.Found())
	first.Config.DisplayTitle = "mutated by caller"

	second := l.LoadBySlug(ctx, "acme")
	require.True(t, second.Found())
	assert.Equal(t, "Acme", second.Config.DisplayTitle)
	assert.Equal(t, 1, store.queries)

	l.Invalidate("acme")
	l.LoadBySlug(ctx, "acme")
	assert.Equal(t, 2, store.queries)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults("owner-1")
	assert.Equal(t, "owner-1", cfg.TenantID)
	assert.Equal(t, models.SliderBasicHero, cfg.SliderVariant)
	for _, v := range models.SliderVariants {
		assert.Len(t, cfg.SliderImages[v], 3)
	}
	assert.Len(t, cfg.Badges, 3)
}
