// Package site loads storefront configurations and normalizes the shapes
// older editors stored them in.
package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/cache"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

type Status int

const (
	StatusFound Status = iota + 1
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result of a load. Config is set only with StatusFound, Err only with StatusFailed.
type Result struct {
	Status Status
	Config *models.TenantConfiguration
	Err    error
}

func (r Result) Found() bool { return r.Status == StatusFound }

const slugCachePrefix = "site:slug:"

type Loader struct {
	store    repository.DocumentStore
	cache    *cache.Cache
	cacheTTL time.Duration
	log      *logrus.Entry
}

// NewLoader builds a loader. A nil cache disables slug caching.
func NewLoader(store repository.DocumentStore, c *cache.Cache, cacheTTL time.Duration, log *logrus.Entry) *Loader {
	if log == nil {
		log = logger.WithComponent("site")
	}
	return &Loader{store: store, cache: c, cacheTTL: cacheTTL, log: log}
}

// LoadByOwnerID loads the configuration an admin owns.
func (l *Loader) LoadByOwnerID(ctx context.Context, ownerID string) Result {
	if ownerID == "" {
		return Result{Status: StatusNotFound}
	}
	doc, err := l.store.GetDocument(ctx, repository.SiteConfigs, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return Result{Status: StatusNotFound}
	}
	if err != nil {
		return l.failed(ctx, "load config by owner", ownerID, err)
	}
	return l.assemble(ctx, doc)
}

// LoadBySlug finds the configuration whose siteSlug equals slug. Slugs are not
// unique at the storage layer; with several matches the first one returned wins.
func (l *Loader) LoadBySlug(ctx context.Context, slug string) Result {
	if slug == "" {
		return Result{Status: StatusNotFound}
	}
	if cfg, ok := l.cached(slug); ok {
		return Result{Status: StatusFound, Config: cfg}
	}

	docs, err := l.store.QueryByField(ctx, repository.SiteConfigs, "siteSlug", slug)
	if err != nil {
		return l.failed(ctx, "query config by slug", slug, err)
	}
	if len(docs) == 0 {
		return Result{Status: StatusNotFound}
	}
	if len(docs) > 1 {
		logger.WithContext(ctx, l.log).WithFields(logrus.Fields{
			"site_slug": slug,
			"matches":   len(docs),
			"chosen":    docs[0].Key,
		}).Warn("several sites share one slug")
	}

	res := l.assemble(ctx, docs[0])
	if res.Found() && l.cache != nil {
		if err := l.cache.Marshal(slugCachePrefix+slug, res.Config, l.cacheTTL); err != nil {
			l.log.WithError(err).Debug("site cache write failed")
		}
	}
	return res
}

// Invalidate drops cached lookups of the given slugs.
func (l *Loader) Invalidate(slugs ...string) {
	if l.cache == nil {
		return
	}
	for _, slug := range slugs {
		if slug != "" {
			l.cache.Delete(slugCachePrefix + slug)
		}
	}
}

func (l *Loader) cached(slug string) (*models.TenantConfiguration, bool) {
	if l.cache == nil {
		return nil, false
	}
	var cfg models.TenantConfiguration
	found, err := l.cache.Unmarshal(slugCachePrefix+slug, &cfg)
	if err != nil || !found {
		return nil, false
	}
	return &cfg, true
}

// assemble merges a configuration document with its slide document.
func (l *Loader) assemble(ctx context.Context, doc repository.Document) Result {
	var slideData map[string]any
	slides, err := l.store.GetDocument(ctx, repository.SliderImages, doc.Key)
	switch {
	case err == nil:
		slideData = slides.Data
	case errors.Is(err, repository.ErrNotFound):
		// configs saved before slides were split out keep them inline
		if inline, ok := doc.Data["sliderImages"].(map[string]any); ok {
			slideData = inline
		}
	default:
		return l.failed(ctx, "load slider images", doc.Key, err)
	}

	cfg, err := decodeConfig(doc)
	if err != nil {
		return l.failed(ctx, "decode config", doc.Key, err)
	}
	cfg.SliderImages = NormalizeSliderImages(slideData, cfg.SliderVariant)
	return Result{Status: StatusFound, Config: cfg}
}

// decodeConfig decodes the typed fields of a configuration document and
// applies the defaulting rules to the loosely typed ones.
func decodeConfig(doc repository.Document) (*models.TenantConfiguration, error) {
	typed := make(map[string]any, len(doc.Data))
	for k, v := range doc.Data {
		switch k {
		case "badges", "sliderImages":
			continue
		}
		typed[k] = v
	}

	cfg := Defaults(doc.Key)
	cfg.Categories = nil
	cfg.Products = nil
	if err := repository.Decode(typed, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", doc.Key, err)
	}

	cfg.TenantID = doc.Key
	cfg.Badges = NormalizeBadges(doc.Data["badges"])
	if !cfg.SliderVariant.Valid() {
		cfg.SliderVariant = models.SliderBasicHero
	}
	if cfg.LogoMode != models.LogoImage {
		cfg.LogoMode = models.LogoText
	}
	if cfg.Categories == nil {
		cfg.Categories = []models.Category{}
	}
	for i := range cfg.Categories {
		if cfg.Categories[i].Subcategories == nil {
			cfg.Categories[i].Subcategories = []models.Subcategory{}
		}
	}
	if cfg.Products == nil {
		cfg.Products = []models.Product{}
	}
	return cfg, nil
}

func (l *Loader) failed(ctx context.Context, op, key string, err error) Result {
	logger.WithContext(ctx, l.log).WithError(err).WithField("key", key).Warn(op + " failed")
	return Result{Status: StatusFailed, Err: fmt.Errorf("%s %s: %w", op, key, err)}
}
