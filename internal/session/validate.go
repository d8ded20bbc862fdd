package session

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
)

var validate = validator.New()

// ValidImageRef reports whether ref is an http(s) URL, a base64 data URL or
// a site-relative path.
func ValidImageRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return true
	}
	if validate.Var(ref, "http_url") == nil {
		return true
	}
	return strings.HasPrefix(ref, "data:") && strings.Contains(ref, ";base64,") && validate.Var(ref, "datauri") == nil
}

// Validate returns every problem that keeps cfg from being saved.
func Validate(cfg *models.TenantConfiguration) []string {
	if cfg == nil {
		return []string{"no site configuration is loaded"}
	}
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(cfg.DisplayTitle) == "" {
		add("site title is required")
	}
	if cfg.SiteSlug != "" && !slug.IsSlug(cfg.SiteSlug) {
		add("site address %q may only contain lowercase letters, digits and hyphens", cfg.SiteSlug)
	}
	switch cfg.LogoMode {
	case models.LogoText:
	case models.LogoImage:
		if cfg.LogoRef == "" {
			add("logo image is required when the logo is an image")
		} else if !ValidImageRef(cfg.LogoRef) {
			add("logo image must be an http(s) URL, a data URL or a site path")
		}
	default:
		add("logo mode %q is unknown", cfg.LogoMode)
	}

	for i, c := range cfg.Categories {
		if strings.TrimSpace(c.ID) == "" {
			add("category %d has no id", i+1)
		}
		if strings.TrimSpace(c.Name) == "" {
			add("category %d has no name", i+1)
		}
	}

	for i, p := range cfg.Products {
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("product %d", i+1)
		}
		if strings.TrimSpace(p.ID) == "" {
			add("%s has no id", label)
		}
		if strings.TrimSpace(p.Name) == "" {
			add("product %d has no name", i+1)
		}
		if p.Price == nil || math.IsNaN(*p.Price) || math.IsInf(*p.Price, 0) {
			add("%s needs a numeric price", label)
		}
		if strings.TrimSpace(p.CategoryID) == "" {
			add("%s has no category", label)
		}
	}

	if !cfg.SliderVariant.Valid() {
		add("slider %q is unknown", cfg.SliderVariant)
		return problems
	}
	slides := cfg.SliderImages[cfg.SliderVariant]
	if len(slides) == 0 {
		add("the %s slider needs at least one slide", cfg.SliderVariant)
	}
	for i, sl := range slides {
		if !ValidImageRef(sl.Img) {
			add("slide %d needs an http(s) URL, a data URL or a site path as image", i+1)
		}
		if strings.TrimSpace(sl.Alt) == "" {
			add("slide %d needs an alt text", i+1)
		}
	}
	return problems
}
