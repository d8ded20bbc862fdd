package site

import "github.com/OJS-dev-code/ShopFrame-sub000/internal/models"

var defaultSlides = map[models.SliderVariant][]models.Slide{
	models.SliderBasicHero: {
		{ID: "basic-1", Img: "/images/slides/basic-hero-1.jpg", Alt: "New season arrivals", NavText: "NEW"},
		{ID: "basic-2", Img: "/images/slides/basic-hero-2.jpg", Alt: "Best sellers", NavText: "BEST"},
		{ID: "basic-3", Img: "/images/slides/basic-hero-3.jpg", Alt: "Weekly sale", NavText: "SALE"},
	},
	models.SliderFadeBanner: {
		{ID: "fade-1", Img: "/images/slides/fade-banner-1.jpg", Alt: "Brand story"},
		{ID: "fade-2", Img: "/images/slides/fade-banner-2.jpg", Alt: "Lookbook"},
		{ID: "fade-3", Img: "/images/slides/fade-banner-3.jpg", Alt: "Free shipping event"},
	},
	models.SliderThumbnailGallery: {
		{ID: "thumb-1", Img: "/images/slides/thumbnail-1.jpg", Alt: "Outerwear", NavText: "Outer"},
		{ID: "thumb-2", Img: "/images/slides/thumbnail-2.jpg", Alt: "Tops", NavText: "Top"},
		{ID: "thumb-3", Img: "/images/slides/thumbnail-3.jpg", Alt: "Accessories", NavText: "ACC"},
	},
}

// DefaultSlides returns a fresh copy of the built-in slides of a variant.
func DefaultSlides(variant models.SliderVariant) []models.Slide {
	src, ok := defaultSlides[variant]
	if !ok {
		src = defaultSlides[models.SliderBasicHero]
	}
	return append([]models.Slide(nil), src...)
}

// DefaultBadges returns fresh copies of the built-in badges.
func DefaultBadges() []models.Badge {
	return []models.Badge{
		{ID: "badge-best", Name: "BEST", Color: "#FF4D4F", IsDefault: true},
		{ID: "badge-own-made", Name: "자체제작", Color: "#1677FF", IsDefault: true},
		{ID: "badge-new", Name: "NEW", Color: "#52C41A", IsDefault: true},
	}
}

// Defaults is the configuration of a site that has never been saved.
func Defaults(ownerID string) *models.TenantConfiguration {
	slides := make(map[models.SliderVariant][]models.Slide, len(models.SliderVariants))
	for _, v := range models.SliderVariants {
		slides[v] = DefaultSlides(v)
	}
	return &models.TenantConfiguration{
		TenantID:           ownerID,
		DisplayTitle:       "My Shop",
		LogoMode:           models.LogoText,
		HeaderVariant:      models.HeaderClassic,
		SliderVariant:      models.SliderBasicHero,
		ProductListVariant: models.ProductListGrid,
		Categories:         []models.Category{},
		Products:           []models.Product{},
		Badges:             DefaultBadges(),
		FooterConfig:       models.FooterConfig{Variant: "BasicFooter"},
		SliderImages:       slides,
	}
}
