package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
)

func TestNormalizeSlidesEmptyListUsesVariantDefaults(t *testing.T) {
	got := NormalizeSlides([]any{}, models.SliderBasicHero)
	require.Len(t, got, 3)
	assert.Equal(t, DefaultSlides(models.SliderBasicHero), got)

	fade := NormalizeSlides(nil, models.SliderFadeBanner)
	assert.Equal(t, DefaultSlides(models.SliderFadeBanner), fade)
	assert.NotEqual(t, got, fade)
}

func TestNormalizeSlidesPlainStrings(t *testing.T) {
	got := NormalizeSlides([]any{"https://cdn.test/a.jpg", "  ", "/img/b.png"}, models.SliderBasicHero)
	require.Len(t, got, 2)
	assert.Equal(t, "https://cdn.test/a.jpg", got[0].Img)
	assert.Equal(t, "slide 1", got[0].Alt)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "/img/b.png", got[1].Img)
	assert.Equal(t, "slide 3", got[1].Alt)
}

func TestNormalizeSlidesLegacyFieldNames(t *testing.T) {
	raw := []any{
		map[string]any{"id": "s1", "img": "/a.jpg", "alt": "A", "navText": "nav", "link": "/site/acme/c/1", "categoryId": "c1"},
		map[string]any{"image": "/b.jpg"},
		map[string]any{"imageUrl": "/c.jpg"},
		map[string]any{"src": "/d.jpg"},
		map[string]any{"url": "/e.jpg"},
		map[string]any{"alt": "no image here"},
		42.0,
	}
	got := NormalizeSlides(raw, models.SliderThumbnailGallery)
	require.Len(t, got, 5)
	assert.Equal(t, models.Slide{ID: "s1", Img: "/a.jpg", Alt: "A", NavText: "nav", Link: "/site/acme/c/1", CategoryID: "c1"}, got[0])
	for i, img := range []string{"/b.jpg", "/c.jpg", "/d.jpg", "/e.jpg"} {
		assert.Equal(t, img, got[i+1].Img)
	}
}

func TestNormalizeSlidesWrappedList(t *testing.T) {
	got := NormalizeSlides(map[string]any{"slides": []any{"/a.jpg"}}, models.SliderBasicHero)
	require.Len(t, got, 1)
	assert.Equal(t, "/a.jpg", got[0].Img)

	got = NormalizeSlides(map[string]any{"other": []any{"/a.jpg"}}, models.SliderBasicHero)
	assert.Equal(t, DefaultSlides(models.SliderBasicHero), got)
}

func TestNormalizeSlidesAllInvalidFallsBack(t *testing.T) {
	got := NormalizeSlides([]any{map[string]any{"alt": "x"}, ""}, models.SliderFadeBanner)
	assert.Equal(t, DefaultSlides(models.SliderFadeBanner), got)
}

func TestNormalizeSliderImagesLegacyTopLevelSlides(t *testing.T) {
	doc := map[string]any{"slides": []any{"/legacy.jpg"}}
	got := NormalizeSliderImages(doc, models.SliderFadeBanner)

	require.Len(t, got[models.SliderFadeBanner], 1)
	assert.Equal(t, "/legacy.jpg", got[models.SliderFadeBanner][0].Img)
	assert.Equal(t, DefaultSlides(models.SliderBasicHero), got[models.SliderBasicHero])
}

func TestNormalizeBadges(t *testing.T) {
	defaults := NormalizeBadges(nil)
	require.Len(t, defaults, 3)
	assert.Equal(t, []string{"BEST", "자체제작", "NEW"}, []string{defaults[0].Name, defaults[1].Name, defaults[2].Name})
	for _, b := range defaults {
		assert.True(t, b.IsDefault)
		assert.NotEmpty(t, b.Color)
	}

	assert.Equal(t, DefaultBadges(), NormalizeBadges("not a list"))
	assert.Empty(t, NormalizeBadges([]any{}))

	stored := NormalizeBadges([]any{
		map[string]any{"id": "b1", "name": "HOT", "color": "#f00"},
		map[string]any{"color": "#0f0"},
	})
	assert.Equal(t, []models.Badge{{ID: "b1", Name: "HOT", Color: "#f00"}}, stored)
}

func TestDefaultSlidesReturnsCopies(t *testing.T) {
	a := DefaultSlides(models.SliderBasicHero)
	a[0].Img = "changed"
	assert.NotEqual(t, "changed", DefaultSlides(models.SliderBasicHero)[0].Img)
}
