package site

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
)

// Field names older editors stored the slide image under, in lookup order.
var slideImageFields = []string{"img", "image", "imageUrl", "src", "url"}

// slideSource is one stored slide entry: either a bare image reference or a
// legacy object.
type slideSource interface {
	slide(index int) (models.Slide, bool)
}

type urlSlide string

func (u urlSlide) slide(index int) (models.Slide, bool) {
	img := strings.TrimSpace(string(u))
	if img == "" {
		return models.Slide{}, false
	}
	return models.Slide{ID: uuid.NewString(), Img: img, Alt: fmt.Sprintf("slide %d", index+1)}, true
}

type objectSlide map[string]any

func (o objectSlide) slide(index int) (models.Slide, bool) {
	var img string
	for _, field := range slideImageFields {
		if img = o.text(field); img != "" {
			break
		}
	}
	if img == "" {
		return models.Slide{}, false
	}
	s := models.Slide{
		ID:         o.text("id"),
		Img:        img,
		Alt:        o.text("alt"),
		NavText:    o.text("navText"),
		Link:       o.text("link"),
		CategoryID: o.text("categoryId"),
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Alt == "" {
		s.Alt = fmt.Sprintf("slide %d", index+1)
	}
	return s, true
}

func (o objectSlide) text(field string) string {
	switch v := o[field].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// slideSources unwraps the stored shapes: a list, or an object holding the
// list under "slides". Anything else holds no slides.
func slideSources(raw any) []slideSource {
	if wrapped, ok := raw.(map[string]any); ok {
		raw = wrapped["slides"]
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]slideSource, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case string:
			out = append(out, urlSlide(v))
		case map[string]any:
			out = append(out, objectSlide(v))
		}
	}
	return out
}

// NormalizeSlides converts stored slide data into canonical slides. Entries
// without an image are dropped; an empty result yields the variant defaults.
func NormalizeSlides(raw any, variant models.SliderVariant) []models.Slide {
	sources := slideSources(raw)
	out := make([]models.Slide, 0, len(sources))
	for i, src := range sources {
		if s, ok := src.slide(i); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return DefaultSlides(variant)
	}
	return out
}

// NormalizeSliderImages normalizes every variant of a slide document. A
// document with only a top-level "slides" list belongs to the selected variant.
func NormalizeSliderImages(doc map[string]any, selected models.SliderVariant) map[models.SliderVariant][]models.Slide {
	out := make(map[models.SliderVariant][]models.Slide, len(models.SliderVariants))
	legacy, hasLegacy := doc["slides"]
	for _, v := range models.SliderVariants {
		raw, ok := doc[string(v)]
		if !ok && hasLegacy && v == selected {
			raw = legacy
		}
		out[v] = NormalizeSlides(raw, v)
	}
	return out
}

// NormalizeBadges keeps a stored badge list and substitutes the defaults when
// the field is absent or not a list.
func NormalizeBadges(raw any) []models.Badge {
	list, ok := raw.([]any)
	if !ok {
		return DefaultBadges()
	}
	out := make([]models.Badge, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		b := models.Badge{
			ID:    objectSlide(obj).text("id"),
			Name:  objectSlide(obj).text("name"),
			Color: objectSlide(obj).text("color"),
		}
		b.IsDefault, _ = obj["isDefault"].(bool)
		if b.Name == "" {
			continue
		}
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		out = append(out, b)
	}
	return out
}
