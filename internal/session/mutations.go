package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

var (
	ErrInvalidPath    = errors.New("invalid field path")
	ErrInvalidValue   = errors.New("invalid field value")
	ErrUnknownID      = errors.New("no item with this id")
	ErrDuplicateID    = errors.New("an item with this id already exists")
	ErrDefaultBadge   = errors.New("default badges cannot be deleted")
	ErrUnknownVariant = errors.New("unknown slider variant")
	ErrInvalidIndex   = errors.New("slide index out of range")
)

// fields that are not editable by path
var readOnlyFields = map[string]bool{"tenantId": true}

// UpdateField sets one field of the draft. path is a top-level field name or
// "field.sub" for a field of an object-valued field. Lists are replaced whole.
func (s *Store) UpdateField(path string, value any) error {
	parts := strings.Split(path, ".")
	if len(parts) > 2 || parts[0] == "" || readOnlyFields[parts[0]] {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	if parts[0] == "siteSlug" && len(parts) == 1 {
		text, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: siteSlug must be text", ErrInvalidValue)
		}
		value = slug.Make(text)
	}

	return s.edit(func(cfg *models.TenantConfiguration) error {
		data, err := repository.Encode(cfg)
		if err != nil {
			return err
		}
		current, ok := data[parts[0]]
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		if len(parts) == 2 {
			obj, ok := current.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: %q is not an object", ErrInvalidPath, parts[0])
			}
			if _, ok := obj[parts[1]]; !ok {
				return fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
			obj[parts[1]] = value
		} else {
			data[parts[0]] = value
		}

		var next models.TenantConfiguration
		if err := repository.Decode(data, &next); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, path, err)
		}
		*cfg = next
		return nil
	})
}

// AddCategory appends c, generating an id when it has none.
func (s *Store) AddCategory(c models.Category) (models.Category, error) {
	err := s.edit(func(cfg *models.TenantConfiguration) error {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if categoryIDTaken(cfg, c.ID) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if c.Subcategories == nil {
			c.Subcategories = []models.Subcategory{}
		}
		cfg.Categories = append(cfg.Categories, c)
		return nil
	})
	return c, err
}

// UpdateCategory renames a category. Its subcategories are replaced only when
// c carries a list.
func (s *Store) UpdateCategory(c models.Category) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i := categoryIndex(cfg, c.ID)
		if i < 0 {
			return fmt.Errorf("%w: category %s", ErrUnknownID, c.ID)
		}
		cfg.Categories[i].Name = c.Name
		if c.Subcategories != nil {
			cfg.Categories[i].Subcategories = c.Subcategories
		}
		return nil
	})
}

// DeleteCategory removes a category and the products whose categoryId is the
// category id itself. Products filed under one of its subcategories stay.
func (s *Store) DeleteCategory(id string) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i := categoryIndex(cfg, id)
		if i < 0 {
			return fmt.Errorf("%w: category %s", ErrUnknownID, id)
		}
		cfg.Categories = append(cfg.Categories[:i], cfg.Categories[i+1:]...)
		cfg.Products = productsWithout(cfg.Products, id)
		return nil
	})
}

// AddSubcategory appends sub to the category categoryID, generating an id when it has none.
func (s *Store) AddSubcategory(categoryID string, sub models.Subcategory) (models.Subcategory, error) {
	err := s.edit(func(cfg *models.TenantConfiguration) error {
		i := categoryIndex(cfg, categoryID)
		if i < 0 {
			return fmt.Errorf("%w: category %s", ErrUnknownID, categoryID)
		}
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
		if categoryIDTaken(cfg, sub.ID) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, sub.ID)
		}
		cfg.Categories[i].Subcategories = append(cfg.Categories[i].Subcategories, sub)
		return nil
	})
	return sub, err
}

// UpdateSubcategory replaces the subcategory with the id of sub.
func (s *Store) UpdateSubcategory(categoryID string, sub models.Subcategory) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i, j := subcategoryIndex(cfg, categoryID, sub.ID)
		if j < 0 {
			return fmt.Errorf("%w: subcategory %s", ErrUnknownID, sub.ID)
		}
		cfg.Categories[i].Subcategories[j].Name = sub.Name
		return nil
	})
}

// DeleteSubcategory removes a subcategory and the products filed under it.
func (s *Store) DeleteSubcategory(categoryID, subID string) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i, j := subcategoryIndex(cfg, categoryID, subID)
		if j < 0 {
			return fmt.Errorf("%w: subcategory %s", ErrUnknownID, subID)
		}
		subs := cfg.Categories[i].Subcategories
		cfg.Categories[i].Subcategories = append(subs[:j], subs[j+1:]...)
		cfg.Products = productsWithout(cfg.Products, subID)
		return nil
	})
}

// AddProduct appends p, generating an id when it has none.
func (s *Store) AddProduct(p models.Product) (models.Product, error) {
	err := s.edit(func(cfg *models.TenantConfiguration) error {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if productIndex(cfg, p.ID) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		p = withListDefaults(p)
		cfg.Products = append(cfg.Products, p)
		return nil
	})
	return p, err
}

// UpdateProduct replaces the product with the same id.
func (s *Store) UpdateProduct(p models.Product) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i := productIndex(cfg, p.ID)
		if i < 0 {
			return fmt.Errorf("%w: product %s", ErrUnknownID, p.ID)
		}
		cfg.Products[i] = withListDefaults(p)
		return nil
	})
}

// DeleteProduct removes the product with id.
func (s *Store) DeleteProduct(id string) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i := productIndex(cfg, id)
		if i < 0 {
			return fmt.Errorf("%w: product %s", ErrUnknownID, id)
		}
		cfg.Products = append(cfg.Products[:i], cfg.Products[i+1:]...)
		return nil
	})
}

// AddBadge appends a custom badge. Only the built-in badges are defaults.
func (s *Store) AddBadge(b models.Badge) (models.Badge, error) {
	err := s.edit(func(cfg *models.TenantConfiguration) error {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if badgeIndex(cfg, b.ID) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		b.IsDefault = false
		cfg.Badges = append(cfg.Badges, b)
		return nil
	})
	return b, err
}

// UpdateBadge replaces the badge with the id of b. Its default flag is kept.
func (s *Store) UpdateBadge(b models.Badge) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i := badgeIndex(cfg, b.ID)
		if i < 0 {
			return fmt.Errorf("%w: badge %s", ErrUnknownID, b.ID)
		}
		b.IsDefault = cfg.Badges[i].IsDefault
		cfg.Badges[i] = b
		return nil
	})
}

// DeleteBadge removes a custom badge and takes it off every product.
func (s *Store) DeleteBadge(id string) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		i := badgeIndex(cfg, id)
		if i < 0 {
			return fmt.Errorf("%w: badge %s", ErrUnknownID, id)
		}
		if cfg.Badges[i].IsDefault {
			return ErrDefaultBadge
		}
		cfg.Badges = append(cfg.Badges[:i], cfg.Badges[i+1:]...)
		for p := range cfg.Products {
			badges := cfg.Products[p].Badges[:0]
			for _, b := range cfg.Products[p].Badges {
				if b != id {
					badges = append(badges, b)
				}
			}
			cfg.Products[p].Badges = badges
		}
		return nil
	})
}

// AddSlide appends slide to the slides of variant.
func (s *Store) AddSlide(variant models.SliderVariant, slide models.Slide) (models.Slide, error) {
	err := s.edit(func(cfg *models.TenantConfiguration) error {
		if !variant.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
		}
		if slide.ID == "" {
			slide.ID = uuid.NewString()
		}
		if slideIndex(cfg, variant, slide.ID) >= 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, slide.ID)
		}
		if cfg.SliderImages == nil {
			cfg.SliderImages = map[models.SliderVariant][]models.Slide{}
		}
		cfg.SliderImages[variant] = append(cfg.SliderImages[variant], slide)
		return nil
	})
	return slide, err
}

// UpdateSlide replaces the slide of variant with the id of slide.
func (s *Store) UpdateSlide(variant models.SliderVariant, slide models.Slide) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		if !variant.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
		}
		i := slideIndex(cfg, variant, slide.ID)
		if i < 0 {
			return fmt.Errorf("%w: slide %s", ErrUnknownID, slide.ID)
		}
		cfg.SliderImages[variant][i] = slide
		return nil
	})
}

// RemoveSlide removes the slide with id from variant.
func (s *Store) RemoveSlide(variant models.SliderVariant, id string) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		if !variant.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
		}
		i := slideIndex(cfg, variant, id)
		if i < 0 {
			return fmt.Errorf("%w: slide %s", ErrUnknownID, id)
		}
		slides := cfg.SliderImages[variant]
		cfg.SliderImages[variant] = append(slides[:i], slides[i+1:]...)
		return nil
	})
}

// ReorderSlides moves the slide at index from to index to.
func (s *Store) ReorderSlides(variant models.SliderVariant, from, to int) error {
	return s.edit(func(cfg *models.TenantConfiguration) error {
		if !variant.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
		}
		slides := cfg.SliderImages[variant]
		if from < 0 || from >= len(slides) || to < 0 || to >= len(slides) {
			return fmt.Errorf("%w: %d -> %d of %d", ErrInvalidIndex, from, to, len(slides))
		}
		moved := slides[from]
		slides = append(slides[:from], slides[from+1:]...)
		slides = append(slides[:to], append([]models.Slide{moved}, slides[to:]...)...)
		cfg.SliderImages[variant] = slides
		return nil
	})
}

// CategoryMatch is a category id resolved against the draft. Subcategory is
// set when the id named a subcategory of Category.
type CategoryMatch struct {
	Category    models.Category     `json:"category"`
	Subcategory *models.Subcategory `json:"subcategory,omitempty"`
}

// ResolveCategory looks id up among the top-level categories first and then
// among their subcategories.
func (s *Store) ResolveCategory(id string) (CategoryMatch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil || id == "" {
		return CategoryMatch{}, false
	}
	for _, c := range s.draft.Categories {
		if c.ID == id {
			return CategoryMatch{Category: c}, true
		}
	}
	for _, c := range s.draft.Categories {
		for _, sub := range c.Subcategories {
			if sub.ID == id {
				return CategoryMatch{Category: c, Subcategory: &sub}, true
			}
		}
	}
	return CategoryMatch{}, false
}

func categoryIndex(cfg *models.TenantConfiguration, id string) int {
	for i, c := range cfg.Categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func subcategoryIndex(cfg *models.TenantConfiguration, categoryID, subID string) (int, int) {
	i := categoryIndex(cfg, categoryID)
	if i < 0 {
		return -1, -1
	}
	for j, sub := range cfg.Categories[i].Subcategories {
		if sub.ID == subID {
			return i, j
		}
	}
	return i, -1
}

// categoryIDTaken reports whether id names any category or subcategory.
func categoryIDTaken(cfg *models.TenantConfiguration, id string) bool {
	for _, c := range cfg.Categories {
		if c.ID == id {
			return true
		}
		for _, sub := range c.Subcategories {
			if sub.ID == id {
				return true
			}
		}
	}
	return false
}

func productIndex(cfg *models.TenantConfiguration, id string) int {
	for i, p := range cfg.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func badgeIndex(cfg *models.TenantConfiguration, id string) int {
	for i, b := range cfg.Badges {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func slideIndex(cfg *models.TenantConfiguration, variant models.SliderVariant, id string) int {
	for i, sl := range cfg.SliderImages[variant] {
		if sl.ID == id {
			return i
		}
	}
	return -1
}

func productsWithout(products []models.Product, categoryID string) []models.Product {
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.CategoryID != categoryID {
			kept = append(kept, p)
		}
	}
	return kept
}

func withListDefaults(p models.Product) models.Product {
	if p.SubImages == nil {
		p.SubImages = []string{}
	}
	if p.DetailImages == nil {
		p.DetailImages = []string{}
	}
	if p.Options == nil {
		p.Options = []models.ProductOption{}
	}
	if p.ColorOptions == nil {
		p.ColorOptions = []models.ColorOption{}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
	return p
}
