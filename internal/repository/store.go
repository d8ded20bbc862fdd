package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrUnavailable       = errors.New("backend unavailable")
	ErrInvalidCollection = errors.New("invalid collection name")
)

const (
	SiteConfigs  = "siteConfigs"
	SliderImages = "sliderImages"
	Likes        = "likes"
	Users        = "users"
)

// CartCollection returns the cart collection of one storefront, keyed by viewer id.
func CartCollection(slug string) string {
	return "carts_" + slug
}

// Document is a stored document. Data holds plain values only:
// map[string]any, []any, string, float64, bool and nil.
type Document struct {
	Key  string
	Data map[string]any
}

// DocumentStore is everything the site core needs from its backend.
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, key string) (Document, error)
	// SetDocument upserts. With merge only the given top-level fields are written.
	SetDocument(ctx context.Context, collection, key string, data map[string]any, merge bool) error
	QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error)
	AddDocument(ctx context.Context, collection string, data map[string]any) (string, error)
	// DeleteDocument does not fail when the key is absent.
	DeleteDocument(ctx context.Context, collection, key string) error
}

// Encode converts a typed value into document data.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode fills out from document data.
func Decode(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func validCollection(name string) error {
	if name == "" {
		return ErrInvalidCollection
	}
	return nil
}
