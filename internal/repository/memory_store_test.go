package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetDocument(context.Background(), SiteConfigs, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSetMergeAndReplace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.SetDocument(ctx, SiteConfigs, "owner-1", map[string]any{"siteSlug": "acme", "displayTitle": "Acme"}, false))
	require.NoError(t, s.SetDocument(ctx, SiteConfigs, "owner-1", map[string]any{"displayTitle": "Acme Shop"}, true))

	doc, err := s.GetDocument(ctx, SiteConfigs, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "acme", doc.Data["siteSlug"])
	assert.Equal(t, "Acme Shop", doc.Data["displayTitle"])

	require.NoError(t, s.SetDocument(ctx, SiteConfigs, "owner-1", map[string]any{"displayTitle": "Only"}, false))
	doc, err = s.GetDocument(ctx, SiteConfigs, "owner-1")
	require.NoError(t, err)
	assert.NotContains(t, doc.Data, "siteSlug")
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SetDocument(ctx, "c", "k", map[string]any{"items": []any{"a"}}, false))

	doc, err := s.GetDocument(ctx, "c", "k")
	require.NoError(t, err)
	doc.Data["items"].([]any)[0] = "mutated"

	again, err := s.GetDocument(ctx, "c", "k")
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, again.Data["items"])
}

func TestMemoryStoreQueryByFieldKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SetDocument(ctx, SiteConfigs, "b", map[string]any{"siteSlug": "dup"}, false))
	require.NoError(t, s.SetDocument(ctx, SiteConfigs, "a", map[string]any{"siteSlug": "dup"}, false))
	require.NoError(t, s.SetDocument(ctx, SiteConfigs, "c", map[string]any{"siteSlug": "other"}, false))

	docs, err := s.QueryByField(ctx, SiteConfigs, "siteSlug", "dup")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].Key)
	assert.Equal(t, "a", docs[1].Key)
}

func TestMemoryStoreAddAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	key, err := s.AddDocument(ctx, Likes, map[string]any{"userId": "u1", "productId": "p1"})
	require.NoError(t, err)
	assert.NotEmpty(t, key)
	assert.Equal(t, 1, s.Len(Likes))

	require.NoError(t, s.DeleteDocument(ctx, Likes, key))
	require.NoError(t, s.DeleteDocument(ctx, Likes, key))
	assert.Equal(t, 0, s.Len(Likes))
}

func TestMemoryStoreRejectsEmptyCollection(t *testing.T) {
	s := NewMemoryStore()
	err := s.SetDocument(context.Background(), "", "k", nil, false)
	assert.ErrorIs(t, err, ErrInvalidCollection)
}

func TestEncodeDecode(t *testing.T) {
	type item struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	data, err := Encode(item{Name: "shirt", Price: 12.5})
	require.NoError(t, err)
	assert.Equal(t, 12.5, data["price"])

	var out item
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, "shirt", out.Name)
}

func TestCartCollection(t *testing.T) {
	assert.Equal(t, "carts_acme", CartCollection("acme"))
}

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError(mongo.ErrNoDocuments), ErrNotFound)
	assert.ErrorIs(t, mapError(mongo.CommandError{Code: 13, Message: "not authorized"}), ErrPermissionDenied)
	assert.ErrorIs(t, mapError(mongo.CommandError{Code: 10334, Message: "BSONObjTooLarge"}), ErrQuotaExceeded)
	assert.ErrorIs(t, mapError(errors.New("document is too large")), ErrQuotaExceeded)
	assert.ErrorIs(t, mapError(errors.New("connection reset")), ErrUnavailable)
	assert.NoError(t, mapError(nil))
}

func TestFromBSON(t *testing.T) {
	doc, err := fromBSON(bson.M{
		"_id":   "owner-1",
		"title": "Acme",
		"nested": bson.M{
			"list": bson.A{"x", int32(2)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", doc.Key)
	assert.NotContains(t, doc.Data, "_id")
	nested := doc.Data["nested"].(map[string]any)
	assert.Equal(t, []any{"x", float64(2)}, nested["list"])
}
