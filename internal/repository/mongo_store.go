package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 5 * time.Second

// Mongo server error codes the store reports distinctly.
const (
	codeUnauthorized      = 13
	codeAtlasUnauthorized = 8000
	codeObjectTooLarge    = 10334
	codeTooLargeToUpdate  = 17419
	codeQuotaExceeded     = 12501
)

// MongoStore maps every collection name to a Mongo collection and uses the
// document key as _id.
type MongoStore struct {
	db      *mongo.Database
	timeout time.Duration
}

// NewMongoStore creates a store over db. A non-positive timeout uses the default.
func NewMongoStore(db *mongo.Database, timeout time.Duration) *MongoStore {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MongoStore{db: db, timeout: timeout}
}

// GetDocument retrieves a document by key.
func (s *MongoStore) GetDocument(ctx context.Context, collection, key string) (Document, error) {
	if err := validCollection(collection); err != nil {
		return Document{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var raw bson.M
	if err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&raw); err != nil {
		return Document{}, mapError(err)
	}
	return fromBSON(raw)
}

// SetDocument upserts a document, merging top-level fields when merge is set.
func (s *MongoStore) SetDocument(ctx context.Context, collection, key string, data map[string]any, merge bool) error {
	if err := validCollection(collection); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body := withoutID(data)
	filter := bson.M{"_id": key}
	coll := s.db.Collection(collection)

	var err error
	if merge {
		if len(body) == 0 {
			_, err = coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": bson.M{"_id": key}}, options.Update().SetUpsert(true))
		} else {
			_, err = coll.UpdateOne(ctx, filter, bson.M{"$set": body}, options.Update().SetUpsert(true))
		}
	} else {
		_, err = coll.ReplaceOne(ctx, filter, body, options.Replace().SetUpsert(true))
	}
	if err != nil {
		return mapError(err)
	}
	return nil
}

// QueryByField returns the documents whose field equals value.
func (s *MongoStore) QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{field: value})
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, mapError(err)
	}

	docs := make([]Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := fromBSON(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// AddDocument inserts data under a generated key.
func (s *MongoStore) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := validCollection(collection); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := uuid.NewString()
	body := withoutID(data)
	body["_id"] = key
	if _, err := s.db.Collection(collection).InsertOne(ctx, body); err != nil {
		return "", mapError(err)
	}
	return key, nil
}

// DeleteDocument removes a document. A missing key is not an error.
func (s *MongoStore) DeleteDocument(ctx context.Context, collection, key string) error {
	if err := validCollection(collection); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return mapError(err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes the site core queries by.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*s.timeout)
	defer cancel()

	indexes := map[string][]string{
		SiteConfigs: {"siteSlug"},
		Likes:       {"userId", "productId"},
		Users:       {"email"},
	}
	for collection, fields := range indexes {
		models := make([]mongo.IndexModel, 0, len(fields))
		for _, field := range fields {
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}})
		}
		if _, err := s.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, mapError(err))
		}
	}
	return nil
}

func withoutID(data map[string]any) bson.M {
	body := bson.M{}
	for k, v := range data {
		if k == "_id" {
			continue
		}
		body[k] = v
	}
	return body
}

// fromBSON converts a decoded Mongo document into plain Go values.
func fromBSON(raw bson.M) (Document, error) {
	var key string
	switch id := raw["_id"].(type) {
	case string:
		key = id
	case primitive.ObjectID:
		key = id.Hex()
	default:
		key = fmt.Sprint(id)
	}
	delete(raw, "_id")

	encoded, err := json.Marshal(raw)
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", key, err)
	}
	data := map[string]any{}
	if err := json.Unmarshal(encoded, &data); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return Document{Key: key, Data: data}, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.HasErrorCode(codeUnauthorized), serverErr.HasErrorCode(codeAtlasUnauthorized):
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		case serverErr.HasErrorCode(codeObjectTooLarge),
			serverErr.HasErrorCode(codeTooLargeToUpdate),
			serverErr.HasErrorCode(codeQuotaExceeded):
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}
	// the driver rejects oversized documents before sending them
	if strings.Contains(strings.ToLower(err.Error()), "too large") {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
