// Package likes tracks the products a signed-in viewer has liked.
package likes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

var ErrSignInRequired = errors.New("sign in to like products")

type Tracker struct {
	store repository.DocumentStore
	log   *logrus.Entry
	now   func() time.Time
}

// NewTracker creates a tracker storing likes in store.
func NewTracker(store repository.DocumentStore, log *logrus.Entry) *Tracker {
	if log == nil {
		log = logger.WithComponent("likes")
	}
	return &Tracker{store: store, log: log, now: time.Now}
}

// Load returns the ids of every product viewerID has liked. Backend errors
// are logged and yield an empty set.
func (t *Tracker) Load(ctx context.Context, viewerID string) map[string]struct{} {
	liked := map[string]struct{}{}
	if viewerID == "" {
		return liked
	}
	docs, err := t.store.QueryByField(ctx, repository.Likes, "userId", viewerID)
	if err != nil {
		logger.WithContext(ctx, t.log).WithError(err).WithField("viewer_id", viewerID).Warn("load likes failed")
		return liked
	}
	for _, doc := range docs {
		if id, ok := doc.Data["productId"].(string); ok && id != "" {
			liked[id] = struct{}{}
		}
	}
	return liked
}

// Toggle removes the viewer's like of productID when one exists and adds one
// otherwise, reporting whether the product is liked afterwards. The lookup and
// the write are separate calls, so two concurrent toggles can race.
func (t *Tracker) Toggle(ctx context.Context, viewerID, siteSlug, productID string) (bool, error) {
	if viewerID == "" {
		return false, ErrSignInRequired
	}
	docs, err := t.store.QueryByField(ctx, repository.Likes, "userId", viewerID)
	if err != nil {
		return false, fmt.Errorf("look up like: %w", err)
	}

	var existing []string
	for _, doc := range docs {
		if doc.Data["productId"] == productID {
			existing = append(existing, doc.Key)
		}
	}
	if len(existing) > 0 {
		// duplicates left behind by an earlier race are removed together
		for _, key := range existing {
			if err := t.store.DeleteDocument(ctx, repository.Likes, key); err != nil {
				return true, fmt.Errorf("remove like: %w", err)
			}
		}
		return false, nil
	}

	data, err := repository.Encode(models.Like{
		UserID:    viewerID,
		ProductID: productID,
		SiteSlug:  siteSlug,
		CreatedAt: t.now().UTC(),
	})
	if err != nil {
		return false, err
	}
	if _, err := t.store.AddDocument(ctx, repository.Likes, data); err != nil {
		return false, fmt.Errorf("add like: %w", err)
	}
	return true, nil
}
