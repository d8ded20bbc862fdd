package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/repository"
)

// Failure groups the reasons a save is refused.
type Failure string

const (
	FailureNone         Failure = ""
	FailureUnauthorized Failure = "unauthorized"
	FailureValidation   Failure = "validation"
	FailureConflict     Failure = "conflict"
	FailurePermission   Failure = "permission"
	FailureQuota        Failure = "quota"
	FailureTransient    Failure = "transient"
)

type SaveResult struct {
	OK      bool     `json:"ok"`
	Failure Failure  `json:"failure,omitempty"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Save persists the draft of the signed-in owner. The slides are written to
// their own document since the embedded lists can exceed the backend's
// document size limit. An invalid draft is never written.
//
// The slides go first. A failed slides write leaves the stored site as it
// was; a failed config write after it leaves the new slides with the old
// configuration until the next successful save.
func (s *Store) Save(ctx context.Context) SaveResult {
	s.mu.Lock()
	cfg := cloneConfig(s.draft)
	user := copyIdentity(s.user)
	storefront := s.slug != ""
	loading := s.loading
	previousSlug := s.loadedSlug
	s.mu.Unlock()

	if storefront || user == nil || user.SiteSlug != "" {
		return SaveResult{Failure: FailureUnauthorized, Message: "Sign in as the site owner to save changes."}
	}
	if loading {
		return SaveResult{Failure: FailureTransient, Message: "The site is still loading. Try again in a moment."}
	}
	if cfg == nil {
		return SaveResult{Failure: FailureTransient, Message: "The site could not be loaded. Reload before saving."}
	}
	// the draft is only ever written to the documents of the tenant it was loaded for
	if cfg.TenantID != user.UserID {
		return SaveResult{Failure: FailureUnauthorized, Message: "This draft belongs to another account. Reload before saving."}
	}
	if problems := Validate(cfg); len(problems) > 0 {
		return SaveResult{
			Failure: FailureValidation,
			Message: fmt.Sprintf("Fix %d problem(s) before saving.", len(problems)),
			Errors:  problems,
		}
	}

	log := logger.WithContext(ctx, s.log).WithFields(logrus.Fields{"owner_id": user.UserID, "site_slug": cfg.SiteSlug})
	owner := user.UserID

	if cfg.SiteSlug != "" {
		docs, err := s.backend.QueryByField(ctx, repository.SiteConfigs, "siteSlug", cfg.SiteSlug)
		if err != nil {
			return s.saveFailed(log, err)
		}
		for _, doc := range docs {
			if doc.Key != owner {
				return SaveResult{
					Failure: FailureConflict,
					Message: fmt.Sprintf("The site address %q is already taken.", cfg.SiteSlug),
					Errors:  []string{"site address is already used by another site"},
				}
			}
		}
	}

	slides := make(map[string]any, len(cfg.SliderImages))
	for variant, list := range cfg.SliderImages {
		items := make([]any, 0, len(list))
		for _, sl := range list {
			data, err := repository.Encode(sl)
			if err != nil {
				return s.saveFailed(log, err)
			}
			items = append(items, data)
		}
		slides[string(variant)] = items
	}

	cfg.SliderImages = nil
	body, err := repository.Encode(cfg)
	if err != nil {
		return s.saveFailed(log, err)
	}
	delete(body, "tenantId")
	delete(body, "sliderImages")

	if err := s.backend.SetDocument(ctx, repository.SliderImages, owner, slides, false); err != nil {
		return s.saveFailed(log, err)
	}
	if err := s.backend.SetDocument(ctx, repository.SiteConfigs, owner, body, false); err != nil {
		return s.saveFailed(log, err)
	}

	s.loader.Invalidate(previousSlug, cfg.SiteSlug)
	s.mu.Lock()
	if s.draft != nil && s.draft.TenantID == cfg.TenantID {
		s.loadedSlug = cfg.SiteSlug
	}
	s.mu.Unlock()

	log.Info("site saved")
	return SaveResult{OK: true, Message: "Saved."}
}

func (s *Store) saveFailed(log *logrus.Entry, err error) SaveResult {
	log.WithError(err).Warn("save failed")
	switch {
	case errors.Is(err, repository.ErrPermissionDenied):
		return SaveResult{Failure: FailurePermission, Message: "You do not have permission to save this site."}
	case errors.Is(err, repository.ErrQuotaExceeded):
		return SaveResult{Failure: FailureQuota, Message: "The site is too large to save. Remove some images and try again."}
	default:
		return SaveResult{Failure: FailureTransient, Message: "Saving failed. Check your connection and try again."}
	}
}
