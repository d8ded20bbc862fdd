package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/auth"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/likes"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/logger"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/session"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/site"
)

const tabKey = "tab"

// Handlers holds what the HTTP handlers need.
type Handlers struct {
	Sessions *session.Registry
	Sites    *site.Loader
	Log      *logrus.Entry
}

// New creates the handlers over the tab registry and the site loader.
func New(sessions *session.Registry, sites *site.Loader, log *logrus.Entry) *Handlers {
	if log == nil {
		log = logger.WithComponent("http")
	}
	return &Handlers{Sessions: sessions, Sites: sites, Log: log}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// WithTab resolves the :id parameter to an open tab.
func (h *Handlers) WithTab() gin.HandlerFunc {
	return func(c *gin.Context) {
		tab, ok := h.Sessions.Get(c.Param("id"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), logger.SessionIDKey, tab.ID)
		if slug := tab.Store.Slug(); slug != "" {
			ctx = context.WithValue(ctx, logger.SiteSlugKey, slug)
		}
		if user := tab.Store.User(); user != nil {
			ctx = context.WithValue(ctx, logger.UserIDKey, user.UserID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(tabKey, tab)
		c.Next()
	}
}

func tabOf(c *gin.Context) *session.Tab {
	return c.MustGet(tabKey).(*session.Tab)
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidPath),
		errors.Is(err, session.ErrInvalidValue),
		errors.Is(err, session.ErrUnknownVariant),
		errors.Is(err, session.ErrInvalidIndex),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnknownID):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoDraft),
		errors.Is(err, session.ErrLoading),
		errors.Is(err, session.ErrDuplicateID),
		errors.Is(err, session.ErrDefaultBadge),
		errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, likes.ErrSignInRequired):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrUnauthorizedTenant):
		return http.StatusForbidden
	default:
		return http.StatusServiceUnavailable
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context(), h.Log).WithError(err).Error("request failed")
		c.JSON(status, ErrorResponse{Error: "the backend is unavailable, try again"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input: " + err.Error()})
}
