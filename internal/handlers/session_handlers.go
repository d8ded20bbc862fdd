package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/auth"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/session"
)

type OpenSessionInput struct {
	Path  string `json:"path"`
	Token string `json:"token"`
}

type SessionResponse struct {
	SessionID string           `json:"sessionId"`
	Snapshot  session.Snapshot `json:"snapshot"`
}

type NavigateInput struct {
	Path   string `json:"path"`
	Action string `json:"action" binding:"omitempty,oneof=push replace back forward"`
}

type UpdateFieldInput struct {
	Path  string `json:"path" binding:"required"`
	Value any    `json:"value"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	User  auth.Identity `json:"user"`
	Token string        `json:"token"`
}

// POST /v1/sessions
func (h *Handlers) OpenSession(c *gin.Context) {
	var input OpenSessionInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}
	}
	if input.Token == "" {
		input.Token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	tab, err := h.Sessions.Open(c.Request.Context(), input.Path, input.Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("X-Session-ID", tab.ID)
	c.JSON(http.StatusCreated, SessionResponse{SessionID: tab.ID, Snapshot: tab.Store.Snapshot()})
}

// GET /v1/sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	tab := tabOf(c)
	c.JSON(http.StatusOK, SessionResponse{SessionID: tab.ID, Snapshot: tab.Store.Snapshot()})
}

// DELETE /v1/sessions/:id
func (h *Handlers) CloseSession(c *gin.Context) {
	h.Sessions.Close(tabOf(c).ID)
	c.JSON(http.StatusOK, SuccessResponse{Message: "session closed"})
}

// POST /v1/sessions/:id/navigate
func (h *Handlers) Navigate(c *gin.Context) {
	var input NavigateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	tab := tabOf(c)
	ctx := c.Request.Context()

	switch input.Action {
	case "back":
		if !tab.History.Back(ctx) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "no earlier page"})
			return
		}
	case "forward":
		if !tab.History.Forward(ctx) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "no later page"})
			return
		}
	case "replace":
		tab.History.Replace(ctx, input.Path)
	default:
		if input.Path == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "path is required"})
			return
		}
		tab.History.Push(ctx, input.Path)
	}
	c.JSON(http.StatusOK, SessionResponse{SessionID: tab.ID, Snapshot: tab.Store.Snapshot()})
}

// GET /v1/sessions/:id/config
func (h *Handlers) GetConfig(c *gin.Context) {
	store := tabOf(c).Store
	cfg := store.Config()
	if cfg == nil {
		switch store.State() {
		case session.StateSiteNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "site not found"})
		default:
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "site could not be loaded"})
		}
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PATCH /v1/sessions/:id/config
func (h *Handlers) UpdateField(c *gin.Context) {
	var input UpdateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	store := tabOf(c).Store
	if err := store.UpdateField(input.Path, input.Value); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, store.Config())
}

// POST /v1/sessions/:id/save
func (h *Handlers) Save(c *gin.Context) {
	res := tabOf(c).Store.Save(c.Request.Context())
	c.JSON(saveStatus(res.Failure), res)
}

func saveStatus(f session.Failure) int {
	switch f {
	case session.FailureNone:
		return http.StatusOK
	case session.FailureUnauthorized, session.FailurePermission:
		return http.StatusForbidden
	case session.FailureValidation:
		return http.StatusUnprocessableEntity
	case session.FailureConflict:
		return http.StatusConflict
	case session.FailureQuota:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusServiceUnavailable
	}
}

// POST /v1/sessions/:id/auth/signin
func (h *Handlers) SignIn(c *gin.Context) {
	var input SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	store := tabOf(c).Store
	id, err := store.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondAuth(c, store, id, http.StatusOK)
}

// POST /v1/sessions/:id/auth/signup
func (h *Handlers) SignUp(c *gin.Context) {
	var input SignUpRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	store := tabOf(c).Store
	id, err := store.SignUp(c.Request.Context(), auth.SignUpInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondAuth(c, store, id, http.StatusCreated)
}

// POST /v1/sessions/:id/auth/signout
func (h *Handlers) SignOut(c *gin.Context) {
	store := tabOf(c).Store
	store.SignOut(c.Request.Context())
	c.JSON(http.StatusOK, store.Snapshot())
}

func (h *Handlers) respondAuth(c *gin.Context, store *session.Store, id auth.Identity, status int) {
	token, err := store.Token()
	if err != nil {
		h.fail(c, errors.Join(errors.New("issue token"), err))
		return
	}
	c.JSON(status, AuthResponse{User: id, Token: token})
}
