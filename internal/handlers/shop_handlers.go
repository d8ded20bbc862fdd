package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
	"github.com/OJS-dev-code/ShopFrame-sub000/internal/site"
)

type AddToCartInput struct {
	ProductID string            `json:"productId" binding:"required"`
	Quantity  int               `json:"quantity" binding:"omitempty,gt=0"`
	Options   map[string]string `json:"options"`
}

type CartLineInput struct {
	ProductID string            `json:"productId" binding:"required"`
	Options   map[string]string `json:"options"`
	Quantity  int               `json:"quantity"`
}

type CartResponse struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
}

func cartResponse(items []models.CartItem) CartResponse {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return CartResponse{Items: items, Count: count}
}

// GET /v1/sessions/:id/cart
func (h *Handlers) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(tabOf(c).Store.Cart(c.Request.Context())))
}

// GET /v1/sessions/:id/cart/count
func (h *Handlers) CartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": tabOf(c).Store.CartCount(c.Request.Context())})
}

// POST /v1/sessions/:id/cart
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	items, err := tabOf(c).Store.AddToCart(c.Request.Context(), input.ProductID, input.Quantity, input.Options)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(items))
}

// PATCH /v1/sessions/:id/cart
func (h *Handlers) UpdateCartQuantity(c *gin.Context) {
	var input CartLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	items := tabOf(c).Store.UpdateCartQuantity(c.Request.Context(), input.ProductID, input.Options, input.Quantity)
	c.JSON(http.StatusOK, cartResponse(items))
}

// DELETE /v1/sessions/:id/cart/items
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	var input CartLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	items := tabOf(c).Store.RemoveFromCart(c.Request.Context(), input.ProductID, input.Options)
	c.JSON(http.StatusOK, cartResponse(items))
}

// DELETE /v1/sessions/:id/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	tabOf(c).Store.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse([]models.CartItem{}))
}

// POST /v1/sessions/:id/likes/:productId
func (h *Handlers) ToggleLike(c *gin.Context) {
	productID := c.Param("productId")
	liked, err := tabOf(c).Store.ToggleLike(c.Request.Context(), productID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productId": productID, "liked": liked})
}

// GET /v1/sites/:slug
func (h *Handlers) GetSite(c *gin.Context) {
	res := h.Sites.LoadBySlug(c.Request.Context(), c.Param("slug"))
	switch res.Status {
	case site.StatusFound:
		c.JSON(http.StatusOK, res.Config)
	case site.StatusNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "site not found"})
	default:
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "site could not be loaded"})
	}
}
