package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/models"
)

type CategoryInput struct {
	ID            string               `json:"id"`
	Name          string               `json:"name" binding:"required"`
	Subcategories []models.Subcategory `json:"subcategories"`
}

type SubcategoryInput struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
}

type BadgeInput struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type SlideInput struct {
	ID         string `json:"id"`
	Img        string `json:"img" binding:"required"`
	Alt        string `json:"alt"`
	NavText    string `json:"navText"`
	Link       string `json:"link"`
	CategoryID string `json:"categoryId"`
}

type ReorderInput struct {
	From *int `json:"from" binding:"required,min=0"`
	To   *int `json:"to" binding:"required,min=0"`
}

func (in SlideInput) slide() models.Slide {
	return models.Slide{ID: in.ID, Img: in.Img, Alt: in.Alt, NavText: in.NavText, Link: in.Link, CategoryID: in.CategoryID}
}

// GET /v1/sessions/:id/categories/:categoryId
func (h *Handlers) ResolveCategory(c *gin.Context) {
	match, ok := tabOf(c).Store.ResolveCategory(c.Param("categoryId"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "category not found"})
		return
	}
	c.JSON(http.StatusOK, match)
}

// POST /v1/sessions/:id/categories
func (h *Handlers) AddCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	created, err := tabOf(c).Store.AddCategory(models.Category{ID: input.ID, Name: input.Name, Subcategories: input.Subcategories})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /v1/sessions/:id/categories/:categoryId
func (h *Handlers) UpdateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	err := tabOf(c).Store.UpdateCategory(models.Category{ID: c.Param("categoryId"), Name: input.Name, Subcategories: input.Subcategories})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "category updated"})
}

// DELETE /v1/sessions/:id/categories/:categoryId
func (h *Handlers) DeleteCategory(c *gin.Context) {
	if err := tabOf(c).Store.DeleteCategory(c.Param("categoryId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "category deleted"})
}

// POST /v1/sessions/:id/categories/:categoryId/subcategories
func (h *Handlers) AddSubcategory(c *gin.Context) {
	var input SubcategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	created, err := tabOf(c).Store.AddSubcategory(c.Param("categoryId"), models.Subcategory{ID: input.ID, Name: input.Name})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /v1/sessions/:id/categories/:categoryId/subcategories/:subId
func (h *Handlers) UpdateSubcategory(c *gin.Context) {
	var input SubcategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	err := tabOf(c).Store.UpdateSubcategory(c.Param("categoryId"), models.Subcategory{ID: c.Param("subId"), Name: input.Name})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "subcategory updated"})
}

// DELETE /v1/sessions/:id/categories/:categoryId/subcategories/:subId
func (h *Handlers) DeleteSubcategory(c *gin.Context) {
	if err := tabOf(c).Store.DeleteSubcategory(c.Param("categoryId"), c.Param("subId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "subcategory deleted"})
}

// POST /v1/sessions/:id/products
func (h *Handlers) AddProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, err)
		return
	}
	created, err := tabOf(c).Store.AddProduct(product)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /v1/sessions/:id/products/:productId
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		badRequest(c, err)
		return
	}
	product.ID = c.Param("productId")
	if err := tabOf(c).Store.UpdateProduct(product); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /v1/sessions/:id/products/:productId
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := tabOf(c).Store.DeleteProduct(c.Param("productId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

// POST /v1/sessions/:id/badges
func (h *Handlers) AddBadge(c *gin.Context) {
	var input BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	created, err := tabOf(c).Store.AddBadge(models.Badge{ID: input.ID, Name: input.Name, Color: input.Color})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /v1/sessions/:id/badges/:badgeId
func (h *Handlers) UpdateBadge(c *gin.Context) {
	var input BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if err := tabOf(c).Store.UpdateBadge(models.Badge{ID: c.Param("badgeId"), Name: input.Name, Color: input.Color}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "badge updated"})
}

// DELETE /v1/sessions/:id/badges/:badgeId
func (h *Handlers) DeleteBadge(c *gin.Context) {
	if err := tabOf(c).Store.DeleteBadge(c.Param("badgeId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "badge deleted"})
}

// POST /v1/sessions/:id/slides/:variant
func (h *Handlers) AddSlide(c *gin.Context) {
	var input SlideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	created, err := tabOf(c).Store.AddSlide(models.SliderVariant(c.Param("variant")), input.slide())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /v1/sessions/:id/slides/:variant/:slideId
func (h *Handlers) UpdateSlide(c *gin.Context) {
	var input SlideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	input.ID = c.Param("slideId")
	if err := tabOf(c).Store.UpdateSlide(models.SliderVariant(c.Param("variant")), input.slide()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, input.slide())
}

// DELETE /v1/sessions/:id/slides/:variant/:slideId
func (h *Handlers) RemoveSlide(c *gin.Context) {
	if err := tabOf(c).Store.RemoveSlide(models.SliderVariant(c.Param("variant")), c.Param("slideId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "slide removed"})
}

// POST /v1/sessions/:id/slides/:variant/reorder
func (h *Handlers) ReorderSlides(c *gin.Context) {
	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	variant := models.SliderVariant(c.Param("variant"))
	store := tabOf(c).Store
	if err := store.ReorderSlides(variant, *input.From, *input.To); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, store.Config().SliderImages[variant])
}
