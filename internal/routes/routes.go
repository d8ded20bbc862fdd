package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OJS-dev-code/ShopFrame-sub000/internal/handlers"
)

// SetupRouter builds the engine with the middleware chain and every route.
func SetupRouter(h *handlers.Handlers, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(corsOrigins))
	router.Use(RequestID())
	router.Use(RequestLogger(h.Log))

	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes mounts the /v1 API on router.
func RegisterRoutes(router *gin.Engine, h *handlers.Handlers) {
	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})
		v1.GET("/sites/:slug", h.GetSite)
		v1.POST("/sessions", h.OpenSession)

		s := v1.Group("/sessions/:id")
		s.Use(h.WithTab())
		{
			s.GET("", h.GetSession)
			s.DELETE("", h.CloseSession)
			s.POST("/navigate", h.Navigate)

			s.GET("/config", h.GetConfig)
			s.PATCH("/config", h.UpdateField)
			s.POST("/save", h.Save)

			s.POST("/categories", h.AddCategory)
			s.GET("/categories/:categoryId", h.ResolveCategory)
			s.PUT("/categories/:categoryId", h.UpdateCategory)
			s.DELETE("/categories/:categoryId", h.DeleteCategory)
			s.POST("/categories/:categoryId/subcategories", h.AddSubcategory)
			s.PUT("/categories/:categoryId/subcategories/:subId", h.UpdateSubcategory)
			s.DELETE("/categories/:categoryId/subcategories/:subId", h.DeleteSubcategory)

			s.POST("/products", h.AddProduct)
			s.PUT("/products/:productId", h.UpdateProduct)
			s.DELETE("/products/:productId", h.DeleteProduct)

			s.POST("/badges", h.AddBadge)
			s.PUT("/badges/:badgeId", h.UpdateBadge)
			s.DELETE("/badges/:badgeId", h.DeleteBadge)

			s.POST("/slides/:variant", h.AddSlide)
			s.POST("/slides/:variant/reorder", h.ReorderSlides)
			s.PUT("/slides/:variant/:slideId", h.UpdateSlide)
			s.DELETE("/slides/:variant/:slideId", h.RemoveSlide)

			s.POST("/auth/signin", h.SignIn)
			s.POST("/auth/signup", h.SignUp)
			s.POST("/auth/signout", h.SignOut)

			s.GET("/cart", h.GetCart)
			s.GET("/cart/count", h.CartCount)
			s.POST("/cart", h.AddToCart)
			s.PATCH("/cart", h.UpdateCartQuantity)
			s.DELETE("/cart", h.ClearCart)
			s.DELETE("/cart/items", h.RemoveFromCart)

			s.POST("/likes/:productId", h.ToggleLike)
		}
	}
}
