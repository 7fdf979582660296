package router

import (
	"worldmart/internal/adapter/api/handler"
	"worldmart/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware) {
	// Browsing is public; no authentication required
	productGroup := e.Group("/v1/products")

	productGroup.GET("", productHandler.ListProducts)   // GET /v1/products - List active products
	productGroup.GET("/mine", productHandler.ListMyProducts, authMiddleware.Authenticate) // GET /v1/products/mine - Seller's own listings
	productGroup.GET("/:id", productHandler.GetProduct) // GET /v1/products/:id - Product detail

	// Listing management requires authentication; sellers manage only their own
	productGroup.POST("", productHandler.CreateProduct, authMiddleware.Authenticate)       // POST /v1/products - Create listing
	productGroup.PUT("/:id", productHandler.UpdateProduct, authMiddleware.Authenticate)    // PUT /v1/products/:id - Update listing
	productGroup.DELETE("/:id", productHandler.DeleteProduct, authMiddleware.Authenticate) // DELETE /v1/products/:id - Delete listing

	e.GET("/v1/categories", productHandler.ListCategories) // GET /v1/categories - List categories
}
