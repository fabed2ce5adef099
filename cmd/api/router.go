package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-admin/internal/shared/middleware"
	"storefront-admin/internal/shared/response"
	"storefront-admin/pkg/container"
)

// SetupRouter wires every route. The whole admin surface sits behind JWT
// auth plus the admin-role check.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), middleware.Recovery())

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "cache unreachable")
			return
		}
		if err := c.Pool.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{"status": "ok"})
	})

	admin := v1.Group("/admin", middleware.Auth(c.JWTManager), middleware.Admin())
	{
		products := admin.Group("/products")
		{
			products.GET("", c.ProductHandler.List)
			products.POST("", c.ProductHandler.Create)

			// Import/export and bulk come before the :id routes so gin does
			// not treat "export" as a product ID.
			products.GET("/export", c.ExportHandler.Export)
			products.POST("/import", c.ImportHandler.Validate)
			products.PUT("/import", c.ImportHandler.Execute)
			products.POST("/bulk", c.BulkHandler.Apply)

			products.GET("/:id", c.ProductHandler.Get)
			products.PUT("/:id", c.ProductHandler.Update)
			products.DELETE("/:id", c.ProductHandler.Delete)
			products.GET("/:id/price-history", c.ProductHandler.PriceHistory)
			products.POST("/:id/images", c.ProductHandler.UploadImages)

			products.GET("/:id/variants", c.VariantHandler.List)
			products.POST("/:id/variants", c.VariantHandler.Create)
			products.PUT("/:id/variants/:variantId", c.VariantHandler.Update)
			products.DELETE("/:id/variants/:variantId", c.VariantHandler.Delete)

			products.GET("/:id/related", c.RelatedHandler.List)
			products.POST("/:id/related", c.RelatedHandler.Add)
			products.DELETE("/:id/related/:relatedId", c.RelatedHandler.Remove)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", c.CategoryHandler.List)
			categories.POST("", c.CategoryHandler.Create)
			categories.GET("/:id", c.CategoryHandler.Get)
			categories.PUT("/:id", c.CategoryHandler.Update)
			categories.DELETE("/:id", c.CategoryHandler.Delete)
		}

		admin.GET("/dashboard/metrics", c.DashboardHandler.Metrics)
	}

	return router
}
