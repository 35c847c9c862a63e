// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/config"
	"github.com/stocklane/catalog-admin/internal/handlers"
	"github.com/stocklane/catalog-admin/internal/middleware"
	"github.com/stocklane/catalog-admin/internal/services"
	"github.com/stocklane/catalog-admin/internal/utils"
)

func Initialize(db *gorm.DB, store cache.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	authService := services.NewAuthService(db, store, cfg)
	categoryService := services.NewCategoryService(db, store)
	productService := services.NewProductService(db, store)
	inventoryService := services.NewInventoryService(db, store)
	importService := services.NewImportService(db, store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	importHandler := handlers.NewImportHandler(importService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	tokenCacheTTL := time.Duration(cfg.JWT.TokenCacheTTL) * time.Second
	authRequired := middleware.AuthRequired(store, tokenCacheTTL)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/signup", authRequired, middleware.MasterRequired(), authHandler.Signup)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// Category routes
		categories := v1.Group("/categories")
		categories.Use(authRequired)
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)

			protected := categories.Group("")
			protected.Use(middleware.MasterRequired())
			{
				protected.POST("", categoryHandler.Create)
				protected.PUT("/:id", categoryHandler.Update)
				protected.DELETE("/:id", categoryHandler.Delete)
			}
		}

		// Product routes
		products := v1.Group("/products")
		products.Use(authRequired)
		{
			products.GET("", productHandler.List)

			protected := products.Group("")
			protected.Use(middleware.MasterRequired())
			{
				protected.POST("", productHandler.Create)
				protected.PUT("/:id", productHandler.Update)
				protected.DELETE("/:id", productHandler.Delete)
			}
		}

		// Inventory routes
		inventory := v1.Group("/inventory")
		inventory.Use(authRequired)
		{
			inventory.GET("", inventoryHandler.List)
			inventory.GET("/:id", inventoryHandler.Get)

			protected := inventory.Group("")
			protected.Use(middleware.MasterRequired())
			{
				protected.POST("", inventoryHandler.Create)
				protected.PUT("/:id", inventoryHandler.Update)
				protected.DELETE("/:id", inventoryHandler.Delete)
			}
		}

		// Bulk CSV import
		imports := v1.Group("/import")
		imports.Use(authRequired, middleware.MasterRequired(), middleware.UploadRateLimit())
		{
			imports.POST("/upload", importHandler.Upload)
		}
	}

	return r
}
