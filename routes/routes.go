package routes

import (
	"time"

	"digicoop-backend/handlers"
	"digicoop-backend/imagestore"
	"digicoop-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, images imagestore.Client) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	producerHandler := &handlers.ProducerHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Images: images}
	adminHandler := &handlers.AdminHandler{DB: db}

	// Login attempts are rate limited per client IP.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/refresh", authLimiter.Middleware(), authHandler.RefreshTokenHandler)

		// The kind registry is static and public.
		api.GET("/product-types", productHandler.GetProductTypes)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)
		protected.POST("/auth/change-password", authHandler.ChangePassword)

		// Product management; every route is scoped to the caller's own
		// records inside the handlers.
		protected.GET("/products", productHandler.List)
		protected.GET("/products/:id", productHandler.Get)
		protected.POST("/products", productHandler.Create)
		protected.PUT("/products/:id", productHandler.Update)
		protected.DELETE("/products/:id", productHandler.Delete)
		protected.POST("/products/:id/publish", productHandler.Publish)
		protected.POST("/products/:id/unpublish", productHandler.Unpublish)
		protected.POST("/products/:id/archive", productHandler.Archive)

		// Image coordination
		protected.POST("/products/:id/images", productHandler.UploadImages)
		protected.POST("/products/:id/images/:imageId/set-main", productHandler.SetMainImage)
		protected.DELETE("/products/:id/images/:imageId", productHandler.DeleteImage)
		protected.POST("/products/:id/images/sync", productHandler.SyncImages)
	}

	// Producer management is restricted to cooperative accounts.
	producers := api.Group("/producers")
	producers.Use(middleware.AuthMiddleware())
	producers.Use(middleware.CooperativeMiddleware())
	{
		producers.GET("", producerHandler.List)
		producers.POST("", producerHandler.Create)
		producers.GET("/:id", producerHandler.Get)
		producers.PUT("/:id", producerHandler.Update)
		producers.PATCH("/:id/status", producerHandler.UpdateStatus)
		producers.POST("/:id/deactivate", producerHandler.Deactivate)

		producers.POST("/import", producerHandler.Import)
		producers.POST("/import/async", producerHandler.ImportAsync)
		producers.GET("/import/jobs/:id", producerHandler.GetImportJob)
	}

	// Platform account oversight.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.PATCH("/users/:id/block", adminHandler.SetUserBlocked)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
