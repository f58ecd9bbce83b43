package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupUserRoutes(api, c)
		setupBookRoutes(api, c)
		setupReviewRoutes(api, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "Can't find " + ctx.Request.URL.Path + " on this server",
		})
	})

	return router
}

func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.GET("/logout", middleware.RequireAuth(c.JWTManager), c.UserHandler.Logout)
		auth.GET("/me", middleware.RequireAuth(c.JWTManager), c.UserHandler.Me)
	}
}

func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/users")
	users.Use(middleware.RequireAuth(c.JWTManager))
	{
		users.GET("/:id", c.UserHandler.GetByID)
		users.PUT("/:id", c.UserHandler.Update)
		users.DELETE("/:id", c.UserHandler.Delete)
	}
}

func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		// Public routes
		books.GET("", c.BookHandler.List)
		books.GET("/featured", c.BookHandler.Featured)
		books.GET("/:id", c.BookHandler.GetByID)

		// Admin only routes
		admin := books.Group("")
		admin.Use(middleware.RequireAuth(c.JWTManager), middleware.RequireAdmin())
		{
			admin.POST("", c.BookHandler.Create)
			admin.PUT("/:id", c.BookHandler.Update)
			admin.DELETE("/:id", c.BookHandler.Delete)
		}
	}
}

func setupReviewRoutes(api *gin.RouterGroup, c *container.Container) {
	reviews := api.Group("/reviews")
	{
		// Public routes
		reviews.GET("", c.ReviewHandler.List)
		reviews.GET("/:id", c.ReviewHandler.GetByID)

		// Authenticated routes; ownership is enforced in the service layer.
		authed := reviews.Group("")
		authed.Use(middleware.RequireAuth(c.JWTManager))
		{
			authed.POST("", c.ReviewHandler.Create)
			authed.PUT("/:id", c.ReviewHandler.Update)
			authed.DELETE("/:id", c.ReviewHandler.Delete)
			authed.POST("/:id/refine", c.ReviewHandler.Refine)
		}
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{
			"mongodb": "ok",
			"redis":   "ok",
		}
		status := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["mongodb"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.HealthCheck(ctx.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":  "success",
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
