package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bestiary-backend/internal/shared/middleware"
	"bestiary-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCreatureRoutes(v1, c)
		setupFavouriteRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

// setupCreatureRoutes exposes the read-only catalog to any authenticated
// user.
func setupCreatureRoutes(v1 *gin.RouterGroup, c *container.Container) {
	creatures := v1.Group("/creatures")
	creatures.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		creatures.GET("", c.CreatureHandler.List)
		creatures.GET("/:id", c.CreatureHandler.GetDetails)
	}
}

func setupFavouriteRoutes(v1 *gin.RouterGroup, c *container.Container) {
	favourites := v1.Group("/favourites")
	favourites.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		favourites.POST("", c.FavouriteHandler.Add)
		favourites.DELETE("/:creatureId", c.FavouriteHandler.Remove)
		favourites.GET("/:creatureId/background", c.FavouriteHandler.GetBackground)
		favourites.PUT("/:creatureId/background", c.FavouriteHandler.SetBackground)
		favourites.DELETE("/:creatureId/background", c.FavouriteHandler.ClearBackground)
	}
}

// setupAdminRoutes groups the catalog management surface behind the admin
// role check.
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequireAdmin())
	{
		admin.GET("/creatures", c.AdminCreatureHandler.List)
		admin.POST("/creatures", c.AdminCreatureHandler.Create)
		admin.PUT("/creatures/:id", c.AdminCreatureHandler.Update)
		admin.DELETE("/creatures/:id", c.AdminCreatureHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
