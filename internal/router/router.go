package router

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipegen/config"
	"github.com/pageza/recipegen/internal/api"
	"github.com/pageza/recipegen/internal/middleware"
)

// SetupRouter configures the application routes. limiter may be nil, in which
// case generation is not rate limited.
func SetupRouter(
	cfg *config.Config,
	recipeHandler *api.RecipeHandler,
	tokens middleware.TokenIssuer,
	limiter *middleware.RateLimiter,
) (*gin.Engine, error) {
	router := gin.New()
	// With no trusted proxies the client IP is the peer address, which the
	// rate limiter keys on.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())

	if err := api.LoadTemplates(router); err != nil {
		return nil, err
	}

	// CORS middleware
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check endpoint (no session required)
	router.GET("/health", api.HealthCheck)

	sessions := router.Group("")
	sessions.Use(middleware.Session(tokens))

	var guards []gin.HandlerFunc
	if limiter != nil {
		guards = append(guards, limiter.RateLimitMiddleware())
	}
	recipeHandler.RegisterRoutes(sessions, guards...)

	return router, nil
}
