package api

import (
	"github.com/gin-gonic/gin"

	"github.com/aptlinks/backend/config"
	"github.com/aptlinks/backend/internal/ans"
	"github.com/aptlinks/backend/internal/avatar"
	"github.com/aptlinks/backend/internal/cache"
	"github.com/aptlinks/backend/internal/chain"
	"github.com/aptlinks/backend/internal/middleware"
	"github.com/aptlinks/backend/internal/service"
)

// SetupAPI constructs the service graph and registers all routes. The cache
// may be nil; caching and rate limiting are then disabled.
func SetupAPI(router *gin.Engine, cfg *config.Config, c cache.Cache) {
	client := chain.NewClient(cfg)
	resolver := ans.NewResolver(cfg, c)
	avatars := avatar.NewResolver(cfg, c)

	profileService := service.NewProfileService(resolver, client, avatars)
	editorService := service.NewEditorService(client, client)

	if redisClient := cache.RedisClient(c); redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Limit:  cfg.RateLimit,
		})
		router.Use(limiter.Middleware())
	}

	handler := NewProfileHandler(client, resolver, profileService, editorService)
	handler.RegisterRoutes(router)
}
