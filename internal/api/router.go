package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"geofence-alert-backend/config"
	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/live"
	"geofence-alert-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, db *gorm.DB, webpushOptions *webpush.Options, hub *live.Hub) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(db, alert.NewGormStore(db), webpushOptions, hub)

	rps := cfg.RateLimitPerSec
	if rps <= 0 {
		rps = 10
	}
	rateLimiter := mw.RateLimiter(rate.Limit(rps), 5)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Second
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// GET /api/alerts
		api.GET("/alerts", caching, handler.GetAlerts)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		// Live alert feed; bypasses the cache middleware.
		api.GET("/ws/alerts", handler.AlertFeed)
	}

	return r
}
