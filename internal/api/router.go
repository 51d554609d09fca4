package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/frodoferhat/BreastfeedingTracker/config"
	"github.com/frodoferhat/BreastfeedingTracker/internal/mw"
	"github.com/frodoferhat/BreastfeedingTracker/internal/session"
	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, ctrl *session.Controller, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, ctrl, webpushOptions)

	rateLimiter := mw.RateLimit(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// Cached reads cover aggregates only. Session state and record lists
	// must always be live.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.CacheGET(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/babies", handler.CreateBaby)
		api.GET("/babies", handler.ListBabies)
		api.GET("/babies/:id", handler.GetBaby)
		api.PUT("/babies/:id", handler.UpdateBaby)
		api.DELETE("/babies/:id", handler.DeleteBaby)

		api.POST("/babies/:id/sessions/start", handler.StartSession)
		api.POST("/babies/:id/sessions/stop", handler.StopSession)
		api.POST("/babies/:id/sessions/switch", handler.SwitchSides)
		api.POST("/babies/:id/sessions/break", handler.ToggleBreak)
		api.GET("/babies/:id/sessions/active", handler.ActiveSession)
		api.GET("/babies/:id/sessions", handler.ListSessions)

		api.PATCH("/sessions/:id/volume", handler.AttachVolume)
		api.PATCH("/sessions/:id/note", handler.AttachNote)
		api.PATCH("/sessions/:id/audio", handler.AttachAudio)
		api.DELETE("/sessions/:id", handler.DeleteSession)

		api.GET("/babies/:id/stats/day", caching, handler.DayStats)
		api.GET("/babies/:id/stats/week", caching, handler.WeekStats)
		api.GET("/babies/:id/stats/bottle", caching, handler.BottleStats)
		api.GET("/babies/:id/stats/diaper", caching, handler.DiaperStats)
		api.GET("/babies/:id/stats/history", caching, handler.History)
		api.GET("/babies/:id/stats/daily", caching, handler.DailyBreakdown)
		api.GET("/babies/:id/stats/calendar", caching, handler.Calendar)

		api.POST("/babies/:id/diapers", handler.CreateDiaperLog)
		api.GET("/babies/:id/diapers", handler.ListDiaperLogs)
		api.DELETE("/diapers/:id", handler.DeleteDiaperLog)

		api.POST("/babies/:id/growth", handler.CreateGrowthMeasurement)
		api.GET("/babies/:id/growth", handler.ListGrowthMeasurements)
		api.GET("/babies/:id/growth/percentile", handler.GrowthPercentile)
		api.DELETE("/growth/:id", handler.DeleteGrowthMeasurement)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
