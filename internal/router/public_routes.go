package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/guestlist-rsvp/internal/config"
	"github.com/iliyamo/guestlist-rsvp/internal/handler"
	"github.com/iliyamo/guestlist-rsvp/internal/middleware"
)

// RegisterPublic registers the unauthenticated invite endpoints. The
// landing lookup sits behind the Redis response cache (every guest
// following a shared link requests the same slug); the search and
// submission routes sit behind the token-bucket rate limiter because
// they accept anonymous traffic.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e.GET("/v1/invites/:slug", p.ResolveInvite, cache)
	e.GET("/v1/invites/:slug/guests", p.SearchGuests, limit)
	e.POST("/v1/invites/:slug/guests/:id/rsvp", p.SubmitRSVP, limit)
	e.POST("/v1/invites/:slug/guests/:id/departure", p.SubmitDeparture, limit)
	e.POST("/v1/invites/:slug/guests/:id/documents", p.UploadDocument, limit)
}
