package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nenood/watchlist/caching"
	"github.com/nenood/watchlist/logger"
	"github.com/nenood/watchlist/web/session"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig configures rate limiting
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(c *gin.Context) string
	// Location and Flash are where a rejected request is sent and what it
	// is told.
	Location string
	Flash    string
}

// DefaultRateLimitConfig limits each client IP to requests per minute.
func DefaultRateLimitConfig(requests int) RateLimitConfig {
	return RateLimitConfig{
		Requests: requests,
		Window:   time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware counts requests per key and route in counter. Once a
// key reaches the limit inside the window, requests are redirected without
// reaching the handler. A non-positive limit disables the check.
func RateLimitMiddleware(counter *caching.Cache, config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.Requests <= 0 {
			c.Next()
			return
		}

		key := config.KeyFunc(c)
		count := counter.Increment("ratelimit:"+key+":"+c.FullPath(), config.Window)

		remaining := config.Requests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > config.Requests {
			logger.Warningf("Rate limit exceeded for %s on %s (count: %d)", key, c.Request.URL.Path, count)
			if err := session.AddFlash(c, config.Flash); err != nil {
				logger.Warning("Unable to save session:", err)
			}
			c.Redirect(http.StatusFound, config.Location)
			c.Abort()
			return
		}

		c.Next()
	}
}
