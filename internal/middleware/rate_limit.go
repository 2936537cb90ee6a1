package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aavkar_pos/internal/cache"
)

const (
	APIMaxRequests      = 300
	APIWindow           = time.Minute
	CheckoutMaxRequests = 10
	CheckoutWindow      = time.Minute
	SearchMaxRequests   = 60
	SearchWindow        = time.Minute
)

// Counter bumps a windowed counter; *cache.Cache is the production one.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit is a fixed-window limiter over Redis counters. key picks the
// bucket for a request; an empty key skips limiting. When Redis is down
// the request is let through.
func RateLimit(store Counter, name string, limit int64, window time.Duration, key func(*gin.Context) string, log *zap.Logger) gin.HandlerFunc {
	log = log.Named("ratelimit")
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}
		count, err := store.Incr(c.Request.Context(), "ratelimit:"+name+":"+k, window)
		if err != nil {
			log.Warn("counter unavailable", zap.String("limit", name), zap.Error(err))
			c.Next()
			return
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > limit {
			log.Info("rate limited", zap.String("limit", name), zap.String("key", k))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("too many requests, retry in %d seconds", int(window.Seconds())),
				"retry_after": int(window.Seconds()),
			})
			return
		}
		c.Next()
	}
}

func byIP(c *gin.Context) string {
	return c.ClientIP()
}

func byUser(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

// APIRateLimit limits every API call per client IP.
func APIRateLimit(store *cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return RateLimit(store, "api", APIMaxRequests, APIWindow, byIP, log)
}

// CheckoutRateLimit limits order submissions per signed-in cashier.
func CheckoutRateLimit(store *cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return RateLimit(store, "checkout", CheckoutMaxRequests, CheckoutWindow, byUser, log)
}

// SearchRateLimit limits catalog searches per client IP.
func SearchRateLimit(store *cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return RateLimit(store, "search", SearchMaxRequests, SearchWindow, byIP, log)
}
