package api

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meunps/platform/internal/config"
)

// RateLimiter is a fixed-window per-IP limiter backed by Redis, applied to
// the unauthenticated survey endpoints. When Redis is down the limiter
// fails open: losing rate limiting is better than losing submissions.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter. A nil client disables limiting.
func NewRateLimiter(client *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	if !cfg.Enabled {
		client = nil
	}
	return &RateLimiter{client: client, limit: cfg.PerWindow, window: cfg.Window()}
}

// Limit wraps a handler with the per-IP window check.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	if l == nil || l.client == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(l.window.Seconds()))

		count, err := l.client.Incr(r.Context(), key).Result()
		if err != nil {
			log.Printf("[api.RateLimiter] incr %s: %v", key, err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := l.client.Expire(r.Context(), key, l.window).Err(); err != nil {
				log.Printf("[api.RateLimiter] expire %s: %v", key, err)
			}
		}
		if count > int64(l.limit) {
			respondError(w, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from X-Forwarded-For.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
