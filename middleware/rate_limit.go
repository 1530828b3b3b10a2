package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/featherpress/featherpress/config"
	"github.com/featherpress/featherpress/utils"
)

const visitorTTL = 5 * time.Minute

type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

type visitorRegistry struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

var registry = &visitorRegistry{visitors: map[string]*visitor{}}

func (r *visitorRegistry) bucketFor(ip string, limit rate.Limit, burst int) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for key, v := range r.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(r.visitors, key)
		}
	}

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(limit, burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = now
	return v.bucket
}

// RateLimitMiddleware throttles requests per client IP with a token bucket
// sized from configuration. Idle buckets are swept after five minutes.
func RateLimitMiddleware() gin.HandlerFunc {
	perMinute := config.Get().RateLimitPerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}
	limit := rate.Every(time.Minute / time.Duration(perMinute))

	return func(ctx *gin.Context) {
		if !registry.bucketFor(ctx.ClientIP(), limit, burst).Allow() {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
