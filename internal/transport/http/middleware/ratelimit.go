package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-portfolio/internal/core/ratelimit"
	resp "go-gin-portfolio/internal/transport/http/response"
)

// RateLimit is a process-wide token bucket in front of every route.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		tooMany(c)
	}
}

// Throttle limits each client IP within scope. Limiter errors let the request through.
func Throttle(l ratelimit.Limiter, scope string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil && log != nil {
			log.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
		}
		if !ok {
			tooMany(c)
			return
		}
		c.Next()
	}
}

func tooMany(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests,
		resp.Error(resp.CodeTooManyRequests, "Too many requests, please try again later."))
}
