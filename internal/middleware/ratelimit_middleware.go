package middleware

import (
	"context"
	"net/http"
	"strconv"

	"leo-chat/internal/redis"
	"leo-chat/internal/transport/httpdto"
	"leo-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SendLimiter interface {
	AllowSend(ctx context.Context, subject string) (*redis.RateLimitResult, error)
}

// SendRateLimit throttles message sends per client address. Limiter errors fail open.
func SendRateLimit(limiter SendLimiter, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.AllowSend(c.Request.Context(), c.ClientIP())
		if err != nil {
			l.WithContext(c.Request.Context()).Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("message rate limit exceeded", "RATE_LIMITED"))
			return
		}
		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.Itoa(int(result.ResetIn.Seconds())))
}
