package middleware

import (
	"context"
	"net/http"

	"user-crud/internal/api"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// RateLimiter is satisfied by cache.Limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit 以 client IP 限流，超過額度回 429。
// limiter 出錯時放行並記錄，Redis 故障不影響 API。
func RateLimit(limiter RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{
					Success: false,
					Message: "Too many requests",
				})
			}
			return next(c)
		}
	}
}

// AccessLog 把每個請求寫成一筆 zerolog 事件
func AccessLog(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
