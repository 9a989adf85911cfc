package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"github.com/srgjo27/healthbook/internal/platform/apperror"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewMemoryLimiterStore allows requests per window for each caller in
// this process, with a burst of the full window budget.
func NewMemoryLimiterStore(requests int, window time.Duration) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requests) / window.Seconds()),
		Burst:     requests,
		ExpiresIn: window,
	})
}

// limiterStore adapts a ports.RateLimiter to echo's RateLimiterStore.
// Limiter errors let the request through.
type limiterStore struct {
	limiter ports.RateLimiter
	timeout time.Duration
	logger  *zap.Logger
}

func NewLimiterStore(limiter ports.RateLimiter, logger *zap.Logger) middleware.RateLimiterStore {
	return limiterStore{limiter: limiter, timeout: time.Second, logger: logger}
}

func (s limiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	allowed, err := s.limiter.Allow(ctx, identifier)
	if err != nil {
		s.logger.Warn("Rate limiter unavailable, allowing request", zap.String("identifier", identifier), zap.Error(err))
		return true, nil
	}
	return allowed, nil
}

// RateLimit limits each principal, or each client IP before
// authentication.
func RateLimit(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if p, err := principalFrom(c); err == nil {
				return "user:" + p.UserID.String(), nil
			}
			return "ip:" + c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorBody{Error: "cannot identify caller", Code: apperror.ErrUnauthorized})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded", Code: apperror.ErrRateLimited})
		},
	})
}
