package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/srgjo27/healthbook/internal/platform/logger"
	"go.uber.org/zap"
)

type RouterConfig struct {
	JWTSecret string
	Resolver  PrincipalResolver
	RateStore middleware.RateLimiterStore
	Webhook   *WebhookHandler
	Bookings  *BookingHandler
	Admin     *AdminHandler
	Logger    *zap.Logger
}

func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger.NewEchoLogger(cfg.Logger)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler(cfg.Logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(logger.NewEchoRequestLogger(cfg.Logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/paystack/webhook", cfg.Webhook.Handle)

	authed := api.Group("", JWTMiddleware(cfg.JWTSecret, cfg.Resolver, cfg.Logger))
	authed.GET("/paystack/verify", cfg.Bookings.VerifyPayment)

	bookings := authed.Group("/bookings", RateLimit(cfg.RateStore))
	bookings.POST("", cfg.Bookings.CreateBooking)
	bookings.GET("", cfg.Bookings.ListBookings)
	bookings.GET("/:id", cfg.Bookings.GetBooking)
	bookings.POST("/:id/cancel", cfg.Bookings.CancelBooking)

	admin := authed.Group("/admin", RequireRole(domain.RoleAdmin))
	admin.GET("/overview", cfg.Admin.Overview)

	return e
}
