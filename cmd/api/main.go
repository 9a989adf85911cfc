package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/healthbook/internal/adapter/cache"
	"github.com/srgjo27/healthbook/internal/adapter/daily"
	"github.com/srgjo27/healthbook/internal/adapter/handler"
	"github.com/srgjo27/healthbook/internal/adapter/mailer"
	"github.com/srgjo27/healthbook/internal/adapter/paystack"
	"github.com/srgjo27/healthbook/internal/adapter/queue"
	"github.com/srgjo27/healthbook/internal/adapter/repository/postgres"
	"github.com/srgjo27/healthbook/internal/core/ports"
	"github.com/srgjo27/healthbook/internal/core/services"
	"github.com/srgjo27/healthbook/internal/platform/config"
	"github.com/srgjo27/healthbook/internal/platform/database"
	"github.com/srgjo27/healthbook/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.Name,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to db after retries", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		zlog.Fatal("Failed to apply schema", zap.Error(err))
	}

	zlog.Info("Connecting to Redis", zap.String("addr", cfg.Redis.Addr))
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zlog.Info("Redis connected")

	var wg sync.WaitGroup
	goRun := func(fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}

	var (
		roleCache ports.Cache
		rateStore middleware.RateLimiterStore
	)
	switch cfg.Cache.Backend {
	case "redis":
		roleCache = cache.NewRedisCache(redisClient, "healthbook:")
		rateStore = handler.NewLimiterStore(
			cache.NewRedisRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window), zlog)
	default:
		memCache := cache.NewMemoryCache()
		goRun(func(ctx context.Context) { cache.RunSweeper(ctx, memCache, cfg.Cache.SweepInterval, zlog) })
		roleCache = memCache
		rateStore = handler.NewMemoryLimiterStore(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	gateway := paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, zlog)
	rooms := daily.NewClient(cfg.Daily.BaseURL, cfg.Daily.APIKey, zlog)
	notifications := queue.NewRedisQueue(redisClient, queue.DefaultKey)

	smtpMailer, err := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, zlog)
	if err != nil {
		zlog.Fatal("Failed to build mailer", zap.Error(err))
	}

	finalizeService := services.NewFinalizeService(paymentRepo, outboxRepo, []services.Consumer{
		services.NewPaymentConsumer(paymentRepo, zlog),
		services.NewBookingConsumer(bookingRepo, rooms, zlog),
		services.NewNotificationConsumer(bookingRepo, profileRepo, notifications, zlog),
	}, services.FinalizeConfig{
		ClaimLease:    cfg.Outbox.ClaimLease,
		RelayInterval: cfg.Outbox.RelayInterval,
		MaxAttempts:   cfg.Outbox.MaxAttempts,
	}, zlog)

	bookingService := services.NewBookingService(bookingRepo, paymentRepo, profileRepo, gateway, finalizeService, services.BookingConfig{
		Currency:        cfg.Paystack.Currency,
		CallbackURL:     cfg.Paystack.CallbackURL,
		PendingTTL:      cfg.Booking.PendingTTL,
		CleanupInterval: cfg.Booking.CleanupInterval,
	}, zlog)
	accessService := services.NewAccessService(profileRepo, roleCache, cfg.Cache.RoleTTL, zlog)
	adminService := services.NewAdminService(bookingRepo, paymentRepo, cfg.Paystack.Currency)

	worker := queue.NewWorker(notifications, smtpMailer, queue.WorkerConfig{}, zlog)

	goRun(bookingService.RunBackgroundCleanup)
	goRun(finalizeService.RunOutboxRelay)
	goRun(worker.Run)

	if cfg.Paystack.SecretKey == "" {
		zlog.Warn("paystack.secret_key is empty, webhooks will be rejected")
	}

	e := handler.NewRouter(handler.RouterConfig{
		JWTSecret: cfg.Auth.JWTSecret,
		Resolver:  accessService,
		RateStore: rateStore,
		Webhook:   handler.NewWebhookHandler(finalizeService, cfg.Paystack.SecretKey, zlog),
		Bookings:  handler.NewBookingHandler(bookingService, zlog),
		Admin:     handler.NewAdminHandler(adminService, zlog),
		Logger:    zlog,
	})

	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("Server startup failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	wg.Wait()
	zlog.Info("Server exiting")
}
