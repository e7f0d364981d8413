// @title Seat Booking API
// @version 1.0
// @description Event seat reservations with a most-active-users leaderboard.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seatbooking/config"
	_ "seatbooking/docs"
	"seatbooking/internal/adapters/cache"
	"seatbooking/internal/adapters/notify"
	deliveryhttp "seatbooking/internal/delivery/http"
	"seatbooking/internal/delivery/http/controllers"
	"seatbooking/internal/domain"
	"seatbooking/internal/repository/postgres"
	"seatbooking/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger()
	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.DBUrl, cfg.DBConnectAttempts, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxOpenConns / 2,
		ConnMaxLifetime: 30 * time.Minute,
	}, logger)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	leaderboardCache, closeCache, err := newLeaderboardCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	provider := "amqp"
	if cfg.RabbitMQURL == "" {
		provider = "noop"
	}
	publisher, err := notify.NewPublisher(notify.PublisherConfig{
		Provider: provider,
		URL:      cfg.RabbitMQURL,
		Exchange: cfg.RabbitMQExchange,
		Timeout:  cfg.RequestTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("booking publisher: %w", err)
	}
	defer publisher.Close()

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	eventService := services.NewEventService(eventRepo, bookingRepo, logger, cfg.RequestTimeout)
	bookingService := services.NewBookingService(bookingRepo, publisher, logger, cfg.RequestTimeout)
	leaderboardService := services.NewLeaderboardService(bookingRepo, leaderboardCache, logger, cfg.RequestTimeout)

	router := deliveryhttp.NewRouter(logger, deliveryhttp.Controllers{
		Events:      controllers.NewEventController(logger, eventService),
		Bookings:    controllers.NewBookingController(logger, bookingService),
		Leaderboard: controllers.NewLeaderboardController(logger, leaderboardService),
		Health:      controllers.NewHealthController(logger, db),
	}, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newLeaderboardCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.LeaderboardCache, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, leaderboard cache disabled")
		return cache.NewNoopLeaderboardCache(), func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	logger.Info("leaderboard cache enabled", "ttl", cfg.LeaderboardCacheTTL)
	return cache.NewLeaderboardCache(client, cfg.LeaderboardCacheTTL), func() { _ = client.Close() }, nil
}
