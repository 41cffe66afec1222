package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/aulanext/timetable-notification-planning/internal/config"
	"github.com/aulanext/timetable-notification-planning/internal/handler"
	"github.com/aulanext/timetable-notification-planning/internal/health"
	"github.com/aulanext/timetable-notification-planning/internal/infra/catalog"
	"github.com/aulanext/timetable-notification-planning/internal/infra/repository"
	"github.com/aulanext/timetable-notification-planning/internal/observability/logging"
	"github.com/aulanext/timetable-notification-planning/internal/observability/metrics"
	"github.com/aulanext/timetable-notification-planning/internal/observability/middleware"
	"github.com/aulanext/timetable-notification-planning/internal/service/planner"
	"github.com/aulanext/timetable-notification-planning/internal/service/quiet"
	"github.com/aulanext/timetable-notification-planning/internal/service/resolver"
	"github.com/aulanext/timetable-notification-planning/internal/service/sync"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logging.Setup(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	plannerMetrics, err := metrics.NewPlannerMetrics()
	if err != nil {
		slog.Error("failed to initialize planner metrics", slog.String("error", err.Error()))
		return 1
	}

	store := catalog.NewStore(cfg.CatalogPath, cfg.SettingsPath, cfg.Planner.DefaultLeadMinutes)
	if err := store.Reload(); err != nil {
		slog.Error("failed to load catalog", slog.String("error", err.Error()))
		return 1
	}

	lessons, _ := store.Snapshot()
	slog.Info("catalog loaded",
		slog.String("path", cfg.CatalogPath),
		slog.Int("lesson_count", len(lessons)),
	)

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	ruleRepo := repository.NewRuleRepository(redisClient)

	quietFilter := quiet.NewFilter()
	lessonResolver := resolver.NewResolver()
	plannerService := planner.NewService(quietFilter, plannerMetrics, cfg.Planner.LegacyWeekendCheck)
	syncService := sync.NewService(ruleRepo, plannerMetrics)

	planHandler := handler.NewPlanHandler(plannerService, syncService, store, plannerMetrics)
	lessonHandler := handler.NewLessonHandler(lessonResolver, store)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, store, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/plan", planHandler.HandlePlan)
		v1.GET("/lessons/current", lessonHandler.HandleCurrentLesson)
		v1.GET("/lessons/next", lessonHandler.HandleNextLesson)
		v1.GET("/lessons/today", lessonHandler.HandleTodayLessons)
		v1.GET("/notifications/active", lessonHandler.HandleNotificationsActive)
		v1.POST("/catalog/reload", lessonHandler.HandleReload)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Bool("legacy_weekend_check", cfg.Planner.LegacyWeekendCheck),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
