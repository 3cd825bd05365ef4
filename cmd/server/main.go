package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/anto1/ds-survey/internal/auth"
	"github.com/anto1/ds-survey/internal/config"
	"github.com/anto1/ds-survey/internal/db"
	"github.com/anto1/ds-survey/internal/handler"
	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/repository"
	"github.com/anto1/ds-survey/internal/router"
	"github.com/anto1/ds-survey/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "ds-survey")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	handler.InitMetrics(pool)

	channelRepo := repository.NewChannelRepo(pool)
	suggestionRepo := repository.NewSuggestionRepo(pool)
	submissionRepo := repository.NewSubmissionRepo(pool)

	channelSvc := service.NewChannelService(channelRepo, suggestionRepo, cache)
	submissionSvc := service.NewSubmissionService(submissionRepo, channelRepo)
	statsSvc := service.NewStatsService(submissionRepo, channelRepo, cache)
	statsSvc.ObserveRefreshDuration(handler.Metrics.StatsRefreshDuration)

	// Admin surface is opt-in: without credentials configured the public
	// survey still runs, just with no moderation endpoints.
	var tokens *auth.TokenService
	if cfg.AdminPassword != "" && cfg.AdminTokenKey != "" {
		tokens, err = auth.NewTokenService(cfg.AdminTokenKey, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("failed to configure admin tokens: %v", err)
		}
	} else {
		log.Println("admin credentials not configured, admin routes disabled")
	}

	worker := service.NewStatsWorker(pool, statsSvc)
	go worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "ds-survey API",
		ServerHeader: "ds-survey",
	})

	h := &router.Handlers{
		Channel:    handler.NewChannelHandler(channelSvc),
		Submission: handler.NewSubmissionHandler(submissionSvc),
		Admin:      handler.NewAdminHandler(tokens, channelSvc),
		Stats:      handler.NewStatsHandler(statsSvc),
		Health:     handler.NewHealthHandler(pool, cache.Client()),
		Export:     handler.NewExportHandler(submissionRepo),
	}
	router.Setup(app, h, cfg, tokens)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Println("shutting down")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("survey backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
