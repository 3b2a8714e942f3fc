package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/lineupiq/internal/analytics"
	"github.com/gridironhq/lineupiq/internal/api/handlers"
	"github.com/gridironhq/lineupiq/internal/storage"
	"github.com/gridironhq/lineupiq/pkg/cache"
	"github.com/gridironhq/lineupiq/pkg/config"
	"github.com/gridironhq/lineupiq/pkg/database"
	"github.com/gridironhq/lineupiq/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("lineupiq").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting LineupIQ")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.WithService("lineupiq").Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := storage.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		logger.WithService("lineupiq").Fatalf("Failed to migrate database: %v", err)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("lineupiq").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.WithService("lineupiq").WithError(err).Warn("Redis unavailable, reports will not be cached")
	}
	defer redisClient.Close()

	reportCache := cache.NewReportCacheService(redisClient, structuredLogger)
	seasonService := analytics.NewService(repo)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	efficiencyHandler := handlers.NewEfficiencyHandler(seasonService, reportCache, cfg, structuredLogger)
	healthHandler := handlers.NewHealthHandler(db, redisClient, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/lineup/optimal", efficiencyHandler.ComputeOptimal)
		apiV1.POST("/lineup/efficiency", efficiencyHandler.ComputeEfficiency)
		apiV1.GET("/teams/:team_id/weeks/:week/efficiency", efficiencyHandler.TeamWeekEfficiency)
		apiV1.GET("/teams/:team_id/efficiency", efficiencyHandler.SeasonEfficiency)
	}

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("lineupiq").Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("lineupiq").Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("lineupiq").Errorf("Forced shutdown: %v", err)
	}
}
