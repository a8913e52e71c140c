package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"playlist-rater/internal/config"
	"playlist-rater/internal/db"
	"playlist-rater/internal/server"
	"playlist-rater/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Open(cfg.DatabaseURL, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
		ConnMaxIdleTime: cfg.ConnMaxIdleTime(),
	})
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			logger.Fatal("database migration failed", zap.Error(err))
		}
		logger.Info("database schema migrated")
	}

	srv := server.New(store.New(conn), cfg, logger)
	if cfg.MetricsEnabled {
		if err := srv.RefreshStats(context.Background()); err != nil {
			logger.Warn("initial stats refresh failed", zap.Error(err))
		}
		scheduler, err := srv.StartStatsJob(cfg.StatsSchedule)
		if err != nil {
			logger.Fatal("stats job setup failed", zap.Error(err), zap.String("schedule", cfg.StatsSchedule))
		}
		defer scheduler.Stop()
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("playlist-rater server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
