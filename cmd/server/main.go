package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ashokahotel/hotel-booking-backend/internal/app"
	"github.com/ashokahotel/hotel-booking-backend/internal/config"
	"github.com/ashokahotel/hotel-booking-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("invalid log level %q, using info", cfg.LogLevel)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// The pool connects lazily: a down database means degraded mode, not a
	// startup failure.
	var pool *pgxpool.Pool
	if cfg.DBDSN != "" {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatalf("failed to configure database pool: %v", err)
		}
		defer pool.Close()
	} else {
		logger.Warn("DB_DSN not set, running with in-memory storage only")
	}

	container, err := app.NewContainer(app.Config{
		Cfg:    cfg,
		DBPool: pool,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("failed to init application: %v", err)
	}

	if container.Monitor != nil {
		container.Monitor.Start(ctx)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		logger.Infof("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}

	logger.Info("server exited gracefully")
}
