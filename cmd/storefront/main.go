// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg)
	logr.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	blobs, err := storage.Open(cfg, logr)
	if err != nil {
		logr.WithError(err).Fatal("Failed to open session storage")
	}
	defer blobs.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := blobs.Ping(pingCtx); err != nil {
		cancelPing()
		logr.WithError(err).Fatal("Session storage health check failed")
	}
	cancelPing()

	// The redis store's client also backs rate limiting.
	var redisClient *redis.Client
	if rs, ok := blobs.(*storage.RedisStore); ok {
		redisClient = rs.Client()
	}

	app := routes.NewApp(cfg, logr, blobs, catalog.Default(time.Now()))
	server := http.NewServer(cfg, logr, app, blobs, redisClient)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go func() {
		if err := server.Start(ctx); err != nil {
			logr.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("Shutting down gracefully")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logr.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logr.Info("Server shutdown completed")
}
