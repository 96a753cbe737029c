package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apper-canvas/taskflow/internal/db"
	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/apper-canvas/taskflow/internal/store/cache"
	"github.com/apper-canvas/taskflow/internal/store/sqlstore"
	"github.com/apper-canvas/taskflow/server"
	"github.com/redis/go-redis/v9"
)

func main() {
	port := getEnv("PORT", "8080")

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	logConfig.FilePath = os.Getenv("LOG_FILE")
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		path, err := db.DefaultDBPath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
		dsn = path
	}

	var st store.Store
	st, err := sqlstore.Open(dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		ttl := time.Minute
		if v := os.Getenv("REDIS_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid REDIS_TTL: %v", err)
			}
			ttl = d
		}
		st = cache.New(st, redis.NewClient(opts), ttl)
		logger.Info("Record cache enabled", logger.F("addr", opts.Addr), logger.F("ttl", ttl))
	}

	srv := server.New(st, server.Options{
		APIKeyHash: os.Getenv("API_KEY_HASH"),
		ProjectID:  os.Getenv("API_PROJECT_ID"),
	})
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing server", logger.Err(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("TaskFlow record server starting", logger.F("port", port))
		errChan <- srv.Start(":" + port)
	}()

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", logger.Err(err))
		}
	case sig := <-sigChan:
		logger.Info("Shutting down", logger.F("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", logger.Err(err))
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
