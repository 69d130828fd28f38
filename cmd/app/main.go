package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"HealthifyChat/internal/config"
	"HealthifyChat/pkg/log"
	"HealthifyChat/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", err)
	}

	cfg := config.Load()
	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()

	var redisServer redis.IRedis
	if cfg.RedisEnabled {
		redisServer = redis.New()
	}

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithConfig(cfg),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithGeminiClient(),
		config.WithSessionManager(),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := server.Chat().RefreshVocabulary(ctx); err != nil {
		logger.Warnf("Starting without food vocabulary: %v", err)
	}
	server.Sessions().StartJanitor(ctx, cfg.SessionSweepInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	stop()
	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
