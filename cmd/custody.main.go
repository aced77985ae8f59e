package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"custody-service/internal/config"
	"custody-service/internal/server"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("custody REST server starting", zap.String("addr", cfg.HTTPAddr))
		errCh <- server.NewCustodyRestServer(cfg, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("custody service shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Fatal("custody service failed", zap.Error(err))
		}
	}
}
