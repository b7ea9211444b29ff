// cmd/chunkd/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/FairForge/cdcchunker/internal/config"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			MetricsPort: 9090,
			LogLevel:    "info",
		},
		Chunker: config.ChunkerOptions{
			Algorithm: "super",
		},
	}

	if path := os.Getenv("CDCCHUNKER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("failed to read config file", zap.String("path", path), zap.Error(err))
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			logger.Fatal("failed to parse config file", zap.String("path", path), zap.Error(err))
		}
	}

	config.LoadFromEnv(cfg)

	if err := cfg.Chunker.Validate(); err != nil {
		logger.Fatal("invalid chunker configuration", zap.Error(err))
	}

	server := NewServer(cfg, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_ = server.Shutdown(ctx)
		os.Exit(0)
	}()

	logger.Info("chunkd starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("algorithm", cfg.Chunker.Algorithm))

	if err := server.Start(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
