// Package main is the entry point for the Mantle server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mantle/internal/ai"
	"mantle/internal/config"
	"mantle/internal/handlers"
	"mantle/internal/middleware"
	"mantle/internal/prefs"
	"mantle/internal/render"
	"mantle/internal/router"
	"mantle/internal/storage"
	"mantle/internal/workspace"
)

func main() {
	// Local .env overrides are a development convenience; absence is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to Valkey (preference store).
	valkeyClient, err := prefs.Connect(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	prefStore := prefs.NewStore(valkeyClient)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Connect to S3-compatible object storage (optional — exports are
	// served inline without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — package archival disabled")
	}

	hub := workspace.NewHub()

	app := handlers.New(handlers.Options{
		Renderer:  renderer,
		Hub:       hub,
		Prefs:     prefStore,
		Storage:   storageClient,
		BaseURL:   cfg.BaseURL,
		ServerKey: cfg.GeminiAPIKey,
		NewAI: func(apiKey string) *ai.Client {
			return ai.NewClient(ai.Config{
				APIKey:     apiKey,
				BaseURL:    cfg.GeminiBaseURL,
				TextModel:  cfg.GeminiTextModel,
				ImageModel: cfg.GeminiImageModel,
			})
		},
	})

	// Generation endpoints hit Gemini; keep them on a short leash.
	aiLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer aiLimiter.Stop()

	r := router.New(app, aiLimiter)

	// WriteTimeout must accommodate identity plus sigil generation,
	// which can take well over a minute end to end.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
