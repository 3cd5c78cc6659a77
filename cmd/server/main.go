package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/content"
	"github.com/BerylCAtieno/content-generator/internal/generator"
	"github.com/BerylCAtieno/content-generator/internal/logger"
	"github.com/BerylCAtieno/content-generator/internal/tracer"
	"github.com/BerylCAtieno/content-generator/internal/validation"
	"github.com/BerylCAtieno/content-generator/internal/web"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting content generator",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
	)

	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// A missing credential keeps the server up in degraded mode: the page
	// loads and every generation returns the configuration report.
	availability := generator.Init(ctx, cfg)
	if !availability.Available() {
		logger.Error(ctx, "failed to initialize content generator", availability.Err)
	}
	defer availability.Close()

	service := content.NewService(availability, validation.RulesFromConfig(cfg.Content))
	handler, err := web.NewHandler(service, cfg)
	if err != nil {
		logger.Fatal(ctx, "failed to build handler", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      web.NewRouter(cfg, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "http server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
