// cmd/adega-proxy/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"adega-proxy/internal/common/config"
	"adega-proxy/internal/common/logger"
	"adega-proxy/internal/common/observability"
	"adega-proxy/internal/handlers/ask"
	extractlabel "adega-proxy/internal/handlers/extract-label"
	"adega-proxy/internal/providers"
	"adega-proxy/internal/providers/gemini"
	"adega-proxy/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapLog := logger.New("info", "console")
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting adega-proxy",
		zap.String("addr", cfg.Server.Addr),
		zap.String("askProvider", cfg.Handlers.Ask.Provider),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// Vision provider is fixed: extraction needs Gemini's schema-constrained
	// output. The ask provider is whatever the config names.
	visionClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Providers.Gemini.APIKey,
		BaseURL: cfg.Providers.Gemini.BaseURL,
		Model:   cfg.Providers.Gemini.Model,
		Timeout: cfg.Providers.Gemini.Timeout,
	}, log)

	textProvider, err := providers.NewTextProvider(cfg.Handlers.Ask.Provider, cfg.Providers, log)
	if err != nil {
		zapLog.Fatal("text provider init failed", zap.Error(err))
	}

	extractHandler := extractlabel.NewHandler(&extractlabel.Config{
		MaxUploadBytes: cfg.Handlers.ExtractLabel.MaxUploadBytes,
	}, visionClient, log)

	askHandler := ask.NewHandler(&ask.Config{
		Provider: cfg.Handlers.Ask.Provider,
	}, textProvider, log)

	router := server.NewRouter(
		server.NewCORSResolver(cfg.CORS.AllowedOrigins),
		extractHandler,
		askHandler,
		obs,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: metricsMux}

		go func() {
			zapLog.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLog.Info("proxy listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("serve failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	zapLog.Info("stopped")
}
