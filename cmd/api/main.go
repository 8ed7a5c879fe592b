package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nvx-labs/scamtrap/internal/analysis/intel"
	"github.com/nvx-labs/scamtrap/internal/analysis/scam"
	"github.com/nvx-labs/scamtrap/internal/config"
	"github.com/nvx-labs/scamtrap/internal/handler"
	"github.com/nvx-labs/scamtrap/internal/handler/feed"
	"github.com/nvx-labs/scamtrap/internal/report"
	engagementService "github.com/nvx-labs/scamtrap/internal/service/engagement"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, continuing with system environment", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.Honeypot.APIKey == "" {
		logger.Warn("HONEYPOT_API_KEY not set, all API requests will be refused")
	}

	classifier := scam.NewClassifier(cfg.Honeypot.Keywords, cfg.Honeypot.KeywordThreshold)
	extractor, err := intel.NewExtractor(cfg.Honeypot.PhonePattern, classifier)
	if err != nil {
		logger.Error("failed to build extractor", "error", err)
		os.Exit(1)
	}

	reporter := report.NewClient(cfg.Honeypot.CallbackURL, cfg.Honeypot.CallbackTimeout, logger)
	hub := feed.NewHub(logger)

	svc := engagementService.NewService(classifier, extractor, reporter, hub, engagementService.Config{
		ReportThreshold: cfg.Honeypot.ReportThreshold,
		SessionTTL:      cfg.Honeypot.SessionTTL,
		CallbackTimeout: cfg.Honeypot.CallbackTimeout,
	}, logger)

	go svc.StartJanitor(ctx)

	router := handler.NewRouter(cfg.Honeypot.APIKey, svc, hub)

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("scamtrap honeypot listening", "addr", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
