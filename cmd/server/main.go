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

	"github.com/dpereyra/historial-firmante/internal/domain/report/normalizer"
	"github.com/dpereyra/historial-firmante/internal/domain/report/service"
	"github.com/dpereyra/historial-firmante/internal/server"
	"github.com/dpereyra/historial-firmante/pkg/config"
	"github.com/dpereyra/historial-firmante/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level)
	logger.Info("configuration loaded",
		slog.String("addr", cfg.Server.Addr()),
		slog.String("amount_format", cfg.Report.AmountFormat),
	)

	conv := normalizer.Argentine
	if cfg.Report.AmountFormat == config.FormatAmerican {
		conv = normalizer.American
	}

	svc := service.New(logger, conv)
	srv := server.New(cfg, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
		}
	}
}
