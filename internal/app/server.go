package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/renatoromeu/mariliaflix/internal/config"
)

const shutdownTimeout = 30 * time.Second

// runServer загружает галерею и обслуживает HTTP до отмены ctx.
func runServer(ctx context.Context, cfg *config.Config, c Components, logger *slog.Logger) error {
	// an unreachable catalog still serves the page with the error message
	if err := c.Gallery.Load(ctx); err != nil {
		logger.Warn("gallery not loaded on startup, serving error page", "error", err)
	}

	if c.Hub != nil {
		go c.Hub.Run(ctx)
	}

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           c.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	ctxServer, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
