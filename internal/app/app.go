package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/renatoromeu/mariliaflix/internal/config"
	"github.com/renatoromeu/mariliaflix/internal/core/ports"
	"github.com/renatoromeu/mariliaflix/internal/usecase"
	"github.com/renatoromeu/mariliaflix/internal/websocket"
)

// Components - зависимости, собранные контейнером. Для каждого режима
// заполнена только нужная часть.
type Components struct {
	// server
	Gallery usecase.GalleryUseCase
	Router  http.Handler
	Hub     *websocket.Hub

	// worker
	Ledger   ports.LikeLedger
	Consumer ports.LikeConsumer

	// sync
	Source   ports.MediaSource
	Uploader ports.MediaUploader

	// Closers закрываются в Shutdown в обратном порядке (БД, RabbitMQ)
	Closers []io.Closer
}

type App struct {
	Config *config.Config
	logger *slog.Logger
	c      Components
}

func NewApp(cfg *config.Config, logger *slog.Logger, c Components) *App {
	return &App{
		Config: cfg,
		logger: logger,
		c:      c,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting in mode", "mode", mode)

	var err error

	switch mode {
	case config.ModeServer:
		err = runServer(ctx, a.Config, a.c, a.logger)

	case config.ModeWorker:
		err = runWorker(ctx, a.c.Consumer, a.c.Ledger, a.logger)

	case config.ModeSync:
		_, err = syncMedia(ctx, a.c.Source, a.c.Uploader, a.logger)

	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server', 'worker' или 'sync')", mode)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}

	if err != nil {
		return err
	}

	a.logger.Info("application finished")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.c.Closers) - 1; i >= 0; i-- {
		if err := a.c.Closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.c.Closers = nil

	if len(errs) > 0 {
		return fmt.Errorf("ошибка при закрытии ресурсов: %w", errors.Join(errs...))
	}
	return nil
}
