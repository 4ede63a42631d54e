package di

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/renatoromeu/mariliaflix/internal/adapter/catalog"
	"github.com/renatoromeu/mariliaflix/internal/adapter/storage/local"
	"github.com/renatoromeu/mariliaflix/internal/adapter/storage/minio"
	"github.com/renatoromeu/mariliaflix/internal/app"
	"github.com/renatoromeu/mariliaflix/internal/config"
	"github.com/renatoromeu/mariliaflix/internal/core/ports"
	"github.com/renatoromeu/mariliaflix/internal/database/client"
	"github.com/renatoromeu/mariliaflix/internal/database/storage"
	"github.com/renatoromeu/mariliaflix/internal/handler"
	"github.com/renatoromeu/mariliaflix/internal/logger"
	"github.com/renatoromeu/mariliaflix/internal/modal"
	"github.com/renatoromeu/mariliaflix/internal/rabbitmq"
	"github.com/renatoromeu/mariliaflix/internal/usecase"
	"github.com/renatoromeu/mariliaflix/internal/websocket"
)

// BuildApp инициализирует зависимости для выбранного режима и возвращает готовый объект App.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(mode); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)

	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var c app.Components
	switch mode {
	case config.ModeServer:
		err = buildServer(ctx, cfg, slogger, &c)
	case config.ModeWorker:
		err = buildWorker(cfg, slogger, &c)
	case config.ModeSync:
		err = buildSync(ctx, cfg, slogger, &c)
	}
	if err != nil {
		closeAll(c.Closers, slogger)
		return nil, err
	}

	slogger.Info("all dependencies initialized", "mode", mode)
	return app.NewApp(cfg, slogger, c), nil
}

func buildServer(ctx context.Context, cfg *config.Config, log *slog.Logger, c *app.Components) error {
	// 2. Загрузчик каталога
	loader, err := catalog.NewClient(cfg, log)
	if err != nil {
		return err
	}

	// 3. Хранилище медиа
	var media ports.MediaStore
	switch cfg.MediaBackend {
	case config.MediaBackendS3:
		media, err = minio.NewMinioClient(ctx, cfg, log) // S3 / MinIO адаптер
		if err != nil {
			return err
		}
	default:
		media = local.NewStore(cfg.MediaDir)
	}

	// 4. Слушатели лайков: websocket и, если настроен, RabbitMQ
	hub := websocket.NewHub(log)
	listeners := []modal.LikeListener{hub}

	if cfg.RabbitMQEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, log)
		if err != nil {
			return err
		}
		c.Closers = append(c.Closers, rabbitMQClient)
		listeners = append(listeners, rabbitmq.NewLikeForwarder(rabbitMQClient, log))
	} else {
		log.Info("RABBITMQ_URL not set, like events are not published")
	}

	// 5. Бизнес-логика и HTTP
	gallery := usecase.NewGalleryUseCase(loader, log, listeners...)
	galleryHandler := handler.NewGalleryHandler(gallery, media, log)

	c.Gallery = gallery
	c.Hub = hub
	c.Router = handler.NewRouter(galleryHandler, websocket.ServeWS(hub, log), cfg.RequestTimeout, log)
	return nil
}

func buildWorker(cfg *config.Config, log *slog.Logger, c *app.Components) error {
	dbClient, err := client.NewClient(cfg, log)
	if err != nil {
		return err
	}
	c.Closers = append(c.Closers, dbClient)

	rabbitMQClient, err := rabbitmq.NewClient(cfg, log)
	if err != nil {
		return err
	}
	c.Closers = append(c.Closers, rabbitMQClient)

	c.Ledger = storage.NewLikeStorage(dbClient.DB, log)
	c.Consumer = rabbitMQClient
	return nil
}

func buildSync(ctx context.Context, cfg *config.Config, log *slog.Logger, c *app.Components) error {
	uploader, err := minio.NewMinioClient(ctx, cfg, log)
	if err != nil {
		return err
	}
	c.Source = local.NewStore(cfg.MediaDir)
	c.Uploader = uploader
	return nil
}

func closeAll(closers []io.Closer, log *slog.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			log.Error("failed to close resource", "error", err)
		}
	}
}
