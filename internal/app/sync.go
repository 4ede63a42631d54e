package app

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renatoromeu/mariliaflix/internal/core/ports"
)

// maxParallelUploads ограничивает число одновременных загрузок в бакет
const maxParallelUploads = 5

// syncMedia выгружает img/ и videos/ из локального дерева в объектное хранилище.
// Ключи объектов совпадают с путями, по которым их запрашивает страница.
func syncMedia(ctx context.Context, src ports.MediaSource, dst ports.MediaUploader, logger *slog.Logger) (int, error) {
	start := time.Now()

	keys, err := src.Files()
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения локальных медиа: %w", err)
	}
	logger.Info("media sync started", "files", len(keys))

	var uploaded atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)

	for _, key := range keys {
		key := key
		g.Go(func() error {
			rc, err := src.Open(gctx, key)
			if err != nil {
				return fmt.Errorf("ошибка открытия %s: %w", key, err)
			}
			defer rc.Close()

			contentType := mime.TypeByExtension(path.Ext(key))
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			url, err := dst.UploadFile(gctx, key, rc, contentType)
			if err != nil {
				return fmt.Errorf("ошибка загрузки %s: %w", key, err)
			}

			uploaded.Add(1)
			logger.Debug("media uploaded", "key", key, "url", url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("media sync failed", "uploaded", uploaded.Load(), "error", err)
		return int(uploaded.Load()), err
	}

	logger.Info("media sync finished",
		"uploaded", uploaded.Load(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return int(uploaded.Load()), nil
}
