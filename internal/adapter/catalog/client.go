package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/renatoromeu/mariliaflix/internal/config"
	"github.com/renatoromeu/mariliaflix/internal/domain"
)

const (
	VideosPath = "data/videos.json"
	PhotosPath = "data/photos.json"

	// maxCatalogSize ограничивает размер одного документа каталога
	maxCatalogSize = 8 << 20
)

// Client загружает оба JSON-документа каталога.
// Базой может быть http(s) URL или локальная директория.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	logger     *slog.Logger
}

// NewClient создает клиент каталога по конфигурации.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	return New(cfg.CatalogURL, cfg.CatalogTimeout, logger)
}

// New builds a client for base. A base without an http(s) scheme is treated
// as a local directory and served through http.NewFileTransport, so missing
// files still surface as 404 responses.
func New(base string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		dir, absErr := filepath.Abs(base)
		if absErr != nil {
			return nil, fmt.Errorf("некорректный CATALOG_URL %q: %w", base, absErr)
		}
		t := &http.Transport{}
		t.RegisterProtocol("file", http.NewFileTransport(http.Dir(dir)))
		httpClient.Transport = t
		u = &url.URL{Scheme: "file", Path: "/"}
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    u,
		logger:     logger,
	}, nil
}

// Load fetches videos and photos in parallel. Either failure aborts the whole
// load; there is no partial result.
func (c *Client) Load(ctx context.Context) (videos, photos []*domain.MediaItem, err error) {
	start := time.Now()

	var videoRecords, photoRecords []MediaRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videoRecords, err = c.fetch(gctx, VideosPath)
		return err
	})
	g.Go(func() error {
		var err error
		photoRecords, err = c.fetch(gctx, PhotosPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	c.logger.Info("catalog loaded",
		"videos", len(videoRecords),
		"photos", len(photoRecords),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return c.toItems(domain.KindVideo, videoRecords), c.toItems(domain.KindPhoto, photoRecords), nil
}

// fetch выполняет один GET и декодирует массив записей.
func (c *Client) fetch(ctx context.Context, path string) ([]MediaRecord, error) {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка создания HTTP-запроса %s: %v", domain.ErrLoadFailure, path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: не удалось загрузить %s: %w", domain.ErrLoadFailure, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s вернул статус %d", domain.ErrLoadFailure, path, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка чтения %s: %w", domain.ErrLoadFailure, path, err)
	}

	// весь документ должен быть одним JSON-массивом
	var records []MediaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: ошибка декодирования JSON %s: %w", domain.ErrLoadFailure, path, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: %s не содержит JSON-массив", domain.ErrLoadFailure, path)
	}
	return records, nil
}

// toItems maps records to domain items. Records with a malformed timestamp are
// rejected here and logged; the remaining records are kept.
func (c *Client) toItems(kind domain.Kind, records []MediaRecord) []*domain.MediaItem {
	items := make([]*domain.MediaItem, 0, len(records))
	for i, rec := range records {
		item, err := domain.NewMediaItem(kind, i, rec.Filename, rec.Timestamp, rec.Likes)
		if err != nil {
			c.logger.Warn("media record rejected",
				"kind", kind,
				"filename", rec.Filename,
				"timestamp", rec.Timestamp,
				"error", err,
			)
			continue
		}
		items = append(items, item)
	}
	return items
}
