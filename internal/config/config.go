package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Режимы запуска приложения
const (
	ModeServer = "server"
	ModeWorker = "worker"
	ModeSync   = "sync"
)

// Бэкенды для медиафайлов
const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort     string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"json"`

	// CatalogURL - откуда берутся data/videos.json и data/photos.json:
	// http(s)://... или локальная директория
	CatalogURL     string        `env:"CATALOG_URL" envDefault:"."`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`

	MediaBackend string `env:"MEDIA_BACKEND" envDefault:"local"`
	MediaDir     string `env:"MEDIA_DIR" envDefault:"."`

	// Настройки для MinIO, нужны только при MEDIA_BACKEND=s3 и в режиме sync
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`

	// DatabaseURL нужен только воркеру (журнал лайков)
	DatabaseURL string `env:"DATABASE_URL"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"like_events"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	return &cfg, nil
}

// RabbitMQEnabled reports whether like events should be published.
func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}

// Validate проверяет, что для выбранного режима заданы все нужные параметры.
func (c *Config) Validate(mode string) error {
	switch c.MediaBackend {
	case MediaBackendLocal, MediaBackendS3:
	default:
		return fmt.Errorf("неизвестный MEDIA_BACKEND: %s (используйте 'local' или 's3')", c.MediaBackend)
	}

	switch mode {
	case ModeServer:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_URL is required")
		}
		if c.MediaBackend == MediaBackendS3 {
			return c.validateMinio()
		}
	case ModeWorker:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required in worker mode")
		}
		if !c.RabbitMQEnabled() {
			return fmt.Errorf("RABBITMQ_URL is required in worker mode")
		}
	case ModeSync:
		if c.MediaDir == "" {
			return fmt.Errorf("MEDIA_DIR is required in sync mode")
		}
		return c.validateMinio()
	default:
		return fmt.Errorf("неизвестный режим: %s (используйте 'server', 'worker' или 'sync')", mode)
	}
	return nil
}

func (c *Config) validateMinio() error {
	if c.MinioAccessKeyID == "" || c.MinioSecretAccessKey == "" || c.MinioBucketName == "" || c.MinioEndpoint == "" || c.MinioRegion == "" {
		return fmt.Errorf("MinIO credentials (MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME, MINIO_ENDPOINT, MINIO_REGION) must be set")
	}
	return nil
}
