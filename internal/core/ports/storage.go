package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

// LikeLedger определяет методы для журнала лайков (PostgreSQL)
type LikeLedger interface {
	SaveLikeEvent(ctx context.Context, event *domain.LikeEvent) error
	CountLikeEvents(ctx context.Context, itemID uuid.UUID) (int, error)
}

// MediaStore отдает медиафайлы по ключу вида img/<filename> или videos/<filename>.
// Отсутствующий файл возвращается как domain.ErrMediaNotFound.
type MediaStore interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MediaUploader загружает файл в объектное хранилище и возвращает его URL
type MediaUploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// MediaSource - локальное дерево медиа, которое режим sync выгружает в бакет
type MediaSource interface {
	MediaStore
	Files() ([]string, error)
}
