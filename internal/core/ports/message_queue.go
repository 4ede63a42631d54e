package ports

import (
	"context"

	"github.com/renatoromeu/mariliaflix/internal/messaging/payloads"
)

// LikePublisher определяет методы для публикации сообщений о лайках.
// Используется сервером после каждого успешного лайка.
type LikePublisher interface {
	PublishLike(ctx context.Context, payload payloads.LikePayload) error
}

// LikeConsumer определяет методы для потребления сообщений о лайках,
// используется воркером для записи в журнал
type LikeConsumer interface {
	// StartConsumingLikes начинает прослушивание очереди
	// и вызывает handler для каждого полученного сообщения
	StartConsumingLikes(ctx context.Context, handler func(context.Context, payloads.LikePayload) error) error
}
