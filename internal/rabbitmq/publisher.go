package rabbitmq

import (
	"context"
	"log/slog"
	"time"

	"github.com/renatoromeu/mariliaflix/internal/core/ports"
	"github.com/renatoromeu/mariliaflix/internal/domain"
	"github.com/renatoromeu/mariliaflix/internal/messaging/payloads"
)

// LikeForwarder publishes every like to the queue. It implements
// modal.LikeListener; publish errors are logged, the like itself stands.
type LikeForwarder struct {
	publisher ports.LikePublisher
	timeout   time.Duration
	logger    *slog.Logger
}

// NewLikeForwarder создает слушателя лайков поверх publisher
func NewLikeForwarder(publisher ports.LikePublisher, logger *slog.Logger) *LikeForwarder {
	return &LikeForwarder{publisher: publisher, timeout: 5 * time.Second, logger: logger}
}

func (f *LikeForwarder) LikeChanged(item domain.MediaItem) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	if err := f.publisher.PublishLike(ctx, payloads.NewLikePayload(&item)); err != nil {
		f.logger.Error("failed to publish like event", "item_id", item.ID, "error", err)
	}
}
