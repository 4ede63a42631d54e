package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/renatoromeu/mariliaflix/internal/core/ports"
	"github.com/renatoromeu/mariliaflix/internal/messaging/payloads"
)

// runWorker запускает потребителя RabbitMQ и пишет лайки в журнал
func runWorker(ctx context.Context, consumer ports.LikeConsumer, ledger ports.LikeLedger, logger *slog.Logger) error {
	logger.Info("worker started, waiting for like events")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingLikes(workerCtx, likeEventHandler(ledger, logger)); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	<-ctx.Done()
	logger.Info("worker: shutdown signal received")
	return nil
}

// likeEventHandler сохраняет событие и логирует итоговое число записей для элемента.
// Журнал никогда не влияет на счетчики галереи.
func likeEventHandler(ledger ports.LikeLedger, logger *slog.Logger) func(context.Context, payloads.LikePayload) error {
	return func(ctx context.Context, payload payloads.LikePayload) error {
		event := payload.ToEvent()
		if err := ledger.SaveLikeEvent(ctx, &event); err != nil {
			return fmt.Errorf("worker: ошибка сохранения лайка %s: %w", payload.ItemID, err)
		}

		count, err := ledger.CountLikeEvents(ctx, event.ItemID)
		if err != nil {
			// already saved; redelivery would only duplicate the row
			logger.Warn("worker: failed to count like events", "item_id", event.ItemID, "error", err)
			return nil
		}

		logger.Info("worker: like event recorded",
			"item_id", event.ItemID,
			"filename", event.Filename,
			"likes", event.Likes,
			"recorded", count,
		)
		return nil
	}
}
