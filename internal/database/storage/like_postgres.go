package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

// LikeStorage пишет события лайков в таблицу like_events (ports.LikeLedger)
type LikeStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewLikeStorage(db *sqlx.DB, logger *slog.Logger) *LikeStorage {
	return &LikeStorage{db: db, logger: logger}
}

// SaveLikeEvent сохраняет событие лайка. Повторная доставка того же события игнорируется.
func (s *LikeStorage) SaveLikeEvent(ctx context.Context, event *domain.LikeEvent) error {
	start := time.Now()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := `
	INSERT INTO like_events (id, item_id, kind, filename, likes, liked_at)
	VALUES (:id, :item_id, :kind, :filename, :likes, :liked_at)
	ON CONFLICT (id) DO NOTHING
	`

	if _, err := s.db.NamedExecContext(ctx, query, event); err != nil {
		s.logger.Error("failed to save like event", "item_id", event.ItemID, "error", err)
		return fmt.Errorf("ошибка при сохранении лайка: %w", err)
	}

	s.logger.Info("like event saved",
		"id", event.ID,
		"item_id", event.ItemID,
		"likes", event.Likes,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// CountLikeEvents возвращает количество записанных лайков для элемента
func (s *LikeStorage) CountLikeEvents(ctx context.Context, itemID uuid.UUID) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM like_events WHERE item_id = $1`, itemID); err != nil {
		s.logger.Error("failed to count like events", "item_id", itemID, "error", err)
		return 0, fmt.Errorf("ошибка при подсчете лайков: %w", err)
	}
	return count, nil
}
