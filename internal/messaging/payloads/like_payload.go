package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

// LikePayload представляет сообщение о лайке, которое сервер публикует в RabbitMQ,
// а воркер записывает в журнал.
type LikePayload struct {
	EventID  uuid.UUID   `json:"event_id"`
	ItemID   uuid.UUID   `json:"item_id"`
	Kind     domain.Kind `json:"kind"`
	Filename string      `json:"filename"`
	Likes    int         `json:"likes"`
	LikedAt  time.Time   `json:"liked_at"`
}

// NewLikePayload snapshots the item right after a like.
func NewLikePayload(item *domain.MediaItem) LikePayload {
	return LikePayload{
		EventID:  uuid.New(),
		ItemID:   item.ID,
		Kind:     item.Kind,
		Filename: item.Filename,
		Likes:    item.Likes,
		LikedAt:  time.Now().UTC(),
	}
}

// ToEvent converts the payload into a ledger row. The event ID travels with
// the message, so a redelivered message maps to the same row.
func (p LikePayload) ToEvent() domain.LikeEvent {
	return domain.LikeEvent{
		ID:       p.EventID,
		ItemID:   p.ItemID,
		Kind:     p.Kind,
		Filename: p.Filename,
		Likes:    p.Likes,
		LikedAt:  p.LikedAt,
	}
}
