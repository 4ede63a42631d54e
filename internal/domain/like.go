package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikeEvent описывает один лайк, соответствует таблице like_events в бд.
// Это только журнал: счетчики галереи из него не восстанавливаются.
type LikeEvent struct {
	ID       uuid.UUID `json:"id" db:"id"`
	ItemID   uuid.UUID `json:"item_id" db:"item_id"`
	Kind     Kind      `json:"kind" db:"kind"`
	Filename string    `json:"filename" db:"filename"`
	Likes    int       `json:"likes" db:"likes"`
	LikedAt  time.Time `json:"liked_at" db:"liked_at"`
}
