package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// Kind различает фото и видео в галерее
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// mediaNamespace is the namespace for name-based media item IDs.
var mediaNamespace = uuid.MustParse("5b0e6c8a-3f1d-4d2e-9a57-6f2b8c1e4d90")

// MediaItem представляет фото или видео из data/photos.json или data/videos.json.
// Likes единственное изменяемое поле, меняется только через модальное окно.
type MediaItem struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Filename  string    `json:"filename"`
	Timestamp string    `json:"timestamp"`
	Likes     int       `json:"likes"`
	Date      Date      `json:"-"`
}

// NewMediaItem builds an item from its source record. The ID is derived from
// kind, position in the source file and filename, so it survives reloads and
// stays unique when two records share a filename.
func NewMediaItem(kind Kind, index int, filename, timestamp string, likes int) (*MediaItem, error) {
	date, err := ParseDate(timestamp)
	if err != nil {
		return nil, err
	}
	if likes < 0 {
		likes = 0
	}
	return &MediaItem{
		ID:        ItemID(kind, index, filename),
		Kind:      kind,
		Filename:  filename,
		Timestamp: timestamp,
		Likes:     likes,
		Date:      date,
	}, nil
}

// ItemID возвращает детерминированный UUID (v5) для элемента
func ItemID(kind Kind, index int, filename string) uuid.UUID {
	return uuid.NewSHA1(mediaNamespace, []byte(string(kind)+":"+strconv.Itoa(index)+":"+filename))
}

// Dir returns the media directory for the kind.
func (k Kind) Dir() string {
	if k == KindVideo {
		return "videos"
	}
	return "img"
}

// Src is the relative path the page loads the media from.
func (m *MediaItem) Src() string {
	return m.Kind.Dir() + "/" + m.Filename
}

// SortKey returns year*10000 + month*100 + day.
func (m *MediaItem) SortKey() int {
	return m.Date.Key()
}
