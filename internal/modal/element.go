package modal

import "github.com/renatoromeu/mariliaflix/internal/domain"

// Element - медиа-элемент внутри модального окна (img или video).
// Создается заново при каждом открытии, старый отбрасывается.
type Element struct {
	Kind        domain.Kind `json:"kind"`
	Src         string      `json:"src"`
	Alt         string      `json:"alt,omitempty"`
	Controls    bool        `json:"controls,omitempty"`
	Autoplay    bool        `json:"autoplay,omitempty"`
	Muted       bool        `json:"muted,omitempty"`
	PlaysInline bool        `json:"playsinline,omitempty"`

	// воспроизведение, только для видео
	Paused   bool    `json:"paused"`
	Position float64 `json:"position"`
}

func newVideoElement(item *domain.MediaItem) *Element {
	return &Element{
		Kind:        domain.KindVideo,
		Src:         item.Src(),
		Controls:    true,
		Autoplay:    true,
		Muted:       true,
		PlaysInline: true,
		Paused:      false,
		Position:    0,
	}
}

func newPhotoElement(item *domain.MediaItem) *Element {
	return &Element{
		Kind:   domain.KindPhoto,
		Src:    item.Src(),
		Alt:    "Foto " + item.Filename,
		Paused: true,
	}
}

// Pause останавливает воспроизведение
func (e *Element) Pause() {
	e.Paused = true
}

// Rewind перематывает в начало
func (e *Element) Rewind() {
	e.Position = 0
}
