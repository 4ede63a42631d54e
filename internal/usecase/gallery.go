package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/domain"
	"github.com/renatoromeu/mariliaflix/internal/modal"
	"github.com/renatoromeu/mariliaflix/internal/render"
)

// CatalogLoader определяет порт для загрузки каталога (data/videos.json + data/photos.json).
type CatalogLoader interface {
	// Load возвращает видео и фото в порядке источника или ошибку, если
	// хотя бы один документ не загрузился
	Load(ctx context.Context) (videos, photos []*domain.MediaItem, err error)
}

// GalleryUseCase определяет интерфейс для бизнес-логики галереи.
// У каждой открытой страницы свое модальное окно, страница идентифицируется
// токеном session.
type GalleryUseCase interface {
	// Load прогоняет конвейер Loader -> Organizer -> Renderer и заменяет текущую страницу.
	// Повторная загрузка возвращает лайки к значениям из JSON и закрывает все окна.
	Load(ctx context.Context) error

	// Page возвращает текущую отрендеренную страницу
	Page() *render.Page

	// Open открывает модальное окно страницы session для фото или видео по ID
	Open(session string, id uuid.UUID) (modal.Snapshot, error)

	// Like увеличивает счетчик элемента, открытого на странице session;
	// ok=false если окно закрыто
	Like(session string) (snap modal.Snapshot, ok bool)

	// Close закрывает модальное окно страницы
	Close(session string) modal.Snapshot

	// Playback сохраняет позицию воспроизведения открытого видео
	Playback(session string, position float64) error

	// Modal возвращает снимок модального окна страницы
	Modal(session string) modal.Snapshot
}
