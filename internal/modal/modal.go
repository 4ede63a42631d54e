package modal

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

// State - состояние модального окна
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// LikeListener получает копию элемента сразу после лайка.
// Вызывается вне блокировки модального окна.
type LikeListener interface {
	LikeChanged(item domain.MediaItem)
}

// ListenerFunc позволяет использовать функцию как LikeListener.
type ListenerFunc func(item domain.MediaItem)

func (f ListenerFunc) LikeChanged(item domain.MediaItem) { f(item) }

// Snapshot - снимок модального окна только для чтения.
type Snapshot struct {
	State  State       `json:"state"`
	ItemID *uuid.UUID  `json:"item_id,omitempty"`
	Kind   domain.Kind `json:"kind,omitempty"`
	Title  string      `json:"title"`
	Likes  int         `json:"likes"`
	Media  *Element    `json:"media,omitempty"`
}

// Modal - конечный автомат модального окна: Closed -> Open(item) -> Closed.
// Текущий элемент хранится здесь, а не в глобальной переменной.
type Modal struct {
	mu        sync.Mutex
	state     State
	current   *domain.MediaItem
	media     *Element
	title     string
	likes     int
	listeners []LikeListener
	logger    *slog.Logger
}

// New создает закрытое модальное окно.
func New(logger *slog.Logger, listeners ...LikeListener) *Modal {
	return &Modal{
		state:     StateClosed,
		listeners: listeners,
		logger:    logger,
	}
}

// Open выбирает OpenVideo или OpenPhoto по типу элемента.
func (m *Modal) Open(item *domain.MediaItem) Snapshot {
	if item.Kind == domain.KindVideo {
		return m.OpenVideo(item)
	}
	return m.OpenPhoto(item)
}

// OpenVideo показывает видео в модальном окне.
func (m *Modal) OpenVideo(item *domain.MediaItem) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.show(item, newVideoElement(item), "Vídeo: "+item.Timestamp)
	return m.snapshotLocked()
}

// OpenPhoto показывает фото в модальном окне.
func (m *Modal) OpenPhoto(item *domain.MediaItem) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.show(item, newPhotoElement(item), item.Timestamp)
	return m.snapshotLocked()
}

func (m *Modal) show(item *domain.MediaItem, el *Element, title string) {
	// открытие поверх видео не должно оставлять его играть
	m.stopVideoLocked()

	m.media = el
	m.title = title
	m.likes = item.Likes
	m.current = item
	m.state = StateOpen

	m.logger.Debug("modal opened", "item_id", item.ID, "kind", item.Kind, "src", item.Src())
}

// Close останавливает видео, перематывает его в начало и сбрасывает текущий элемент.
// Медиа-элемент остается на месте до следующего открытия.
func (m *Modal) Close() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopVideoLocked()
	if m.current != nil {
		m.logger.Debug("modal closed", "item_id", m.current.ID)
	}
	m.current = nil
	m.state = StateClosed
	return m.snapshotLocked()
}

func (m *Modal) stopVideoLocked() {
	if m.current != nil && m.current.Kind == domain.KindVideo && m.media != nil {
		m.media.Pause()
		m.media.Rewind()
	}
}

// Like увеличивает счетчик текущего элемента на 1 и уведомляет слушателей.
// При закрытом окне ничего не делает и возвращает false.
func (m *Modal) Like() (Snapshot, bool) {
	m.mu.Lock()
	if m.state != StateOpen || m.current == nil {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, false
	}

	m.current.Likes++
	m.likes = m.current.Likes
	liked := *m.current
	snap := m.snapshotLocked()
	listeners := m.listeners
	m.mu.Unlock()

	m.logger.Info("media liked", "item_id", liked.ID, "kind", liked.Kind, "likes", liked.Likes)

	for _, l := range listeners {
		l.LikeChanged(liked)
	}
	return snap, true
}

// Advance сохраняет позицию воспроизведения открытого видео.
func (m *Modal) Advance(position float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateOpen || m.current == nil || m.current.Kind != domain.KindVideo {
		return domain.ErrModalClosed
	}
	if position < 0 {
		position = 0
	}
	m.media.Position = position
	return nil
}

// Snapshot возвращает текущее состояние окна.
func (m *Modal) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Modal) snapshotLocked() Snapshot {
	s := Snapshot{
		State: m.state,
		Title: m.title,
		Likes: m.likes,
	}
	if m.current != nil {
		id := m.current.ID
		s.ItemID = &id
		s.Kind = m.current.Kind
	}
	if m.media != nil {
		el := *m.media
		s.Media = &el
	}
	return s
}
