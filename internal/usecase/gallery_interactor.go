package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/domain"
	"github.com/renatoromeu/mariliaflix/internal/modal"
	"github.com/renatoromeu/mariliaflix/internal/render"
)

// DefaultMaxSessions - сколько модальных окон страниц хранится одновременно
const DefaultMaxSessions = 1024

// pageSession - модальное окно одной открытой страницы
type pageSession struct {
	modal    *modal.Modal
	lastUsed time.Time
}

// galleryUseCase implements GalleryUseCase
type galleryUseCase struct {
	loader      CatalogLoader
	listeners   []modal.LikeListener
	logger      *slog.Logger
	maxSessions int

	mu       sync.Mutex
	page     *render.Page
	sessions map[string]*pageSession
}

// NewGalleryUseCase создает новый экземпляр GalleryUseCase.
// listeners получают каждый лайк дополнительно к карточкам страницы
// (websocket, RabbitMQ).
func NewGalleryUseCase(loader CatalogLoader, logger *slog.Logger, listeners ...modal.LikeListener) GalleryUseCase {
	return &galleryUseCase{
		loader:      loader,
		listeners:   listeners,
		logger:      logger,
		maxSessions: DefaultMaxSessions,
		page:        render.Build(nil, nil),
		sessions:    make(map[string]*pageSession),
	}
}

// Load загружает каталог, сортирует, группирует и рендерит страницу.
// При ошибке страница содержит только общее сообщение об ошибке.
func (uc *galleryUseCase) Load(ctx context.Context) error {
	start := time.Now()

	videos, photos, err := uc.loader.Load(ctx)
	if err != nil {
		uc.logger.Error("Erro ao carregar vídeos/fotos", "error", err)
		uc.replace(render.Failed())
		return fmt.Errorf("usecase: ошибка загрузки галереи: %w", err)
	}

	SortByDateDesc(videos)
	SortByDateDesc(photos)
	groups := GroupByMonth(photos)

	for _, g := range groups {
		uc.logger.Debug("photo group", "label", g.Label, "count", len(g.Items))
	}

	uc.replace(render.Build(videos, groups))

	uc.logger.Info("gallery loaded",
		"videos", len(videos),
		"photos", len(photos),
		"sections", len(groups),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// replace swaps in a new page and drops every page modal bound to the old one.
func (uc *galleryUseCase) replace(page *render.Page) {
	uc.mu.Lock()
	old := uc.sessions
	uc.page = page
	uc.sessions = make(map[string]*pageSession)
	uc.mu.Unlock()

	// останавливаем видео, оставшиеся открытыми на старой странице
	for _, s := range old {
		s.modal.Close()
	}
}

// session returns the page modal for token, or nil if the page never opened one.
func (uc *galleryUseCase) session(token string) *modal.Modal {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if s, ok := uc.sessions[token]; ok {
		s.lastUsed = time.Now()
		return s.modal
	}
	return nil
}

func (uc *galleryUseCase) sessionOrCreateLocked(token string) *modal.Modal {
	if s, ok := uc.sessions[token]; ok {
		s.lastUsed = time.Now()
		return s.modal
	}

	if len(uc.sessions) >= uc.maxSessions {
		uc.evictOldestLocked()
	}
	m := modal.New(uc.logger, append([]modal.LikeListener{uc.page}, uc.listeners...)...)
	uc.sessions[token] = &pageSession{modal: m, lastUsed: time.Now()}
	return m
}

func (uc *galleryUseCase) evictOldestLocked() {
	var (
		oldest string
		at     time.Time
	)
	for token, s := range uc.sessions {
		if at.IsZero() || s.lastUsed.Before(at) {
			oldest, at = token, s.lastUsed
		}
	}
	if s, ok := uc.sessions[oldest]; ok {
		s.modal.Close()
		delete(uc.sessions, oldest)
		uc.logger.Debug("page session evicted", "session", oldest)
	}
}

func (uc *galleryUseCase) Page() *render.Page {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.page
}

func (uc *galleryUseCase) Open(session string, id uuid.UUID) (modal.Snapshot, error) {
	uc.mu.Lock()
	item, ok := uc.page.Item(id)
	if !ok {
		uc.mu.Unlock()
		snap := uc.Modal(session)
		return snap, fmt.Errorf("usecase: элемент %s: %w", id, domain.ErrMediaNotFound)
	}
	m := uc.sessionOrCreateLocked(session)
	uc.mu.Unlock()

	return m.Open(item), nil
}

func (uc *galleryUseCase) Like(session string) (modal.Snapshot, bool) {
	m := uc.session(session)
	if m == nil {
		return closedSnapshot(), false
	}
	return m.Like()
}

func (uc *galleryUseCase) Close(session string) modal.Snapshot {
	m := uc.session(session)
	if m == nil {
		return closedSnapshot()
	}
	return m.Close()
}

func (uc *galleryUseCase) Playback(session string, position float64) error {
	m := uc.session(session)
	if m == nil {
		return domain.ErrModalClosed
	}
	return m.Advance(position)
}

func (uc *galleryUseCase) Modal(session string) modal.Snapshot {
	m := uc.session(session)
	if m == nil {
		return closedSnapshot()
	}
	return m.Snapshot()
}

func closedSnapshot() modal.Snapshot {
	return modal.Snapshot{State: modal.StateClosed}
}
