package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/core/ports"
	"github.com/renatoromeu/mariliaflix/internal/domain"
	"github.com/renatoromeu/mariliaflix/internal/modal"
	"github.com/renatoromeu/mariliaflix/internal/render"
	"github.com/renatoromeu/mariliaflix/internal/usecase"
)

// GalleryHandler - обработчик HTTP-запросов галереи и модального окна.
type GalleryHandler struct {
	gallery usecase.GalleryUseCase
	media   ports.MediaStore
	logger  *slog.Logger
}

// NewGalleryHandler создаёт новый экземпляр GalleryHandler.
func NewGalleryHandler(uc usecase.GalleryUseCase, media ports.MediaStore, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		gallery: uc,
		media:   media,
		logger:  logger,
	}
}

// respondWithJSON - отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError - отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// SessionHeader несет токен страницы, выданный в Index или Gallery.
// У каждой страницы свое модальное окно.
const SessionHeader = "X-Gallery-Session"

// sessionFrom reads the page token; only UUIDs are accepted.
func (h *GalleryHandler) sessionFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.Header.Get(SessionHeader)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("missing or invalid page session", "session", raw)
		respondWithError(w, http.StatusBadRequest, "Не указан или некорректен "+SessionHeader, h.logger)
		return "", false
	}
	return id.String(), true
}

// galleryResponse - секции и карточки плюс новый токен страницы
type galleryResponse struct {
	Session string `json:"session"`
	render.View
}

// modalConflict is returned when an action needs an open modal.
type modalConflict struct {
	Error string         `json:"error"`
	Modal modal.Snapshot `json:"modal"`
}

// Index - рендерит страницу галереи.
func (h *GalleryHandler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.gallery.Page().Render(&buf, uuid.NewString()); err != nil {
		h.logger.Error("failed to render gallery page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write HTTP response", "error", err)
	}
}

// Health - проверка живости.
func (h *GalleryHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Gallery - секции и карточки текущей страницы.
func (h *GalleryHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, galleryResponse{Session: uuid.NewString(), View: h.gallery.Page().View()}, h.logger)
}

// Reload - заново загружает каталог; лайки возвращаются к значениям из JSON,
// все модальные окна закрываются, в ответе новый токен страницы.
func (h *GalleryHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("processing request", "endpoint", "Reload")

	if err := h.gallery.Load(r.Context()); err != nil {
		h.logger.Error("failed to reload gallery", "error", err)
		respondWithError(w, http.StatusBadGateway, render.LoadErrorMessage, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, galleryResponse{Session: uuid.NewString(), View: h.gallery.Page().View()}, h.logger)
}

// ModalState - текущее состояние модального окна.
func (h *GalleryHandler) ModalState(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.gallery.Modal(session), h.logger)
}

// Open - открывает фото или видео по ID.
func (h *GalleryHandler) Open(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("invalid item id", "id", idStr, "error", err)
		respondWithError(w, http.StatusBadRequest, "Некорректный id", h.logger)
		return
	}

	snap, err := h.gallery.Open(session, id)
	if err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			h.logger.Warn("item not found", "id", id)
			respondWithError(w, http.StatusNotFound, "Элемент не найден", h.logger)
			return
		}
		h.logger.Error("failed to open modal", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Ошибка открытия элемента", h.logger)
		return
	}

	h.logger.Info("modal opened", "id", id, "kind", snap.Kind)
	respondWithJSON(w, http.StatusOK, snap, h.logger)
}

// Like - лайк текущего элемента. Без открытого окна ничего не меняется.
func (h *GalleryHandler) Like(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	snap, ok := h.gallery.Like(session)
	if !ok {
		respondWithJSON(w, http.StatusConflict, modalConflict{Error: domain.ErrModalClosed.Error(), Modal: snap}, h.logger)
		return
	}

	h.logger.Info("item liked", "id", snap.ItemID, "likes", snap.Likes)
	respondWithJSON(w, http.StatusOK, snap, h.logger)
}

// Close - закрывает модальное окно.
func (h *GalleryHandler) Close(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, h.gallery.Close(session), h.logger)
}

type playbackRequest struct {
	Position *float64 `json:"position"`
}

// Playback - позиция воспроизведения открытого видео.
func (h *GalleryHandler) Playback(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	var req playbackRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<10)).Decode(&req); err != nil || req.Position == nil || *req.Position < 0 {
		respondWithError(w, http.StatusBadRequest, "Некорректная позиция", h.logger)
		return
	}

	if err := h.gallery.Playback(session, *req.Position); err != nil {
		if errors.Is(err, domain.ErrModalClosed) {
			respondWithJSON(w, http.StatusConflict, modalConflict{Error: err.Error(), Modal: h.gallery.Modal(session)}, h.logger)
			return
		}
		h.logger.Error("failed to record playback", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Ошибка воспроизведения", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, h.gallery.Modal(session), h.logger)
}

// Media returns a handler serving <dir>/{filename} from the media store.
// Missing or unreadable files are logged at error level and answered with 404,
// other cards are not affected.
func (h *GalleryHandler) Media(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		key := path.Join(dir, filename)

		rc, err := h.media.Open(r.Context(), key)
		if err != nil {
			h.logger.Error("Erro ao carregar mídia", "src", key, "error", err)
			http.NotFound(w, r)
			return
		}
		defer rc.Close()

		if ct := mime.TypeByExtension(path.Ext(filename)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}

		if rs, ok := rc.(io.ReadSeeker); ok {
			http.ServeContent(w, r, filename, time.Time{}, rs)
			return
		}

		if _, err := io.Copy(w, rc); err != nil {
			h.logger.Error("failed to stream media", "src", key, "error", err)
		}
	}
}

// Stylesheet отдает встроенный css/style.css.
func (h *GalleryHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	http.ServeContent(w, r, "style.css", time.Time{}, bytes.NewReader(render.Stylesheet()))
}
