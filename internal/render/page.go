package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

// VideosTitle заголовок секции с видео
const VideosTitle = "Vídeos"

// LoadErrorMessage - единственное общее сообщение при ошибке загрузки каталога.
const LoadErrorMessage = "Erro ao carregar conteúdo. Veja o console para detalhes."

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static/style.css
var stylesheet []byte

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

// Card - одна карточка. Badge - отображаемое число лайков,
// синхронизируется с элементом через SyncLikes.
type Card struct {
	ID    uuid.UUID   `json:"id"`
	Kind  domain.Kind `json:"kind"`
	Src   string      `json:"src"`
	Alt   string      `json:"alt,omitempty"`
	Title string      `json:"title,omitempty"`
	Badge int         `json:"likes"`
}

// Section - заголовок и ряд карточек
type Section struct {
	Title string      `json:"title"`
	Kind  domain.Kind `json:"kind"`
	Cards []Card      `json:"cards"`
}

// View - неизменяемая копия страницы для шаблонов и JSON.
type View struct {
	Sections []Section `json:"sections"`
	Error    string    `json:"error,omitempty"`
}

// Page хранит отрендеренную галерею одной загрузки.
type Page struct {
	mu       sync.RWMutex
	sections []*section
	cards    map[uuid.UUID]*card
	errMsg   string
}

type section struct {
	title string
	kind  domain.Kind
	cards []*card
}

type card struct {
	Card
	item *domain.MediaItem
}

// Build строит страницу: сначала секция "Vídeos", затем секции фото
// в порядке групп. Пустая категория не дает ни заголовка, ни карточек.
func Build(videos []*domain.MediaItem, groups []domain.Section) *Page {
	p := &Page{cards: make(map[uuid.UUID]*card)}

	if len(videos) > 0 {
		s := &section{title: VideosTitle, kind: domain.KindVideo}
		for _, v := range videos {
			s.cards = append(s.cards, p.addCard(v, ""))
		}
		p.sections = append(p.sections, s)
	}

	for _, g := range groups {
		if len(g.Items) == 0 {
			continue
		}
		s := &section{title: g.Label, kind: domain.KindPhoto}
		for _, photo := range g.Items {
			s.cards = append(s.cards, p.addCard(photo, photo.Timestamp))
		}
		p.sections = append(p.sections, s)
	}
	return p
}

// Failed возвращает страницу без секций с одним общим сообщением об ошибке.
func Failed() *Page {
	return &Page{cards: make(map[uuid.UUID]*card), errMsg: LoadErrorMessage}
}

func (p *Page) addCard(item *domain.MediaItem, title string) *card {
	c := &card{
		Card: Card{
			ID:    item.ID,
			Kind:  item.Kind,
			Src:   item.Src(),
			Title: title,
			Badge: item.Likes,
		},
		item: item,
	}
	if item.Kind == domain.KindPhoto {
		c.Alt = "Foto " + item.Filename
	}
	p.cards[item.ID] = c
	return c
}

// Item возвращает элемент, стоящий за карточкой.
func (p *Page) Item(id uuid.UUID) (*domain.MediaItem, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.cards[id]
	if !ok {
		return nil, false
	}
	return c.item, true
}

// Card возвращает копию карточки по ID.
func (p *Page) Card(id uuid.UUID) (Card, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.cards[id]
	if !ok {
		return Card{}, false
	}
	return c.Card, true
}

// SyncLikes обновляет счетчик карточки с указанным ID. Счетчик только растет:
// запоздавшее уведомление не уменьшит его.
func (p *Page) SyncLikes(id uuid.UUID, likes int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.cards[id]
	if !ok {
		return false
	}
	if likes > c.Badge {
		c.Badge = likes
	}
	return true
}

// LikeChanged реализует modal.LikeListener.
func (p *Page) LikeChanged(item domain.MediaItem) {
	p.SyncLikes(item.ID, item.Likes)
}

// View снимает копию страницы.
func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v := View{Sections: make([]Section, 0, len(p.sections)), Error: p.errMsg}
	for _, s := range p.sections {
		out := Section{Title: s.title, Kind: s.kind, Cards: make([]Card, 0, len(s.cards))}
		for _, c := range s.cards {
			out.Cards = append(out.Cards, c.Card)
		}
		v.Sections = append(v.Sections, out)
	}
	return v
}

// Stylesheet возвращает встроенный css/style.css страницы.
func Stylesheet() []byte {
	return stylesheet
}

type pageData struct {
	View
	Session string
}

// Render пишет HTML-страницу. session - токен страницы, который скрипт
// отправляет с каждым запросом к модальному окну.
func (p *Page) Render(w io.Writer, session string) error {
	if err := pageTemplate.ExecuteTemplate(w, "page", pageData{View: p.View(), Session: session}); err != nil {
		return fmt.Errorf("ошибка рендеринга страницы: %w", err)
	}
	return nil
}
