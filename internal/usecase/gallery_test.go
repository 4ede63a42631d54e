package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/renatoromeu/mariliaflix/internal/domain"
	"github.com/renatoromeu/mariliaflix/internal/logger"
	"github.com/renatoromeu/mariliaflix/internal/modal"
	"github.com/renatoromeu/mariliaflix/internal/render"
)

const (
	pageA = "9b2f6a1e-0c4d-4a57-8e3b-5f7d2c1a9e60"
	pageB = "1d8e3c7a-6b2f-4e91-a0c5-7f4b9d2e8a13"
)

type record struct {
	name  string
	ts    string
	likes int
}

// fakeLoader builds fresh items on every Load, like re-reading the JSON files.
type fakeLoader struct {
	videos []record
	photos []record
	err    error
	calls  int
}

func (f *fakeLoader) Load(ctx context.Context) ([]*domain.MediaItem, []*domain.MediaItem, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	build := func(kind domain.Kind, recs []record) []*domain.MediaItem {
		var out []*domain.MediaItem
		for i, r := range recs {
			it, err := domain.NewMediaItem(kind, i, r.name, r.ts, r.likes)
			if err != nil {
				panic(err)
			}
			out = append(out, it)
		}
		return out
	}
	return build(domain.KindVideo, f.videos), build(domain.KindPhoto, f.photos), nil
}

func newLoader() *fakeLoader {
	return &fakeLoader{
		videos: []record{
			{"antigo.mp4", "01/01/2023", 0},
			{"novo.mp4", "10/02/2024", 3},
		},
		photos: []record{
			{"a.jpg", "15/03/2024", 1},
			{"b.jpg", "02/03/2024", 0},
			{"c.jpg", "20/01/2024", 5},
		},
	}
}

func cardFor(t *testing.T, page *render.Page, id uuid.UUID) render.Card {
	t.Helper()
	c, ok := page.Card(id)
	if !ok {
		t.Fatalf("card %s not found", id)
	}
	return c
}

func TestGallery_Load(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	if err := uc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	v := uc.Page().View()
	if len(v.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(v.Sections))
	}
	if v.Sections[0].Title != render.VideosTitle || v.Sections[0].Cards[0].Src != "videos/novo.mp4" {
		t.Errorf("videos must come first, newest first: %+v", v.Sections[0])
	}
	if v.Sections[1].Title != "Momento Março de 2024" || v.Sections[2].Title != "Momento Janeiro de 2024" {
		t.Errorf("unexpected photo sections %q, %q", v.Sections[1].Title, v.Sections[2].Title)
	}
}

func TestGallery_LoadFailure(t *testing.T) {
	loader := &fakeLoader{err: domain.ErrLoadFailure}
	uc := NewGalleryUseCase(loader, logger.Discard())

	err := uc.Load(context.Background())
	if !errors.Is(err, domain.ErrLoadFailure) {
		t.Fatalf("Load() error = %v, want ErrLoadFailure", err)
	}

	v := uc.Page().View()
	if len(v.Sections) != 0 {
		t.Errorf("failed load rendered %d sections", len(v.Sections))
	}
	var buf bytes.Buffer
	uc.Page().Render(&buf, "")
	if n := strings.Count(buf.String(), render.LoadErrorMessage); n != 1 {
		t.Errorf("error message count = %d, want 1", n)
	}
}

func TestGallery_Empty(t *testing.T) {
	uc := NewGalleryUseCase(&fakeLoader{}, logger.Discard())
	if err := uc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	v := uc.Page().View()
	if len(v.Sections) != 0 || v.Error != "" {
		t.Errorf("empty catalog: %+v", v)
	}
}

func TestGallery_LikeKeepsCardAndModalInSync(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	photoID := domain.ItemID(domain.KindPhoto, 1, "b.jpg")

	s, err := uc.Open(pageA, photoID)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if s.State != modal.StateOpen || s.Likes != 0 {
		t.Fatalf("unexpected snapshot %+v", s)
	}

	uc.Like(pageA)
	s, ok := uc.Like(pageA)
	if !ok || s.Likes != 2 {
		t.Fatalf("after two likes: %+v ok=%v", s, ok)
	}
	if c := cardFor(t, uc.Page(), photoID); c.Badge != s.Likes {
		t.Errorf("card badge = %d, modal = %d", c.Badge, s.Likes)
	}

	uc.Close(pageA)
	s, _ = uc.Open(pageA, photoID)
	if s.Likes != 2 {
		t.Errorf("reopened likes = %d, want 2", s.Likes)
	}
	if c := cardFor(t, uc.Page(), photoID); c.Badge != 2 {
		t.Errorf("card badge = %d, want 2", c.Badge)
	}

	// other cards untouched
	if c := cardFor(t, uc.Page(), domain.ItemID(domain.KindPhoto, 0, "a.jpg")); c.Badge != 1 {
		t.Errorf("sibling badge = %d, want 1", c.Badge)
	}
}

func TestGallery_LikeVideo(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	id := domain.ItemID(domain.KindVideo, 1, "novo.mp4")
	uc.Open(pageA, id)
	s, _ := uc.Like(pageA)
	if s.Likes != 4 {
		t.Errorf("likes = %d, want 4", s.Likes)
	}
	if c := cardFor(t, uc.Page(), id); c.Badge != 4 {
		t.Errorf("badge = %d, want 4", c.Badge)
	}
}

func TestGallery_ExtraListeners(t *testing.T) {
	var seen []domain.MediaItem
	listener := modal.ListenerFunc(func(item domain.MediaItem) { seen = append(seen, item) })

	uc := NewGalleryUseCase(newLoader(), logger.Discard(), listener)
	uc.Load(context.Background())

	uc.Open(pageA, domain.ItemID(domain.KindPhoto, 2, "c.jpg"))
	uc.Like(pageA)

	if len(seen) != 1 || seen[0].Filename != "c.jpg" || seen[0].Likes != 6 {
		t.Errorf("listener got %+v", seen)
	}
}

func TestGallery_LikeWhileClosed(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	if _, ok := uc.Like(pageA); ok {
		t.Error("Like() with a closed modal must report ok=false")
	}
}

func TestGallery_OpenUnknown(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	if _, err := uc.Open(pageA, uuid.New()); !errors.Is(err, domain.ErrMediaNotFound) {
		t.Errorf("Open() error = %v, want ErrMediaNotFound", err)
	}
}

func TestGallery_ReloadRevertsLikes(t *testing.T) {
	loader := newLoader()
	uc := NewGalleryUseCase(loader, logger.Discard())
	uc.Load(context.Background())

	id := domain.ItemID(domain.KindPhoto, 0, "a.jpg")
	uc.Open(pageA, id)
	uc.Like(pageA)
	uc.Like(pageA)

	if err := uc.Load(context.Background()); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if loader.calls != 2 {
		t.Errorf("loader calls = %d, want 2", loader.calls)
	}
	if c := cardFor(t, uc.Page(), id); c.Badge != 1 {
		t.Errorf("badge after reload = %d, want 1", c.Badge)
	}
	if s := uc.Modal(pageA); s.State != modal.StateClosed {
		t.Errorf("modal after reload = %s, want closed", s.State)
	}
}

func TestGallery_Playback(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	uc.Open(pageA, domain.ItemID(domain.KindVideo, 0, "antigo.mp4"))
	if err := uc.Playback(pageA, 7); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	s := uc.Close(pageA)
	if !s.Media.Paused || s.Media.Position != 0 {
		t.Errorf("closed video = %+v, want paused at 0", s.Media)
	}
}

func TestGallery_PagesHaveSeparateModals(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	a := domain.ItemID(domain.KindPhoto, 0, "a.jpg")
	c := domain.ItemID(domain.KindPhoto, 2, "c.jpg")

	uc.Open(pageA, a)
	uc.Open(pageB, c)

	s, ok := uc.Like(pageA)
	if !ok || s.ItemID == nil || *s.ItemID != a || s.Likes != 2 {
		t.Fatalf("like on page A = %+v ok=%v, want a.jpg with 2 likes", s, ok)
	}
	if badge := cardFor(t, uc.Page(), a).Badge; badge != s.Likes {
		t.Errorf("a.jpg badge = %d, modal = %d", badge, s.Likes)
	}
	if badge := cardFor(t, uc.Page(), c).Badge; badge != 5 {
		t.Errorf("c.jpg badge = %d, want 5", badge)
	}
	if s := uc.Modal(pageB); s.ItemID == nil || *s.ItemID != c || s.Likes != 5 {
		t.Errorf("page B modal = %+v, want c.jpg with 5 likes", s)
	}

	// closing one page leaves the other open
	uc.Close(pageB)
	if s := uc.Modal(pageA); s.State != modal.StateOpen {
		t.Errorf("page A state = %s, want open", s.State)
	}

	// a page that never opened anything cannot like
	if _, ok := uc.Like("unknown-page"); ok {
		t.Error("Like() on an unknown page must report ok=false")
	}
}

func TestGallery_SharedItemAcrossPages(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	id := domain.ItemID(domain.KindPhoto, 1, "b.jpg")
	uc.Open(pageA, id)
	uc.Open(pageB, id)

	uc.Like(pageA)
	s, _ := uc.Like(pageB)
	if s.Likes != 2 {
		t.Errorf("likes = %d, want 2", s.Likes)
	}
	if badge := cardFor(t, uc.Page(), id).Badge; badge != 2 {
		t.Errorf("badge = %d, want 2", badge)
	}
}

func TestGallery_SessionEviction(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.(*galleryUseCase).maxSessions = 2
	uc.Load(context.Background())

	id := domain.ItemID(domain.KindPhoto, 0, "a.jpg")
	uc.Open("p1", id)
	time.Sleep(time.Millisecond)
	uc.Open("p2", id)
	time.Sleep(time.Millisecond)
	uc.Open("p3", id)

	if n := len(uc.(*galleryUseCase).sessions); n != 2 {
		t.Fatalf("sessions = %d, want 2", n)
	}
	if s := uc.Modal("p1"); s.State != modal.StateClosed {
		t.Errorf("oldest page state = %s, want closed", s.State)
	}
	if s := uc.Modal("p3"); s.State != modal.StateOpen {
		t.Errorf("newest page state = %s, want open", s.State)
	}
}

func TestGallery_OpenUnknownDoesNotCreateSession(t *testing.T) {
	uc := NewGalleryUseCase(newLoader(), logger.Discard())
	uc.Load(context.Background())

	uc.Open(pageA, uuid.New())
	if n := len(uc.(*galleryUseCase).sessions); n != 0 {
		t.Errorf("sessions = %d, want 0", n)
	}
}
