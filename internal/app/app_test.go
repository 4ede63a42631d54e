package app

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/renatoromeu/mariliaflix/internal/adapter/storage/local"
	"github.com/renatoromeu/mariliaflix/internal/config"
	"github.com/renatoromeu/mariliaflix/internal/domain"
	"github.com/renatoromeu/mariliaflix/internal/logger"
	"github.com/renatoromeu/mariliaflix/internal/messaging/payloads"
)

type fakeUploader struct {
	mu    sync.Mutex
	files map[string]string
	types map[string]string
	err   error
}

func (f *fakeUploader) UploadFile(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[key] = string(b)
	f.types[key] = contentType
	return "http://bucket/" + key, nil
}

func newUploader() *fakeUploader {
	return &fakeUploader{files: map[string]string{}, types: map[string]string{}}
}

func mediaTree(t *testing.T) *local.Store {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"img/a.jpg":        "a",
		"img/b.png":        "b",
		"img/.DS_Store":    "x",
		"videos/v.mp4":     "v",
		"data/photos.json": "[]",
	}
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return local.NewStoreFs(fs)
}

func TestSyncMedia(t *testing.T) {
	up := newUploader()
	n, err := syncMedia(context.Background(), mediaTree(t), up, logger.Discard())
	if err != nil {
		t.Fatalf("syncMedia: %v", err)
	}
	if n != 3 {
		t.Errorf("uploaded = %d, want 3", n)
	}

	var keys []string
	for k := range up.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	want := []string{"img/a.jpg", "img/b.png", "videos/v.mp4"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
	if up.types["img/a.jpg"] != "image/jpeg" {
		t.Errorf("content type = %q", up.types["img/a.jpg"])
	}
	if up.files["videos/v.mp4"] != "v" {
		t.Errorf("video body = %q", up.files["videos/v.mp4"])
	}
}

func TestSyncMedia_UploadError(t *testing.T) {
	up := newUploader()
	up.err = errors.New("bucket unavailable")

	if _, err := syncMedia(context.Background(), mediaTree(t), up, logger.Discard()); err == nil {
		t.Fatal("expected error")
	}
}

type fakeLedger struct {
	saved    []domain.LikeEvent
	saveErr  error
	countErr error
}

func (f *fakeLedger) SaveLikeEvent(ctx context.Context, event *domain.LikeEvent) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *event)
	return nil
}

func (f *fakeLedger) CountLikeEvents(ctx context.Context, itemID uuid.UUID) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for _, e := range f.saved {
		if e.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func TestLikeEventHandler(t *testing.T) {
	item, err := domain.NewMediaItem(domain.KindVideo, 0, "v.mp4", "01/01/2024", 3)
	if err != nil {
		t.Fatal(err)
	}
	payload := payloads.NewLikePayload(item)

	ledger := &fakeLedger{}
	handle := likeEventHandler(ledger, logger.Discard())

	if err := handle(context.Background(), payload); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(ledger.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(ledger.saved))
	}
	got := ledger.saved[0]
	if got.ID != payload.EventID || got.ItemID != item.ID || got.Likes != 3 || got.Kind != domain.KindVideo {
		t.Errorf("saved event = %+v", got)
	}

	// count failures do not trigger a redelivery
	ledger.countErr = errors.New("timeout")
	if err := handle(context.Background(), payload); err != nil {
		t.Errorf("handler with count error: %v", err)
	}

	ledger.saveErr = errors.New("db down")
	if err := handle(context.Background(), payload); err == nil {
		t.Error("expected save error to be returned")
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestApp_ShutdownClosesInReverseOrder(t *testing.T) {
	var order []string
	c := Components{Closers: []io.Closer{
		closerFunc(func() error { order = append(order, "db"); return nil }),
		closerFunc(func() error { order = append(order, "rabbitmq"); return errors.New("already closed") }),
	}}
	a := NewApp(&config.Config{}, logger.Discard(), c)

	if err := a.Shutdown(); err == nil {
		t.Error("expected joined close error")
	}
	if len(order) != 2 || order[0] != "rabbitmq" || order[1] != "db" {
		t.Errorf("close order = %v", order)
	}
	if err := a.Shutdown(); err != nil {
		t.Errorf("second Shutdown: %v", err)
	}
}

func TestApp_RunUnknownMode(t *testing.T) {
	a := NewApp(&config.Config{}, logger.Discard(), Components{})
	if err := a.Run(context.Background(), "batch"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestApp_RunSync(t *testing.T) {
	up := newUploader()
	a := NewApp(&config.Config{}, logger.Discard(), Components{Source: mediaTree(t), Uploader: up})
	if err := a.Run(context.Background(), config.ModeSync); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(up.files) != 3 {
		t.Errorf("uploaded = %d, want 3", len(up.files))
	}
}
