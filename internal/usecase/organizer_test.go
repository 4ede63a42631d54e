package usecase

import (
	"math/rand"
	"testing"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

func mustItem(t *testing.T, kind domain.Kind, i int, name, ts string) *domain.MediaItem {
	t.Helper()
	item, err := domain.NewMediaItem(kind, i, name, ts, 0)
	if err != nil {
		t.Fatalf("NewMediaItem(%q, %q): %v", name, ts, err)
	}
	return item
}

func filenames(items []*domain.MediaItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Filename
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMonthName(t *testing.T) {
	want := []string{"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}
	for i, name := range want {
		if got := MonthName(i + 1); got != name {
			t.Errorf("MonthName(%d) = %q, want %q", i+1, got, name)
		}
	}
	if MonthName(0) != "" || MonthName(13) != "" {
		t.Error("out of range months must give an empty name")
	}
}

func TestSortByDateDesc_NonIncreasing(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	items := make([]*domain.MediaItem, 0, 200)
	for i := 0; i < 200; i++ {
		d := domain.Date{Day: 1 + r.Intn(28), Month: 1 + r.Intn(12), Year: 2015 + r.Intn(10)}
		items = append(items, &domain.MediaItem{Filename: "x", Date: d})
	}

	SortByDateDesc(items)

	for i := 1; i < len(items); i++ {
		if items[i-1].SortKey() < items[i].SortKey() {
			t.Fatalf("order broken at %d: %d < %d", i, items[i-1].SortKey(), items[i].SortKey())
		}
	}
}

func TestSortByDateDesc_StableForEqualDates(t *testing.T) {
	items := []*domain.MediaItem{
		mustItem(t, domain.KindPhoto, 0, "old.jpg", "01/01/2020"),
		mustItem(t, domain.KindPhoto, 1, "same-1.jpg", "10/05/2022"),
		mustItem(t, domain.KindPhoto, 2, "new.jpg", "01/01/2024"),
		mustItem(t, domain.KindPhoto, 3, "same-2.jpg", "10/05/2022"),
		mustItem(t, domain.KindPhoto, 4, "same-3.jpg", "10/05/2022"),
	}

	SortByDateDesc(items)

	want := []string{"new.jpg", "same-1.jpg", "same-2.jpg", "same-3.jpg", "old.jpg"}
	if got := filenames(items); !equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestGroupByMonth(t *testing.T) {
	photos := []*domain.MediaItem{
		mustItem(t, domain.KindPhoto, 0, "a.jpg", "15/03/2024"),
		mustItem(t, domain.KindPhoto, 1, "b.jpg", "02/03/2024"),
		mustItem(t, domain.KindPhoto, 2, "c.jpg", "20/01/2024"),
	}
	SortByDateDesc(photos)

	sections := GroupByMonth(photos)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Label != "Momento Março de 2024" {
		t.Errorf("first label = %q", sections[0].Label)
	}
	if got := filenames(sections[0].Items); !equal(got, []string{"a.jpg", "b.jpg"}) {
		t.Errorf("March items = %v", got)
	}
	if sections[1].Label != "Momento Janeiro de 2024" {
		t.Errorf("second label = %q", sections[1].Label)
	}
	if got := filenames(sections[1].Items); !equal(got, []string{"c.jpg"}) {
		t.Errorf("January items = %v", got)
	}
}

func TestGroupByMonth_SameMonthDifferentYears(t *testing.T) {
	photos := []*domain.MediaItem{
		mustItem(t, domain.KindPhoto, 0, "x.jpg", "05/07/2023"),
		mustItem(t, domain.KindPhoto, 1, "y.jpg", "05/07/2024"),
	}
	SortByDateDesc(photos)

	sections := GroupByMonth(photos)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Label != "Momento Julho de 2024" || sections[1].Label != "Momento Julho de 2023" {
		t.Errorf("labels = %q, %q", sections[0].Label, sections[1].Label)
	}
}

func TestGroupByMonth_Empty(t *testing.T) {
	if sections := GroupByMonth(nil); len(sections) != 0 {
		t.Errorf("expected no sections, got %d", len(sections))
	}
}
