package usecase

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/renatoromeu/mariliaflix/internal/domain"
)

// monthNames - названия месяцев по порядку, 1 = Janeiro ... 12 = Dezembro
var monthNames = [12]string{
	"Janeiro",
	"Fevereiro",
	"Março",
	"Abril",
	"Maio",
	"Junho",
	"Julho",
	"Agosto",
	"Setembro",
	"Outubro",
	"Novembro",
	"Dezembro",
}

// MonthName returns the month name for 1..12 and "" otherwise.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// SectionLabel строит заголовок группы: "Momento <Mês> de <Ano>"
func SectionLabel(d domain.Date) string {
	return fmt.Sprintf("Momento %s de %d", MonthName(d.Month), d.Year)
}

// SortByDateDesc сортирует элементы от новых к старым, на месте.
// Сортировка стабильная: при равных датах сохраняется порядок из JSON.
func SortByDateDesc(items []*domain.MediaItem) {
	slices.SortStableFunc(items, func(a, b *domain.MediaItem) int {
		return cmp.Compare(b.SortKey(), a.SortKey())
	})
}

// GroupByMonth buckets already sorted photos by (month, year). Sections come
// out in first-occurrence order, which is the display order.
func GroupByMonth(photos []*domain.MediaItem) []domain.Section {
	var sections []domain.Section
	index := make(map[string]int)

	for _, p := range photos {
		label := SectionLabel(p.Date)
		i, ok := index[label]
		if !ok {
			i = len(sections)
			index[label] = i
			sections = append(sections, domain.Section{Label: label})
		}
		sections[i].Items = append(sections[i].Items, p)
	}
	return sections
}
