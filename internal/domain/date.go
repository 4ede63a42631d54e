package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar day parsed from a DD/MM/YYYY timestamp.
type Date struct {
	Day   int
	Month int
	Year  int
}

// ParseDate разбирает строку вида DD/MM/YYYY.
// Несуществующие даты (месяц 13, 31/02 и т.п.) отклоняются.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
		nums[i] = n
	}

	d := Date{Day: nums[0], Month: nums[1], Year: nums[2]}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Year < 1 {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	// time.Date normalizes overflowing days, so a round trip catches 31/02.
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day || int(t.Month()) != d.Month {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return d, nil
}

// Key returns the composite sort key year*10000 + month*100 + day.
func (d Date) Key() int {
	return d.Year*10000 + d.Month*100 + d.Day
}
