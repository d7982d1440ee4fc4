package core

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month")

// Month is a calendar month in the reference time zone.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// CurrentMonth resolves now in loc before taking its month, so the month
// boundary is the same for every caller sharing loc.
func CurrentMonth(now time.Time, loc *time.Location) Month {
	if loc == nil {
		loc = time.UTC
	}
	return MonthOf(now.In(loc))
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return MonthOf(t), nil
}

// AddMonths moves n calendar months, rolling over year boundaries.
func (m Month) AddMonths(n int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

func (m Month) Prev() Month { return m.AddMonths(-1) }

// String renders YYYY-MM, the key used in storage and transaction dates.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label renders a short display form, e.g. "Jan 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year)
}

// Window returns the n months ending at m, oldest first.
func (m Month) Window(n int) []Month {
	months := make([]Month, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, m.AddMonths(-i))
	}
	return months
}

// MonthKey returns the YYYY-MM prefix of an ISO date or timestamp.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
