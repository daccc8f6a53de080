/*
Package calendar derives the day counts a payslip needs from the calendar.

PURPOSE:
  The payroll engine takes business days and rest days (Sundays + holidays)
  as plain numbers, and days worked as a number of paid days. This package
  produces those numbers for a reference month:

  - Month: business/rest days, counting Monday..Saturday as business days and
    moving fixed national holidays and extra company holidays to rest days
  - DaysWorked: paid days for a month with vacation leave or return

KEY CONCEPTS:
  - NationalHolidays: fixed-date federal holidays (movable feasts not included)
  - Holiday / HolidaySource: company-specific holidays kept in a store

SEE ALSO:
  - vacation.go: vacation modes
  - store/sqlite: HolidaySource implementation
*/
package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// =============================================================================
// NATIONAL HOLIDAYS
// =============================================================================

// FixedDate is a month/day pair that repeats every year.
type FixedDate struct {
	Month time.Month
	Day   int
	Name  string
}

// NationalHolidays are the fixed-date federal holidays.
var NationalHolidays = []FixedDate{
	{time.January, 1, "Confraternização Universal"},
	{time.April, 21, "Tiradentes"},
	{time.May, 1, "Dia do Trabalho"},
	{time.September, 7, "Independência do Brasil"},
	{time.October, 12, "Nossa Senhora Aparecida"},
	{time.November, 2, "Finados"},
	{time.November, 15, "Proclamação da República"},
	{time.December, 25, "Natal"},
}

// =============================================================================
// MONTH
// =============================================================================

var ErrInvalidMonth = errors.New("invalid reference month")

// MonthDays is the breakdown of a reference month.
type MonthDays struct {
	Year  int
	Month time.Month

	// Length is the number of calendar days in the month.
	Length int

	// BusinessDays = Monday..Saturday minus holidays.
	BusinessDays int
	// RestDays = Sundays plus holidays.
	RestDays int

	Sundays          int
	NationalHolidays int
	ExtraHolidays    int
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseMonth parses a "YYYY-MM" reference month.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Year(), t.Month(), nil
}

// Month counts business and rest days. National holidays count only when they
// fall on a weekday other than Sunday. Each distinct extra day that exists in
// the month moves one day from business to rest, whatever its weekday; days
// outside the month are ignored.
func Month(year int, month time.Month, extraDays []int) MonthDays {
	md := MonthDays{Year: year, Month: month, Length: DaysIn(year, month)}

	workdays := 0
	for d := 1; d <= md.Length; d++ {
		if time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday() == time.Sunday {
			md.Sundays++
		} else {
			workdays++
		}
	}

	for _, h := range NationalHolidays {
		if h.Month != month {
			continue
		}
		if time.Date(year, month, h.Day, 0, 0, 0, 0, time.UTC).Weekday() != time.Sunday {
			md.NationalHolidays++
		}
	}

	md.ExtraHolidays = len(normalizeDays(extraDays, md.Length))

	holidays := md.NationalHolidays + md.ExtraHolidays
	md.BusinessDays = workdays - holidays
	md.RestDays = md.Sundays + holidays
	return md
}

// normalizeDays returns the sorted distinct days within 1..length.
func normalizeDays(days []int, length int) []int {
	seen := make(map[int]struct{}, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 1 || d > length {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// =============================================================================
// COMPANY HOLIDAYS
// =============================================================================

// Holiday is a company-specific day off, on top of the national list.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Recurring bool // same month/day every year
}

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayName     = errors.New("holiday name is required")
	ErrHolidayDate     = errors.New("holiday date is required")
)

// Validate checks a holiday before it is stored.
func (h Holiday) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrHolidayName
	}
	if h.Date.IsZero() {
		return ErrHolidayDate
	}
	return nil
}

// OccursIn returns the holiday's date in the given month, if it falls there.
// Recurring holidays are moved to year; a recurring 29 February is skipped in
// common years.
func (h Holiday) OccursIn(year int, month time.Month) (time.Time, bool) {
	d := h.Date
	if h.Recurring {
		d = time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if d.Day() != h.Date.Day() {
			return time.Time{}, false
		}
	}
	return d, d.Year() == year && d.Month() == month
}

// HolidaySource lists stored company holidays.
type HolidaySource interface {
	// HolidaysIn returns holidays that fall in the given month, with recurring
	// ones moved to that year.
	HolidaysIn(ctx context.Context, year int, month time.Month) ([]Holiday, error)
}

// HolidayStore manages company holidays.
type HolidayStore interface {
	HolidaySource

	// SaveHoliday stores h and returns it with its id. Saving the same date
	// and name again updates the recurring flag.
	SaveHoliday(ctx context.Context, h Holiday) (Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]Holiday, error)
}

// ExtraDays merges stored holidays into a list of extra day-numbers.
func ExtraDays(holidays []Holiday, days []int) []int {
	out := append([]int(nil), days...)
	for _, h := range holidays {
		out = append(out, h.Date.Day())
	}
	return out
}
