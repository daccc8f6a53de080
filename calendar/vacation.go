package calendar

import (
	"errors"
	"fmt"
	"time"
)

// VacationMode selects how paid days are derived for the month.
type VacationMode string

const (
	// FullMonth: no vacation this month.
	FullMonth VacationMode = "full"
	// Departing: vacation starts this month and lasts Duration days.
	Departing VacationMode = "departing"
	// Returning: the employee returns from vacation on StartDay.
	Returning VacationMode = "returning"
)

var (
	ErrUnknownVacationMode = errors.New("unknown vacation mode")
	ErrStartDayRequired    = errors.New("start day is required")
	ErrDurationRequired    = errors.New("vacation duration is required")
)

// NeedsMonth reports whether DaysWorked depends on the month for this mode.
// Departing checks whether the vacation ends within the month and Returning
// clamps StartDay to its length; a full month never looks at it.
func (m VacationMode) NeedsMonth() bool {
	return m == Departing || m == Returning
}

// Vacation describes a vacation event in the reference month.
type Vacation struct {
	Mode     VacationMode
	StartDay int
	Duration int
}

// DaysWorked returns the paid days (0..30) for the month.
//
//   - FullMonth: 30
//   - Departing: if the vacation ends within the month, 30 - Duration;
//     otherwise the days before StartDay
//   - Returning: 30 - (StartDay - 1)
//
// StartDay is clamped to the month length.
func DaysWorked(year int, month time.Month, v Vacation) (int, error) {
	switch v.Mode {
	case FullMonth, "":
		return 30, nil
	case Departing, Returning:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVacationMode, v.Mode)
	}

	if v.StartDay <= 0 {
		return 0, ErrStartDayRequired
	}
	length := DaysIn(year, month)
	start := min(v.StartDay, length)

	var days int
	if v.Mode == Departing {
		if v.Duration <= 0 {
			return 0, ErrDurationRequired
		}
		end := time.Date(year, month, start, 0, 0, 0, 0, time.UTC).AddDate(0, 0, v.Duration-1)
		monthEnd := time.Date(year, month, length, 0, 0, 0, 0, time.UTC)
		if !end.After(monthEnd) {
			days = 30 - v.Duration
		} else {
			days = start - 1
		}
	} else {
		days = 30 - (start - 1)
	}
	return max(0, min(30, days)), nil
}
