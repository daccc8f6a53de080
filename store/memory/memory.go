// Package memory provides in-memory implementations of company.Store and
// calendar.HolidayStore.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/holerite/calendar"
	"github.com/warp/holerite/company"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	profile  *company.Profile
	holidays map[string]calendar.Holiday
}

func NewMemory() *Memory {
	return &Memory{
		holidays: make(map[string]calendar.Holiday),
	}
}

// Load returns a copy of the saved profile, or company.Default().
func (m *Memory) Load(_ context.Context) (company.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile == nil {
		return company.Default(), nil
	}
	return m.profile.Clone(), nil
}

// Save replaces the saved profile.
func (m *Memory) Save(_ context.Context, p company.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := p.Clone()
	m.profile = &stored
	return nil
}

// SaveHoliday stores h, reusing the id of an existing (date, name) entry.
func (m *Memory) SaveHoliday(_ context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	if err := h.Validate(); err != nil {
		return calendar.Holiday{}, err
	}
	h.Date = time.Date(h.Date.Year(), h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.holidays {
		if existing.Name == h.Name && existing.Date.Equal(h.Date) {
			h.ID = id
		}
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	m.holidays[h.ID] = h
	return h, nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.holidays[id]; !ok {
		return fmt.Errorf("%w: %s", calendar.ErrHolidayNotFound, id)
	}
	delete(m.holidays, id)
	return nil
}

// ListHolidays returns all holidays ordered by date, then name.
func (m *Memory) ListHolidays(_ context.Context) ([]calendar.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]calendar.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// HolidaysIn returns holidays in the month with recurring ones moved to year.
func (m *Memory) HolidaysIn(ctx context.Context, year int, month time.Month) ([]calendar.Holiday, error) {
	all, err := m.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}

	var out []calendar.Holiday
	for _, h := range all {
		d, ok := h.OccursIn(year, month)
		if !ok {
			continue
		}
		h.Date = d
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
