package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holerite/calendar"
	"github.com/warp/holerite/company"
	"github.com/warp/holerite/store/memory"
)

var (
	_ company.Store         = (*memory.Memory)(nil)
	_ calendar.HolidayStore = (*memory.Memory)(nil)
)

func TestMemory_ProfileIsCopied(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()

	p := company.Default()
	p.Config.ExtraDeductions = []company.ExtraDeduction{{ID: "a", Name: "VT", Amount: decimal.NewFromInt(10), Kind: company.Fixed}}
	require.NoError(t, m.Save(ctx, p))

	// mutating the caller's slice does not reach the store
	p.Config.ExtraDeductions[0].Name = "changed"

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "VT", got.Config.ExtraDeductions[0].Name)
}

func TestMemory_LoadDefault(t *testing.T) {
	got, err := memory.NewMemory().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, company.Default(), got)
}

func TestMemory_Holidays(t *testing.T) {
	ctx := context.Background()
	m := memory.NewMemory()

	a, err := m.SaveHoliday(ctx, calendar.Holiday{Name: "São José", Date: time.Date(2024, time.March, 19, 0, 0, 0, 0, time.UTC), Recurring: true})
	require.NoError(t, err)
	_, err = m.SaveHoliday(ctx, calendar.Holiday{Name: "Ponte", Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	again, err := m.SaveHoliday(ctx, calendar.Holiday{Name: "São José", Date: time.Date(2024, time.March, 19, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)

	in, err := m.HolidaysIn(ctx, 2026, time.March)
	require.NoError(t, err)
	assert.Len(t, in, 1, "non-recurring after re-save")
	assert.Equal(t, "Ponte", in[0].Name)

	require.NoError(t, m.DeleteHoliday(ctx, a.ID))
	assert.ErrorIs(t, m.DeleteHoliday(ctx, a.ID), calendar.ErrHolidayNotFound)
}
