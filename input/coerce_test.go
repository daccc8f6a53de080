package input_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/holerite/input"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.621,00", "1621"},
		{"1621", "1621"},
		{"5.000", "5000"},
		{"2.500,5", "2500.5"},
		{" 1.234.567,89 ", "1234567.89"},
		{"1234,56,78", "1234.56"},
		{"", "0"},
		{"abc", "0"},
		{"R$ 100", "0"},
		{"100abc", "100"},
		{",50", "0.5"},
		{"1e3", "1000"},
		{"1.5e3", "15000"},
	}
	for _, tc := range cases {
		got := input.Money(tc.in)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "Money(%q) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"2,5", "2.5"},
		{"1:30", "1.3"},
		{"1.75", "1.75"},
		{"-3", "-3"},
		{"7h", "7"},
		{"", "0"},
		{"--", "0"},
		{".", "0"},
		{"12.", "12"},
		{"1e3", "1000"},
		{"2,5e2", "250"},
		{"1E-2", "0.01"},
		{"12.e1", "120"},
		{"1e", "1"},
		{"1e+", "1"},
		{"3ex", "3"},
		{"1e999", "0"},
		{"1e99999999999999999999", "0"},
	}
	for _, tc := range cases {
		got := input.Number(tc.in)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "Number(%q) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestInt(t *testing.T) {
	assert.Equal(t, 22, input.Int("22"))
	assert.Equal(t, 22, input.Int("22.9"))
	assert.Equal(t, 8, input.Int(" 8 dias"))
	assert.Equal(t, -1, input.Int("-1"))
	assert.Equal(t, 0, input.Int(""))
	assert.Equal(t, 0, input.Int("x5"))
	assert.Equal(t, 0, input.Int("-"))
}

func TestForm_Timesheet(t *testing.T) {
	f := input.Form{
		Salary:          "5.000,00",
		DaysWorked:      "",
		Dependents:      "2",
		AbsenceDays:     "1",
		LateHours:       "0:30",
		Overtime50:      "10",
		Overtime100:     "2,5",
		NightShiftHours: "abc",
		BusinessDays:    "22",
		RestDays:        "8",
		ApplyAdvancePay: true,
	}

	ts := f.Timesheet()

	assert.True(t, ts.BaseSalary.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 0, ts.DaysWorked)
	assert.Equal(t, 2, ts.DependentCount)
	assert.True(t, ts.LateHours.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, ts.Overtime.At50.Equal(decimal.NewFromInt(10)))
	assert.True(t, ts.Overtime.At100.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, ts.Overtime.At60.IsZero())
	assert.True(t, ts.NightShiftHours.IsZero())
	assert.Equal(t, 22, ts.BusinessDays)
	assert.Equal(t, 8, ts.RestDays)
	assert.True(t, ts.ApplyAdvancePay)
}

func TestForm_Timesheet_WholeCounts(t *testing.T) {
	cases := []struct {
		name           string
		daysWorked     string
		dependents     string
		wantDays       int
		wantDependents int
	}{
		{"fraction dropped", "15,5", "1,9", 15, 1},
		{"negative reads as blank", "-5", "-2", 0, 0},
		{"above the month", "45", "3", 30, 3},
		{"huge values clamp instead of wrapping", "99999999999999999999", "1e20", 30, input.MaxDependents},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN a form with non-integral or out-of-range counts
			f := input.Form{Salary: "3000", DaysWorked: tc.daysWorked, Dependents: tc.dependents}

			// WHEN coerced
			ts := f.Timesheet()

			// THEN the counts are truncated and clamped
			assert.Equal(t, tc.wantDays, ts.DaysWorked)
			assert.Equal(t, tc.wantDependents, ts.DependentCount)
		})
	}
}
