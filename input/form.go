package input

import (
	"github.com/shopspring/decimal"

	"github.com/warp/holerite/payroll"
)

// MaxDependents caps the dependent count read from the form.
const MaxDependents = 99

// Form is the timesheet as typed by the user, one string per field.
type Form struct {
	Salary          string `json:"salary"`
	DaysWorked      string `json:"days_worked"`
	Dependents      string `json:"dependents"`
	AbsenceDays     string `json:"absence_days"`
	LateHours       string `json:"late_hours"`
	Overtime50      string `json:"overtime_50"`
	Overtime60      string `json:"overtime_60"`
	Overtime80      string `json:"overtime_80"`
	Overtime100     string `json:"overtime_100"`
	Overtime150     string `json:"overtime_150"`
	NightShiftHours string `json:"night_shift_hours"`
	BusinessDays    string `json:"business_days"`
	RestDays        string `json:"rest_days"`
	ApplyAdvancePay bool   `json:"apply_advance_pay"`
}

// Timesheet coerces the form. Salary uses Money; hours and day counts use
// Number; business and rest days use Int. Blank fields become zero, which the
// engine then reads as "full month" (days worked) or its defaults.
//
// Days worked and dependents are whole counts: the fraction is dropped
// ("15,5" -> 15) and the result is clamped to 0..30 and 0..MaxDependents.
func (f Form) Timesheet() payroll.Timesheet {
	return payroll.Timesheet{
		BaseSalary:     Money(f.Salary),
		DaysWorked:     count(Number(f.DaysWorked), payroll.FullMonthDays),
		DependentCount: count(Number(f.Dependents), MaxDependents),
		AbsenceDays:    Number(f.AbsenceDays),
		LateHours:      Number(f.LateHours),
		Overtime: payroll.OvertimeHours{
			At50:  Number(f.Overtime50),
			At60:  Number(f.Overtime60),
			At80:  Number(f.Overtime80),
			At100: Number(f.Overtime100),
			At150: Number(f.Overtime150),
		},
		NightShiftHours: Number(f.NightShiftHours),
		BusinessDays:    Int(f.BusinessDays),
		RestDays:        Int(f.RestDays),
		ApplyAdvancePay: f.ApplyAdvancePay,
	}
}

// count truncates d toward zero and clamps it to [0, limit].
func count(d decimal.Decimal, limit int) int {
	if d.Sign() <= 0 {
		return 0
	}
	if d.GreaterThan(decimal.NewFromInt(int64(limit))) {
		return limit
	}
	return int(d.IntPart())
}
