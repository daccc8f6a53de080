package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/warp/holerite/company"
	"github.com/warp/holerite/rules"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// FullMonthDays is the commercial month used for daily rates and DaysWorked == 0.
	FullMonthDays = 30

	// MonthlyHours is the statutory divisor for the hourly rate. It does not
	// follow the calendar.
	MonthlyHours = 220

	DefaultBusinessDays = 25
	DefaultRestDays     = 5
)

var (
	monthDays     = decimal.NewFromInt(FullMonthDays)
	monthHours    = decimal.NewFromInt(MonthlyHours)
	hundred       = decimal.NewFromInt(100)
	severanceRate = decimal.RequireFromString("0.08")

	multiplier50  = decimal.RequireFromString("1.5")
	multiplier60  = decimal.RequireFromString("1.6")
	multiplier80  = decimal.RequireFromString("1.8")
	multiplier100 = decimal.RequireFromString("2.0")
	multiplier150 = decimal.RequireFromString("2.5")
)

// =============================================================================
// ENGINE
// =============================================================================

// Compute builds the payslip for one month.
//
// The order of operations is fixed: earnings, severance, simple deductions,
// extra deductions, contribution (INSS), income tax (IRRF), totals.
// Products are formed before dividing by the 30-day and 220-hour divisors.
func Compute(ts Timesheet, table rules.Table, cfg company.Config) Result {
	salary := ts.BaseSalary
	days := decimal.NewFromInt(int64(effectiveDaysWorked(ts.DaysWorked)))
	business, rest := restPeriod(ts.BusinessDays, ts.RestDays)

	var res Result

	// Earnings
	e := &res.Earnings
	e.Base = salary.Mul(days).Div(monthDays)
	e.Overtime50 = hourly(salary, ts.Overtime.At50, multiplier50)
	e.Overtime60 = hourly(salary, ts.Overtime.At60, multiplier60)
	e.Overtime80 = hourly(salary, ts.Overtime.At80, multiplier80)
	e.Overtime100 = hourly(salary, ts.Overtime.At100, multiplier100)
	e.Overtime150 = hourly(salary, ts.Overtime.At150, multiplier150)
	e.NightShift = hourly(salary, ts.NightShiftHours, cfg.NightShiftPremiumPercent.Div(hundred))

	e.RestOnOvertime = prorate(e.OvertimeTotal(), business, rest)
	e.RestOnNightShift = prorate(e.NightShift, business, rest)

	e.Gross = e.Base.
		Add(e.OvertimeTotal()).
		Add(e.NightShift).
		Add(e.RestOnOvertime).
		Add(e.RestOnNightShift)

	res.Severance = e.Gross.Mul(severanceRate)

	// Simple deductions
	ded := &res.Deductions
	ded.Absence = ts.AbsenceDays.Mul(salary).Div(monthDays)
	ded.Lateness = ts.LateHours.Mul(salary).Div(monthHours)
	ded.AdvancePay = decimal.Zero
	if ts.ApplyAdvancePay {
		ded.AdvancePay = salary.Mul(days).Mul(cfg.AdvancePayPercent).Div(monthDays.Mul(hundred))
	}

	ded.Extras, ded.ExtrasTotal = extraDeductions(salary, cfg.ExtraDeductions)

	// Statutory withholding
	ded.Contribution = contribution(e.Gross, table)
	res.Tax = incomeTax(e.Gross, ded.Contribution, ts.DependentCount, table)
	ded.IncomeTax = res.Tax.Final

	ded.Total = ded.Absence.
		Add(ded.Lateness).
		Add(ded.Contribution).
		Add(ded.IncomeTax).
		Add(ded.AdvancePay).
		Add(ded.ExtrasTotal)

	res.Net = e.Gross.Sub(ded.Total)
	return res
}

// =============================================================================
// STEPS
// =============================================================================

func effectiveDaysWorked(days int) int {
	if days == 0 {
		return FullMonthDays
	}
	return days
}

func restPeriod(business, rest int) (decimal.Decimal, decimal.Decimal) {
	if business <= 0 {
		business = DefaultBusinessDays
	}
	if rest < 0 {
		rest = DefaultRestDays
	}
	return decimal.NewFromInt(int64(business)), decimal.NewFromInt(int64(rest))
}

// hourly prices hours at the given multiple of the hourly rate.
func hourly(salary, hours, multiple decimal.Decimal) decimal.Decimal {
	return hours.Mul(salary).Mul(multiple).Div(monthHours)
}

// prorate spreads amount over business days and grants it for each rest day.
func prorate(amount, business, rest decimal.Decimal) decimal.Decimal {
	if business.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(rest).Div(business)
}

func extraDeductions(salary decimal.Decimal, configured []company.ExtraDeduction) ([]AppliedDeduction, decimal.Decimal) {
	applied := make([]AppliedDeduction, 0, len(configured))
	total := decimal.Zero
	for _, item := range configured {
		if !item.Active() {
			continue
		}
		v := item.Value(salary)
		total = total.Add(v)
		applied = append(applied, AppliedDeduction{Name: item.Name, Amount: v})
	}
	return applied, total
}

// contribution computes INSS on the gross capped at the contribution cap.
func contribution(gross decimal.Decimal, table rules.Table) decimal.Decimal {
	base := decimal.Min(gross, table.ContributionCap)

	bracket, ok := rules.Find(table.ContributionBrackets, base)
	if !ok {
		n := len(table.ContributionBrackets)
		if n == 0 {
			return decimal.Zero
		}
		bracket = table.ContributionBrackets[n-1]
	}
	return nonNegative(bracket.Tax(base))
}

// incomeTax computes IRRF. The exemption is evaluated on gross earnings,
// not on the tax base.
func incomeTax(gross, contribution decimal.Decimal, dependents int, table rules.Table) IncomeTax {
	it := IncomeTax{
		LegalDeduction:    contribution.Add(table.PerDependentDeduction.Mul(decimal.NewFromInt(int64(dependents)))),
		StandardDeduction: table.StandardDeduction,
		BracketTax:        decimal.Zero,
		Taper:             decimal.Zero,
	}

	deduction := it.LegalDeduction
	if it.StandardDeduction.GreaterThan(deduction) {
		deduction = it.StandardDeduction
		it.UsedStandard = true
	}
	it.Base = gross.Sub(deduction)

	if it.Base.IsPositive() {
		if bracket, ok := rules.Find(table.IncomeTaxBrackets, it.Base); ok {
			it.BracketTax = nonNegative(bracket.Tax(it.Base))
		}
	}

	switch {
	case table.Exemption.Exempt(gross):
		it.Exempt = true
		it.Final = decimal.Zero
	default:
		it.Taper = table.Exemption.Taper(gross)
		it.Final = nonNegative(it.BracketTax.Sub(it.Taper))
	}
	return it
}

func nonNegative(x decimal.Decimal) decimal.Decimal {
	if x.IsNegative() {
		return decimal.Zero
	}
	return x
}
