package payroll_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holerite/company"
	"github.com/warp/holerite/payroll"
	"github.com/warp/holerite/rules"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func num(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func noExtras() company.Config {
	return company.Default().Config
}

func fullMonth(salary string) payroll.Timesheet {
	return payroll.Timesheet{
		BaseSalary:   dec(salary),
		BusinessDays: 25,
		RestDays:     5,
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, context ...string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), context)
}

func assertNear(t *testing.T, want float64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want, got.InexactFloat64(), 0.001, msgAndArgs...)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestCompute_MinimumWageFullMonth(t *testing.T) {
	// GIVEN: minimum wage, full month, no extras
	// THEN: only the first contribution bracket applies and income tax is exempt
	res := payroll.Compute(fullMonth("1621.00"), rules.Table2026(), noExtras())

	assertDec(t, "1621", res.Earnings.Base)
	assertDec(t, "1621", res.Earnings.Gross)
	assertDec(t, "121.575", res.Deductions.Contribution)
	assertDec(t, "0", res.Deductions.IncomeTax)
	assert.True(t, res.Tax.Exempt)
	assert.True(t, res.Tax.UsedStandard, "standard deduction beats 121.575")
	assertDec(t, "121.575", res.Deductions.Total)
	assertDec(t, "1499.425", res.Net)
	assertDec(t, "129.68", res.Severance)
	assert.Empty(t, res.Deductions.Extras)
}

func TestCompute_OvertimeInTaperWindow(t *testing.T) {
	ts := payroll.Timesheet{
		BaseSalary:   dec("5000.00"),
		Overtime:     payroll.OvertimeHours{At50: num(10)},
		BusinessDays: 22,
		RestDays:     8,
	}

	res := payroll.Compute(ts, rules.Table2026(), noExtras())

	assertNear(t, 340.909, res.Earnings.Overtime50)
	assertNear(t, 123.967, res.Earnings.RestOnOvertime)
	assertNear(t, 5464.876, res.Earnings.Gross)
	assertNear(t, 566.593, res.Deductions.Contribution)

	// Standard deduction (607.20) exceeds contribution (566.59).
	assert.True(t, res.Tax.UsedStandard)
	assertNear(t, 4857.676, res.Tax.Base)
	assertNear(t, 439.861, res.Tax.BracketTax)
	assertNear(t, 250.999, res.Tax.Taper)
	assertNear(t, 188.862, res.Deductions.IncomeTax)
	assert.False(t, res.Tax.Exempt)

	assertNear(t, 4709.422, res.Net)
}

func TestCompute_ExtraDeductionsSkipBlankNames(t *testing.T) {
	cfg := noExtras()
	cfg.ExtraDeductions = []company.ExtraDeduction{
		{Name: "Plano", Amount: num(5), Kind: company.Percentage},
		{Name: "", Amount: num(100), Kind: company.Fixed},
		{Name: "   ", Amount: num(50), Kind: company.Fixed},
	}

	res := payroll.Compute(fullMonth("2000"), rules.Table2026(), cfg)

	require.Len(t, res.Deductions.Extras, 1)
	assert.Equal(t, "Plano", res.Deductions.Extras[0].Name)
	assertDec(t, "100", res.Deductions.Extras[0].Amount)
	assertDec(t, "100", res.Deductions.ExtrasTotal)

	assertDec(t, "155.68", res.Deductions.Contribution)
	assertDec(t, "1744.32", res.Net)
}

func TestCompute_ExtraDeductionsKeepOrder(t *testing.T) {
	cfg := noExtras()
	cfg.ExtraDeductions = []company.ExtraDeduction{
		{Name: "VT", Amount: num(6), Kind: company.Percentage},
		{Name: "Sindicato", Amount: dec("35.50"), Kind: company.Fixed},
		{Name: "Plano", Amount: num(120), Kind: company.Fixed},
	}

	res := payroll.Compute(fullMonth("3000"), rules.Table2026(), cfg)

	names := make([]string, 0, len(res.Deductions.Extras))
	for _, e := range res.Deductions.Extras {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"VT", "Sindicato", "Plano"}, names)
	assertDec(t, "180", res.Deductions.Extras[0].Amount)
	assertDec(t, "335.5", res.Deductions.ExtrasTotal)
}

// =============================================================================
// EARNINGS
// =============================================================================

func TestCompute_PartialMonth(t *testing.T) {
	ts := fullMonth("3000")
	ts.DaysWorked = 15

	res := payroll.Compute(ts, rules.Table2026(), noExtras())
	assertDec(t, "1500", res.Earnings.Base)
}

func TestCompute_OvertimeTiers(t *testing.T) {
	ts := fullMonth("2200")
	ts.Overtime = payroll.OvertimeHours{At50: num(1), At60: num(1), At80: num(1), At100: num(1), At150: num(1)}
	ts.RestDays = 0

	res := payroll.Compute(ts, rules.Table2026(), noExtras())

	// Hourly rate is 2200 / 220 = 10.
	assertDec(t, "15", res.Earnings.Overtime50)
	assertDec(t, "16", res.Earnings.Overtime60)
	assertDec(t, "18", res.Earnings.Overtime80)
	assertDec(t, "20", res.Earnings.Overtime100)
	assertDec(t, "25", res.Earnings.Overtime150)
	assertDec(t, "94", res.Earnings.OvertimeTotal())
	assertDec(t, "0", res.Earnings.RestOnOvertime)
	assertDec(t, "2294", res.Earnings.Gross)
}

func TestCompute_NightShiftWithRest(t *testing.T) {
	ts := fullMonth("2200")
	ts.NightShiftHours = num(10)

	res := payroll.Compute(ts, rules.Table2026(), noExtras())

	// 10h * 10/h * 20% premium
	assertDec(t, "20", res.Earnings.NightShift)
	// 20 / 25 business days * 5 rest days
	assertDec(t, "4", res.Earnings.RestOnNightShift)
	assertDec(t, "2224", res.Earnings.Gross)
}

func TestCompute_RestPeriodDefaults(t *testing.T) {
	ts := fullMonth("2200")
	ts.Overtime.At100 = num(10) // 200
	ts.BusinessDays = 0
	ts.RestDays = -1

	res := payroll.Compute(ts, rules.Table2026(), noExtras())

	// Defaults: 25 business days, 5 rest days.
	assertDec(t, "40", res.Earnings.RestOnOvertime)
}

func TestCompute_ZeroRestDaysIsKept(t *testing.T) {
	ts := fullMonth("2200")
	ts.Overtime.At100 = num(10)
	ts.RestDays = 0

	res := payroll.Compute(ts, rules.Table2026(), noExtras())
	assertDec(t, "0", res.Earnings.RestOnOvertime)
}

// =============================================================================
// DEDUCTIONS
// =============================================================================

func TestCompute_AbsenceAndLateness(t *testing.T) {
	ts := fullMonth("3000")
	ts.AbsenceDays = num(2)
	ts.LateHours = dec("2.2")

	res := payroll.Compute(ts, rules.Table2026(), noExtras())

	assertDec(t, "200", res.Deductions.Absence)
	assertDec(t, "30", res.Deductions.Lateness)
	// Absences do not reduce the taxable gross.
	assertDec(t, "3000", res.Earnings.Gross)
}

func TestCompute_AdvancePay(t *testing.T) {
	ts := fullMonth("3000")

	res := payroll.Compute(ts, rules.Table2026(), noExtras())
	assertDec(t, "0", res.Deductions.AdvancePay)

	ts.ApplyAdvancePay = true
	withAdvance := payroll.Compute(ts, rules.Table2026(), noExtras())
	assertDec(t, "1200", withAdvance.Deductions.AdvancePay)
	assert.True(t, withAdvance.Net.Equal(res.Net.Sub(num(1200))))
	assert.True(t, withAdvance.MonthlyPayout().Equal(res.Net), "payout adds the advance back")
}

func TestCompute_AdvancePayProratesDays(t *testing.T) {
	ts := fullMonth("3000")
	ts.DaysWorked = 10
	ts.ApplyAdvancePay = true

	cfg := noExtras()
	cfg.AdvancePayPercent = num(50)

	res := payroll.Compute(ts, rules.Table2026(), cfg)
	assertDec(t, "500", res.Deductions.AdvancePay)
}

func TestCompute_ContributionCapped(t *testing.T) {
	ts := fullMonth("10000")
	ts.DependentCount = 2

	res := payroll.Compute(ts, rules.Table2026(), noExtras())

	assertDec(t, "988.087", res.Deductions.Contribution)
	assert.False(t, res.Tax.UsedStandard)
	assertDec(t, "1367.267", res.Tax.LegalDeduction)
	assertDec(t, "8632.733", res.Tax.Base)
	// Above the taper ceiling the bracket tax stands.
	assertDec(t, "0", res.Tax.Taper)
	assertDec(t, "1478.001575", res.Deductions.IncomeTax)
}

func TestCompute_DependentsReduceTax(t *testing.T) {
	ts := fullMonth("6000")
	none := payroll.Compute(ts, rules.Table2026(), noExtras())

	ts.DependentCount = 3
	three := payroll.Compute(ts, rules.Table2026(), noExtras())

	assertDec(t, "641.51", none.Deductions.Contribution)
	assertDec(t, "397.83475", none.Deductions.IncomeTax)
	assert.True(t, three.Deductions.IncomeTax.LessThan(none.Deductions.IncomeTax))
}

// =============================================================================
// EXEMPTION BOUNDARIES
// =============================================================================

func TestCompute_ExemptAtThreshold(t *testing.T) {
	res := payroll.Compute(fullMonth("5000.00"), rules.Table2026(), noExtras())

	assertDec(t, "5000", res.Earnings.Gross)
	assert.True(t, res.Tax.BracketTax.IsPositive(), "bracket tax exists before exemption")
	assert.True(t, res.Tax.Exempt)
	assertDec(t, "0", res.Deductions.IncomeTax)
}

func TestCompute_TaperCeiling(t *testing.T) {
	res := payroll.Compute(fullMonth("7350.00"), rules.Table2026(), noExtras())

	assertDec(t, "830.51", res.Deductions.Contribution)
	assertDec(t, "896.85975", res.Tax.BracketTax)
	assertDec(t, "0.00425", res.Tax.Taper)
	assertDec(t, "896.8555", res.Deductions.IncomeTax)
}

func TestCompute_JustAboveThreshold(t *testing.T) {
	res := payroll.Compute(fullMonth("5000.30"), rules.Table2026(), noExtras())

	assert.False(t, res.Tax.Exempt)
	assertDec(t, "325.6775", res.Tax.BracketTax)
	assertDec(t, "312.8550565", res.Tax.Taper)
	assertDec(t, "12.8224435", res.Deductions.IncomeTax)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestCompute_NetIsGrossMinusDeductions(t *testing.T) {
	cfg := noExtras()
	cfg.ExtraDeductions = []company.ExtraDeduction{{Name: "Plano", Amount: num(3), Kind: company.Percentage}}

	for salary := int64(0); salary <= 12000; salary += 733 {
		ts := fullMonth("0")
		ts.BaseSalary = num(salary)
		ts.AbsenceDays = num(1)
		ts.LateHours = dec("1.5")
		ts.Overtime.At60 = num(7)
		ts.NightShiftHours = num(12)
		ts.DependentCount = 1
		ts.ApplyAdvancePay = true

		res := payroll.Compute(ts, rules.Table2026(), cfg)
		assert.True(t, res.Net.Equal(res.Earnings.Gross.Sub(res.Deductions.Total)), "salary %d", salary)
		assert.False(t, res.Deductions.IncomeTax.IsNegative(), "salary %d", salary)
		assert.False(t, res.Deductions.Contribution.IsNegative(), "salary %d", salary)
	}
}

func TestCompute_NoTaxUpToThreshold(t *testing.T) {
	for salary := int64(0); salary <= 5000; salary += 125 {
		ts := fullMonth("0")
		ts.BaseSalary = num(salary)
		res := payroll.Compute(ts, rules.Table2026(), noExtras())
		assert.True(t, res.Deductions.IncomeTax.IsZero(), "salary %d", salary)
	}
}

func TestCompute_TaperWindowFormula(t *testing.T) {
	table := rules.Table2026()
	for salary := int64(5001); salary <= 7350; salary += 97 {
		ts := fullMonth("0")
		ts.BaseSalary = num(salary)
		res := payroll.Compute(ts, table, noExtras())

		taper := dec("978.62").Sub(dec("0.133145").Mul(res.Earnings.Gross))
		if taper.IsNegative() {
			taper = decimal.Zero
		}
		want := res.Tax.BracketTax.Sub(taper)
		if want.IsNegative() {
			want = decimal.Zero
		}
		assert.True(t, want.Equal(res.Deductions.IncomeTax), "salary %d", salary)
	}
}

func TestCompute_ContributionMonotonicAndCapped(t *testing.T) {
	table := rules.Table2026()
	prev := decimal.Zero
	for salary := int64(0); salary <= 12000; salary += 50 {
		ts := fullMonth("0")
		ts.BaseSalary = num(salary)
		c := payroll.Compute(ts, table, noExtras()).Deductions.Contribution

		assert.True(t, c.GreaterThanOrEqual(prev), "salary %d: %s < %s", salary, c, prev)
		if num(salary).GreaterThanOrEqual(table.ContributionCap) {
			assertDec(t, "988.087", c, fmt.Sprint("salary ", salary))
		}
		prev = c
	}
}

func TestCompute_Idempotent(t *testing.T) {
	ts := payroll.Timesheet{
		BaseSalary:      dec("4321.98"),
		DaysWorked:      27,
		DependentCount:  2,
		AbsenceDays:     num(1),
		LateHours:       dec("0.75"),
		Overtime:        payroll.OvertimeHours{At50: num(4), At100: dec("2.5")},
		NightShiftHours: num(8),
		BusinessDays:    24,
		RestDays:        7,
		ApplyAdvancePay: true,
	}
	cfg := noExtras()
	cfg.ExtraDeductions = []company.ExtraDeduction{{Name: "VT", Amount: num(6), Kind: company.Percentage}}

	first := payroll.Compute(ts, rules.Table2026(), cfg)
	second := payroll.Compute(ts, rules.Table2026(), cfg)

	assert.Equal(t, first, second)
}

func TestCompute_DoesNotMutateConfig(t *testing.T) {
	cfg := noExtras()
	cfg.ExtraDeductions = []company.ExtraDeduction{
		{Name: "", Amount: num(100), Kind: company.Fixed},
		{Name: "Plano", Amount: num(5), Kind: company.Percentage},
	}

	payroll.Compute(fullMonth("2000"), rules.Table2026(), cfg)

	assert.Len(t, cfg.ExtraDeductions, 2)
}

func TestCompute_MalformedContributionTableFallsBackToLastBracket(t *testing.T) {
	table := rules.Table2026()
	table.ContributionCap = dec("9000")
	require.Error(t, table.Validate())

	res := payroll.Compute(fullMonth("9500"), table, noExtras())

	// 9000 * 0.14 - 198.49
	assertDec(t, "1061.51", res.Deductions.Contribution)
}
