/*
Package payroll computes a monthly payslip (holerite).

PURPOSE:
  Compute turns a Timesheet, a fiscal-year rules.Table and a company.Config
  into a Result: itemized earnings, statutory and configured deductions,
  severance-fund accrual (FGTS) and net pay. It is a pure function: no I/O, no
  clock, no shared state. The same inputs always produce the same Result.

KEY CONCEPTS IN THIS FILE (types.go):
  - Timesheet: the month's numeric inputs (already coerced, see package input)
  - OvertimeHours: hours at the five statutory premium tiers
  - Earnings / Deductions / IncomeTax: result breakdowns
  - Result: everything above plus severance and net pay

DESIGN PRINCIPLES:
  1. Explicit inputs: the rule table and company config are parameters
  2. Precision: all money is decimal.Decimal
  3. No error path: out-of-range inputs resolve to defaults or zero

SEE ALSO:
  - engine.go: the computation
  - rules/table.go: bracket tables
  - company/profile.go: company configuration
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT
// =============================================================================

// OvertimeHours holds overtime hours per premium tier.
// The tiers pay 1.5x, 1.6x, 1.8x, 2.0x and 2.5x the hourly rate.
type OvertimeHours struct {
	At50  decimal.Decimal
	At60  decimal.Decimal
	At80  decimal.Decimal
	At100 decimal.Decimal
	At150 decimal.Decimal
}

// Timesheet is one month of inputs for one employee.
type Timesheet struct {
	BaseSalary decimal.Decimal

	// DaysWorked is 0..30; 0 means the full month (30).
	DaysWorked     int
	DependentCount int

	AbsenceDays decimal.Decimal
	LateHours   decimal.Decimal

	Overtime        OvertimeHours
	NightShiftHours decimal.Decimal

	// BusinessDays defaults to 25 when not positive.
	BusinessDays int
	// RestDays (Sundays + holidays) defaults to 5 when negative.
	RestDays int

	ApplyAdvancePay bool
}

// =============================================================================
// OUTPUT
// =============================================================================

type Earnings struct {
	Base        decimal.Decimal
	Overtime50  decimal.Decimal
	Overtime60  decimal.Decimal
	Overtime80  decimal.Decimal
	Overtime100 decimal.Decimal
	Overtime150 decimal.Decimal
	NightShift  decimal.Decimal

	// Weekly paid rest (DSR) prorated over overtime and night-shift pay.
	RestOnOvertime   decimal.Decimal
	RestOnNightShift decimal.Decimal

	// Gross is the taxable base for contribution, income tax and severance.
	Gross decimal.Decimal
}

// OvertimeTotal sums the five overtime tiers.
func (e Earnings) OvertimeTotal() decimal.Decimal {
	return e.Overtime50.Add(e.Overtime60).Add(e.Overtime80).Add(e.Overtime100).Add(e.Overtime150)
}

// AppliedDeduction is a configured extra deduction as realized for this payslip.
type AppliedDeduction struct {
	Name   string
	Amount decimal.Decimal
}

// IncomeTax details the withholding computation.
type IncomeTax struct {
	// LegalDeduction = contribution + dependents * per-dependent deduction.
	LegalDeduction    decimal.Decimal
	StandardDeduction decimal.Decimal
	// UsedStandard is true when the standard deduction was larger.
	UsedStandard bool
	Base         decimal.Decimal
	BracketTax   decimal.Decimal
	Exempt       bool
	Taper        decimal.Decimal
	Final        decimal.Decimal
}

type Deductions struct {
	Absence      decimal.Decimal
	Lateness     decimal.Decimal
	Contribution decimal.Decimal
	IncomeTax    decimal.Decimal
	AdvancePay   decimal.Decimal
	Extras       []AppliedDeduction
	ExtrasTotal  decimal.Decimal
	Total        decimal.Decimal
}

type Result struct {
	Earnings   Earnings
	Deductions Deductions
	Tax        IncomeTax

	// Severance is the FGTS accrual. Informational; not part of Deductions.
	Severance decimal.Decimal
	Net       decimal.Decimal
}

// MonthlyPayout is net pay plus the advance already paid during the month.
func (r Result) MonthlyPayout() decimal.Decimal {
	return r.Net.Add(r.Deductions.AdvancePay)
}
