/*
Package rules holds the statutory payroll tables for a fiscal year.

PURPOSE:
  A Table carries every constant the payroll engine needs from federal law:
  the minimum wage, the social-security (INSS) contribution cap, the income-tax
  (IRRF) deductions and the two progressive bracket tables. Tables are plain
  values; the engine receives one explicitly on every call.

KEY CONCEPTS:
  - Bound: upper limit of a bracket, either UpTo(amount) or Unbounded()
  - Bracket: {Upper, Rate, Adjustment}; tax = base * Rate - Adjustment
  - Table: the year's constants plus the two ordered bracket slices

BRACKET SEMANTICS:
  Brackets are scanned in order and the first one whose bound covers the base
  (inclusive) applies. An Unbounded bracket covers everything.

SEE ALSO:
  - brazil2026.go: the embedded 2026 table
  - payroll/engine.go: consumer of these tables
*/
package rules

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BOUND - Bracket upper limit (bounded or open-ended)
// =============================================================================

// Bound is the inclusive upper limit of a bracket.
type Bound struct {
	amount    decimal.Decimal
	unbounded bool
}

// UpTo returns a bound that covers every amount <= limit.
func UpTo(limit decimal.Decimal) Bound { return Bound{amount: limit} }

// Unbounded returns a bound that covers every amount.
func Unbounded() Bound { return Bound{unbounded: true} }

func (b Bound) IsUnbounded() bool { return b.unbounded }

// Amount returns the limit. It is zero for an unbounded bound.
func (b Bound) Amount() decimal.Decimal { return b.amount }

// Covers reports whether x falls at or below the bound.
func (b Bound) Covers(x decimal.Decimal) bool {
	return b.unbounded || x.LessThanOrEqual(b.amount)
}

func (b Bound) String() string {
	if b.unbounded {
		return "unbounded"
	}
	return b.amount.String()
}

// =============================================================================
// BRACKET
// =============================================================================

type Bracket struct {
	Upper      Bound
	Rate       decimal.Decimal
	Adjustment decimal.Decimal
}

// Tax applies the bracket to base: base * Rate - Adjustment.
// The result may be negative; callers clamp.
func (b Bracket) Tax(base decimal.Decimal) decimal.Decimal {
	return base.Mul(b.Rate).Sub(b.Adjustment)
}

// Find returns the first bracket covering base.
// ok is false when no bracket covers it (only possible when the last bracket is bounded).
func Find(brackets []Bracket, base decimal.Decimal) (Bracket, bool) {
	for _, b := range brackets {
		if b.Upper.Covers(base) {
			return b, true
		}
	}
	return Bracket{}, false
}

// =============================================================================
// TABLE
// =============================================================================

// Table is the immutable set of payroll constants for one fiscal year.
type Table struct {
	Year                  int
	MinimumWage           decimal.Decimal
	ContributionCap       decimal.Decimal
	PerDependentDeduction decimal.Decimal
	StandardDeduction     decimal.Decimal
	ContributionBrackets  []Bracket
	IncomeTaxBrackets     []Bracket
	Exemption             Exemption
}

// Exemption is the low-income income-tax relief evaluated on gross earnings.
// At or below Threshold the tax is zero. Up to TaperCeiling the tax is reduced
// by TaperBase - TaperRate*gross when that term is positive.
type Exemption struct {
	Threshold    decimal.Decimal
	TaperCeiling decimal.Decimal
	TaperBase    decimal.Decimal
	TaperRate    decimal.Decimal
}

// Taper returns the reduction for gross earnings inside the taper window.
// It is zero outside (Threshold, TaperCeiling] and never negative.
func (e Exemption) Taper(gross decimal.Decimal) decimal.Decimal {
	if gross.LessThanOrEqual(e.Threshold) || gross.GreaterThan(e.TaperCeiling) {
		return decimal.Zero
	}
	t := e.TaperBase.Sub(e.TaperRate.Mul(gross))
	if !t.IsPositive() {
		return decimal.Zero
	}
	return t
}

// Exempt reports whether gross earnings are fully exempt from income tax.
func (e Exemption) Exempt(gross decimal.Decimal) bool {
	return gross.LessThanOrEqual(e.Threshold)
}

var (
	// ErrNoBrackets is returned when a bracket table is empty.
	ErrNoBrackets = errors.New("bracket table is empty")

	// ErrBracketOrder is returned when bracket bounds are not strictly increasing.
	ErrBracketOrder = errors.New("bracket bounds must be strictly increasing")

	// ErrCapNotCovered is returned when the contribution brackets stop below the cap.
	ErrCapNotCovered = errors.New("contribution brackets do not reach the contribution cap")

	// ErrOpenIncomeTax is returned when the last income-tax bracket is bounded.
	ErrOpenIncomeTax = errors.New("last income-tax bracket must be unbounded")
)

// BracketError points at the offending bracket.
type BracketError struct {
	Table string
	Index int
	Err   error
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%s bracket %d: %v", e.Table, e.Index, e.Err)
}

func (e *BracketError) Unwrap() error { return e.Err }

// Validate checks the structural invariants the engine relies on.
func (t Table) Validate() error {
	if err := validateOrder("contribution", t.ContributionBrackets); err != nil {
		return err
	}
	last := t.ContributionBrackets[len(t.ContributionBrackets)-1]
	if !last.Upper.Covers(t.ContributionCap) {
		return &BracketError{Table: "contribution", Index: len(t.ContributionBrackets) - 1, Err: ErrCapNotCovered}
	}

	if err := validateOrder("income tax", t.IncomeTaxBrackets); err != nil {
		return err
	}
	if !t.IncomeTaxBrackets[len(t.IncomeTaxBrackets)-1].Upper.IsUnbounded() {
		return &BracketError{Table: "income tax", Index: len(t.IncomeTaxBrackets) - 1, Err: ErrOpenIncomeTax}
	}
	return nil
}

func validateOrder(name string, brackets []Bracket) error {
	if len(brackets) == 0 {
		return &BracketError{Table: name, Index: 0, Err: ErrNoBrackets}
	}
	for i := 1; i < len(brackets); i++ {
		prev, cur := brackets[i-1].Upper, brackets[i].Upper
		if prev.IsUnbounded() {
			return &BracketError{Table: name, Index: i, Err: ErrBracketOrder}
		}
		if !cur.IsUnbounded() && !cur.Amount().GreaterThan(prev.Amount()) {
			return &BracketError{Table: name, Index: i, Err: ErrBracketOrder}
		}
	}
	return nil
}
