/*
Package company models the employer profile that parametrizes a payslip.

PURPOSE:
  A Profile holds the company name (display only) and the Config the payroll
  engine reads: the advance-pay percentage, the night-shift premium percentage
  and an ordered list of extra deductions. The engine only ever reads a Config;
  editing and persistence happen through a Store.

KEY CONCEPTS:
  - DeductionKind: Fixed (currency amount) or Percentage (of base salary)
  - ExtraDeduction: a named, configured deduction
  - Store: load/save contract; Load returns Default() when nothing is stored

SEE ALSO:
  - store/sqlite: persistent Store
  - store/memory: in-memory Store
  - factory: document codec for the stored profile
*/
package company

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultName replaces a blank company name on save.
const DefaultName = "Minha Empresa"

// =============================================================================
// DEDUCTION KIND
// =============================================================================

type DeductionKind int

const (
	Fixed DeductionKind = iota + 1
	Percentage
)

var ErrUnknownKind = errors.New("unknown deduction kind")

func (k DeductionKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Percentage:
		return "percentage"
	default:
		return fmt.Sprintf("DeductionKind(%d)", int(k))
	}
}

// ParseKind accepts the canonical names and the "$" / "%" symbols used by the
// profile editor.
func ParseKind(s string) (DeductionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "$", "r$":
		return Fixed, nil
	case "percentage", "%":
		return Percentage, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k DeductionKind) MarshalText() ([]byte, error) {
	if k != Fixed && k != Percentage {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *DeductionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// =============================================================================
// EXTRA DEDUCTION
// =============================================================================

// ExtraDeduction is a company-configured deduction. For Fixed, Amount is a
// currency value; for Percentage, Amount is a percent of the base salary.
type ExtraDeduction struct {
	ID     string
	Name   string
	Amount decimal.Decimal
	Kind   DeductionKind
}

// Active reports whether the deduction applies. Blank names are placeholders
// left by the editor.
func (e ExtraDeduction) Active() bool {
	return strings.TrimSpace(e.Name) != ""
}

// Value computes the deduction for the given base salary.
// Unknown kinds are treated as Fixed.
func (e ExtraDeduction) Value(baseSalary decimal.Decimal) decimal.Decimal {
	if e.Kind == Percentage {
		return baseSalary.Mul(e.Amount).Div(decimal.NewFromInt(100))
	}
	return e.Amount
}

// =============================================================================
// PROFILE
// =============================================================================

// Config is the part of the profile the payroll engine reads.
type Config struct {
	AdvancePayPercent        decimal.Decimal
	NightShiftPremiumPercent decimal.Decimal
	ExtraDeductions          []ExtraDeduction
}

type Profile struct {
	Name   string
	Config Config
}

// Default returns the profile used before anything is saved.
func Default() Profile {
	return Profile{
		Config: Config{
			AdvancePayPercent:        decimal.NewFromInt(40),
			NightShiftPremiumPercent: decimal.NewFromInt(20),
			ExtraDeductions:          []ExtraDeduction{},
		},
	}
}

// Clone returns a deep copy, so the engine never aliases a stored slice.
func (p Profile) Clone() Profile {
	out := p
	out.Config.ExtraDeductions = append([]ExtraDeduction(nil), p.Config.ExtraDeductions...)
	return out
}

// Sanitize prepares an edited profile for saving: blank name becomes
// DefaultName, blank-named deductions are dropped and missing ids are assigned.
func (p Profile) Sanitize() Profile {
	out := p.Clone()
	out.Name = strings.TrimSpace(out.Name)
	if out.Name == "" {
		out.Name = DefaultName
	}

	kept := make([]ExtraDeduction, 0, len(out.Config.ExtraDeductions))
	for _, e := range out.Config.ExtraDeductions {
		if !e.Active() {
			continue
		}
		e.Name = strings.TrimSpace(e.Name)
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Kind != Percentage {
			e.Kind = Fixed
		}
		kept = append(kept, e)
	}
	out.Config.ExtraDeductions = kept
	return out
}

// =============================================================================
// STORE
// =============================================================================

// Store persists the single company profile.
type Store interface {
	// Load returns the saved profile, or Default() when none was saved.
	Load(ctx context.Context) (Profile, error)

	// Save replaces the saved profile.
	Save(ctx context.Context, p Profile) error
}
