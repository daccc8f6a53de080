/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - Money as plain JSON numbers (rounded to cents) instead of decimal strings

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Payroll:
    CalculateRequest, VacationRequest, PayslipDTO

  Profile:
    ProfileDTO, ExtraDeductionDTO

  Calendar:
    MonthDTO, HolidayDTO, CreateHolidayRequest, VacationDaysRequest

  Rules:
    RulesDTO, BracketDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - input/form.go: raw text form embedded in CalculateRequest
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/holerite/calendar"
	"github.com/warp/holerite/company"
	"github.com/warp/holerite/input"
	"github.com/warp/holerite/payroll"
	"github.com/warp/holerite/rules"
)

// =============================================================================
// PAYROLL
// =============================================================================

// CalculateRequest is the payslip form as typed, plus optional calendar and
// vacation derivation. When ReferenceMonth is set, blank business_days and
// rest_days are derived from the calendar.
type CalculateRequest struct {
	input.Form

	Employee       string           `json:"employee,omitempty"`
	ReferenceMonth string           `json:"reference_month,omitempty"` // YYYY-MM
	ExtraHolidays  []int            `json:"extra_holidays,omitempty"`
	Vacation       *VacationRequest `json:"vacation,omitempty"`
}

// VacationRequest derives days worked from a vacation event.
type VacationRequest struct {
	Mode     string `json:"mode"` // full, departing, returning
	StartDay int    `json:"start_day"`
	Duration int    `json:"duration"`
}

type TimesheetDTO struct {
	BaseSalary      float64            `json:"base_salary"`
	DaysWorked      int                `json:"days_worked"`
	DependentCount  int                `json:"dependent_count"`
	AbsenceDays     float64            `json:"absence_days"`
	LateHours       float64            `json:"late_hours"`
	Overtime        map[string]float64 `json:"overtime"`
	NightShiftHours float64            `json:"night_shift_hours"`
	BusinessDays    int                `json:"business_days"`
	RestDays        int                `json:"rest_days"`
	ApplyAdvancePay bool               `json:"apply_advance_pay"`
}

type EarningsDTO struct {
	Base             float64 `json:"base"`
	Overtime50       float64 `json:"overtime_50"`
	Overtime60       float64 `json:"overtime_60"`
	Overtime80       float64 `json:"overtime_80"`
	Overtime100      float64 `json:"overtime_100"`
	Overtime150      float64 `json:"overtime_150"`
	OvertimeTotal    float64 `json:"overtime_total"`
	NightShift       float64 `json:"night_shift"`
	RestOnOvertime   float64 `json:"rest_on_overtime"`
	RestOnNightShift float64 `json:"rest_on_night_shift"`
	Gross            float64 `json:"gross"`
}

type AppliedDeductionDTO struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type DeductionsDTO struct {
	Absence      float64               `json:"absence"`
	Lateness     float64               `json:"lateness"`
	Contribution float64               `json:"contribution"`
	IncomeTax    float64               `json:"income_tax"`
	AdvancePay   float64               `json:"advance_pay"`
	Extras       []AppliedDeductionDTO `json:"extras"`
	ExtrasTotal  float64               `json:"extras_total"`
	Total        float64               `json:"total"`
}

type IncomeTaxDTO struct {
	LegalDeduction    float64 `json:"legal_deduction"`
	StandardDeduction float64 `json:"standard_deduction"`
	UsedStandard      bool    `json:"used_standard"`
	Base              float64 `json:"base"`
	BracketTax        float64 `json:"bracket_tax"`
	Exempt            bool    `json:"exempt"`
	Taper             float64 `json:"taper"`
	Final             float64 `json:"final"`
}

// PayslipDTO is the calculation response.
type PayslipDTO struct {
	Company       string        `json:"company"`
	Employee      string        `json:"employee,omitempty"`
	Timesheet     TimesheetDTO  `json:"timesheet"`
	Earnings      EarningsDTO   `json:"earnings"`
	Deductions    DeductionsDTO `json:"deductions"`
	IncomeTax     IncomeTaxDTO  `json:"income_tax"`
	Severance     float64       `json:"severance"`
	Net           float64       `json:"net"`
	MonthlyPayout float64       `json:"monthly_payout"`
	Calendar      *MonthDTO     `json:"calendar,omitempty"`
}

// =============================================================================
// PROFILE
// =============================================================================

type ExtraDeductionDTO struct {
	ID     string                `json:"id,omitempty"`
	Name   string                `json:"name"`
	Amount float64               `json:"amount"`
	Kind   company.DeductionKind `json:"kind"`
}

// ProfileDTO is the company profile, used for both GET and PUT.
type ProfileDTO struct {
	Name                     string              `json:"name"`
	AdvancePayPercent        float64             `json:"advance_pay_percent"`
	NightShiftPremiumPercent float64             `json:"night_shift_premium_percent"`
	ExtraDeductions          []ExtraDeductionDTO `json:"extra_deductions"`
}

// =============================================================================
// CALENDAR
// =============================================================================

type HolidayDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

type CreateHolidayRequest struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

type MonthDTO struct {
	Month            string       `json:"month"`
	Length           int          `json:"length"`
	BusinessDays     int          `json:"business_days"`
	RestDays         int          `json:"rest_days"`
	Sundays          int          `json:"sundays"`
	NationalHolidays int          `json:"national_holidays"`
	ExtraHolidays    int          `json:"extra_holidays"`
	CompanyHolidays  []HolidayDTO `json:"company_holidays"`
}

type VacationDaysRequest struct {
	Month string `json:"month"` // YYYY-MM
	VacationRequest
}

type VacationDaysDTO struct {
	Month      string `json:"month"`
	Mode       string `json:"mode"`
	DaysWorked int    `json:"days_worked"`
}

// =============================================================================
// RULES
// =============================================================================

type BracketDTO struct {
	UpTo       *float64 `json:"up_to"` // null when unbounded
	Rate       float64  `json:"rate"`
	Adjustment float64  `json:"adjustment"`
}

type RulesDTO struct {
	Year                  int          `json:"year"`
	MinimumWage           float64      `json:"minimum_wage"`
	ContributionCap       float64      `json:"contribution_cap"`
	PerDependentDeduction float64      `json:"per_dependent_deduction"`
	StandardDeduction     float64      `json:"standard_deduction"`
	ContributionBrackets  []BracketDTO `json:"contribution_brackets"`
	IncomeTaxBrackets     []BracketDTO `json:"income_tax_brackets"`
	ExemptionThreshold    float64      `json:"exemption_threshold"`
	TaperCeiling          float64      `json:"taper_ceiling"`
	TaperBase             float64      `json:"taper_base"`
	TaperRate             float64      `json:"taper_rate"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toPayslipDTO(p company.Profile, employee string, ts payroll.Timesheet, r payroll.Result) PayslipDTO {
	e := r.Earnings
	d := r.Deductions
	tax := r.Tax

	extras := make([]AppliedDeductionDTO, 0, len(d.Extras))
	for _, x := range d.Extras {
		extras = append(extras, AppliedDeductionDTO{Name: x.Name, Amount: money(x.Amount)})
	}

	return PayslipDTO{
		Company:   p.Name,
		Employee:  employee,
		Timesheet: toTimesheetDTO(ts),
		Earnings: EarningsDTO{
			Base:             money(e.Base),
			Overtime50:       money(e.Overtime50),
			Overtime60:       money(e.Overtime60),
			Overtime80:       money(e.Overtime80),
			Overtime100:      money(e.Overtime100),
			Overtime150:      money(e.Overtime150),
			OvertimeTotal:    money(e.OvertimeTotal()),
			NightShift:       money(e.NightShift),
			RestOnOvertime:   money(e.RestOnOvertime),
			RestOnNightShift: money(e.RestOnNightShift),
			Gross:            money(e.Gross),
		},
		Deductions: DeductionsDTO{
			Absence:      money(d.Absence),
			Lateness:     money(d.Lateness),
			Contribution: money(d.Contribution),
			IncomeTax:    money(d.IncomeTax),
			AdvancePay:   money(d.AdvancePay),
			Extras:       extras,
			ExtrasTotal:  money(d.ExtrasTotal),
			Total:        money(d.Total),
		},
		IncomeTax: IncomeTaxDTO{
			LegalDeduction:    money(tax.LegalDeduction),
			StandardDeduction: money(tax.StandardDeduction),
			UsedStandard:      tax.UsedStandard,
			Base:              money(tax.Base),
			BracketTax:        money(tax.BracketTax),
			Exempt:            tax.Exempt,
			Taper:             money(tax.Taper),
			Final:             money(tax.Final),
		},
		Severance:     money(r.Severance),
		Net:           money(r.Net),
		MonthlyPayout: money(r.MonthlyPayout()),
	}
}

func toTimesheetDTO(ts payroll.Timesheet) TimesheetDTO {
	return TimesheetDTO{
		BaseSalary:     money(ts.BaseSalary),
		DaysWorked:     ts.DaysWorked,
		DependentCount: ts.DependentCount,
		AbsenceDays:    ts.AbsenceDays.InexactFloat64(),
		LateHours:      ts.LateHours.InexactFloat64(),
		Overtime: map[string]float64{
			"50":  ts.Overtime.At50.InexactFloat64(),
			"60":  ts.Overtime.At60.InexactFloat64(),
			"80":  ts.Overtime.At80.InexactFloat64(),
			"100": ts.Overtime.At100.InexactFloat64(),
			"150": ts.Overtime.At150.InexactFloat64(),
		},
		NightShiftHours: ts.NightShiftHours.InexactFloat64(),
		BusinessDays:    ts.BusinessDays,
		RestDays:        ts.RestDays,
		ApplyAdvancePay: ts.ApplyAdvancePay,
	}
}

func toProfileDTO(p company.Profile) ProfileDTO {
	dto := ProfileDTO{
		Name:                     p.Name,
		AdvancePayPercent:        p.Config.AdvancePayPercent.InexactFloat64(),
		NightShiftPremiumPercent: p.Config.NightShiftPremiumPercent.InexactFloat64(),
		ExtraDeductions:          make([]ExtraDeductionDTO, 0, len(p.Config.ExtraDeductions)),
	}
	for _, e := range p.Config.ExtraDeductions {
		dto.ExtraDeductions = append(dto.ExtraDeductions, ExtraDeductionDTO{
			ID:     e.ID,
			Name:   e.Name,
			Amount: e.Amount.InexactFloat64(),
			Kind:   e.Kind,
		})
	}
	return dto
}

func fromProfileDTO(dto ProfileDTO) company.Profile {
	p := company.Profile{
		Name: dto.Name,
		Config: company.Config{
			AdvancePayPercent:        decimal.NewFromFloat(dto.AdvancePayPercent),
			NightShiftPremiumPercent: decimal.NewFromFloat(dto.NightShiftPremiumPercent),
			ExtraDeductions:          make([]company.ExtraDeduction, 0, len(dto.ExtraDeductions)),
		},
	}
	for _, e := range dto.ExtraDeductions {
		p.Config.ExtraDeductions = append(p.Config.ExtraDeductions, company.ExtraDeduction{
			ID:     e.ID,
			Name:   e.Name,
			Amount: decimal.NewFromFloat(e.Amount),
			Kind:   e.Kind,
		})
	}
	return p
}

func toHolidayDTO(h calendar.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        h.ID,
		Date:      h.Date.Format("2006-01-02"),
		Name:      h.Name,
		Recurring: h.Recurring,
	}
}

func toMonthDTO(md calendar.MonthDays, holidays []calendar.Holiday) *MonthDTO {
	dto := &MonthDTO{
		Month:            fmt.Sprintf("%04d-%02d", md.Year, int(md.Month)),
		Length:           md.Length,
		BusinessDays:     md.BusinessDays,
		RestDays:         md.RestDays,
		Sundays:          md.Sundays,
		NationalHolidays: md.NationalHolidays,
		ExtraHolidays:    md.ExtraHolidays,
		CompanyHolidays:  make([]HolidayDTO, 0, len(holidays)),
	}
	for _, h := range holidays {
		dto.CompanyHolidays = append(dto.CompanyHolidays, toHolidayDTO(h))
	}
	return dto
}

func toRulesDTO(t rules.Table) RulesDTO {
	return RulesDTO{
		Year:                  t.Year,
		MinimumWage:           money(t.MinimumWage),
		ContributionCap:       money(t.ContributionCap),
		PerDependentDeduction: money(t.PerDependentDeduction),
		StandardDeduction:     money(t.StandardDeduction),
		ContributionBrackets:  toBracketDTOs(t.ContributionBrackets),
		IncomeTaxBrackets:     toBracketDTOs(t.IncomeTaxBrackets),
		ExemptionThreshold:    money(t.Exemption.Threshold),
		TaperCeiling:          money(t.Exemption.TaperCeiling),
		TaperBase:             money(t.Exemption.TaperBase),
		TaperRate:             t.Exemption.TaperRate.InexactFloat64(),
	}
}

func toBracketDTOs(brackets []rules.Bracket) []BracketDTO {
	out := make([]BracketDTO, 0, len(brackets))
	for _, b := range brackets {
		dto := BracketDTO{
			Rate:       b.Rate.InexactFloat64(),
			Adjustment: money(b.Adjustment),
		}
		if !b.Upper.IsUnbounded() {
			upTo := money(b.Upper.Amount())
			dto.UpTo = &upTo
		}
		out = append(out, dto)
	}
	return out
}
