/*
Package factory converts the stored company-profile document to Go structs.

PURPOSE:
  The company profile is persisted as one JSON document under a fixed key,
  the same shape the profile editor has always written. The factory parses
  that document into a company.Profile and renders a Profile back, so the
  storage format stays independent of the Go types.

JSON SCHEMA:
  {
    "nomeEmpresa": "Padaria Central",
    "config": {
      "adiantamento": 40,
      "noturno": 20,
      "descontosExtras": [
        {"id": "0b6c...", "nome": "Plano de Saúde", "valor": 5, "tipo": "%"},
        {"id": 1767225600000, "nome": "Sindicato", "valor": 35.5, "tipo": "$"}
      ]
    }
  }

  - ids may be strings or numbers (older documents used timestamps)
  - "tipo" is "$" (fixed amount) or "%" (percentage of base salary)
  - missing percentages fall back to company.Default()

USAGE:
  f := NewProfileFactory()
  profile, err := f.ParseProfile(doc)
  doc, err := f.MarshalProfile(profile)

SEE ALSO:
  - company/profile.go: Profile type
  - store/sqlite: stores the document under ProfileKey
*/
package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/holerite/company"
)

// ProfileKey is the fixed identifier the profile document is stored under.
const ProfileKey = "calc_perfil_empresa_flex"

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ProfileJSON is the persisted profile document.
type ProfileJSON struct {
	CompanyName string     `json:"nomeEmpresa"`
	Config      ConfigJSON `json:"config"`
}

// ConfigJSON is the engine-facing part of the document.
type ConfigJSON struct {
	AdvancePay      *Number         `json:"adiantamento,omitempty"`
	NightShift      *Number         `json:"noturno,omitempty"`
	ExtraDeductions []DeductionJSON `json:"descontosExtras"`
}

// DeductionJSON is one configured extra deduction.
type DeductionJSON struct {
	ID    FlexibleID `json:"id,omitempty"`
	Name  string     `json:"nome"`
	Value Number     `json:"valor"`
	Kind  string     `json:"tipo"`
}

// Number is a decimal written as a bare JSON number. It also reads quoted numbers.
type Number struct{ decimal.Decimal }

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		n.Decimal = decimal.Zero
		return nil
	}
	return n.Decimal.UnmarshalJSON(b)
}

// FlexibleID accepts a JSON string or number and always writes a string.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("deduction id: %w", err)
	}
	*id = FlexibleID(num.String())
	return nil
}

// =============================================================================
// PROFILE FACTORY
// =============================================================================

// ProfileFactory converts profile documents to company.Profile and back.
type ProfileFactory struct{}

// NewProfileFactory creates a new profile factory.
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// ParseProfile parses a stored document. An empty document yields company.Default().
func (f *ProfileFactory) ParseProfile(doc string) (company.Profile, error) {
	if strings.TrimSpace(doc) == "" {
		return company.Default(), nil
	}

	var pj ProfileJSON
	if err := json.Unmarshal([]byte(doc), &pj); err != nil {
		return company.Profile{}, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return f.FromJSON(pj)
}

// FromJSON converts ProfileJSON to a company.Profile.
func (f *ProfileFactory) FromJSON(pj ProfileJSON) (company.Profile, error) {
	p := company.Default()
	p.Name = pj.CompanyName

	if pj.Config.AdvancePay != nil {
		p.Config.AdvancePayPercent = pj.Config.AdvancePay.Decimal
	}
	if pj.Config.NightShift != nil {
		p.Config.NightShiftPremiumPercent = pj.Config.NightShift.Decimal
	}

	for i, dj := range pj.Config.ExtraDeductions {
		kind := company.Fixed
		if dj.Kind != "" {
			k, err := company.ParseKind(dj.Kind)
			if err != nil {
				return company.Profile{}, fmt.Errorf("deduction %d (%q): %w", i, dj.Name, err)
			}
			kind = k
		}
		p.Config.ExtraDeductions = append(p.Config.ExtraDeductions, company.ExtraDeduction{
			ID:     string(dj.ID),
			Name:   dj.Name,
			Amount: dj.Value.Decimal,
			Kind:   kind,
		})
	}
	return p, nil
}

// ToJSON converts a company.Profile to its document form.
func (f *ProfileFactory) ToJSON(p company.Profile) ProfileJSON {
	advance := Number{p.Config.AdvancePayPercent}
	night := Number{p.Config.NightShiftPremiumPercent}

	pj := ProfileJSON{
		CompanyName: p.Name,
		Config: ConfigJSON{
			AdvancePay:      &advance,
			NightShift:      &night,
			ExtraDeductions: make([]DeductionJSON, 0, len(p.Config.ExtraDeductions)),
		},
	}
	for _, e := range p.Config.ExtraDeductions {
		pj.Config.ExtraDeductions = append(pj.Config.ExtraDeductions, DeductionJSON{
			ID:    FlexibleID(e.ID),
			Name:  e.Name,
			Value: Number{e.Amount},
			Kind:  kindSymbol(e.Kind),
		})
	}
	return pj
}

// MarshalProfile renders the stored document for p.
func (f *ProfileFactory) MarshalProfile(p company.Profile) (string, error) {
	b, err := json.Marshal(f.ToJSON(p))
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	return string(b), nil
}

func kindSymbol(k company.DeductionKind) string {
	if k == company.Percentage {
		return "%"
	}
	return "$"
}
