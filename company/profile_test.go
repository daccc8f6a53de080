package company_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holerite/company"
)

func TestDefault(t *testing.T) {
	p := company.Default()
	assert.Equal(t, "", p.Name)
	assert.True(t, p.Config.AdvancePayPercent.Equal(decimal.NewFromInt(40)))
	assert.True(t, p.Config.NightShiftPremiumPercent.Equal(decimal.NewFromInt(20)))
	assert.Empty(t, p.Config.ExtraDeductions)
}

func TestParseKind(t *testing.T) {
	cases := map[string]company.DeductionKind{
		"$":          company.Fixed,
		"fixed":      company.Fixed,
		"R$":         company.Fixed,
		"%":          company.Percentage,
		"Percentage": company.Percentage,
	}
	for in, want := range cases {
		got, err := company.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := company.ParseKind("bogus")
	assert.ErrorIs(t, err, company.ErrUnknownKind)
}

func TestDeductionKind_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Kind company.DeductionKind `json:"kind"`
	}{company.Percentage})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"percentage"}`, string(raw))

	var back struct {
		Kind company.DeductionKind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"%"}`), &back))
	assert.Equal(t, company.Percentage, back.Kind)

	_, err = json.Marshal(struct {
		Kind company.DeductionKind `json:"kind"`
	}{})
	assert.Error(t, err, "zero kind is not serializable")
}

func TestExtraDeduction_Value(t *testing.T) {
	base := decimal.NewFromInt(2000)

	pct := company.ExtraDeduction{Name: "Plano", Amount: decimal.NewFromInt(5), Kind: company.Percentage}
	assert.True(t, pct.Value(base).Equal(decimal.NewFromInt(100)))

	fixed := company.ExtraDeduction{Name: "Sindicato", Amount: decimal.RequireFromString("35.50"), Kind: company.Fixed}
	assert.True(t, fixed.Value(base).Equal(decimal.RequireFromString("35.50")))
}

func TestSanitize(t *testing.T) {
	p := company.Profile{
		Name: "   ",
		Config: company.Config{
			ExtraDeductions: []company.ExtraDeduction{
				{Name: " Plano ", Amount: decimal.NewFromInt(5), Kind: company.Percentage},
				{Name: "", Amount: decimal.NewFromInt(100), Kind: company.Fixed},
				{ID: "keep-id", Name: "VT", Amount: decimal.NewFromInt(6)},
			},
		},
	}

	out := p.Sanitize()

	assert.Equal(t, company.DefaultName, out.Name)
	require.Len(t, out.Config.ExtraDeductions, 2)
	assert.Equal(t, "Plano", out.Config.ExtraDeductions[0].Name)
	assert.NotEmpty(t, out.Config.ExtraDeductions[0].ID)
	assert.Equal(t, "keep-id", out.Config.ExtraDeductions[1].ID)
	assert.Equal(t, company.Fixed, out.Config.ExtraDeductions[1].Kind)

	// The input is untouched.
	assert.Len(t, p.Config.ExtraDeductions, 3)
	assert.Equal(t, "", p.Config.ExtraDeductions[0].ID)
}
