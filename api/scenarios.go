/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with a realistic
	company profile and holidays, and return a sample form ready to post to
	/api/payroll/calculate.

AVAILABLE SCENARIOS:

	minimum-wage:   Minimum wage, full month, no extras
	overtime-taper: 10h overtime at 50% pushing gross into the taper window
	health-plan:    Percentage extra deduction plus a blank placeholder row
	night-bakery:   Night shift with a recurring company holiday

HOW SCENARIOS WORK:
 1. Parse the profile document via factory (nothing changes if it is invalid)
 2. Remove stored company holidays
 3. Save the profile
 4. Save the scenario holidays

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "overtime-taper"}

NOTE:

	Scenarios replace the stored profile. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Calculate handler
  - factory/profile.go: profile document format
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/holerite/calendar"
	"github.com/warp/holerite/input"
)

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Form        CalculateRequest `json:"form"`
}

type scenario struct {
	ScenarioDTO
	profileDoc string
	holidays   []calendar.Holiday
}

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "minimum-wage",
			Name:        "Salário Mínimo",
			Description: "Full month at the minimum wage: contribution only, no income tax",
			Form: CalculateRequest{Form: input.Form{
				Salary: "1.621,00", BusinessDays: "25", RestDays: "5",
			}},
		},
		profileDoc: `{"nomeEmpresa":"Mercadinho Bom Preço","config":{"adiantamento":40,"noturno":20,"descontosExtras":[]}}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "overtime-taper",
			Name:        "Hora Extra",
			Description: "10h at 50% with weekly rest; gross lands in the income-tax taper window",
			Form: CalculateRequest{Form: input.Form{
				Salary: "5.000,00", Overtime50: "10", BusinessDays: "22", RestDays: "8",
			}},
		},
		profileDoc: `{"nomeEmpresa":"Metalúrgica Aurora","config":{"adiantamento":40,"noturno":20,"descontosExtras":[]}}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "health-plan",
			Name:        "Plano de Saúde",
			Description: "5% health plan deduction; the blank placeholder row is ignored",
			Form: CalculateRequest{Form: input.Form{
				Salary: "2.000,00", BusinessDays: "25", RestDays: "5",
			}},
		},
		profileDoc: `{"nomeEmpresa":"Escritório Central","config":{"adiantamento":40,"noturno":20,"descontosExtras":[
			{"id":1,"nome":"Plano","valor":5,"tipo":"%"},
			{"id":2,"nome":"","valor":100,"tipo":"$"}
		]}}`,
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "night-bakery",
			Name:        "Padaria Noturna",
			Description: "Night shift premium at 25%, advance pay and a recurring city holiday",
			Form: CalculateRequest{
				Form: input.Form{
					Salary: "2.400,00", NightShiftHours: "40", Dependents: "1", ApplyAdvancePay: true,
				},
				ReferenceMonth: "2026-03",
			},
		},
		profileDoc: `{"nomeEmpresa":"Padaria Central","config":{"adiantamento":40,"noturno":25,"descontosExtras":[
			{"id":"vt","nome":"Vale Transporte","valor":6,"tipo":"%"},
			{"id":"sind","nome":"Sindicato","valor":35.5,"tipo":"$"}
		]}}`,
		holidays: []calendar.Holiday{
			{Name: "São José", Date: time.Date(2026, time.March, 19, 0, 0, 0, 0, time.UTC), Recurring: true},
		},
	},
}

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, 0, len(scenarios))
	for _, s := range scenarios {
		dtos = append(dtos, s.ScenarioDTO)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadScenario loads a predefined scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	var found *scenario
	for i := range scenarios {
		if scenarios[i].ID == req.ScenarioID {
			found = &scenarios[i]
		}
	}
	if found == nil {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err := h.loadScenario(r.Context(), *found); err != nil {
		h.writeInternalError(w, r, "Failed to load scenario", err)
		return
	}

	writeJSON(w, http.StatusOK, found.ScenarioDTO)
}

// =============================================================================
// SCENARIO LOADER
// =============================================================================

func (h *Handler) loadScenario(ctx context.Context, s scenario) error {
	// Stored as written: blank rows survive so the engine-side filter is visible.
	profile, err := h.ProfileFactory.ParseProfile(s.profileDoc)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", s.ID, err)
	}

	existing, err := h.Holidays.ListHolidays(ctx)
	if err != nil {
		return err
	}
	for _, hol := range existing {
		if err := h.Holidays.DeleteHoliday(ctx, hol.ID); err != nil {
			return err
		}
	}

	if err := h.Profiles.Save(ctx, profile); err != nil {
		return err
	}

	for _, hol := range s.holidays {
		if _, err := h.Holidays.SaveHoliday(ctx, hol); err != nil {
			return fmt.Errorf("scenario %s: %w", s.ID, err)
		}
	}

	h.Logger.InfoContext(ctx, "scenario loaded", "scenario", s.ID)
	return nil
}
