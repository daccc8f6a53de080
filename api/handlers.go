/*
handlers.go - HTTP API handlers for the payslip calculator

PURPOSE:
  Exposes the payroll engine, the company profile and the calendar helpers
  via REST API. Handles HTTP request/response and JSON serialization, and
  delegates to the domain packages.

ENDPOINTS:
  Payroll:
    POST   /api/payroll/calculate      Coerce the form and compute the payslip
    POST   /api/payroll/payslip.pdf    Same input, rendered as PDF
    GET    /api/rules                  The fiscal-year rule table in use

  Profile:
    GET    /api/profile                Company profile (defaults when unsaved)
    PUT    /api/profile                Sanitize and save the profile
    GET    /api/profile/document       Export the stored profile document
    POST   /api/profile/document       Import a profile document

  Calendar:
    GET    /api/calendar/{month}       Business/rest days for YYYY-MM (?extra=3,15)
    POST   /api/calendar/vacation      Days worked for a vacation event
    GET    /api/holidays               Company holidays
    POST   /api/holidays               Add a company holiday
    DELETE /api/holidays/{id}          Remove a company holiday

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Profiles: company.Store
  - Holidays: calendar.HolidayStore
  - Rules: the rules.Table every calculation uses
  - Logger: server-side errors

REQUEST FLOW:
  1. Parse HTTP request
  2. Coerce / validate input
  3. Call domain logic (payroll.Compute, calendar.Month, ...)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors (logged)

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/holerite/calendar"
	"github.com/warp/holerite/company"
	"github.com/warp/holerite/factory"
	"github.com/warp/holerite/input"
	"github.com/warp/holerite/payroll"
	"github.com/warp/holerite/payslip"
	"github.com/warp/holerite/rules"
)

// ErrReferenceMonthRequired is returned when a vacation that depends on the
// month length is given without the month it happens in.
var ErrReferenceMonthRequired = errors.New("reference_month is required for vacation")

// maxBodySize caps every request body.
const maxBodySize = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Profiles       company.Store
	Holidays       calendar.HolidayStore
	Rules          rules.Table
	ProfileFactory *factory.ProfileFactory
	Logger         *slog.Logger
}

// NewHandler creates a new handler. A nil logger discards output.
func NewHandler(profiles company.Store, holidays calendar.HolidayStore, table rules.Table, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		Profiles:       profiles,
		Holidays:       holidays,
		Rules:          table,
		ProfileFactory: factory.NewProfileFactory(),
		Logger:         logger,
	}
}

// =============================================================================
// PAYROLL ENDPOINTS
// =============================================================================

// calculation is a computed payslip with everything needed to present it.
type calculation struct {
	profile   company.Profile
	timesheet payroll.Timesheet
	result    payroll.Result
	month     *MonthDTO
}

// calculate coerces the request, derives calendar values and runs the engine.
func (h *Handler) calculate(ctx context.Context, req CalculateRequest) (calculation, error) {
	ts := req.Timesheet()

	var (
		month *MonthDTO
		year  int
		m     time.Month
	)
	if strings.TrimSpace(req.ReferenceMonth) != "" {
		var err error
		year, m, err = calendar.ParseMonth(strings.TrimSpace(req.ReferenceMonth))
		if err != nil {
			return calculation{}, err
		}

		md, holidays, err := h.monthDays(ctx, year, m, req.ExtraHolidays)
		if err != nil {
			return calculation{}, err
		}
		if strings.TrimSpace(req.BusinessDays) == "" {
			ts.BusinessDays = md.BusinessDays
		}
		if strings.TrimSpace(req.RestDays) == "" {
			ts.RestDays = md.RestDays
		}
		month = toMonthDTO(md, holidays)
	}

	if req.Vacation != nil {
		v := req.Vacation.toVacation()
		if month == nil && v.Mode.NeedsMonth() {
			return calculation{}, ErrReferenceMonthRequired
		}
		days, err := calendar.DaysWorked(year, m, v)
		if err != nil {
			return calculation{}, err
		}
		ts.DaysWorked = days
	}

	profile, err := h.Profiles.Load(ctx)
	if err != nil {
		return calculation{}, fmt.Errorf("load profile: %w", err)
	}

	return calculation{
		profile:   profile,
		timesheet: ts,
		result:    payroll.Compute(ts, h.Rules, profile.Config),
		month:     month,
	}, nil
}

func (v VacationRequest) toVacation() calendar.Vacation {
	return calendar.Vacation{
		Mode:     calendar.VacationMode(strings.ToLower(strings.TrimSpace(v.Mode))),
		StartDay: v.StartDay,
		Duration: v.Duration,
	}
}

// Calculate computes a payslip from the raw form.
// POST /api/payroll/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	calc, err := h.calculate(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, "Failed to calculate payslip", err)
		return
	}

	dto := toPayslipDTO(calc.profile, req.Employee, calc.timesheet, calc.result)
	dto.Calendar = calc.month
	writeJSON(w, http.StatusOK, dto)
}

// PayslipPDF renders the payslip as a PDF download.
// POST /api/payroll/payslip.pdf
func (h *Handler) PayslipPDF(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	calc, err := h.calculate(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, "Failed to calculate payslip", err)
		return
	}

	reference := time.Now().Format("01/2006")
	filename := "holerite.pdf"
	if calc.month != nil {
		reference = calc.month.Month[5:] + "/" + calc.month.Month[:4]
		filename = "holerite-" + calc.month.Month + ".pdf"
	}

	var buf bytes.Buffer
	err = payslip.Render(&buf, payslip.Document{
		Company:   calc.profile.Name,
		Employee:  req.Employee,
		Reference: reference,
		Timesheet: calc.timesheet,
		Result:    calc.result,
	})
	if err != nil {
		h.writeInternalError(w, r, "Failed to render payslip", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetRules returns the rule table in use.
// GET /api/rules
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRulesDTO(h.Rules))
}

// =============================================================================
// PROFILE ENDPOINTS
// =============================================================================

// GetProfile returns the saved profile, or the defaults.
// GET /api/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Load(r.Context())
	if err != nil {
		h.writeInternalError(w, r, "Failed to load profile", err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(p))
}

// UpdateProfile sanitizes and saves the profile.
// PUT /api/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	h.saveProfile(w, r, fromProfileDTO(req))
}

// ExportProfileDocument returns the stored profile document.
// GET /api/profile/document
func (h *Handler) ExportProfileDocument(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Load(r.Context())
	if err != nil {
		h.writeInternalError(w, r, "Failed to load profile", err)
		return
	}

	doc, err := h.ProfileFactory.MarshalProfile(p)
	if err != nil {
		h.writeInternalError(w, r, "Failed to encode profile", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", factory.ProfileKey+".json"))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc)
}

// ImportProfileDocument replaces the profile with an uploaded document.
// POST /api/profile/document
func (h *Handler) ImportProfileDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	p, err := h.ProfileFactory.ParseProfile(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile document", err)
		return
	}

	h.saveProfile(w, r, p)
}

func (h *Handler) saveProfile(w http.ResponseWriter, r *http.Request, p company.Profile) {
	p = p.Sanitize()
	if err := h.Profiles.Save(r.Context(), p); err != nil {
		h.writeInternalError(w, r, "Failed to save profile", err)
		return
	}
	h.Logger.InfoContext(r.Context(), "profile saved",
		slog.String("company", p.Name),
		slog.Int("extra_deductions", len(p.Config.ExtraDeductions)),
	)
	writeJSON(w, http.StatusOK, toProfileDTO(p))
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

// monthDays merges stored holidays with the requested extra days.
func (h *Handler) monthDays(ctx context.Context, year int, month time.Month, extra []int) (calendar.MonthDays, []calendar.Holiday, error) {
	holidays, err := h.Holidays.HolidaysIn(ctx, year, month)
	if err != nil {
		return calendar.MonthDays{}, nil, fmt.Errorf("load holidays: %w", err)
	}
	return calendar.Month(year, month, calendar.ExtraDays(holidays, extra)), holidays, nil
}

// GetMonth returns business and rest days for a month.
// GET /api/calendar/{month}?extra=3,15
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := calendar.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	var extra []int
	if raw := r.URL.Query().Get("extra"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			extra = append(extra, input.Int(part))
		}
	}

	md, holidays, err := h.monthDays(r.Context(), year, month, extra)
	if err != nil {
		h.writeInternalError(w, r, "Failed to load holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthDTO(md, holidays))
}

// VacationDays returns days worked for a vacation event.
// POST /api/calendar/vacation
func (h *Handler) VacationDays(w http.ResponseWriter, r *http.Request) {
	var req VacationDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	year, month, err := calendar.ParseMonth(strings.TrimSpace(req.Month))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	v := req.toVacation()
	days, err := calendar.DaysWorked(year, month, v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vacation", err)
		return
	}

	writeJSON(w, http.StatusOK, VacationDaysDTO{
		Month:      fmt.Sprintf("%04d-%02d", year, int(month)),
		Mode:       string(v.Mode),
		DaysWorked: days,
	})
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns all company holidays.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Holidays.ListHolidays(r.Context())
	if err != nil {
		h.writeInternalError(w, r, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a company holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	if req.Date == "" || strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Date and name are required", nil)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	saved, err := h.Holidays.SaveHoliday(r.Context(), calendar.Holiday{
		Date:      date,
		Name:      strings.TrimSpace(req.Name),
		Recurring: req.Recurring,
	})
	if err != nil {
		h.writeDomainError(w, r, "Failed to create holiday", err)
		return
	}

	writeJSON(w, http.StatusCreated, toHolidayDTO(saved))
}

// DeleteHoliday deletes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Holidays.DeleteHoliday(r.Context(), id); err != nil {
		h.writeDomainError(w, r, "Failed to delete holiday", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeBodyError reports an unreadable request body: 413 past maxBodySize,
// 400 otherwise.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request body", err)
}

// writeDomainError maps known domain errors to 400/404 and anything else to 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, calendar.ErrHolidayNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, calendar.ErrUnknownVacationMode),
		errors.Is(err, calendar.ErrStartDayRequired),
		errors.Is(err, calendar.ErrDurationRequired),
		errors.Is(err, calendar.ErrHolidayName),
		errors.Is(err, calendar.ErrHolidayDate),
		errors.Is(err, ErrReferenceMonthRequired):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.writeInternalError(w, r, message, err)
	}
}

func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.Logger.ErrorContext(r.Context(), message,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeError(w, http.StatusInternalServerError, message, err)
}
