/*
handlers.go - HTTP API handlers for the payroll calculator

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Parameters:
    GET    /api/parameters                 Working set
    PUT    /api/parameters                 Replace working set (JSON import)
    POST   /api/parameters/activate        Snapshot working -> active
    GET    /api/parameters/active          Active set
    POST   /api/parameters/employees       Add employee to working set
    DELETE /api/parameters/employees/{id}  Remove employee from working set

  Captures:
    GET    /api/captures/{periodKey}
    PUT    /api/captures/{periodKey}/{employeeID}

  Payroll:
    GET    /api/payroll?date=&mode=&goal=  Compute a period
    POST   /api/payroll/capture            Record capture info
    GET    /api/payroll/export.csv         Download CSV
    GET    /api/payroll/export.pdf         Download PDF

  Settings:
    GET/PUT /api/settings/goal             Goal-met flag

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Load inputs from the store, call calendar.Resolve + payroll.Run
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Catalog or employee not found
  - 409: Duplicate employee id
  - 500: Internal errors

COMPUTATION INPUT:
  Payroll endpoints read the ACTIVE parameter set; if none was ever
  activated they fall back to the working set, matching how the legacy
  tool behaved before its first "apply" click.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/innovareegautomation-dev/Nomina-Innovart/calendar"
	"github.com/innovareegautomation-dev/Nomina-Innovart/export"
	"github.com/innovareegautomation-dev/Nomina-Innovart/factory"
	"github.com/innovareegautomation-dev/Nomina-Innovart/money"
	"github.com/innovareegautomation-dev/Nomina-Innovart/payroll"
	"github.com/innovareegautomation-dev/Nomina-Innovart/store/sqlite"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
	Rules payroll.RuleSet
}

// NewHandler creates a new handler with the given store and the
// default company rules.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store: store,
		Rules: payroll.DefaultRules(),
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// PARAMETER HANDLERS
// =============================================================================

// GetParameters returns the working parameter set.
func (h *Handler) GetParameters(w http.ResponseWriter, r *http.Request) {
	h.getCatalog(w, r, sqlite.SetWorking)
}

// GetActiveParameters returns the active parameter set.
func (h *Handler) GetActiveParameters(w http.ResponseWriter, r *http.Request) {
	h.getCatalog(w, r, sqlite.SetActive)
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request, set string) {
	employees, updatedAt, err := h.Store.LoadCatalog(r.Context(), set)
	if errors.Is(err, sqlite.ErrCatalogNotFound) {
		writeError(w, http.StatusNotFound, "Parameter set not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load parameters", err)
		return
	}
	writeCatalog(w, employees, updatedAt)
}

// PutParameters replaces the working set with an imported catalog.
// The body is the catalog wire format: a JSON array of employees.
func (h *Handler) PutParameters(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}
	employees, err := factory.ParseCatalog(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid parameter catalog", err)
		return
	}
	if err := h.Store.SaveCatalog(r.Context(), sqlite.SetWorking, employees); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save parameters", err)
		return
	}
	writeCatalog(w, employees, time.Now().UTC())
}

// ActivateParameters snapshots the working set as the active set.
func (h *Handler) ActivateParameters(w http.ResponseWriter, r *http.Request) {
	activatedAt, err := h.Store.Activate(r.Context())
	if errors.Is(err, sqlite.ErrCatalogNotFound) {
		writeError(w, http.StatusNotFound, "No working set to activate", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to activate parameters", err)
		return
	}
	writeJSON(w, http.StatusOK, ActivateResponse{ActivatedAt: activatedAt.Format(time.RFC3339)})
}

// AddEmployee appends one employee to the working set. An entry
// without an id gets a generated one.
func (h *Handler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var entry AddEmployeeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	// Validate through the same path an import takes.
	doc, err := json.Marshal([]factory.EmployeeJSON{entry})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode entry", err)
		return
	}
	parsed, err := factory.ParseCatalog(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee entry", err)
		return
	}

	employees, _, err := h.Store.LoadCatalog(r.Context(), sqlite.SetWorking)
	if err != nil && !errors.Is(err, sqlite.ErrCatalogNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to load parameters", err)
		return
	}
	for _, emp := range employees {
		if emp.ID == parsed[0].ID {
			writeError(w, http.StatusConflict, "Employee id already exists", nil)
			return
		}
	}
	employees = append(employees, parsed[0])

	if err := h.Store.SaveCatalog(r.Context(), sqlite.SetWorking, employees); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save parameters", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// DeleteEmployee removes one employee from the working set.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := payroll.EmployeeID(chi.URLParam(r, "id"))

	employees, _, err := h.Store.LoadCatalog(r.Context(), sqlite.SetWorking)
	if errors.Is(err, sqlite.ErrCatalogNotFound) {
		writeError(w, http.StatusNotFound, "Parameter set not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load parameters", err)
		return
	}

	kept := employees[:0]
	for _, emp := range employees {
		if emp.ID != id {
			kept = append(kept, emp)
		}
	}
	if len(kept) == len(employees) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	if err := h.Store.SaveCatalog(r.Context(), sqlite.SetWorking, kept); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save parameters", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CAPTURE HANDLERS
// =============================================================================

// GetCaptures returns every stored capture of one period, keyed by
// employee id.
func (h *Handler) GetCaptures(w http.ResponseWriter, r *http.Request) {
	periodKey := chi.URLParam(r, "periodKey")

	captures, err := h.Store.LoadCaptures(r.Context(), periodKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load captures", err)
		return
	}

	dtos := make(map[string]CaptureDTO, len(captures))
	for id, c := range captures {
		dtos[string(id)] = toCaptureDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpsertCapture stores one employee's attendance record for a period.
func (h *Handler) UpsertCapture(w http.ResponseWriter, r *http.Request) {
	periodKey := chi.URLParam(r, "periodKey")
	id := payroll.EmployeeID(chi.URLParam(r, "employeeID"))

	var dto CaptureDTO
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Store.UpsertCapture(r.Context(), periodKey, id, fromCaptureDTO(dto)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save capture", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// SaveCaptureInfo records which period was last captured, for the
// summary view.
func (h *Handler) SaveCaptureInfo(w http.ResponseWriter, r *http.Request) {
	var info CaptureInfoDTO
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&info); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := calendar.ParseDate(info.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid fecha (use YYYY-MM-DD)", err)
		return
	}
	period, err := calendar.Resolve(date, parseMode(info.Mode))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid fecha", err)
		return
	}
	info.PeriodKey = period.Key
	info.SavedAt = time.Now().UTC().Format(time.RFC3339)

	doc, err := json.Marshal(info)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode capture info", err)
		return
	}
	if err := h.Store.SetSetting(r.Context(), sqlite.SettingCaptureInfo, string(doc)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save capture info", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// GetPayroll computes the payroll for the requested date and returns
// breakdowns plus company and global totals.
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	report, flags, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPayrollResponse(report, flags))
}

// ExportCSV streams the computed period as a spreadsheet download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="nomina-%s.csv"`, report.Period.Key))
	if err := export.WriteCSV(w, report); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write CSV", err)
	}
}

// ExportPDF streams the computed period as a printable document.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="nomina-%s.pdf"`, report.Period.Key))
	if err := export.WritePDF(w, report); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write PDF", err)
	}
}

// buildReport parses the payroll query, loads inputs and runs the
// engine. On failure it writes the error response and returns ok=false.
func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request) (export.Report, payroll.GlobalFlags, bool) {
	ctx := r.Context()
	q := r.URL.Query()

	date, err := calendar.ParseDate(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return export.Report{}, payroll.GlobalFlags{}, false
	}
	period, err := calendar.Resolve(date, parseMode(q.Get("mode")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return export.Report{}, payroll.GlobalFlags{}, false
	}

	flags, err := h.resolveFlags(ctx, q.Get("goal"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return export.Report{}, payroll.GlobalFlags{}, false
	}

	employees, _, err := h.Store.LoadCatalog(ctx, sqlite.SetActive)
	if errors.Is(err, sqlite.ErrCatalogNotFound) {
		// Never activated: compute from the working set.
		employees, _, err = h.Store.LoadCatalog(ctx, sqlite.SetWorking)
	}
	if errors.Is(err, sqlite.ErrCatalogNotFound) {
		writeError(w, http.StatusNotFound, "No parameter set available", err)
		return export.Report{}, payroll.GlobalFlags{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load parameters", err)
		return export.Report{}, payroll.GlobalFlags{}, false
	}

	captures, err := h.Store.LoadCaptures(ctx, period.Key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load captures", err)
		return export.Report{}, payroll.GlobalFlags{}, false
	}

	results := payroll.Run(employees, captures, period, flags, h.Rules)
	return export.BuildReport(date, period, results), flags, true
}

// resolveFlags reads the persisted goal-met flag, letting the query
// parameter override it for what-if runs.
func (h *Handler) resolveFlags(ctx context.Context, goalParam string) (payroll.GlobalFlags, error) {
	switch goalParam {
	case "true":
		return payroll.GlobalFlags{GoalMet: true}, nil
	case "false":
		return payroll.GlobalFlags{}, nil
	}
	value, ok, err := h.Store.GetSetting(ctx, sqlite.SettingGoalMet)
	if err != nil {
		return payroll.GlobalFlags{}, err
	}
	return payroll.GlobalFlags{GoalMet: ok && value == "true"}, nil
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetGoal returns the persisted goal-met flag.
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	value, ok, err := h.Store.GetSetting(r.Context(), sqlite.SettingGoalMet)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, GoalDTO{GoalMet: ok && value == "true"})
}

// PutGoal persists the goal-met flag.
func (h *Handler) PutGoal(w http.ResponseWriter, r *http.Request) {
	var dto GoalDTO
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	value := "false"
	if dto.GoalMet {
		value = "true"
	}
	if err := h.Store.SetSetting(r.Context(), sqlite.SettingGoalMet, value); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// DTO CONVERSION
// =============================================================================

// parseMode accepts both the API values and the Spanish labels the
// legacy exports used.
func parseMode(s string) calendar.Mode {
	switch s {
	case "semanal":
		return calendar.ModeWeekly
	case "quincenal":
		return calendar.ModeBiweekly
	}
	return calendar.ParseMode(s)
}

func toCaptureDTO(c payroll.PeriodCapture) CaptureDTO {
	incentive, _ := c.ExtraIncentive.Float64()
	deduction, _ := c.ExtraDeduction.Float64()
	return CaptureDTO{
		AbsenceDays:      c.AbsenceDays,
		LatenessCount:    c.LatenessCount,
		OvertimeHours:    c.OvertimeHours,
		ExtraIncentive:   incentive,
		ExtraDeduction:   deduction,
		CleaningApproved: c.CleaningApproved,
	}
}

func fromCaptureDTO(dto CaptureDTO) payroll.PeriodCapture {
	return payroll.PeriodCapture{
		AbsenceDays:      dto.AbsenceDays,
		LatenessCount:    dto.LatenessCount,
		OvertimeHours:    dto.OvertimeHours,
		ExtraIncentive:   decimal.NewFromFloat(dto.ExtraIncentive),
		ExtraDeduction:   decimal.NewFromFloat(dto.ExtraDeduction),
		CleaningApproved: dto.CleaningApproved,
	}
}

func toPayrollResponse(report export.Report, flags payroll.GlobalFlags) PayrollResponse {
	resp := PayrollResponse{
		Date:    report.Date.Format("2006-01-02"),
		GoalMet: flags.GoalMet,
		Period: PeriodDTO{
			Key:       report.Period.Key,
			Start:     report.Period.Start.Format("2006-01-02"),
			End:       report.Period.End.Format("2006-01-02"),
			Days:      report.Period.Days,
			FirstHalf: report.Period.FirstHalf,
			Week:      report.Period.Week,
			Mode:      string(report.Period.Mode),
		},
		Global: toGlobalTotalsDTO(report.Global),
	}

	for _, section := range report.Companies {
		dto := CompanySectionDTO{
			Company: string(section.Company),
			Totals:  toCompanyTotalsDTO(section.Totals),
		}
		for _, res := range section.Results {
			if res.Err != nil {
				resp.Skipped = append(resp.Skipped, SkippedDTO{
					ID:     string(res.Employee.ID),
					Name:   res.Employee.FullName,
					Reason: res.Err.Error(),
				})
				continue
			}
			dto.Rows = append(dto.Rows, toPayRowDTO(res))
		}
		resp.Companies = append(resp.Companies, dto)
	}
	return resp
}

func toCompanyTotalsDTO(t payroll.CompanyTotals) TotalsDTO {
	return TotalsDTO{
		Company:     string(t.Company),
		BasePay:     money.Plain(t.BasePay),
		OvertimePay: money.Plain(t.OvertimePay),
		BonusTotal:  money.Plain(t.BonusTotal),
		Gross:       money.Plain(t.Gross),
		Internal:    money.Plain(t.Internal),
		Vouchers:    money.Plain(t.Vouchers),
		Net:         money.Plain(t.Net),
		NetDisplay:  money.Format(t.Net),
		Employees:   t.Employees,
	}
}

func toGlobalTotalsDTO(g payroll.GlobalTotals) TotalsDTO {
	return TotalsDTO{
		BasePay:     money.Plain(g.BasePay),
		OvertimePay: money.Plain(g.OvertimePay),
		BonusTotal:  money.Plain(g.BonusTotal),
		Gross:       money.Plain(g.Gross),
		Internal:    money.Plain(g.Internal),
		Vouchers:    money.Plain(g.Vouchers),
		Net:         money.Plain(g.Net),
		NetDisplay:  money.Format(g.Net),
		Employees:   g.Employees,
	}
}

func toPayRowDTO(res payroll.EmployeeResult) PayRowDTO {
	b := res.Breakdown
	row := PayRowDTO{
		ID:               string(res.Employee.ID),
		Name:             res.Employee.FullName,
		Area:             res.Employee.Area,
		Company:          string(res.Employee.Company),
		DailyRate:        money.Plain(b.DailyRate),
		BasePay:          money.Plain(b.BasePay),
		OvertimePay:      money.Plain(b.OvertimePay),
		Productivity:     money.Plain(b.ProductivityApplied),
		Attendance:       money.Plain(b.AttendanceApplied),
		Cleaning:         money.Plain(b.CleaningApplied),
		ExtraIncentive:   money.Plain(b.ExtraIncentive),
		AbsenceDeduction: money.Plain(b.AbsenceDeduction),
		LatenessDeduct:   money.Plain(b.LatenessDeduction),
		FixedDeductions:  money.Plain(b.FixedDeductions),
		ExtraDeduction:   money.Plain(b.ExtraDeduction),
		Gross:            money.Plain(b.Gross),
		FiscalGross:      money.Plain(b.FiscalGross),
		Internal:         money.Plain(b.Internal),
		Voucher:          money.Plain(b.Voucher),
		Net:              money.Plain(b.Net),
		NetDisplay:       money.Format(b.Net),
	}
	if !b.VacationPremium.IsZero() {
		row.VacationPremium = money.Plain(b.VacationPremium)
	}
	if !b.YearEndBonus.IsZero() {
		row.YearEndBonus = money.Plain(b.YearEndBonus)
	}
	return row
}

// writeCatalog renders a parameter set in the catalog wire format.
func writeCatalog(w http.ResponseWriter, employees []payroll.Employee, updatedAt time.Time) {
	doc, err := factory.RenderCatalog(employees)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, CatalogDTO{
		UpdatedAt: updatedAt.Format(time.RFC3339),
		Employees: doc,
	})
}

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
