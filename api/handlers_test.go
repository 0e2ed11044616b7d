/*
handlers_test.go - HTTP tests for the API surface

Tests run against a real router and an in-memory SQLite store, end to
end: request in, JSON out.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innovareegautomation-dev/Nomina-Innovart/factory"
	"github.com/innovareegautomation-dev/Nomina-Innovart/store/sqlite"
)

func newTestServer(t *testing.T) (*chiServer, *sqlite.Store) {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return &chiServer{router: NewRouter(NewHandler(st))}, st
}

type chiServer struct {
	router http.Handler
}

func (s *chiServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		doc, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(doc)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// seedWorkingSet imports the seed roster as the working set.
func seedWorkingSet(t *testing.T, srv *chiServer) {
	t.Helper()
	doc, err := factory.RenderCatalog(factory.Seed())
	require.NoError(t, err)
	rec := srv.do(t, http.MethodPut, "/api/parameters", doc)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ok")
}

func TestParameters_ImportThenGet(t *testing.T) {
	srv, _ := newTestServer(t)
	seedWorkingSet(t, srv)

	rec := srv.do(t, http.MethodGet, "/api/parameters", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	catalog := decode[CatalogDTO](t, rec)
	employees, err := factory.ParseCatalog(catalog.Employees)
	require.NoError(t, err)
	require.Len(t, employees, len(factory.Seed()))
	require.NotEmpty(t, catalog.UpdatedAt)
}

func TestParameters_InvalidImport(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := srv.do(t, http.MethodPut, "/api/parameters", []byte(`{"not":"an array"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPut, "/api/parameters", []byte(`[{"nombre":"sin id","sueldoMensual":1}]`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParameters_GetBeforeAnySave(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/api/parameters", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParameters_ActivateFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	// Nothing to activate yet.
	rec := srv.do(t, http.MethodPost, "/api/parameters/activate", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	seedWorkingSet(t, srv)
	rec = srv.do(t, http.MethodPost, "/api/parameters/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decode[ActivateResponse](t, rec).ActivatedAt)

	rec = srv.do(t, http.MethodGet, "/api/parameters/active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAddEmployee_GeneratesIDAndRejectsDuplicates(t *testing.T) {
	srv, _ := newTestServer(t)
	seedWorkingSet(t, srv)

	salary := 9500.0
	rec := srv.do(t, http.MethodPost, "/api/parameters/employees", AddEmployeeRequest{
		Company:       "Innovart Metal Design",
		Name:          "Nuevo Empleado",
		MonthlySalary: &salary,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[AddEmployeeRequest](t, rec)
	require.NotEmpty(t, created.ID)

	// Same id again conflicts.
	rec = srv.do(t, http.MethodPost, "/api/parameters/employees", created)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Missing salary is rejected.
	rec = srv.do(t, http.MethodPost, "/api/parameters/employees", AddEmployeeRequest{
		Name: "Sin Sueldo",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEmployee(t *testing.T) {
	srv, _ := newTestServer(t)
	seedWorkingSet(t, srv)

	rec := srv.do(t, http.MethodDelete, "/api/parameters/employees/inv-diego", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/parameters/employees/inv-diego", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/parameters", nil)
	catalog := decode[CatalogDTO](t, rec)
	employees, err := factory.ParseCatalog(catalog.Employees)
	require.NoError(t, err)
	require.Len(t, employees, len(factory.Seed())-1)
}

func TestCaptures_PutThenGet(t *testing.T) {
	srv, _ := newTestServer(t)

	capture := CaptureDTO{AbsenceDays: 1, OvertimeHours: 2.5, CleaningApproved: true}
	rec := srv.do(t, http.MethodPut, "/api/captures/2025-03-H1/inv-diego", capture)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/captures/2025-03-H1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	captures := decode[map[string]CaptureDTO](t, rec)
	require.Len(t, captures, 1)
	require.Equal(t, 2.5, captures["inv-diego"].OvertimeHours)
	require.True(t, captures["inv-diego"].CleaningApproved)

	// Other periods stay empty.
	rec = srv.do(t, http.MethodGet, "/api/captures/2025-03-H2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[map[string]CaptureDTO](t, rec))
}

func TestPayroll_ReferenceScenario(t *testing.T) {
	srv, _ := newTestServer(t)

	// One employee: 9000 monthly, productivity 600, attendance 500.
	salary := 9000.0
	catalog := []factory.EmployeeJSON{{
		ID:            "inv-diego",
		Company:       "Innovart Metal Design",
		Name:          "Diego Martín Rico Alvarado",
		MonthlySalary: &salary,
		VoucherLimit:  1375.78,
		Bonuses: []factory.BonusJSON{
			{ID: "b-prod", Name: "Productividad", Category: "productividad", Kind: "percepcion", Amount: 600},
			{ID: "b-asist", Name: "Asistencia", Category: "asistencia", Kind: "percepcion", Amount: 500},
		},
	}}
	doc, err := json.Marshal(catalog)
	require.NoError(t, err)
	rec := srv.do(t, http.MethodPut, "/api/parameters", doc)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = srv.do(t, http.MethodPost, "/api/parameters/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPut, "/api/captures/2025-03-H1/inv-diego", CaptureDTO{OvertimeHours: 5})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/payroll?date=2025-03-15&mode=quincenal&goal=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[PayrollResponse](t, rec)
	require.Equal(t, "2025-03-H1", resp.Period.Key)
	require.Equal(t, 15, resp.Period.Days)
	require.True(t, resp.GoalMet)
	require.Len(t, resp.Companies, 1)
	require.Len(t, resp.Companies[0].Rows, 1)

	row := resp.Companies[0].Rows[0]
	require.Equal(t, "300.00", row.DailyRate)
	require.Equal(t, "4500.00", row.BasePay)
	require.Equal(t, "187.50", row.OvertimePay)
	require.Equal(t, "5787.50", row.Gross)
	require.Equal(t, "1375.78", row.Voucher)
	require.Equal(t, "4411.72", row.Net)
	require.Equal(t, "$4,411.72", row.NetDisplay)
	require.Equal(t, "4411.72", resp.Global.Net)
}

func TestPayroll_UsesPersistedGoalWhenNoOverride(t *testing.T) {
	srv, _ := newTestServer(t)
	seedWorkingSet(t, srv)

	rec := srv.do(t, http.MethodPut, "/api/settings/goal", GoalDTO{GoalMet: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/payroll?date=2025-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[PayrollResponse](t, rec).GoalMet)

	// Explicit override wins over the stored flag.
	rec = srv.do(t, http.MethodGet, "/api/payroll?date=2025-03-15&goal=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[PayrollResponse](t, rec).GoalMet)
}

func TestPayroll_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)
	seedWorkingSet(t, srv)

	rec := srv.do(t, http.MethodGet, "/api/payroll", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/payroll?date=15/03/2025", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayroll_NoParameterSet(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/api/payroll?date=2025-03-15", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPayroll_WeeklyMode(t *testing.T) {
	srv, _ := newTestServer(t)
	seedWorkingSet(t, srv)

	rec := srv.do(t, http.MethodGet, "/api/payroll?date=2025-03-15&mode=semanal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[PayrollResponse](t, rec)
	require.Equal(t, 7, resp.Period.Days)
	require.Equal(t, "2025-03-H1", resp.Period.Key)
}

func TestExportEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	seedWorkingSet(t, srv)

	rec := srv.do(t, http.MethodGet, "/api/payroll/export.csv?date=2025-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, rec.Header().Get("Content-Disposition"), "nomina-2025-03-H1.csv")
	require.True(t, strings.HasPrefix(rec.Body.String(), "Empresa,"), "csv starts with header row")

	rec = srv.do(t, http.MethodGet, "/api/payroll/export.pdf?date=2025-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestCaptureInfo(t *testing.T) {
	srv, st := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/payroll/capture", CaptureInfoDTO{
		Date: "2025-03-15",
		Mode: "quincenal",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	info := decode[CaptureInfoDTO](t, rec)
	require.Equal(t, "2025-03-H1", info.PeriodKey)
	require.NotEmpty(t, info.SavedAt)

	value, ok, err := st.GetSetting(context.Background(), sqlite.SettingCaptureInfo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, value, "2025-03-H1")

	rec = srv.do(t, http.MethodPost, "/api/payroll/capture", CaptureInfoDTO{Date: "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoalSetting_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/settings/goal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[GoalDTO](t, rec).GoalMet)

	rec = srv.do(t, http.MethodPut, "/api/settings/goal", GoalDTO{GoalMet: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/settings/goal", nil)
	require.True(t, decode[GoalDTO](t, rec).GoalMet)
}

func TestParseMode_AcceptsSpanishLabels(t *testing.T) {
	cases := map[string]string{
		"semanal":   "weekly",
		"quincenal": "biweekly",
		"weekly":    "weekly",
		"":          "biweekly",
		"otro":      "biweekly",
	}
	for in, want := range cases {
		require.Equal(t, want, string(parseMode(in)), fmt.Sprintf("input %q", in))
	}
}
