/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

FIELD LANGUAGE:
  Payroll-facing fields keep their Spanish names (sueldoBase, neto,
  faltas...) because that is the vocabulary of the operators and of the
  exported files. The parameter catalog endpoints speak the factory
  wire format directly.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/params.go: catalog wire format
*/
package api

import (
	"encoding/json"

	"github.com/innovareegautomation-dev/Nomina-Innovart/factory"
)

// =============================================================================
// PARAMETER CATALOG
// =============================================================================

// CatalogDTO wraps a parameter set with its last-saved timestamp.
// Employees is the factory wire format verbatim.
type CatalogDTO struct {
	UpdatedAt string          `json:"updatedAt"`
	Employees json.RawMessage `json:"employees"`
}

// AddEmployeeRequest is one catalog entry to append to the working set.
// An empty id gets a generated one.
type AddEmployeeRequest = factory.EmployeeJSON

// ActivateResponse reports when the working set became active.
type ActivateResponse struct {
	ActivatedAt string `json:"activatedAt"`
}

// =============================================================================
// CAPTURES
// =============================================================================

// CaptureDTO is one employee's attendance record for a period.
type CaptureDTO struct {
	AbsenceDays      int     `json:"faltas"`
	LatenessCount    int     `json:"retardos"`
	OvertimeHours    float64 `json:"horasExtra"`
	ExtraIncentive   float64 `json:"otrosIngresos"`
	ExtraDeduction   float64 `json:"otrasDeducciones"`
	CleaningApproved bool    `json:"limpiezaAprobada"`
}

// CaptureInfoDTO marks the last captured period for the summary view.
type CaptureInfoDTO struct {
	Date      string `json:"fecha"`
	Mode      string `json:"modo"`
	PeriodKey string `json:"periodo"`
	SavedAt   string `json:"guardadoEn,omitempty"`
}

// =============================================================================
// PAYROLL RESULTS
// =============================================================================

// PeriodDTO describes the resolved pay period.
type PeriodDTO struct {
	Key       string `json:"clave"`
	Start     string `json:"inicio"`
	End       string `json:"fin"`
	Days      int    `json:"dias"`
	FirstHalf bool   `json:"primeraQuincena"`
	Week      int    `json:"semana"`
	Mode      string `json:"modo"`
}

// PayRowDTO is one employee's computed breakdown. Amounts are plain
// decimal strings with two digits; Net additionally carries the
// display form.
type PayRowDTO struct {
	ID               string `json:"id"`
	Name             string `json:"nombre"`
	Area             string `json:"area,omitempty"`
	Company          string `json:"empresa"`
	DailyRate        string `json:"tarifaDiaria"`
	BasePay          string `json:"sueldoBase"`
	OvertimePay      string `json:"horasExtra"`
	Productivity     string `json:"bonoProductividad"`
	Attendance       string `json:"bonoAsistencia"`
	Cleaning         string `json:"bonoLimpieza"`
	VacationPremium  string `json:"primaVacacional,omitempty"`
	YearEndBonus     string `json:"aguinaldo,omitempty"`
	ExtraIncentive   string `json:"otrosIngresos"`
	AbsenceDeduction string `json:"descFaltas"`
	LatenessDeduct   string `json:"descRetardos"`
	FixedDeductions  string `json:"descuentosFijos"`
	ExtraDeduction   string `json:"otrasDeducciones"`
	Gross            string `json:"percepciones"`
	FiscalGross      string `json:"sueldoFiscal"`
	Internal         string `json:"pagoInterno"`
	Voucher          string `json:"vales"`
	Net              string `json:"neto"`
	NetDisplay       string `json:"netoFmt"`
}

// SkippedDTO reports an employee the run could not compute.
type SkippedDTO struct {
	ID     string `json:"id"`
	Name   string `json:"nombre,omitempty"`
	Reason string `json:"motivo"`
}

// TotalsDTO carries aggregated amounts for one company or globally.
type TotalsDTO struct {
	Company     string `json:"empresa,omitempty"`
	BasePay     string `json:"sueldoBase"`
	OvertimePay string `json:"horasExtra"`
	BonusTotal  string `json:"bonos"`
	Gross       string `json:"percepciones"`
	Internal    string `json:"pagoInterno"`
	Vouchers    string `json:"vales"`
	Net         string `json:"neto"`
	NetDisplay  string `json:"netoFmt"`
	Employees   int    `json:"empleados"`
}

// CompanySectionDTO groups one company's rows with its totals.
type CompanySectionDTO struct {
	Company string      `json:"empresa"`
	Rows    []PayRowDTO `json:"empleados"`
	Totals  TotalsDTO   `json:"totales"`
}

// PayrollResponse is the full computation result for one period.
type PayrollResponse struct {
	Date      string              `json:"fecha"`
	Period    PeriodDTO           `json:"periodo"`
	GoalMet   bool                `json:"metaCumplida"`
	Companies []CompanySectionDTO `json:"empresas"`
	Global    TotalsDTO           `json:"global"`
	Skipped   []SkippedDTO        `json:"omitidos,omitempty"`
}

// =============================================================================
// SETTINGS
// =============================================================================

// GoalDTO is the persisted goal-met flag.
type GoalDTO struct {
	GoalMet bool `json:"metaCumplida"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
