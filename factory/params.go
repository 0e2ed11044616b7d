/*
Package factory converts JSON parameter catalogs into domain records.

PURPOSE:
  The parameter catalog (salaries, bonus lists, voucher limits) is
  exchanged as JSON so the administrator can back it up, hand-edit it,
  and re-import it. This package parses and renders that format and
  carries the seed roster the system ships with.

WIRE FORMAT:
  Field names stay in Spanish because that is the format the existing
  exported files use. What changed from the legacy format: every bonus
  carries an explicit "categoria" (productividad | asistencia |
  limpieza | otro) and eligibility is a flag ("elegibleLimpieza"), so
  nothing is ever inferred from a label or a person's name. A bonus
  with no category parses as "otro" - it still pays, it just gates
  nothing.

  [
    {
      "id": "inv-diego",
      "empresa": "Innovart Metal Design",
      "nombre": "Diego Martín Rico Alvarado",
      "area": "Diseñador",
      "sueldoMensual": 9000,
      "limiteVales": 1375.78,
      "bonos": [
        {"id": "b-prod", "nombre": "Productividad",
         "categoria": "productividad", "tipo": "percepcion", "monto": 600}
      ]
    }
  ]

VALIDATION:
  Mirrors the import rules of the legacy tool: the payload must be an
  array, and every entry needs an id, a name, and a numeric monthly
  salary. Deeper validation is the engine's job at compute time.

SEE ALSO:
  - payroll/types.go: the records this package produces
  - api/handlers.go: import/export endpoints
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/innovareegautomation-dev/Nomina-Innovart/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// EmployeeJSON is the wire representation of one catalog entry.
type EmployeeJSON struct {
	ID              string          `json:"id"`
	Company         string          `json:"empresa"`
	Name            string          `json:"nombre"`
	Area            string          `json:"area,omitempty"`
	MonthlySalary   *float64        `json:"sueldoMensual"`
	VoucherLimit    float64         `json:"limiteVales,omitempty"`
	FiscalGross     float64         `json:"sueldoFiscalBruto,omitempty"`
	Dispersion      float64         `json:"dispersionBase,omitempty"`
	VacationPremium float64         `json:"primaVacacional,omitempty"`
	YearEndBonus    float64         `json:"aguinaldo,omitempty"`
	SDI             float64         `json:"sdi,omitempty"`
	SocialSecurity  bool            `json:"imss,omitempty"`
	CleaningOK      bool            `json:"elegibleLimpieza,omitempty"`
	Bonuses         []BonusJSON     `json:"bonos,omitempty"`
}

// BonusJSON is the wire representation of one bonus entry.
type BonusJSON struct {
	ID       string  `json:"id"`
	Name     string  `json:"nombre"`
	Category string  `json:"categoria,omitempty"`
	Kind     string  `json:"tipo"` // "percepcion" | "descuento"
	Amount   float64 `json:"monto"`
}

// =============================================================================
// PARSING
// =============================================================================

var categories = map[string]payroll.BonusCategory{
	"productividad": payroll.CategoryProductivity,
	"asistencia":    payroll.CategoryAttendance,
	"limpieza":      payroll.CategoryCleaning,
	"otro":          payroll.CategoryOther,
	"":              payroll.CategoryOther,
}

// ParseCatalog parses a JSON parameter catalog into employee records.
func ParseCatalog(data []byte) ([]payroll.Employee, error) {
	var entries []EmployeeJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parameter catalog must be a JSON array of employees: %w", err)
	}

	employees := make([]payroll.Employee, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" || e.Name == "" || e.MonthlySalary == nil {
			return nil, fmt.Errorf("entry %d: id, nombre and sueldoMensual are required", i)
		}
		emp := payroll.Employee{
			ID:               payroll.EmployeeID(e.ID),
			Company:          payroll.Company(e.Company),
			FullName:         e.Name,
			Area:             e.Area,
			MonthlySalary:    decimal.NewFromFloat(*e.MonthlySalary),
			VoucherLimit:     decimal.NewFromFloat(e.VoucherLimit),
			FiscalGross:      decimal.NewFromFloat(e.FiscalGross),
			Dispersion:       decimal.NewFromFloat(e.Dispersion),
			VacationPremium:  decimal.NewFromFloat(e.VacationPremium),
			YearEndBonus:     decimal.NewFromFloat(e.YearEndBonus),
			SDI:              decimal.NewFromFloat(e.SDI),
			SocialSecurity:   e.SocialSecurity,
			CleaningEligible: e.CleaningOK,
		}
		for j, b := range e.Bonuses {
			cat, ok := categories[b.Category]
			if !ok {
				return nil, fmt.Errorf("entry %d bonus %d: unknown categoria %q", i, j, b.Category)
			}
			kind := payroll.KindEarning
			if b.Kind == "descuento" {
				kind = payroll.KindDeduction
			}
			emp.Bonuses = append(emp.Bonuses, payroll.Bonus{
				ID:       b.ID,
				Label:    b.Name,
				Category: cat,
				Kind:     kind,
				Amount:   decimal.NewFromFloat(b.Amount),
			})
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// RenderCatalog renders employee records back into the wire format.
// Parse(Render(x)) round-trips.
func RenderCatalog(employees []payroll.Employee) ([]byte, error) {
	entries := make([]EmployeeJSON, 0, len(employees))
	for _, emp := range employees {
		salary, _ := emp.MonthlySalary.Float64()
		e := EmployeeJSON{
			ID:              string(emp.ID),
			Company:         string(emp.Company),
			Name:            emp.FullName,
			Area:            emp.Area,
			MonthlySalary:   &salary,
			VoucherLimit:    toFloat(emp.VoucherLimit),
			FiscalGross:     toFloat(emp.FiscalGross),
			Dispersion:      toFloat(emp.Dispersion),
			VacationPremium: toFloat(emp.VacationPremium),
			YearEndBonus:    toFloat(emp.YearEndBonus),
			SDI:             toFloat(emp.SDI),
			SocialSecurity:  emp.SocialSecurity,
			CleaningOK:      emp.CleaningEligible,
		}
		for _, b := range emp.Bonuses {
			kind := "percepcion"
			if b.Kind == payroll.KindDeduction {
				kind = "descuento"
			}
			e.Bonuses = append(e.Bonuses, BonusJSON{
				ID:       b.ID,
				Name:     b.Label,
				Category: legacyCategory(b.Category),
				Kind:     kind,
				Amount:   toFloat(b.Amount),
			})
		}
		entries = append(entries, e)
	}
	return json.MarshalIndent(entries, "", "  ")
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func legacyCategory(c payroll.BonusCategory) string {
	for name, cat := range categories {
		if cat == c && name != "" {
			return name
		}
	}
	return "otro"
}
