package factory_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/innovareegautomation-dev/Nomina-Innovart/factory"
	"github.com/innovareegautomation-dev/Nomina-Innovart/payroll"
)

func TestParseCatalog_FullEntry(t *testing.T) {
	data := []byte(`[
	  {
	    "id": "inv-diego",
	    "empresa": "Innovart Metal Design",
	    "nombre": "Diego Martín Rico Alvarado",
	    "area": "Diseñador",
	    "sueldoMensual": 9000,
	    "limiteVales": 1375.78,
	    "sdi": 292.54,
	    "bonos": [
	      {"id": "b-prod", "nombre": "Productividad", "categoria": "productividad", "tipo": "percepcion", "monto": 600},
	      {"id": "b-desc", "nombre": "Ajuste", "tipo": "descuento", "monto": 50}
	    ]
	  }
	]`)

	employees, err := factory.ParseCatalog(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("got %d employees", len(employees))
	}
	emp := employees[0]
	if emp.ID != "inv-diego" || emp.Company != payroll.CompanyInnovart {
		t.Errorf("identity: %+v", emp)
	}
	if !emp.MonthlySalary.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("salary: %s", emp.MonthlySalary)
	}
	if emp.Bonuses[0].Category != payroll.CategoryProductivity {
		t.Errorf("category: %s", emp.Bonuses[0].Category)
	}
	// No categoria on the deduction: parses as "otro", still a deduction.
	if emp.Bonuses[1].Category != payroll.CategoryOther || emp.Bonuses[1].Kind != payroll.KindDeduction {
		t.Errorf("deduction entry: %+v", emp.Bonuses[1])
	}
}

func TestParseCatalog_Validation(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"not an array", `{"id": "x"}`, "JSON array"},
		{"missing salary", `[{"id": "x", "nombre": "X"}]`, "sueldoMensual"},
		{"missing id", `[{"nombre": "X", "sueldoMensual": 1}]`, "id"},
		{"unknown category", `[{"id": "x", "nombre": "X", "sueldoMensual": 1,
		  "bonos": [{"id": "b", "nombre": "B", "categoria": "misterio", "tipo": "percepcion", "monto": 1}]}]`, "categoria"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factory.ParseCatalog([]byte(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRenderCatalog_RoundTrips(t *testing.T) {
	data, err := factory.RenderCatalog(factory.Seed())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed, err := factory.ParseCatalog(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	seed := factory.Seed()
	if len(parsed) != len(seed) {
		t.Fatalf("got %d, want %d", len(parsed), len(seed))
	}
	for i := range seed {
		if parsed[i].ID != seed[i].ID || !parsed[i].MonthlySalary.Equal(seed[i].MonthlySalary) {
			t.Errorf("entry %d diverged: %+v vs %+v", i, parsed[i], seed[i])
		}
		if len(parsed[i].Bonuses) != len(seed[i].Bonuses) {
			t.Errorf("entry %d bonus count diverged", i)
		}
	}
}

func TestSeed_Shape(t *testing.T) {
	seed := factory.Seed()
	if len(seed) != 12 {
		t.Fatalf("got %d employees", len(seed))
	}
	cleaning := 0
	for _, emp := range seed {
		if err := emp.Validate(); err != nil {
			t.Errorf("seed employee %s invalid: %v", emp.ID, err)
		}
		if emp.CleaningEligible {
			cleaning++
			if emp.BonusTotal(payroll.CategoryCleaning).IsZero() {
				t.Errorf("cleaning-eligible %s has no cleaning bonus", emp.ID)
			}
		}
		switch emp.Company {
		case payroll.CompanyInnovart, payroll.CompanyEGAutomation:
		default:
			t.Errorf("unknown company %q", emp.Company)
		}
	}
	if cleaning != 1 {
		t.Errorf("expected exactly one cleaning-eligible employee, got %d", cleaning)
	}
}
