/*
seed.go - The roster the system ships with

PURPOSE:
  First-run data: the current employees of both companies with their
  agreed salaries, bonus catalogs and voucher limits. The store loads
  this once when the database is empty; afterwards the working catalog
  is whatever the administrator has edited.

NOTES:
  - Innovart voucher limit defaults to 1375.78 per person; EG defaults
    to zero
  - Cleaning eligibility is a flag on the record, set here for the one
    operator with a cleaning bonus
  - SDI figures are informational (IMSS daily base), not pay inputs
*/
package factory

import (
	"github.com/shopspring/decimal"

	"github.com/innovareegautomation-dev/Nomina-Innovart/payroll"
)

const innovartVoucherLimit = 1375.78

func bonus(id, label string, cat payroll.BonusCategory, amount float64) payroll.Bonus {
	return payroll.Bonus{
		ID:       id,
		Label:    label,
		Category: cat,
		Kind:     payroll.KindEarning,
		Amount:   decimal.NewFromFloat(amount),
	}
}

func employee(id string, company payroll.Company, name, area string, salary, vouchers, sdi float64, bonuses ...payroll.Bonus) payroll.Employee {
	return payroll.Employee{
		ID:             payroll.EmployeeID(id),
		Company:        company,
		FullName:       name,
		Area:           area,
		MonthlySalary:  decimal.NewFromFloat(salary),
		VoucherLimit:   decimal.NewFromFloat(vouchers),
		SDI:            decimal.NewFromFloat(sdi),
		SocialSecurity: sdi > 0,
		Bonuses:        bonuses,
	}
}

// Seed returns the initial parameter catalog.
func Seed() []payroll.Employee {
	blanca := employee("inv-blanca", payroll.CompanyInnovart,
		"Blanca Estela Gutiérrez Cerda", "Operador", 8364, innovartVoucherLimit, 292.54,
		bonus("b-prod", "Productividad", payroll.CategoryProductivity, 500),
		bonus("b-asist", "Asistencia", payroll.CategoryAttendance, 500),
		bonus("b-limp", "Limpieza y orden", payroll.CategoryCleaning, 200))
	blanca.CleaningEligible = true

	return []payroll.Employee{
		employee("inv-jorge", payroll.CompanyInnovart,
			"Jorge Abraham López Díaz", "Jefe de Planta", 13800, innovartVoucherLimit, 292.54,
			bonus("b-prod", "Productividad", payroll.CategoryProductivity, 1200),
			bonus("b-asist", "Asistencia", payroll.CategoryAttendance, 600)),
		blanca,
		employee("inv-diego", payroll.CompanyInnovart,
			"Diego Martín Rico Alvarado", "Diseñador", 9000, innovartVoucherLimit, 292.54,
			bonus("b-prod", "Productividad", payroll.CategoryProductivity, 600),
			bonus("b-asist", "Asistencia", payroll.CategoryAttendance, 500)),
		employee("inv-rosario", payroll.CompanyInnovart,
			"María del Rosario Contreras García", "Intendencia", 8364, innovartVoucherLimit, 292.54,
			bonus("b-asist", "Asistencia", payroll.CategoryAttendance, 500)),
		employee("inv-luis", payroll.CompanyInnovart,
			"Luis Fernando Eduardo Moreno Mondragón", "Operaciones", 24000, innovartVoucherLimit, 839.44,
			bonus("b-prod", "Productividad", payroll.CategoryProductivity, 4500),
			bonus("b-asist", "Asistencia", payroll.CategoryAttendance, 518.8)),
		employee("inv-emilio", payroll.CompanyInnovart,
			"Emilio González Javier", "Dirección", 15600, innovartVoucherLimit, 261.20),
		employee("inv-isabel", payroll.CompanyInnovart,
			"Isabel Emilio Cortés", "Administración", 8500, innovartVoucherLimit, 261.20),
		employee("inv-joaquin", payroll.CompanyInnovart,
			"Joaquín Estrada Monjaraz", "Recursos Humanos", 10000, innovartVoucherLimit, 0),
		employee("inv-lupita", payroll.CompanyInnovart,
			"María Guadalupe Torres Nieto", "Aux. Administrativo", 8364, innovartVoucherLimit, 0,
			bonus("b-asist", "Asistencia", payroll.CategoryAttendance, 418)),
		employee("eg-juan", payroll.CompanyEGAutomation,
			"Juan Manuel Sandoval Villalobos", "Integrador eléctrico", 8600, 0, 0,
			bonus("b-prod", "Productividad", payroll.CategoryProductivity, 1040),
			bonus("b-asist", "Asistencia", payroll.CategoryAttendance, 500)),
		employee("eg-alfredo", payroll.CompanyEGAutomation,
			"Alfredo Escobedo", "Asesor", 10000, 0, 0),
		employee("eg-juanita", payroll.CompanyEGAutomation,
			"Juanita Pérez", "Limpieza", 1850, 0, 0),
	}
}
