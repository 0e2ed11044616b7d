package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/innovareegautomation-dev/Nomina-Innovart/money"
)

// csvHeader mirrors the spreadsheet the administrators import.
var csvHeader = []string{
	"Empresa",
	"Nombre",
	"Área / Puesto",
	"Sueldo mensual",
	"Periodo",
	"Clave periodo",
	"Fecha",
	"Faltas",
	"Retardos",
	"Horas extra",
	"Productividad aplicada",
	"Asistencia aplicada",
	"Limpieza aplicada",
	"Otros incentivos",
	"Otros descuentos",
	"Vales",
	"SDI",
	"Sueldo periodo (L)",
	"Percepciones (U)",
	"INTERNAL (Y)",
	"Sueldo neto",
}

// WriteCSV renders the report as CRLF-terminated CSV: one row per
// employee, a totals row per company. Skipped employees produce no
// data row; they are visible in the totals row's skipped count.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	dateLabel := r.Date.Format("2006-01-02")
	periodLabel := modeLabel(r.Period.Mode)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, section := range r.Companies {
		for _, res := range section.Results {
			if res.Err != nil {
				continue
			}
			emp, b, c := res.Employee, res.Breakdown, res.Capture
			row := []string{
				string(section.Company),
				emp.FullName,
				emp.Area,
				money.Plain(emp.MonthlySalary),
				periodLabel,
				r.Period.Key,
				dateLabel,
				strconv.Itoa(c.AbsenceDays),
				strconv.Itoa(c.LatenessCount),
				strconv.Itoa(int(c.OvertimeHours)),
				money.Plain(b.ProductivityApplied),
				money.Plain(b.AttendanceApplied),
				money.Plain(b.CleaningApplied),
				money.Plain(b.ExtraIncentive),
				money.Plain(b.ExtraDeduction),
				money.Plain(b.Voucher),
				money.Plain(b.SDI),
				money.Plain(b.BasePay.Add(b.AttendanceApplied)),
				money.Plain(b.Gross),
				money.Plain(b.Internal),
				money.Plain(b.Net),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		if err := cw.Write(totalsRow(section, periodLabel, r.Period.Key, dateLabel)); err != nil {
			return fmt.Errorf("write csv totals: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func totalsRow(section CompanySection, periodLabel, key, dateLabel string) []string {
	t := section.Totals
	skipped := ""
	if n := len(t.Skipped); n > 0 {
		skipped = fmt.Sprintf("omitidos: %d", n)
	}
	return []string{
		fmt.Sprintf("%s (Totales)", section.Company),
		skipped,
		"",
		"",
		periodLabel,
		key,
		dateLabel,
		"", "", "",
		money.Plain(t.BonusTotal),
		"", "",
		"", "",
		money.Plain(t.Vouchers),
		"",
		money.Plain(t.BasePay),
		money.Plain(t.Gross),
		money.Plain(t.Internal),
		money.Plain(t.Net),
	}
}
