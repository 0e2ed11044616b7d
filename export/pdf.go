package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/innovareegautomation-dev/Nomina-Innovart/money"
)

// WritePDF renders the report as a printable A4 summary: one block per
// company with a row per employee and a totals line, then the global
// summary.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Resumen de Nomina")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Fecha: %s  -  Periodo %s (%s)  -  %d dias  -  Semana %d",
		r.Date.Format("2006-01-02"), r.Period.Key, modeLabel(r.Period.Mode), r.Period.Days, r.Period.Week))
	pdf.Ln(10)

	for _, section := range r.Companies {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, string(section.Company))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(62, 6, "Empleado", "1", 0, "L", false, 0, "")
		pdf.CellFormat(26, 6, "Base", "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, "Horas extra", "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, "Percepciones", "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, "Interna", "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, "Neto", "1", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, res := range section.Results {
			if res.Err != nil {
				pdf.CellFormat(62, 6, res.Employee.FullName, "1", 0, "L", false, 0, "")
				pdf.CellFormat(128, 6, "omitido: registro invalido", "1", 1, "L", false, 0, "")
				continue
			}
			b := res.Breakdown
			pdf.CellFormat(62, 6, res.Employee.FullName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(26, 6, money.Format(b.BasePay.Add(b.AttendanceApplied)), "1", 0, "R", false, 0, "")
			pdf.CellFormat(26, 6, money.Format(b.OvertimePay), "1", 0, "R", false, 0, "")
			pdf.CellFormat(26, 6, money.Format(b.Gross), "1", 0, "R", false, 0, "")
			pdf.CellFormat(24, 6, money.Format(b.Internal), "1", 0, "R", false, 0, "")
			pdf.CellFormat(26, 6, money.Format(b.Net), "1", 1, "R", false, 0, "")
		}

		t := section.Totals
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(62, 6, "Totales", "1", 0, "L", false, 0, "")
		pdf.CellFormat(26, 6, money.Format(t.BasePay), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, money.Format(t.OvertimePay), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, money.Format(t.Gross), "1", 0, "R", false, 0, "")
		pdf.CellFormat(24, 6, money.Format(t.Internal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, money.Format(t.Net), "1", 1, "R", false, 0, "")
		pdf.Ln(6)
	}

	g := r.Global
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Resumen General")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Sueldo base: %s   Bonos (prod + limp): %s   Horas extra: %s",
		money.Format(g.BasePay), money.Format(g.BonusTotal), money.Format(g.OvertimePay)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Percepciones: %s   Interna: %s   Neto: %s",
		money.Format(g.Gross), money.Format(g.Internal), money.Format(g.Net)))
	if g.Skipped > 0 {
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Empleados omitidos por registro invalido: %d", g.Skipped))
	}

	return pdf.Output(w)
}
