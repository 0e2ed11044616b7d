/*
Package export renders a computed payroll run as CSV or PDF.

PURPOSE:
  The export sink of the system. It consumes read-only breakdowns and
  totals - row per employee, trailing totals row per company, global
  summary - and knows nothing about how they were computed.

FORMATS:
  CSV: the spreadsheet the administrator opens in Excel. Spanish
       column headers, CRLF line endings, every field quoted, matching
       the sheet layout the operators already use.
  PDF: a printable summary per company plus the global totals.

SEE ALSO:
  - csv.go, pdf.go: the writers
  - api/handlers.go: the download endpoints
*/
package export

import (
	"time"

	"github.com/innovareegautomation-dev/Nomina-Innovart/calendar"
	"github.com/innovareegautomation-dev/Nomina-Innovart/payroll"
)

// =============================================================================
// REPORT - the export input contract
// =============================================================================

// Report is the fully computed payroll run handed to a writer.
type Report struct {
	Date      time.Time
	Period    calendar.PeriodContext
	Companies []CompanySection
	Global    payroll.GlobalTotals
}

// CompanySection is one company's rows plus its totals line.
type CompanySection struct {
	Company payroll.Company
	Results []payroll.EmployeeResult
	Totals  payroll.CompanyTotals
}

// BuildReport groups run results by company and aggregates totals.
func BuildReport(date time.Time, period calendar.PeriodContext, results []payroll.EmployeeResult) Report {
	groups, order := payroll.GroupByCompany(results)

	r := Report{Date: date, Period: period}
	var companyTotals []payroll.CompanyTotals
	for _, company := range order {
		totals := payroll.AggregateCompany(company, groups[company])
		r.Companies = append(r.Companies, CompanySection{
			Company: company,
			Results: groups[company],
			Totals:  totals,
		})
		companyTotals = append(companyTotals, totals)
	}
	r.Global = payroll.AggregateGlobal(companyTotals)
	return r
}

// modeLabel renders the period mode the way the reports name it.
func modeLabel(m calendar.Mode) string {
	if m == calendar.ModeWeekly {
		return "semanal"
	}
	return "quincenal"
}
