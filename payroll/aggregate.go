/*
aggregate.go - Company and global totals

PURPOSE:
  Rolls per-employee breakdowns into the totals row of each company
  table and the global summary. Sums are plain additions over decimals:
  associative, order-independent, no special cases.

DISPLAY CONVENTION:
  - BasePay folds the applied attendance bonus into the base column
  - BonusTotal covers productivity + cleaning only (attendance and
    ad-hoc incentives are their own columns)
  Both conventions come straight from the report layout the operators
  already read.

SKIPPED EMPLOYEES:
  Totals sum successful results only. Skipped records are counted and
  identified so a report can flag them without poisoning the sums.
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// TOTALS
// =============================================================================

type CompanyTotals struct {
	Company Company

	BasePay     decimal.Decimal // base period pay + applied attendance
	OvertimePay decimal.Decimal
	BonusTotal  decimal.Decimal // productivity + cleaning
	Gross       decimal.Decimal
	Internal    decimal.Decimal
	Net         decimal.Decimal
	Vouchers    decimal.Decimal

	Employees int
	Skipped   []EmployeeID
}

type GlobalTotals struct {
	BasePay     decimal.Decimal
	OvertimePay decimal.Decimal
	BonusTotal  decimal.Decimal
	Gross       decimal.Decimal
	Internal    decimal.Decimal
	Net         decimal.Decimal
	Vouchers    decimal.Decimal

	Employees int
	Skipped   int
}

// AggregateCompany sums one company's results. Failed results
// contribute nothing to the sums and are reported in Skipped.
func AggregateCompany(company Company, results []EmployeeResult) CompanyTotals {
	t := CompanyTotals{Company: company}
	for _, r := range results {
		if r.Err != nil {
			t.Skipped = append(t.Skipped, r.Employee.ID)
			continue
		}
		b := r.Breakdown
		t.BasePay = t.BasePay.Add(b.BasePay).Add(b.AttendanceApplied)
		t.OvertimePay = t.OvertimePay.Add(b.OvertimePay)
		t.BonusTotal = t.BonusTotal.Add(b.ProductivityApplied).Add(b.CleaningApplied)
		t.Gross = t.Gross.Add(b.Gross)
		t.Internal = t.Internal.Add(b.Internal)
		t.Net = t.Net.Add(b.Net)
		t.Vouchers = t.Vouchers.Add(b.Voucher)
		t.Employees++
	}
	return t
}

// AggregateGlobal is a sum of sums over company totals.
func AggregateGlobal(companies []CompanyTotals) GlobalTotals {
	var g GlobalTotals
	for _, c := range companies {
		g.BasePay = g.BasePay.Add(c.BasePay)
		g.OvertimePay = g.OvertimePay.Add(c.OvertimePay)
		g.BonusTotal = g.BonusTotal.Add(c.BonusTotal)
		g.Gross = g.Gross.Add(c.Gross)
		g.Internal = g.Internal.Add(c.Internal)
		g.Net = g.Net.Add(c.Net)
		g.Vouchers = g.Vouchers.Add(c.Vouchers)
		g.Employees += c.Employees
		g.Skipped += len(c.Skipped)
	}
	return g
}
