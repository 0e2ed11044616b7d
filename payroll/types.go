/*
Package payroll computes itemized pay for a roster of employees across
two companies.

PURPOSE:
  This package is the domain core: given one employee's parameters and
  the attendance captured for a pay period, it produces a fully
  itemized breakdown (ComputePay), tolerates bad records in a batch run
  (Run), and rolls results up into company and global totals
  (AggregateCompany / AggregateGlobal).

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: read-only parameters (salary, bonus catalog, voucher
    limit, fiscal figures)
  - Bonus: a catalog entry with an explicit category and kind
  - PeriodCapture: what the operator typed for one employee in one
    period (absences, lateness, overtime, ad-hoc adjustments)
  - RuleSet: the per-company policy switches

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every monetary amount
  2. Explicit eligibility: bonus categories and cleaning/productivity
     eligibility are enumerated fields, never inferred from label or
     name substrings
  3. Purity: the engine only reads these values; nothing here is
     mutated during a computation

SEE ALSO:
  - engine.go: ComputePay and the batch runner
  - aggregate.go: totals
  - factory/params.go: JSON catalog and seed roster
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// Company identifies the legal entity an employee belongs to.
type Company string

const (
	CompanyInnovart     Company = "Innovart Metal Design"
	CompanyEGAutomation Company = "EG Automation SA de CV"
)

// =============================================================================
// BONUS CATALOG
// =============================================================================

// BonusKind distinguishes earnings from fixed deductions. A deduction
// is always a positive magnitude that gets subtracted, never a
// negative earning.
type BonusKind string

const (
	KindEarning   BonusKind = "earning"
	KindDeduction BonusKind = "deduction"
)

// BonusCategory is the explicit classification of a bonus. Categories
// drive eligibility rules (attendance, productivity, cleaning); Other
// is an unconditional earning or deduction.
type BonusCategory string

const (
	CategoryProductivity BonusCategory = "productivity"
	CategoryAttendance   BonusCategory = "attendance"
	CategoryCleaning     BonusCategory = "cleaning"
	CategoryOther        BonusCategory = "other"
)

// Bonus is one entry of an employee's bonus catalog.
type Bonus struct {
	ID       string
	Label    string
	Category BonusCategory
	Kind     BonusKind
	Amount   decimal.Decimal
}

// =============================================================================
// EMPLOYEE - parameter record, read-only to the engine
// =============================================================================

type Employee struct {
	ID       EmployeeID
	Company  Company
	FullName string
	Area     string

	// MonthlySalary under the fixed 30-day month convention.
	MonthlySalary decimal.Decimal

	Bonuses []Bonus

	// VoucherLimit is the fixed voucher benefit, paid on the first
	// half-month only.
	VoucherLimit decimal.Decimal

	// Net-pay decomposition figures. Zero means unset.
	FiscalGross decimal.Decimal // declared/fiscal salary portion
	Dispersion  decimal.Decimal // portion already routed through the fiscal channel

	// Occasional extra earnings captured as parameters.
	VacationPremium decimal.Decimal
	YearEndBonus    decimal.Decimal

	// SDI is the IMSS daily contribution base. Informational only.
	SDI              decimal.Decimal
	SocialSecurity   bool
	CleaningEligible bool
}

var daysPerMonth = decimal.NewFromInt(30)

// DailyRate is the monthly salary over a fixed 30-day month.
func (e Employee) DailyRate() decimal.Decimal {
	return e.MonthlySalary.Div(daysPerMonth)
}

// BonusTotal sums the earning entries of one category.
func (e Employee) BonusTotal(cat BonusCategory) decimal.Decimal {
	total := decimal.Zero
	for _, b := range e.Bonuses {
		if b.Kind == KindEarning && b.Category == cat {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// FixedDeductions sums the deduction entries of the catalog.
func (e Employee) FixedDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, b := range e.Bonuses {
		if b.Kind == KindDeduction {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// Validate reports whether the record is usable by the engine. A bad
// record skips that employee, never the whole run.
func (e Employee) Validate() error {
	if e.ID == "" {
		return &MalformedEmployeeError{Name: e.FullName, Field: "id"}
	}
	if e.MonthlySalary.IsNegative() {
		return &MalformedEmployeeError{ID: e.ID, Name: e.FullName, Field: "monthlySalary"}
	}
	return nil
}

// =============================================================================
// PERIOD CAPTURE - what the operator typed for one employee, one period
// =============================================================================

// PeriodCapture holds the per-period attendance and adjustments. A
// missing capture reads as the zero value: no absences, no overtime,
// toggles off.
type PeriodCapture struct {
	AbsenceDays      int
	LatenessCount    int
	OvertimeHours    float64 // fractional hours are truncated at compute time
	ExtraIncentive   decimal.Decimal
	ExtraDeduction   decimal.Decimal
	CleaningApproved bool
}

// normalized applies the clamping contract: negative counts read as
// zero, overtime is floored to whole hours. Irregular input is not an
// error in a hand-operated tool; a visibly wrong zero beats a blocked
// payroll run.
func (c PeriodCapture) normalized() PeriodCapture {
	if c.AbsenceDays < 0 {
		c.AbsenceDays = 0
	}
	if c.LatenessCount < 0 {
		c.LatenessCount = 0
	}
	if c.OvertimeHours < 0 {
		c.OvertimeHours = 0
	}
	c.OvertimeHours = float64(int64(c.OvertimeHours))
	return c
}

// =============================================================================
// GLOBAL FLAGS AND COMPANY RULES
// =============================================================================

// GlobalFlags are supplied by the caller on every run; the engine
// never reads ambient state.
type GlobalFlags struct {
	// GoalMet gates the productivity bonus for eligible companies.
	GoalMet bool
}

// CompanyRule carries the policy switches that vary by legal entity.
type CompanyRule struct {
	// ProductivityEligible gates the productivity bonus category.
	ProductivityEligible bool

	// AttendanceOverride, when set, replaces the bonus-catalog
	// attendance amount with a flat per-company figure.
	AttendanceOverride *decimal.Decimal
}

// RuleSet is the full policy configuration for a run.
type RuleSet struct {
	Companies map[Company]CompanyRule

	// CleaningRequiresAttendance additionally gates the cleaning bonus
	// on attendance eligibility.
	CleaningRequiresAttendance bool
}

// Rule returns the rule for a company, zero value if unknown.
func (r RuleSet) Rule(c Company) CompanyRule {
	return r.Companies[c]
}

// DefaultRules reflects current policy: only Innovart pays the
// productivity bonus, attendance comes from the bonus catalog, and the
// cleaning bonus does not require attendance eligibility.
func DefaultRules() RuleSet {
	return RuleSet{
		Companies: map[Company]CompanyRule{
			CompanyInnovart:     {ProductivityEligible: true},
			CompanyEGAutomation: {},
		},
	}
}
