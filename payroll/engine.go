/*
engine.go - The pay computation

PURPOSE:
  ComputePay maps (employee parameters, period capture, period context,
  global flags, company rules) to an itemized PayBreakdown. It is a
  pure function: no I/O, no clock, no state between calls. Calling it
  twice with the same inputs yields the same breakdown.

RULES IMPLEMENTED (canonical set):
   1. dailyRate       = monthlySalary / 30
   2. basePay         = dailyRate * periodDays
   3. attendance      = bonus catalog (or company flat override) when
                        zero absences and fewer than 4 latenesses
   4. absence ded.    = one dailyRate at 4+ absences (flat, not
                        proportional; 1-3 absences cost nothing)
   5. lateness ded.   = dailyRate * floor(lateness / 4)
   6. overtime        = (dailyRate / 8) * floor(hours)
   7. productivity    = catalog sum, only when the goal is met AND the
                        company is flagged eligible
   8. cleaning        = catalog sum, only for flagged employees with
                        the per-period approval (optionally also gated
                        on attendance eligibility)
   9. gross           = base - absence - lateness + overtime
                        + productivity + attendance + cleaning
                        + vacation premium + year-end bonus
                        + extra incentive - extra deduction
                        - fixed catalog deductions
  10. voucher         = voucherLimit on the first half-month, else 0
  11. internal        = gross - fiscalGross
  12. net             = dispersion + internal; when dispersion and
                        fiscalGross are both unset this collapses to
                        gross - voucher

SEE ALSO:
  - types.go: the clamping contract applied before any math
  - aggregate.go: rolling breakdowns into totals
*/
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/innovareegautomation-dev/Nomina-Innovart/calendar"
)

var hoursPerDay = decimal.NewFromInt(8)

// =============================================================================
// PAY BREAKDOWN - derived, never stored
// =============================================================================

type PayBreakdown struct {
	DailyRate decimal.Decimal
	BasePay   decimal.Decimal

	// Earnings
	OvertimePay         decimal.Decimal
	ProductivityApplied decimal.Decimal
	AttendanceBase      decimal.Decimal // what attendance would pay; display
	AttendanceApplied   decimal.Decimal
	CleaningApplied     decimal.Decimal
	VacationPremium     decimal.Decimal
	YearEndBonus        decimal.Decimal
	ExtraIncentive      decimal.Decimal

	// Deductions
	AbsenceDeduction  decimal.Decimal
	LatenessDeduction decimal.Decimal
	FixedDeductions   decimal.Decimal
	ExtraDeduction    decimal.Decimal

	// Results
	Gross       decimal.Decimal
	FiscalGross decimal.Decimal
	Internal    decimal.Decimal
	Net         decimal.Decimal
	Voucher     decimal.Decimal

	// Informational
	SDI                decimal.Decimal
	AttendanceEligible bool
}

// =============================================================================
// COMPUTE
// =============================================================================

// ComputePay prices one employee for one period. See the file header
// for the rule set. The capture is normalized first (negative counts
// clamp to zero, overtime hours truncate), so irregular input degrades
// to zeros instead of failing.
func ComputePay(emp Employee, capture PeriodCapture, period calendar.PeriodContext, flags GlobalFlags, rules RuleSet) PayBreakdown {
	c := capture.normalized()
	rule := rules.Rule(emp.Company)

	dailyRate := emp.DailyRate()
	basePay := dailyRate.Mul(decimal.NewFromInt(int64(period.Days)))

	// Attendance: zero absences and fewer than 4 latenesses.
	attendanceBase := emp.BonusTotal(CategoryAttendance)
	if rule.AttendanceOverride != nil {
		attendanceBase = *rule.AttendanceOverride
	}
	attendanceOK := c.AbsenceDays == 0 && c.LatenessCount < 4
	attendanceApplied := decimal.Zero
	if attendanceOK {
		attendanceApplied = attendanceBase
	}

	// Absences: a flat one-day penalty at 4+, nothing below. This is a
	// step function, not linear.
	absenceDeduction := decimal.Zero
	if c.AbsenceDays >= 4 {
		absenceDeduction = dailyRate
	}

	// One day's pay per 4 full lateness occurrences.
	latenessDeduction := dailyRate.Mul(decimal.NewFromInt(int64(c.LatenessCount / 4)))

	// Overtime at an 8-hour-day hourly rate, whole hours only.
	overtimePay := dailyRate.Div(hoursPerDay).Mul(decimal.NewFromFloat(c.OvertimeHours))

	// Productivity: global goal plus company eligibility.
	productivityApplied := decimal.Zero
	if flags.GoalMet && rule.ProductivityEligible {
		productivityApplied = emp.BonusTotal(CategoryProductivity)
	}

	// Cleaning: flagged employee plus the per-period approval.
	cleaningApplied := decimal.Zero
	if emp.CleaningEligible && c.CleaningApproved {
		if !rules.CleaningRequiresAttendance || attendanceOK {
			cleaningApplied = emp.BonusTotal(CategoryCleaning)
		}
	}

	fixedDeductions := emp.FixedDeductions()

	gross := basePay.
		Sub(absenceDeduction).
		Sub(latenessDeduction).
		Add(overtimePay).
		Add(productivityApplied).
		Add(attendanceApplied).
		Add(cleaningApplied).
		Add(emp.VacationPremium).
		Add(emp.YearEndBonus).
		Add(c.ExtraIncentive).
		Sub(c.ExtraDeduction).
		Sub(fixedDeductions)

	voucher := decimal.Zero
	if period.FirstHalf {
		voucher = emp.VoucherLimit
	}

	internal := gross.Sub(emp.FiscalGross)

	// Net: dispersion plus the internal remainder. With no fiscal
	// decomposition at all, net is simply gross minus the voucher paid
	// in kind.
	var net decimal.Decimal
	if emp.FiscalGross.IsZero() && emp.Dispersion.IsZero() {
		net = gross.Sub(voucher)
	} else {
		net = emp.Dispersion.Add(internal)
	}

	return PayBreakdown{
		DailyRate:           dailyRate,
		BasePay:             basePay,
		OvertimePay:         overtimePay,
		ProductivityApplied: productivityApplied,
		AttendanceBase:      attendanceBase,
		AttendanceApplied:   attendanceApplied,
		CleaningApplied:     cleaningApplied,
		VacationPremium:     emp.VacationPremium,
		YearEndBonus:        emp.YearEndBonus,
		ExtraIncentive:      c.ExtraIncentive,
		AbsenceDeduction:    absenceDeduction,
		LatenessDeduction:   latenessDeduction,
		FixedDeductions:     fixedDeductions,
		ExtraDeduction:      c.ExtraDeduction,
		Gross:               gross,
		FiscalGross:         emp.FiscalGross,
		Internal:            internal,
		Net:                 net,
		Voucher:             voucher,
		SDI:                 emp.SDI,
		AttendanceEligible:  attendanceOK,
	}
}

// =============================================================================
// BATCH RUN - skip-and-continue over a roster
// =============================================================================

// EmployeeResult pairs an employee with either a breakdown or the
// reason the record was skipped. Capture is the raw record the
// breakdown was computed from, kept for reporting.
type EmployeeResult struct {
	Employee  Employee
	Capture   PeriodCapture
	Breakdown PayBreakdown
	Err       error
}

// Run prices every employee of a roster for one period. A missing
// capture reads as all-zero; a malformed record fails only its own
// result. Results come back in roster order.
func Run(employees []Employee, captures map[EmployeeID]PeriodCapture, period calendar.PeriodContext, flags GlobalFlags, rules RuleSet) []EmployeeResult {
	results := make([]EmployeeResult, 0, len(employees))
	for _, emp := range employees {
		if err := emp.Validate(); err != nil {
			results = append(results, EmployeeResult{Employee: emp, Err: err})
			continue
		}
		capture := captures[emp.ID]
		results = append(results, EmployeeResult{
			Employee:  emp,
			Capture:   capture,
			Breakdown: ComputePay(emp, capture, period, flags, rules),
		})
	}
	return results
}

// GroupByCompany splits results by legal entity, preserving roster
// order inside each group. Group keys come back sorted for stable
// report layout.
func GroupByCompany(results []EmployeeResult) (map[Company][]EmployeeResult, []Company) {
	groups := make(map[Company][]EmployeeResult)
	var order []Company
	for _, r := range results {
		if _, seen := groups[r.Employee.Company]; !seen {
			order = append(order, r.Employee.Company)
		}
		groups[r.Employee.Company] = append(groups[r.Employee.Company], r)
	}
	return groups, order
}
