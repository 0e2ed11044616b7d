/*
Package calendar provides the date arithmetic the payroll run depends on.

PURPOSE:
  Pay periods are calendar half-months ("fortnights" in payroll slang):
  days 1-15 and 16-end. Everything the engine needs from a reference
  date lives here:
  - Fortnight boundaries and inclusive length
  - The period key used to scope captured attendance records
  - ISO week numbering (display only, never used in pay math)

KEY DECISIONS:
  Fortnight length is calendar-accurate. The second half of February is
  13 days (14 in leap years), not a rounded 15. Totals for short months
  therefore reflect the days actually in the period.

  Period keys are fortnight-based even in weekly mode. Weekly mode only
  changes the number of paid days; captured records stay addressable
  under the same key, so toggling the mode never orphans a capture.

USAGE:
  pc, err := calendar.Resolve(date, calendar.ModeBiweekly)
  // pc.Key        "2025-03-H1"
  // pc.Days       15
  // pc.FirstHalf  true

SEE ALSO:
  - payroll/engine.go: consumes PeriodContext
  - store/sqlite: persists captures keyed by PeriodContext.Key
*/
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a reference date cannot be parsed.
// It is fatal to the single computation request, nothing else.
var ErrInvalidDate = errors.New("invalid reference date")

// =============================================================================
// PERIOD MODE
// =============================================================================

// Mode selects how many days a pay period covers.
type Mode string

const (
	ModeBiweekly Mode = "biweekly" // calendar half-month, 13-16 days
	ModeWeekly   Mode = "weekly"   // fixed 7 days
)

// ParseMode normalizes a mode string, defaulting to biweekly.
func ParseMode(s string) Mode {
	if Mode(s) == ModeWeekly {
		return ModeWeekly
	}
	return ModeBiweekly
}

// =============================================================================
// FORTNIGHT BOUNDARIES
// =============================================================================

// FortnightStart returns the 1st or the 16th of the month of d.
func FortnightStart(d time.Time) time.Time {
	y, m, day := d.Date()
	if day <= 15 {
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(y, m, 16, 0, 0, 0, 0, time.UTC)
}

// FortnightEnd returns the 15th or the last day of the month of d.
func FortnightEnd(d time.Time) time.Time {
	y, m, day := d.Date()
	if day <= 15 {
		return time.Date(y, m, 15, 0, 0, 0, 0, time.UTC)
	}
	// day 0 of next month = last day of this month
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

// FortnightLength returns the inclusive day count of the fortnight
// containing d: 15 for a first half, 13-16 for a second half.
func FortnightLength(d time.Time) int {
	start := FortnightStart(d)
	end := FortnightEnd(d)
	return int(end.Sub(start).Hours()/24) + 1
}

// FirstHalf reports whether d falls in the first half of its month.
// Drives the voucher gate: vouchers are paid on H1 only.
func FirstHalf(d time.Time) bool {
	return d.Day() <= 15
}

// =============================================================================
// KEYS AND WEEK NUMBERS
// =============================================================================

// PeriodKey returns the stable storage key for the fortnight containing
// d, e.g. "2025-03-H1". Keys sort lexicographically in period order.
func PeriodKey(d time.Time) string {
	half := "H1"
	if !FirstHalf(d) {
		half = "H2"
	}
	return fmt.Sprintf("%04d-%02d-%s", d.Year(), int(d.Month()), half)
}

// ISOWeek returns the ISO-8601 week number of d. Display only.
func ISOWeek(d time.Time) int {
	_, week := d.ISOWeek()
	return week
}

// =============================================================================
// RESOLUTION - reference date to period context
// =============================================================================

// PeriodContext bundles everything the engine needs to know about the
// pay period a reference date falls into.
type PeriodContext struct {
	Key       string
	Start     time.Time
	End       time.Time
	Days      int
	FirstHalf bool
	Week      int
	Mode      Mode
}

// ParseDate parses a YYYY-MM-DD reference date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d.UTC(), nil
}

// Resolve derives the period context for a reference date. The zero
// time is rejected so callers cannot accidentally compute a payroll
// for year 1.
func Resolve(d time.Time, mode Mode) (PeriodContext, error) {
	if d.IsZero() {
		return PeriodContext{}, ErrInvalidDate
	}
	pc := PeriodContext{
		Key:       PeriodKey(d),
		Start:     FortnightStart(d),
		End:       FortnightEnd(d),
		FirstHalf: FirstHalf(d),
		Week:      ISOWeek(d),
		Mode:      mode,
	}
	if mode == ModeWeekly {
		pc.Days = 7
	} else {
		pc.Days = FortnightLength(d)
	}
	return pc, nil
}
