package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/innovareegautomation-dev/Nomina-Innovart/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// FORTNIGHT BOUNDARY TESTS
// =============================================================================

func TestFortnightBoundaries_FirstHalf(t *testing.T) {
	// GIVEN: a date on the 15th
	// THEN: the fortnight is [1st, 15th], 15 days
	d := date(2025, time.March, 15)

	if got := calendar.FortnightStart(d); !got.Equal(date(2025, time.March, 1)) {
		t.Errorf("start: got %v", got)
	}
	if got := calendar.FortnightEnd(d); !got.Equal(date(2025, time.March, 15)) {
		t.Errorf("end: got %v", got)
	}
	if got := calendar.FortnightLength(d); got != 15 {
		t.Errorf("length: got %d, want 15", got)
	}
	if !calendar.FirstHalf(d) {
		t.Error("expected first half")
	}
}

func TestFortnightBoundaries_SecondHalf(t *testing.T) {
	// GIVEN: a date on the 16th of a 31-day month
	// THEN: the fortnight is [16th, 31st], 16 days
	d := date(2025, time.March, 16)

	if got := calendar.FortnightStart(d); !got.Equal(date(2025, time.March, 16)) {
		t.Errorf("start: got %v", got)
	}
	if got := calendar.FortnightEnd(d); !got.Equal(date(2025, time.March, 31)) {
		t.Errorf("end: got %v", got)
	}
	if got := calendar.FortnightLength(d); got != 16 {
		t.Errorf("length: got %d, want 16", got)
	}
	if calendar.FirstHalf(d) {
		t.Error("expected second half")
	}
}

func TestFortnightLength_ShortMonths(t *testing.T) {
	cases := []struct {
		name string
		d    time.Time
		want int
	}{
		{"february H2", date(2025, time.February, 20), 13},
		{"february H2 leap year", date(2024, time.February, 20), 14},
		{"april H2", date(2025, time.April, 16), 15},
		{"january H2", date(2025, time.January, 31), 16},
		{"february H1 is still 15", date(2025, time.February, 10), 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := calendar.FortnightLength(tc.d); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

// =============================================================================
// KEY AND WEEK TESTS
// =============================================================================

func TestPeriodKey_StableAndSortable(t *testing.T) {
	if got := calendar.PeriodKey(date(2025, time.March, 1)); got != "2025-03-H1" {
		t.Errorf("got %q", got)
	}
	if got := calendar.PeriodKey(date(2025, time.March, 31)); got != "2025-03-H2" {
		t.Errorf("got %q", got)
	}
	// Lexicographic order must match chronological order.
	keys := []string{
		calendar.PeriodKey(date(2024, time.December, 20)),
		calendar.PeriodKey(date(2025, time.January, 2)),
		calendar.PeriodKey(date(2025, time.January, 20)),
		calendar.PeriodKey(date(2025, time.October, 1)),
	}
	for i := 1; i < len(keys); i++ {
		if !(keys[i-1] < keys[i]) {
			t.Errorf("keys not sorted: %q >= %q", keys[i-1], keys[i])
		}
	}
}

func TestISOWeek_ThursdayAnchored(t *testing.T) {
	// Jan 1 2027 is a Friday, so it belongs to week 53 of 2026.
	if got := calendar.ISOWeek(date(2027, time.January, 1)); got != 53 {
		t.Errorf("got %d, want 53", got)
	}
	if got := calendar.ISOWeek(date(2025, time.January, 6)); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestResolve_BiweeklyAndWeekly(t *testing.T) {
	d := date(2025, time.February, 20)

	pc, err := calendar.Resolve(d, calendar.ModeBiweekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc.Key != "2025-02-H2" || pc.Days != 13 || pc.FirstHalf {
		t.Errorf("biweekly context: %+v", pc)
	}

	pcw, err := calendar.Resolve(d, calendar.ModeWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Weekly mode changes the day count but keeps the fortnight key.
	if pcw.Days != 7 || pcw.Key != pc.Key {
		t.Errorf("weekly context: %+v", pcw)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := calendar.ParseDate("not-a-date"); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := calendar.ParseDate("2025-02-30"); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for impossible day, got %v", err)
	}
	if _, err := calendar.Resolve(time.Time{}, calendar.ModeBiweekly); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for zero time, got %v", err)
	}
}

func TestParseMode_Defaults(t *testing.T) {
	if calendar.ParseMode("weekly") != calendar.ModeWeekly {
		t.Error("weekly not recognized")
	}
	if calendar.ParseMode("") != calendar.ModeBiweekly {
		t.Error("empty mode should default to biweekly")
	}
	if calendar.ParseMode("garbage") != calendar.ModeBiweekly {
		t.Error("unknown mode should default to biweekly")
	}
}
