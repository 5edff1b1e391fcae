// Package dateutils handles the date formats and fiscal-year arithmetic used
// in HMRC submissions: ISO dates, reporting period keys, and UK tax years.
package dateutils

import (
	"fmt"
	"time"
)

// LayoutISO is the wire format for every date in a payload.
const LayoutISO = "2006-01-02"

// ParseISO parses a YYYY-MM-DD date string.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(LayoutISO, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ToISO formats a time as YYYY-MM-DD.
func ToISO(t time.Time) string {
	return t.Format(LayoutISO)
}

// PeriodKey derives the HMRC period key for a reporting date range.
//
// A range within a single calendar month yields a monthly key ("25M4"), an
// exact calendar quarter yields a quarterly key ("25C2"), and anything else
// is treated as annual or custom ("25A0"). The two-digit year is taken from
// the start date.
func PeriodKey(start, end time.Time) string {
	year := start.Year() % 100

	if start.Year() == end.Year() && start.Month() == end.Month() {
		return fmt.Sprintf("%02dM%d", year, int(start.Month()))
	}

	if isQuarter(start, end) {
		quarter := (int(start.Month())-1)/3 + 1
		return fmt.Sprintf("%02dC%d", year, quarter)
	}

	return fmt.Sprintf("%02dA0", year)
}

// isQuarter reports whether [start, end] spans exactly one calendar quarter:
// the range starts on the first day of January, April, July or October and
// ends on the last day of the third month.
func isQuarter(start, end time.Time) bool {
	if start.Day() != 1 {
		return false
	}
	switch start.Month() {
	case time.January, time.April, time.July, time.October:
	default:
		return false
	}
	quarterEnd := start.AddDate(0, 3, -1)
	return end.Year() == quarterEnd.Year() &&
		end.Month() == quarterEnd.Month() &&
		end.Day() == quarterEnd.Day()
}

// taxYearStart returns the first year of the UK tax year containing t.
// The tax year runs from April 6 to April 5 of the following year.
func taxYearStart(t time.Time) int {
	if t.Month() < time.April || (t.Month() == time.April && t.Day() < 6) {
		return t.Year() - 1
	}
	return t.Year()
}

// TaxYear returns the tax year containing t in "YYYY-YYYY" form.
func TaxYear(t time.Time) string {
	start := taxYearStart(t)
	return fmt.Sprintf("%d-%d", start, start+1)
}

// TaxYearShort returns the tax year containing t in the "YYYY-YY" form that
// Self Assessment payloads carry, e.g. "2025-26".
func TaxYearShort(t time.Time) string {
	start := taxYearStart(t)
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// TaxYearBounds returns the first and last day of the tax year containing t.
func TaxYearBounds(t time.Time) (time.Time, time.Time) {
	start := taxYearStart(t)
	first := time.Date(start, time.April, 6, 0, 0, 0, 0, time.UTC)
	last := time.Date(start+1, time.April, 5, 0, 0, 0, 0, time.UTC)
	return first, last
}

// WithinRange reports whether date d falls inside [start, end] inclusive.
func WithinRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
