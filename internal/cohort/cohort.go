// Package cohort models program intakes. The program admits two cohorts per
// year, starting in January and July, identified by tokens like "JAN2025".
package cohort

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidID is returned by Parse when an identifier does not match the
// supported intake naming scheme.
var ErrInvalidID = fmt.Errorf("invalid cohort identifier")

// Intake is a program intake period: a start month and year.
type Intake struct {
	Month time.Month
	Year  int
}

// Parse decodes a cohort identifier of the form "JAN2025" or "JUL2025".
// The month prefix is case-insensitive. Only January and July intakes exist;
// anything else fails with ErrInvalidID.
func Parse(id string) (Intake, error) {
	if len(id) < 7 {
		return Intake{}, fmt.Errorf("%w: %q is too short", ErrInvalidID, id)
	}

	var month time.Month
	switch strings.ToUpper(id[:3]) {
	case "JAN":
		month = time.January
	case "JUL":
		month = time.July
	default:
		return Intake{}, fmt.Errorf("%w: unknown intake month in %q", ErrInvalidID, id)
	}

	year, err := strconv.Atoi(id[3:])
	if err != nil {
		return Intake{}, fmt.Errorf("%w: bad year in %q", ErrInvalidID, id)
	}

	return Intake{Month: month, Year: year}, nil
}

// StartDate is the first day of the intake's starting month, at midnight UTC.
func (i Intake) StartDate() time.Time {
	return time.Date(i.Year, i.Month, 1, 0, 0, 0, 0, time.UTC)
}

// ProgramMonth is the 1-based calendar-month index of d relative to the
// intake start: 1 for the starting month, 2 for the next, and so on. Dates
// before the start yield zero or negative values. Only the year and month of
// d matter; a date on the 1st and one on the 31st of the same month land in
// the same program month.
func (i Intake) ProgramMonth(d time.Time) int {
	return (d.Year()-i.Year)*12 + int(d.Month()) - int(i.Month) + 1
}

// DisplayName renders the intake for user-facing messages, e.g.
// "January 2025 Intake".
func (i Intake) DisplayName() string {
	return fmt.Sprintf("%s %d Intake", i.Month, i.Year)
}
