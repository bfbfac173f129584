// Package licenses loads NYC dog-license records from CSV and derives the
// columns the analyses work on: current age, days until license expiry and
// issue-date breakdowns.
package licenses

import (
	"strings"
	"time"
)

// Record is one licensed-dog row with its derived columns
type Record struct {
	AnimalName         string
	AnimalGender       string
	AnimalBirthYear    int
	BreedName          string
	ZipCode            string
	LicenseIssuedDate  time.Time
	LicenseExpiredDate time.Time
	ExtractYear        int

	// Derived
	CurrentAge      int
	DaysUntilExpiry int
	IssueYear       int
	IssueMonth      time.Month
	IssueWeekday    time.Weekday
}

// HasIssueDate reports whether the issue date parsed successfully
func (r *Record) HasIssueDate() bool {
	return !r.LicenseIssuedDate.IsZero()
}

// HasExpiryDate reports whether the expiry date parsed successfully
func (r *Record) HasExpiryDate() bool {
	return !r.LicenseExpiredDate.IsZero()
}

// HasName reports whether the dog has a usable name
func (r *Record) HasName() bool {
	return r.AnimalName != "" && r.AnimalName != "UNKNOWN" && r.AnimalName != "NAME NOT PROVIDED"
}

// Derive fills the computed columns from the raw fields.
// Ages come from birth year only; the dataset carries no full birth date.
func (r *Record) Derive(now time.Time) {
	r.AnimalName = strings.ToUpper(strings.TrimSpace(r.AnimalName))
	r.BreedName = strings.TrimSpace(r.BreedName)

	if r.AnimalBirthYear > 0 {
		r.CurrentAge = now.Year() - r.AnimalBirthYear
	}

	if r.HasExpiryDate() {
		r.DaysUntilExpiry = int(r.LicenseExpiredDate.Sub(now).Hours() / 24)
	}

	if r.HasIssueDate() {
		r.IssueYear = r.LicenseIssuedDate.Year()
		r.IssueMonth = r.LicenseIssuedDate.Month()
		r.IssueWeekday = r.LicenseIssuedDate.Weekday()
	}
}
