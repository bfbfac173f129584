package survey

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// 2021 average exchange rates to USD
const (
	RateUSD = 1.0
	RateGBP = 1.38
	RateCAD = 0.80
	RateEUR = 1.18
	RateAUD = 0.75
)

// Plausibility bounds for annualized USD salaries; rows outside are dropped
const (
	MinPlausibleSalaryUSD = 10_000
	MaxPlausibleSalaryUSD = 2_000_000
)

// missingYears marks experience values that could not be mapped
const missingYears = -1

// Cleaner runs the survey cleaning pipeline
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner with the given logger
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger.With(slog.String("component", "survey_cleaner"))}
}

// Clean runs the full pipeline: salary parsing and USD conversion with the
// plausibility filter, then location, job, experience and demographic
// normalization on the surviving rows.
func (c *Cleaner) Clean(ctx context.Context, responses []Response) []CleanResponse {
	c.logger.InfoContext(ctx, "starting survey cleaning", slog.Int("rows", len(responses)))

	cleaned := make([]CleanResponse, 0, len(responses))
	for _, resp := range responses {
		row := CleanResponse{Response: resp}

		row.SalaryNumeric = ParseSalary(resp.SalaryRaw)
		row.SalaryUSD = ConvertToUSD(row.SalaryNumeric, resp.Currency)
		if row.SalaryUSD < MinPlausibleSalaryUSD || row.SalaryUSD > MaxPlausibleSalaryUSD {
			continue
		}

		row.CountryCleaned = NormalizeCountry(resp.Country)
		row.StateCleaned = NormalizeState(resp.USState)

		row.JobTitleCleaned = strings.ToLower(strings.TrimSpace(resp.JobTitle))
		row.IsSoftwareEngineer = IsSoftwareEngineerTitle(row.JobTitleCleaned)
		row.IsTechRole = IsTechRoleTitle(row.JobTitleCleaned)
		row.IsTechIndustry = IsTechIndustry(resp.Industry)

		row.YearsExperienceOverall = ExperienceYears(resp.ExperienceOverall)
		row.YearsExperienceField = ExperienceYears(resp.ExperienceField)

		row.GenderCleaned = NormalizeGender(resp.Gender)
		row.EducationCleaned = strings.TrimSpace(resp.Education)

		cleaned = append(cleaned, row)
	}

	c.logger.InfoContext(ctx, "survey cleaning complete",
		slog.Int("valid_rows", len(cleaned)),
		slog.Int("dropped_rows", len(responses)-len(cleaned)))

	return cleaned
}

// ParseSalary extracts a numeric salary from free-text input. Commas, dollar
// signs and any other non-numeric characters are stripped; unparseable
// values return 0.
func ParseSalary(raw string) float64 {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return value
}

// ConvertToUSD converts a salary to USD using 2021 exchange rates, matching
// on currency-name fragments. Unknown currencies pass through unconverted,
// the same fallback the survey analysis has always used.
func ConvertToUSD(salary float64, currency string) float64 {
	if salary == 0 {
		return 0
	}

	cur := strings.ToUpper(currency)
	switch {
	case strings.Contains(cur, "USD") || strings.Contains(cur, "US"):
		return salary
	case strings.Contains(cur, "GBP") || strings.Contains(cur, "POUND"):
		return salary * RateGBP
	case strings.Contains(cur, "CAD") || strings.Contains(cur, "CANADIAN"):
		return salary * RateCAD
	case strings.Contains(cur, "EUR") || strings.Contains(cur, "EURO"):
		return salary * RateEUR
	case strings.Contains(cur, "AUD") || strings.Contains(cur, "AUSTRALIAN"):
		return salary * RateAUD
	default:
		return salary
	}
}

// usVariants are the country spellings collapsed to UNITED STATES
var usVariants = map[string]bool{
	"US":                       true,
	"USA":                      true,
	"UNITED STATES":            true,
	"UNITED STATES OF AMERICA": true,
}

// NormalizeCountry upper-cases the country and collapses US spelling variants
func NormalizeCountry(country string) string {
	upper := strings.ToUpper(strings.TrimSpace(country))
	if usVariants[upper] {
		return "UNITED STATES"
	}
	return upper
}

// NormalizeGender maps free-text gender responses to canonical forms.
// Unmatched values are kept lower-cased.
func NormalizeGender(gender string) string {
	lower := strings.ToLower(strings.TrimSpace(gender))
	switch lower {
	case "man":
		return "Man"
	case "woman":
		return "Woman"
	case "non-binary", "nonbinary":
		return "Non-binary"
	default:
		return lower
	}
}

// ExperienceYears maps the survey's experience-range answers to midpoints.
// Unrecognized answers return a negative sentinel.
func ExperienceYears(raw string) float64 {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "1 year or less"):
		return 0.5
	case strings.Contains(lower, "2 - 4 years"):
		return 3
	case strings.Contains(lower, "5-7 years") || strings.Contains(lower, "5 - 7 years"):
		return 6
	case strings.Contains(lower, "8 - 10 years"):
		return 9
	case strings.Contains(lower, "11 - 20 years"):
		return 15.5
	case strings.Contains(lower, "21 - 30 years"):
		return 25.5
	case strings.Contains(lower, "31 - 40 years"):
		return 35.5
	case strings.Contains(lower, "41 years or more"):
		return 45
	default:
		return missingYears
	}
}
