// Package survey loads the Ask A Manager 2021 salary survey TSV and cleans
// it into analyzable records: salaries normalized to USD, locations and
// demographics standardized, job titles classified, experience ranges mapped
// to numeric midpoints.
package survey

// Response is one raw survey row, keyed by the questions that matter to the
// analyses. The survey's actual column headers are the full question texts;
// the loader maps them by keyword.
type Response struct {
	AgeRange          string
	Industry          string
	JobTitle          string
	SalaryRaw         string
	Currency          string
	Country           string
	USState           string
	City              string
	ExperienceOverall string
	ExperienceField   string
	Education         string
	Gender            string
}

// CleanResponse is a survey row after the cleaning pipeline
type CleanResponse struct {
	Response

	SalaryNumeric float64
	SalaryUSD     float64

	CountryCleaned string
	StateCleaned   string

	JobTitleCleaned    string
	IsSoftwareEngineer bool
	IsTechRole         bool
	IsTechIndustry     bool

	// Midpoints of the survey's experience ranges; negative means missing
	YearsExperienceOverall float64
	YearsExperienceField   float64

	GenderCleaned    string
	EducationCleaned string
}

// HasSalary reports whether the row survived salary parsing and conversion
func (c *CleanResponse) HasSalary() bool {
	return c.SalaryUSD > 0
}

// HasExperienceOverall reports whether the overall-experience midpoint is known
func (c *CleanResponse) HasExperienceOverall() bool {
	return c.YearsExperienceOverall >= 0
}
