package analytics

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"insightcli/internal/survey"
)

// Minimum group sizes before a group is considered in rankings
const (
	minStateGroup    = 5
	minIndustryGroup = 10
)

// ErrNoData is returned when a question's filters leave nothing to aggregate
var ErrNoData = errors.New("no records match the question's filters")

// SalaryAnalyzer answers the survey's business questions over cleaned rows
type SalaryAnalyzer struct {
	logger *slog.Logger
}

// NewSalaryAnalyzer creates an analyzer
func NewSalaryAnalyzer(logger *slog.Logger) *SalaryAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalaryAnalyzer{logger: logger.With(slog.String("component", "salary_analyzer"))}
}

// isUSTech matches the filter used by the tech-worker questions: tech by
// role or by industry, in the United States, with a usable salary
func isUSTech(row *survey.CleanResponse) bool {
	return row.CountryCleaned == "UNITED STATES" &&
		(row.IsTechRole || row.IsTechIndustry) &&
		row.HasSalary()
}

// EngineerMedianResult answers question 1
type EngineerMedianResult struct {
	Count  int     `json:"count"`
	Median float64 `json:"median_salary_usd"`
}

// SoftwareEngineerMedian computes the median US software-engineer salary
func (a *SalaryAnalyzer) SoftwareEngineerMedian(ctx context.Context, rows []survey.CleanResponse) (EngineerMedianResult, error) {
	salaries := []float64{}
	for i := range rows {
		row := &rows[i]
		if row.CountryCleaned == "UNITED STATES" && row.IsSoftwareEngineer && row.HasSalary() {
			salaries = append(salaries, row.SalaryUSD)
		}
	}
	if len(salaries) == 0 {
		return EngineerMedianResult{}, ErrNoData
	}

	result := EngineerMedianResult{Count: len(salaries), Median: Median(salaries)}
	a.logger.InfoContext(ctx, "software engineer median computed",
		slog.Int("count", result.Count),
		slog.Float64("median", result.Median))
	return result, nil
}

// StateSalaryResult answers question 2
type StateSalaryResult struct {
	State      string     `json:"state"`
	MeanSalary float64    `json:"mean_salary_usd"`
	Count      int        `json:"count"`
	AllStates  []KeyValue `json:"all_states"`
}

// HighestTechState finds the US state with the highest average tech salary.
// States with fewer than 5 tech workers are excluded.
func (a *SalaryAnalyzer) HighestTechState(ctx context.Context, rows []survey.CleanResponse) (StateSalaryResult, error) {
	keys := []string{}
	salaries := []float64{}
	for i := range rows {
		row := &rows[i]
		if isUSTech(row) && row.StateCleaned != "" {
			keys = append(keys, row.StateCleaned)
			salaries = append(salaries, row.SalaryUSD)
		}
	}

	ranked := AggregateGroups(GroupValues(keys, salaries), minStateGroup, Mean)
	if len(ranked) == 0 {
		return StateSalaryResult{}, ErrNoData
	}

	result := StateSalaryResult{
		State:      ranked[0].Key,
		MeanSalary: ranked[0].Value,
		Count:      ranked[0].Count,
		AllStates:  ranked,
	}
	a.logger.InfoContext(ctx, "highest tech state computed",
		slog.String("state", result.State),
		slog.Float64("mean_salary", result.MeanSalary))
	return result, nil
}

// ExperienceSlopeResult answers question 3
type ExperienceSlopeResult struct {
	Count        int     `json:"count"`
	SlopePerYear float64 `json:"slope_per_year_usd"`
	Intercept    float64 `json:"intercept_usd"`
	PearsonR     float64 `json:"pearson_r"`
}

// ExperienceSalarySlope regresses salary on overall experience for US tech
// workers
func (a *SalaryAnalyzer) ExperienceSalarySlope(ctx context.Context, rows []survey.CleanResponse) (ExperienceSlopeResult, error) {
	var x, y []float64
	for i := range rows {
		row := &rows[i]
		if isUSTech(row) && row.HasExperienceOverall() {
			x = append(x, row.YearsExperienceOverall)
			y = append(y, row.SalaryUSD)
		}
	}
	if len(x) < 2 {
		return ExperienceSlopeResult{}, ErrNoData
	}

	slope, intercept := LinearRegression(x, y)
	result := ExperienceSlopeResult{
		Count:        len(x),
		SlopePerYear: slope,
		Intercept:    intercept,
		PearsonR:     PearsonR(x, y),
	}
	a.logger.InfoContext(ctx, "experience-salary slope computed",
		slog.Int("count", result.Count),
		slog.Float64("slope", result.SlopePerYear))
	return result, nil
}

// IndustrySalaryResult answers question 4
type IndustrySalaryResult struct {
	Industry      string     `json:"industry"`
	MedianSalary  float64    `json:"median_salary_usd"`
	Count         int        `json:"count"`
	AllIndustries []KeyValue `json:"all_industries"`
}

// HighestNonTechIndustry finds the non-tech US industry with the highest
// median salary. Industries with fewer than 10 workers are excluded.
func (a *SalaryAnalyzer) HighestNonTechIndustry(ctx context.Context, rows []survey.CleanResponse) (IndustrySalaryResult, error) {
	keys := []string{}
	salaries := []float64{}
	for i := range rows {
		row := &rows[i]
		if row.CountryCleaned == "UNITED STATES" && !row.IsTechIndustry && row.HasSalary() {
			keys = append(keys, row.Industry)
			salaries = append(salaries, row.SalaryUSD)
		}
	}

	ranked := AggregateGroups(GroupValues(keys, salaries), minIndustryGroup, Median)
	if len(ranked) == 0 {
		return IndustrySalaryResult{}, ErrNoData
	}

	result := IndustrySalaryResult{
		Industry:      ranked[0].Key,
		MedianSalary:  ranked[0].Value,
		Count:         ranked[0].Count,
		AllIndustries: ranked,
	}
	a.logger.InfoContext(ctx, "highest non-tech industry computed",
		slog.String("industry", result.Industry),
		slog.Float64("median_salary", result.MedianSalary))
	return result, nil
}

// GenderGapResult answers question 5
type GenderGapResult struct {
	Count       int     `json:"count"`
	MenMedian   float64 `json:"men_median_usd"`
	WomenMedian float64 `json:"women_median_usd"`
	GapPercent  float64 `json:"gap_percent"`
}

// GenderGapTech computes the median-salary gap between men and women in US
// tech, as a percentage of the women's median. Zero when either group is
// empty.
func (a *SalaryAnalyzer) GenderGapTech(ctx context.Context, rows []survey.CleanResponse) (GenderGapResult, error) {
	var men, women []float64
	for i := range rows {
		row := &rows[i]
		if !isUSTech(row) {
			continue
		}
		switch row.GenderCleaned {
		case "Man":
			men = append(men, row.SalaryUSD)
		case "Woman":
			women = append(women, row.SalaryUSD)
		}
	}
	if len(men)+len(women) == 0 {
		return GenderGapResult{}, ErrNoData
	}

	result := GenderGapResult{
		Count:       len(men) + len(women),
		MenMedian:   Median(men),
		WomenMedian: Median(women),
	}
	if result.MenMedian > 0 && result.WomenMedian > 0 {
		result.GapPercent = (result.MenMedian - result.WomenMedian) / result.WomenMedian * 100
	}

	a.logger.InfoContext(ctx, "tech gender gap computed",
		slog.Float64("gap_percent", result.GapPercent))
	return result, nil
}

// EducationImpactResult answers question 6
type EducationImpactResult struct {
	Count           int     `json:"count"`
	MastersMedian   float64 `json:"masters_median_usd"`
	BachelorsMedian float64 `json:"bachelors_median_usd"`
	Difference      float64 `json:"difference_usd"`
	PercentIncrease float64 `json:"percent_increase"`
}

// EducationImpact compares median salaries of master's and bachelor's degree
// holders in the US. The survey phrases a bachelor's as "College degree".
func (a *SalaryAnalyzer) EducationImpact(ctx context.Context, rows []survey.CleanResponse) (EducationImpactResult, error) {
	var masters, bachelors []float64
	for i := range rows {
		row := &rows[i]
		if row.CountryCleaned != "UNITED STATES" || !row.HasSalary() {
			continue
		}
		education := strings.ToLower(row.EducationCleaned)
		switch {
		case strings.Contains(education, "master"):
			masters = append(masters, row.SalaryUSD)
		case strings.Contains(education, "college degree"):
			bachelors = append(bachelors, row.SalaryUSD)
		}
	}
	if len(masters)+len(bachelors) == 0 {
		return EducationImpactResult{}, ErrNoData
	}

	result := EducationImpactResult{
		Count:           len(masters) + len(bachelors),
		MastersMedian:   Median(masters),
		BachelorsMedian: Median(bachelors),
	}
	if result.MastersMedian > 0 && result.BachelorsMedian > 0 {
		result.Difference = result.MastersMedian - result.BachelorsMedian
		result.PercentIncrease = result.Difference / result.BachelorsMedian * 100
	}

	a.logger.InfoContext(ctx, "education impact computed",
		slog.Float64("percent_increase", result.PercentIncrease))
	return result, nil
}

// DistributionFilter narrows the rows included in a salary distribution.
// Empty fields match everything.
type DistributionFilter struct {
	Country  string
	State    string
	TechOnly bool
}

// SalaryDistribution describes the shape of the filtered salary data
type SalaryDistribution struct {
	Count     int            `json:"count"`
	Mean      float64        `json:"mean"`
	Median    float64        `json:"median"`
	StdDev    float64        `json:"std_dev"`
	P10       float64        `json:"p10"`
	P25       float64        `json:"p25"`
	P75       float64        `json:"p75"`
	P90       float64        `json:"p90"`
	Histogram []HistogramBin `json:"histogram"`
}

// Distribution computes summary statistics and a 25-bin histogram over the
// filtered salaries
func (a *SalaryAnalyzer) Distribution(ctx context.Context, rows []survey.CleanResponse, filter DistributionFilter) (SalaryDistribution, error) {
	salaries := []float64{}
	for i := range rows {
		row := &rows[i]
		if !row.HasSalary() {
			continue
		}
		if filter.Country != "" && row.CountryCleaned != strings.ToUpper(filter.Country) {
			continue
		}
		if filter.State != "" && row.StateCleaned != survey.NormalizeState(filter.State) {
			continue
		}
		if filter.TechOnly && !row.IsTechRole && !row.IsTechIndustry {
			continue
		}
		salaries = append(salaries, row.SalaryUSD)
	}
	if len(salaries) == 0 {
		return SalaryDistribution{}, ErrNoData
	}

	mean := Mean(salaries)
	dist := SalaryDistribution{
		Count:     len(salaries),
		Mean:      mean,
		Median:    Median(salaries),
		StdDev:    StdDev(salaries, mean),
		P10:       Percentile(salaries, 0.10),
		P25:       Percentile(salaries, 0.25),
		P75:       Percentile(salaries, 0.75),
		P90:       Percentile(salaries, 0.90),
		Histogram: Histogram(salaries, 25),
	}
	a.logger.InfoContext(ctx, "salary distribution computed",
		slog.Int("count", dist.Count))
	return dist, nil
}

// SalarySummary bundles all six questions. A nil pointer means that
// question's computation failed; the rest of the summary still stands.
type SalarySummary struct {
	EngineerMedian  *EngineerMedianResult  `json:"engineer_median,omitempty"`
	HighestState    *StateSalaryResult     `json:"highest_state,omitempty"`
	ExperienceSlope *ExperienceSlopeResult `json:"experience_slope,omitempty"`
	HighestIndustry *IndustrySalaryResult  `json:"highest_industry,omitempty"`
	GenderGap       *GenderGapResult       `json:"gender_gap,omitempty"`
	EducationImpact *EducationImpactResult `json:"education_impact,omitempty"`
}

// Summary answers every question; failures abort only the affected question
func (a *SalaryAnalyzer) Summary(ctx context.Context, rows []survey.CleanResponse) SalarySummary {
	summary := SalarySummary{}

	if r, err := a.SoftwareEngineerMedian(ctx, rows); err == nil {
		summary.EngineerMedian = &r
	} else {
		a.logger.WarnContext(ctx, "software engineer analysis skipped", slog.String("error", err.Error()))
	}
	if r, err := a.HighestTechState(ctx, rows); err == nil {
		summary.HighestState = &r
	} else {
		a.logger.WarnContext(ctx, "state analysis skipped", slog.String("error", err.Error()))
	}
	if r, err := a.ExperienceSalarySlope(ctx, rows); err == nil {
		summary.ExperienceSlope = &r
	} else {
		a.logger.WarnContext(ctx, "experience analysis skipped", slog.String("error", err.Error()))
	}
	if r, err := a.HighestNonTechIndustry(ctx, rows); err == nil {
		summary.HighestIndustry = &r
	} else {
		a.logger.WarnContext(ctx, "industry analysis skipped", slog.String("error", err.Error()))
	}
	if r, err := a.GenderGapTech(ctx, rows); err == nil {
		summary.GenderGap = &r
	} else {
		a.logger.WarnContext(ctx, "gender gap analysis skipped", slog.String("error", err.Error()))
	}
	if r, err := a.EducationImpact(ctx, rows); err == nil {
		summary.EducationImpact = &r
	} else {
		a.logger.WarnContext(ctx, "education analysis skipped", slog.String("error", err.Error()))
	}

	return summary
}
