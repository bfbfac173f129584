package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightcli/internal/survey"
)

type cleanRowOpts struct {
	salary     float64
	country    string
	state      string
	industry   string
	engineer   bool
	techRole   bool
	techInd    bool
	experience float64
	gender     string
	education  string
}

func cleanRow(opts cleanRowOpts) survey.CleanResponse {
	if opts.country == "" {
		opts.country = "UNITED STATES"
	}
	row := survey.CleanResponse{
		SalaryNumeric:          opts.salary,
		SalaryUSD:              opts.salary,
		CountryCleaned:         opts.country,
		StateCleaned:           survey.NormalizeState(opts.state),
		IsSoftwareEngineer:     opts.engineer,
		IsTechRole:             opts.techRole,
		IsTechIndustry:         opts.techInd,
		YearsExperienceOverall: opts.experience,
		GenderCleaned:          opts.gender,
		EducationCleaned:       opts.education,
	}
	row.Industry = opts.industry
	return row
}

func newTestSalaryAnalyzer() *SalaryAnalyzer {
	return NewSalaryAnalyzer(discardLogger())
}

func TestSoftwareEngineerMedian(t *testing.T) {
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 100000, engineer: true}),
		cleanRow(cleanRowOpts{salary: 150000, engineer: true}),
		cleanRow(cleanRowOpts{salary: 200000, engineer: true}),
		cleanRow(cleanRowOpts{salary: 999999, engineer: true, country: "CANADA"}),
		cleanRow(cleanRowOpts{salary: 50000}),
	}

	a := newTestSalaryAnalyzer()
	result, err := a.SoftwareEngineerMedian(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Count)
	assert.InDelta(t, 150000, result.Median, 1e-9)
}

func TestSoftwareEngineerMedianNoData(t *testing.T) {
	a := newTestSalaryAnalyzer()
	_, err := a.SoftwareEngineerMedian(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHighestTechState(t *testing.T) {
	rows := []survey.CleanResponse{}
	// California: 5 tech workers at 200k. New York: 5 at 150k.
	for i := 0; i < 5; i++ {
		rows = append(rows, cleanRow(cleanRowOpts{salary: 200000, state: "California", techRole: true}))
		rows = append(rows, cleanRow(cleanRowOpts{salary: 150000, state: "New York", techRole: true}))
	}
	// Montana has the highest salary but only one record, below the floor.
	rows = append(rows, cleanRow(cleanRowOpts{salary: 900000, state: "Montana", techRole: true}))

	a := newTestSalaryAnalyzer()
	result, err := a.HighestTechState(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, "CALIFORNIA", result.State)
	assert.InDelta(t, 200000, result.MeanSalary, 1e-9)
	assert.Equal(t, 5, result.Count)
	assert.Len(t, result.AllStates, 2)
}

func TestExperienceSalarySlope(t *testing.T) {
	// Salary rises exactly 5000 per year of experience.
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 60000, techRole: true, experience: 0.5}),
		cleanRow(cleanRowOpts{salary: 72500, techRole: true, experience: 3}),
		cleanRow(cleanRowOpts{salary: 87500, techRole: true, experience: 6}),
		cleanRow(cleanRowOpts{salary: 102500, techRole: true, experience: 9}),
	}

	a := newTestSalaryAnalyzer()
	result, err := a.ExperienceSalarySlope(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Count)
	assert.InDelta(t, 5000, result.SlopePerYear, 1e-6)
	assert.InDelta(t, 57500, result.Intercept, 1e-6)
	assert.InDelta(t, 1.0, result.PearsonR, 1e-9)
}

func TestExperienceSalarySlopeMissingExperienceExcluded(t *testing.T) {
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 60000, techRole: true, experience: -1}),
		cleanRow(cleanRowOpts{salary: 80000, techRole: true, experience: 3}),
	}

	a := newTestSalaryAnalyzer()
	_, err := a.ExperienceSalarySlope(context.Background(), rows)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHighestNonTechIndustry(t *testing.T) {
	rows := []survey.CleanResponse{}
	for i := 0; i < 10; i++ {
		rows = append(rows, cleanRow(cleanRowOpts{salary: 180000, industry: "Law"}))
		rows = append(rows, cleanRow(cleanRowOpts{salary: 90000, industry: "Education"}))
		// Tech industry rows must not appear in a non-tech ranking.
		rows = append(rows, cleanRow(cleanRowOpts{salary: 500000, industry: "Computing or Tech", techInd: true}))
	}

	a := newTestSalaryAnalyzer()
	result, err := a.HighestNonTechIndustry(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, "Law", result.Industry)
	assert.InDelta(t, 180000, result.MedianSalary, 1e-9)
	assert.Len(t, result.AllIndustries, 2)
}

func TestGenderGapTech(t *testing.T) {
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 120000, techRole: true, gender: "Man"}),
		cleanRow(cleanRowOpts{salary: 130000, techRole: true, gender: "Man"}),
		cleanRow(cleanRowOpts{salary: 100000, techRole: true, gender: "Woman"}),
		cleanRow(cleanRowOpts{salary: 100000, techRole: true, gender: "Woman"}),
		cleanRow(cleanRowOpts{salary: 100000, techRole: true, gender: "non-binary"}),
	}

	a := newTestSalaryAnalyzer()
	result, err := a.GenderGapTech(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Count)
	assert.InDelta(t, 125000, result.MenMedian, 1e-9)
	assert.InDelta(t, 100000, result.WomenMedian, 1e-9)
	assert.InDelta(t, 25.0, result.GapPercent, 1e-9)
}

func TestGenderGapTechOneGroupEmpty(t *testing.T) {
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 120000, techRole: true, gender: "Man"}),
	}

	a := newTestSalaryAnalyzer()
	result, err := a.GenderGapTech(context.Background(), rows)
	require.NoError(t, err)
	assert.Zero(t, result.GapPercent)
}

func TestEducationImpact(t *testing.T) {
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 110000, education: "Master's degree"}),
		cleanRow(cleanRowOpts{salary: 130000, education: "Master's degree"}),
		cleanRow(cleanRowOpts{salary: 90000, education: "College degree"}),
		cleanRow(cleanRowOpts{salary: 110000, education: "College degree"}),
		cleanRow(cleanRowOpts{salary: 70000, education: "High School"}),
		// "Some college" is not a completed degree and stays out of both buckets.
		cleanRow(cleanRowOpts{salary: 20000, education: "Some college"}),
		cleanRow(cleanRowOpts{salary: 20000, education: "Some college"}),
	}

	a := newTestSalaryAnalyzer()
	result, err := a.EducationImpact(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Count)
	assert.InDelta(t, 120000, result.MastersMedian, 1e-9)
	assert.InDelta(t, 100000, result.BachelorsMedian, 1e-9)
	assert.InDelta(t, 20000, result.Difference, 1e-9)
	assert.InDelta(t, 20.0, result.PercentIncrease, 1e-9)
}

func TestSalaryDistribution(t *testing.T) {
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 50000, state: "California", techRole: true}),
		cleanRow(cleanRowOpts{salary: 100000, state: "California", techRole: true}),
		cleanRow(cleanRowOpts{salary: 150000, state: "New York"}),
		cleanRow(cleanRowOpts{salary: 80000, country: "CANADA"}),
	}

	a := newTestSalaryAnalyzer()

	t.Run("unfiltered", func(t *testing.T) {
		dist, err := a.Distribution(context.Background(), rows, DistributionFilter{})
		require.NoError(t, err)
		assert.Equal(t, 4, dist.Count)
		assert.InDelta(t, 95000, dist.Mean, 1e-9)
	})

	t.Run("country filter", func(t *testing.T) {
		dist, err := a.Distribution(context.Background(), rows, DistributionFilter{Country: "United States"})
		require.NoError(t, err)
		assert.Equal(t, 3, dist.Count)
	})

	t.Run("state and tech filters", func(t *testing.T) {
		dist, err := a.Distribution(context.Background(), rows, DistributionFilter{State: "california", TechOnly: true})
		require.NoError(t, err)
		assert.Equal(t, 2, dist.Count)
		assert.InDelta(t, 75000, dist.Median, 1e-9)
	})

	t.Run("state abbreviation", func(t *testing.T) {
		dist, err := a.Distribution(context.Background(), rows, DistributionFilter{State: "NY"})
		require.NoError(t, err)
		assert.Equal(t, 1, dist.Count)
	})

	t.Run("empty result errors", func(t *testing.T) {
		_, err := a.Distribution(context.Background(), rows, DistributionFilter{State: "Alaska"})
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestSalarySummaryTolerant(t *testing.T) {
	// Only engineers present: the state, industry, gap and education
	// questions come back nil while the rest still succeed.
	rows := []survey.CleanResponse{
		cleanRow(cleanRowOpts{salary: 100000, engineer: true, techRole: true, experience: 3}),
		cleanRow(cleanRowOpts{salary: 120000, engineer: true, techRole: true, experience: 6}),
	}

	a := newTestSalaryAnalyzer()
	summary := a.Summary(context.Background(), rows)

	require.NotNil(t, summary.EngineerMedian)
	assert.InDelta(t, 110000, summary.EngineerMedian.Median, 1e-9)
	require.NotNil(t, summary.ExperienceSlope)

	assert.Nil(t, summary.HighestState)
	assert.Nil(t, summary.GenderGap)
	assert.Nil(t, summary.EducationImpact)
}

func TestSalarySummaryEmptyInput(t *testing.T) {
	a := newTestSalaryAnalyzer()
	summary := a.Summary(context.Background(), nil)

	assert.Nil(t, summary.EngineerMedian)
	assert.Nil(t, summary.HighestState)
	assert.Nil(t, summary.ExperienceSlope)
	assert.Nil(t, summary.HighestIndustry)
	assert.Nil(t, summary.GenderGap)
	assert.Nil(t, summary.EducationImpact)
}
