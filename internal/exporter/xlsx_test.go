package exporter

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"insightcli/internal/analytics"
)

func newTestXLSXWriter(t *testing.T) *XLSXWriter {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewXLSXWriter(testPaths(t), logger)
}

func TestWriteDogSummary(t *testing.T) {
	w := newTestXLSXWriter(t)

	report := analytics.DogReport{
		Overview: analytics.DogOverview{
			TotalDogs:    3,
			Active:       2,
			ExpiringSoon: 1,
			GenderCounts: []analytics.KeyCount{{Key: "M", Count: 2}, {Key: "F", Count: 1}},
		},
		Names: analytics.NamesAnalysis{
			TopNames: []analytics.KeyCount{{Key: "MAX", Count: 2}},
		},
		Breeds: analytics.BreedAnalysis{
			TopBreeds: []analytics.KeyCount{{Key: "Beagle", Count: 2}},
		},
	}

	require.NoError(t, w.WriteDogSummary(report))

	f, err := excelize.OpenFile(w.paths.DogSummaryXLSX)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Overview")
	assert.Contains(t, sheets, "Names")
	assert.Contains(t, sheets, "Breeds")
	assert.NotContains(t, sheets, "Sheet1")

	total, err := f.GetCellValue("Overview", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", total)

	name, err := f.GetCellValue("Names", "A2")
	require.NoError(t, err)
	assert.Equal(t, "MAX", name)
}

func TestWriteSalarySummary(t *testing.T) {
	w := newTestXLSXWriter(t)

	summary := analytics.SalarySummary{
		EngineerMedian: &analytics.EngineerMedianResult{Count: 120, Median: 135000},
		GenderGap:      &analytics.GenderGapResult{Count: 80, MenMedian: 120000, WomenMedian: 100000, GapPercent: 20},
	}

	require.NoError(t, w.WriteSalarySummary(summary))

	f, err := excelize.OpenFile(w.paths.SalarySummaryXLSX)
	require.NoError(t, err)
	defer f.Close()

	// One row per answered question, failed questions omitted.
	rows, err := f.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Median US software engineer salary", rows[1][0])
	assert.Equal(t, "Tech gender pay gap (%)", rows[2][0])
}
