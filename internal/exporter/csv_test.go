package exporter

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightcli/internal/config"
	"insightcli/internal/survey"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	return config.NewPaths(t.TempDir())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteSimpleCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	err := w.WriteSimpleCSV("out.csv", []string{"name", "count"}, [][]string{
		{"MAX", "3"},
		{"BELLA", "2"},
	})
	require.NoError(t, err)

	path := paths.GetReportPath("out.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "expected UTF-8 BOM")

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "count"}, rows[0])
	assert.Equal(t, []string{"MAX", "3"}, rows[1])
}

func TestAppendToCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	require.NoError(t, w.WriteSimpleCSV("out.csv", []string{"a"}, [][]string{{"1"}}))
	require.NoError(t, w.AppendToCSV("out.csv", [][]string{{"2"}}))

	rows := readCSV(t, paths.GetReportPath("out.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2"}, rows[2])
}

func TestWriteCleanedSurvey(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	row := survey.CleanResponse{
		SalaryUSD:              95000,
		CountryCleaned:         "UNITED STATES",
		StateCleaned:           "California",
		JobTitleCleaned:        "software engineer",
		IsSoftwareEngineer:     true,
		IsTechRole:             true,
		YearsExperienceOverall: 6,
		YearsExperienceField:   -1,
		GenderCleaned:          "Woman",
		EducationCleaned:       "College degree",
	}
	row.Industry = "Computing or Tech"
	row.Currency = "USD"

	require.NoError(t, w.WriteCleanedSurvey([]survey.CleanResponse{row}))

	rows := readCSV(t, paths.CleanedSurveyCSV)
	require.Len(t, rows, 2)
	assert.Equal(t, cleanedSurveyHeaders, rows[0])

	got := rows[1]
	assert.Equal(t, "software engineer", got[2])
	assert.Equal(t, "95000.00", got[3])
	assert.Equal(t, "6.0", got[8])
	assert.Equal(t, "", got[9], "missing experience stays blank")
	assert.Equal(t, "true", got[12])
}

func TestStreamWriter(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	sw, err := w.CreateStreamWriter("stream.csv", []string{"zip", "dogs"})
	require.NoError(t, err)
	require.NoError(t, sw.WriteRecord([]string{"10001", "42"}))
	require.NoError(t, sw.WriteRecord([]string{"11201", "17"}))
	require.NoError(t, sw.Close())

	rows := readCSV(t, paths.GetReportPath("stream.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"11201", "17"}, rows[2])
}

func TestResolvePathAbsolutePassthrough(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	abs := paths.GetDownloadPath("direct.csv")
	require.NoError(t, w.WriteSimpleCSV(abs, []string{"x"}, nil))
	assert.FileExists(t, abs)
}
