package analytics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightcli/internal/licenses"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// testDogs is a small population with a fixed "now" of 2024-06-15 already
// applied through Derive.
func testDogs(t *testing.T) []licenses.Record {
	t.Helper()
	now := day("2024-06-15")

	records := []licenses.Record{
		{AnimalName: "Max", AnimalGender: "M", AnimalBirthYear: 2015, BreedName: "Beagle", ZipCode: "10001",
			LicenseIssuedDate: day("2022-03-14"), LicenseExpiredDate: day("2024-07-01")},
		{AnimalName: "Bella", AnimalGender: "F", AnimalBirthYear: 2020, BreedName: "Poodle", ZipCode: "10001",
			LicenseIssuedDate: day("2022-03-15"), LicenseExpiredDate: day("2024-06-20")},
		{AnimalName: "Rex", AnimalGender: "M", AnimalBirthYear: 2018, BreedName: "Beagle", ZipCode: "11201",
			LicenseIssuedDate: day("2023-08-01"), LicenseExpiredDate: day("2025-08-01")},
		{AnimalName: "Unknown", AnimalGender: "F", AnimalBirthYear: 2019, BreedName: "Pug", ZipCode: "11201",
			LicenseIssuedDate: day("2021-01-04"), LicenseExpiredDate: day("2023-01-04")},
		{AnimalName: "Max", AnimalGender: "M", AnimalBirthYear: 2012, BreedName: "Beagle", ZipCode: "10002",
			LicenseIssuedDate: day("2023-03-14"), LicenseExpiredDate: day("2025-03-14")},
	}
	for i := range records {
		records[i].Derive(now)
	}
	return records
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestDogAnalyzer() *DogAnalyzer {
	return NewDogAnalyzer(discardLogger(), DogAnalyzerConfig{})
}

func TestDogOverview(t *testing.T) {
	a := newTestDogAnalyzer()
	overview := a.Overview(context.Background(), testDogs(t))

	assert.Equal(t, 5, overview.TotalDogs)
	assert.Equal(t, []KeyCount{{Key: "M", Count: 3}, {Key: "F", Count: 2}}, overview.GenderCounts)

	require.NotEmpty(t, overview.TopBreeds)
	assert.Equal(t, KeyCount{Key: "Beagle", Count: 3}, overview.TopBreeds[0])

	// Bella (5 days) and Max (16 days) fall inside the 30-day window; the
	// expired Pug counts in neither bucket.
	assert.Equal(t, 2, overview.ExpiringSoon)
	assert.Equal(t, 2, overview.Active)
}

func TestDogNames(t *testing.T) {
	a := newTestDogAnalyzer()
	names := a.Names(context.Background(), testDogs(t))

	// "UNKNOWN" is filtered out as a non-name.
	assert.Equal(t, 3, names.UniqueNames)
	assert.Equal(t, KeyCount{Key: "MAX", Count: 2}, names.TopNames[0])

	// MAX and BELLA are on the human-like list, REX is not.
	assert.Equal(t, 3, names.HumanLike)
	assert.Equal(t, 1, names.Other)

	require.Contains(t, names.TrendsByName, "MAX")
	assert.Equal(t, []YearCount{{Year: 2022, Count: 1}, {Year: 2023, Count: 1}}, names.TrendsByName["MAX"])
}

func TestDogDemographics(t *testing.T) {
	a := newTestDogAnalyzer()
	demo := a.DemographicsReport(context.Background(), testDogs(t))

	assert.Equal(t, 12, demo.MaxAge)
	assert.Equal(t, "MAX", demo.Oldest.Name)
	assert.Equal(t, 4, demo.MinAge)
	assert.Equal(t, "BELLA", demo.Youngest.Name)
	assert.InDelta(t, 7.2, demo.MeanAge, 1e-9) // ages 9, 4, 6, 5, 12
	assert.InDelta(t, 6.0, demo.MedianAge, 1e-9)

	require.NotEmpty(t, demo.AgeByGender)
	assert.Equal(t, "M", demo.AgeByGender[0].Group)
	assert.Equal(t, 3, demo.AgeByGender[0].Count)
	assert.InDelta(t, 9.0, demo.AgeByGender[0].Mean, 1e-9) // ages 9, 6, 12
}

func TestDogBreeds(t *testing.T) {
	a := newTestDogAnalyzer()
	breeds := a.Breeds(context.Background(), testDogs(t))

	assert.Equal(t, 3, breeds.UniqueBreeds)
	assert.Equal(t, KeyCount{Key: "Beagle", Count: 3}, breeds.TopBreeds[0])
	assert.Equal(t, 1, breeds.BottomBreeds[0].Count)

	require.Contains(t, breeds.TrendsByBreed, "Beagle")
	assert.Equal(t, []YearCount{{Year: 2022, Count: 1}, {Year: 2023, Count: 2}}, breeds.TrendsByBreed["Beagle"])
}

func TestDogGeography(t *testing.T) {
	a := newTestDogAnalyzer()
	geo := a.GeographyReport(context.Background(), testDogs(t))

	assert.Equal(t, 3, geo.UniqueZipcodes)
	assert.Equal(t, KeyCount{Key: "10001", Count: 2}, geo.TopZipcodes[0])
	assert.Equal(t, KeyCount{Key: "10002", Count: 1}, geo.BottomZipcodes[0])
}

func TestDogExpiry(t *testing.T) {
	a := newTestDogAnalyzer()
	expiry := a.Expiry(context.Background(), testDogs(t))

	assert.Equal(t, 1, expiry.AlreadyExpired)
	assert.Equal(t, 2, expiry.ExpiringSoon) // Bella at 5 days, Max at 16 days
	assert.Equal(t, 2, expiry.Active)
	assert.Equal(t, 2, expiry.ExpiringNinety)

	require.Len(t, expiry.ExpiringSample, 2)
	assert.Equal(t, "BELLA", expiry.ExpiringSample[0].Name)
	assert.Equal(t, 5, expiry.ExpiringSample[0].DaysUntilExpiry)
	assert.Equal(t, "MAX", expiry.ExpiringSample[1].Name)
}

func TestDogExpiryCustomWindow(t *testing.T) {
	a := NewDogAnalyzer(discardLogger(), DogAnalyzerConfig{ExpiringDays: 365})
	expiry := a.Expiry(context.Background(), testDogs(t))

	// Everything unexpired falls inside a 365-day window except the 2025-08-01
	// license.
	assert.Equal(t, 3, expiry.ExpiringSoon)
	assert.Equal(t, 1, expiry.Active)
}

func TestDogIssuance(t *testing.T) {
	a := newTestDogAnalyzer()
	patterns := a.Issuance(context.Background(), testDogs(t))

	require.Len(t, patterns.ByMonth, 12)
	assert.Equal(t, "Jan", patterns.ByMonth[0].Key)
	assert.Equal(t, "March", patterns.PeakMonth) // three March issues
	assert.Equal(t, 2022, patterns.PeakYear)     // ties break on earliest year

	require.Len(t, patterns.ByWeekday, 7)
	assert.Equal(t, "Monday", patterns.ByWeekday[0].Key)
	assert.Equal(t, "Sunday", patterns.ByWeekday[6].Key)
}

func TestDogReportBundlesAll(t *testing.T) {
	a := newTestDogAnalyzer()
	report := a.Report(context.Background(), testDogs(t))

	assert.Equal(t, 5, report.Overview.TotalDogs)
	assert.Equal(t, 3, report.Breeds.UniqueBreeds)
	assert.Equal(t, 3, report.Geography.UniqueZipcodes)
}
