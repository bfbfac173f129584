package licenses

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

const sampleCSV = `animalname,animalgender,animalbirth,breedname,zipcode,licenseissueddate,licenseexpireddate,extract year
max ,M,2015,Beagle ,10001,2022-03-14T00:00:00.000,2025-03-14T00:00:00.000,2023
BELLA,F,2020,Poodle,10002,2023-11-02,2024-05-01,2023
ROCKY,M,notayear,Boxer,10003,garbage,2024-07-15,2023
,F,2018,Unknown,10001,2021-01-04,2024-01-04,2023
`

func TestLoad(t *testing.T) {
	records, err := Load(strings.NewReader(sampleCSV), testNow, nil)
	require.NoError(t, err)
	require.Len(t, records, 4)

	t.Run("names upper-cased and trimmed", func(t *testing.T) {
		assert.Equal(t, "MAX", records[0].AnimalName)
		assert.Equal(t, "Beagle", records[0].BreedName)
	})

	t.Run("age from birth year", func(t *testing.T) {
		assert.Equal(t, 2024-2015, records[0].CurrentAge)
		assert.Equal(t, 2024-2020, records[1].CurrentAge)
	})

	t.Run("days until expiry", func(t *testing.T) {
		// 2025-03-14 is 272 days after 2024-06-15
		assert.Equal(t, 272, records[0].DaysUntilExpiry)
		// Already expired license goes negative
		assert.Negative(t, records[1].DaysUntilExpiry)
	})

	t.Run("issue date breakdown", func(t *testing.T) {
		assert.Equal(t, 2022, records[0].IssueYear)
		assert.Equal(t, time.March, records[0].IssueMonth)
		assert.Equal(t, time.Monday, records[0].IssueWeekday)
	})

	t.Run("bad fields keep zero values", func(t *testing.T) {
		rocky := records[2]
		assert.Zero(t, rocky.AnimalBirthYear)
		assert.Zero(t, rocky.CurrentAge)
		assert.False(t, rocky.HasIssueDate())
		assert.True(t, rocky.HasExpiryDate())
	})

	t.Run("blank name is missing", func(t *testing.T) {
		assert.False(t, records[3].HasName())
		assert.True(t, records[0].HasName())
	})
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := Load(strings.NewReader("zipcode,animalgender\n10001,M\n"), testNow, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "animalname")
}

func TestLoadBirthYearFromFullDate(t *testing.T) {
	csv := "animalname,breedname,animalbirth\nDUKE,Husky,2012-05-01\n"
	records, err := Load(strings.NewReader(csv), testNow, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2012, records[0].AnimalBirthYear)
	assert.Equal(t, 12, records[0].CurrentAge)
}

func TestDeriveSkipsZeroDates(t *testing.T) {
	rec := Record{AnimalName: "rex", BreedName: "Lab"}
	rec.Derive(testNow)
	assert.Equal(t, "REX", rec.AnimalName)
	assert.Zero(t, rec.DaysUntilExpiry)
	assert.Zero(t, rec.IssueYear)
}
