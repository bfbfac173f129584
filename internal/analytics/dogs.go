package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"insightcli/internal/licenses"
)

// ExpiringSoonDays is the default "expiring soon" window
const ExpiringSoonDays = 30

// humanLikeNames is the fixed list used to split dog names into human-like
// and other
var humanLikeNames = map[string]bool{
	"MAX": true, "BELLA": true, "CHARLIE": true, "LUCY": true, "COOPER": true,
	"SADIE": true, "ROCKY": true, "MOLLY": true, "DUKE": true, "LOLA": true,
}

// DogAnalyzer runs the dog-license analyses over loaded records
type DogAnalyzer struct {
	logger       *slog.Logger
	expiringDays int
}

// DogAnalyzerConfig holds analyzer options
type DogAnalyzerConfig struct {
	ExpiringDays int // window for "expiring soon", defaults to 30
}

// NewDogAnalyzer creates an analyzer with the given configuration
func NewDogAnalyzer(logger *slog.Logger, cfg DogAnalyzerConfig) *DogAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ExpiringDays <= 0 {
		cfg.ExpiringDays = ExpiringSoonDays
	}
	return &DogAnalyzer{
		logger:       logger.With(slog.String("component", "dog_analyzer")),
		expiringDays: cfg.ExpiringDays,
	}
}

// DogOverview summarizes the dataset for the dashboard landing view
type DogOverview struct {
	TotalDogs    int            `json:"total_dogs"`
	GenderCounts []KeyCount     `json:"gender_counts"`
	AgeHistogram []HistogramBin `json:"age_histogram"`
	TopBreeds    []KeyCount     `json:"top_breeds"`
	TopZipcodes  []KeyCount     `json:"top_zipcodes"`
	Active       int            `json:"active_licenses"`
	ExpiringSoon int            `json:"expiring_soon"`
}

// Overview computes the overview summary
func (a *DogAnalyzer) Overview(ctx context.Context, records []licenses.Record) DogOverview {
	a.logger.InfoContext(ctx, "computing dog overview", slog.Int("records", len(records)))

	genders := make([]string, 0, len(records))
	breeds := make([]string, 0, len(records))
	zips := make([]string, 0, len(records))
	ages := make([]float64, 0, len(records))

	overview := DogOverview{TotalDogs: len(records)}
	for i := range records {
		rec := &records[i]
		genders = append(genders, rec.AnimalGender)
		breeds = append(breeds, rec.BreedName)
		zips = append(zips, rec.ZipCode)
		if rec.CurrentAge > 0 {
			ages = append(ages, float64(rec.CurrentAge))
		}
		if rec.HasExpiryDate() {
			switch {
			case rec.DaysUntilExpiry < 0:
				// expired, neither active nor expiring
			case rec.DaysUntilExpiry <= a.expiringDays:
				overview.ExpiringSoon++
			default:
				overview.Active++
			}
		}
	}

	overview.GenderCounts = TopN(CountBy(genders), 0)
	overview.AgeHistogram = Histogram(ages, 20)
	overview.TopBreeds = TopN(CountBy(breeds), 5)
	overview.TopZipcodes = TopN(CountBy(zips), 5)
	return overview
}

// YearCount is a per-year tally used by trend series
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// NamesAnalysis covers dog-name frequency and shape
type NamesAnalysis struct {
	UniqueNames     int                    `json:"unique_names"`
	TopNames        []KeyCount             `json:"top_names"`
	AvgNameLength   float64                `json:"avg_name_length"`
	LengthHistogram []HistogramBin         `json:"length_histogram"`
	HumanLike       int                    `json:"human_like_count"`
	Other           int                    `json:"other_count"`
	TrendsByName    map[string][]YearCount `json:"trends_by_name"`
}

// Names analyzes dog-name patterns. Trend series cover the top 5 names.
func (a *DogAnalyzer) Names(ctx context.Context, records []licenses.Record) NamesAnalysis {
	named := make([]string, 0, len(records))
	lengths := make([]float64, 0, len(records))

	result := NamesAnalysis{}
	for i := range records {
		rec := &records[i]
		if !rec.HasName() {
			continue
		}
		named = append(named, rec.AnimalName)
		lengths = append(lengths, float64(len(rec.AnimalName)))
		if humanLikeNames[rec.AnimalName] {
			result.HumanLike++
		} else {
			result.Other++
		}
	}

	counts := CountBy(named)
	result.UniqueNames = len(counts)
	result.TopNames = TopN(counts, 20)
	result.AvgNameLength = Mean(lengths)
	result.LengthHistogram = Histogram(lengths, 15)
	result.TrendsByName = a.nameTrends(records, result.TopNames, 5)

	a.logger.InfoContext(ctx, "dog names analyzed",
		slog.Int("unique_names", result.UniqueNames))
	return result
}

func (a *DogAnalyzer) nameTrends(records []licenses.Record, top []KeyCount, n int) map[string][]YearCount {
	if len(top) > n {
		top = top[:n]
	}
	wanted := make(map[string]bool, len(top))
	for _, kc := range top {
		wanted[kc.Key] = true
	}

	perName := make(map[string]map[int]int)
	for i := range records {
		rec := &records[i]
		if !wanted[rec.AnimalName] || rec.IssueYear == 0 {
			continue
		}
		if perName[rec.AnimalName] == nil {
			perName[rec.AnimalName] = make(map[int]int)
		}
		perName[rec.AnimalName][rec.IssueYear]++
	}

	trends := make(map[string][]YearCount, len(perName))
	for name, years := range perName {
		series := make([]YearCount, 0, len(years))
		for year, count := range years {
			series = append(series, YearCount{Year: year, Count: count})
		}
		sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
		trends[name] = series
	}
	return trends
}

// DogSummary identifies a single record in analysis output
type DogSummary struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`
}

// AgeStats summarizes ages within a group
type AgeStats struct {
	Group  string  `json:"group"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Demographics covers age structure of the licensed population
type Demographics struct {
	Oldest      DogSummary `json:"oldest"`
	Youngest    DogSummary `json:"youngest"`
	MeanAge     float64    `json:"mean_age"`
	MedianAge   float64    `json:"median_age"`
	MinAge      int        `json:"min_age"`
	MaxAge      int        `json:"max_age"`
	AgeByGender []AgeStats `json:"age_by_gender"`
	AgeByBreed  []AgeStats `json:"age_by_breed"`
}

// DemographicsReport computes age demographics. Age-by-breed covers the top
// 10 breeds by count.
func (a *DogAnalyzer) DemographicsReport(ctx context.Context, records []licenses.Record) Demographics {
	result := Demographics{MinAge: -1}

	ages := make([]float64, 0, len(records))
	genderKeys := make([]string, 0, len(records))
	breedKeys := make([]string, 0, len(records))
	aged := make([]*licenses.Record, 0, len(records))

	for i := range records {
		rec := &records[i]
		if rec.CurrentAge <= 0 {
			continue
		}
		aged = append(aged, rec)
		ages = append(ages, float64(rec.CurrentAge))
		genderKeys = append(genderKeys, rec.AnimalGender)
		breedKeys = append(breedKeys, rec.BreedName)

		if rec.CurrentAge > result.MaxAge {
			result.MaxAge = rec.CurrentAge
			result.Oldest = DogSummary{Name: rec.AnimalName, Breed: rec.BreedName, Age: rec.CurrentAge}
		}
		if result.MinAge == -1 || rec.CurrentAge < result.MinAge {
			result.MinAge = rec.CurrentAge
			result.Youngest = DogSummary{Name: rec.AnimalName, Breed: rec.BreedName, Age: rec.CurrentAge}
		}
	}
	if result.MinAge == -1 {
		result.MinAge = 0
	}

	result.MeanAge = Mean(ages)
	result.MedianAge = Median(ages)
	result.AgeByGender = groupAgeStats(GroupValues(genderKeys, ages), 1)

	topBreeds := TopN(CountBy(breedKeys), 10)
	wanted := make(map[string]bool, len(topBreeds))
	for _, kc := range topBreeds {
		wanted[kc.Key] = true
	}
	breedGroups := GroupValues(breedKeys, ages)
	for breed := range breedGroups {
		if !wanted[breed] {
			delete(breedGroups, breed)
		}
	}
	result.AgeByBreed = groupAgeStats(breedGroups, 1)

	a.logger.InfoContext(ctx, "dog demographics computed",
		slog.Float64("mean_age", result.MeanAge),
		slog.Int("aged_records", len(aged)))
	return result
}

func groupAgeStats(groups map[string][]float64, minCount int) []AgeStats {
	stats := make([]AgeStats, 0, len(groups))
	for group, vals := range groups {
		if len(vals) < minCount {
			continue
		}
		stats = append(stats, AgeStats{
			Group:  group,
			Count:  len(vals),
			Mean:   Mean(vals),
			Median: Median(vals),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

// BreedAnalysis covers breed distribution and trend
type BreedAnalysis struct {
	UniqueBreeds  int                    `json:"unique_breeds"`
	TopBreeds     []KeyCount             `json:"top_breeds"`
	BottomBreeds  []KeyCount             `json:"bottom_breeds"`
	TrendsByBreed map[string][]YearCount `json:"trends_by_breed"`
}

// Breeds analyzes breed distributions. Trends cover the top 5 breeds.
func (a *DogAnalyzer) Breeds(ctx context.Context, records []licenses.Record) BreedAnalysis {
	keys := make([]string, 0, len(records))
	for i := range records {
		keys = append(keys, records[i].BreedName)
	}
	counts := CountBy(keys)

	result := BreedAnalysis{
		UniqueBreeds: len(counts),
		TopBreeds:    TopN(counts, 10),
		BottomBreeds: BottomN(counts, 10),
	}

	top5 := result.TopBreeds
	if len(top5) > 5 {
		top5 = top5[:5]
	}
	wanted := make(map[string]bool, len(top5))
	for _, kc := range top5 {
		wanted[kc.Key] = true
	}

	perBreed := make(map[string]map[int]int)
	for i := range records {
		rec := &records[i]
		if !wanted[rec.BreedName] || rec.IssueYear == 0 {
			continue
		}
		if perBreed[rec.BreedName] == nil {
			perBreed[rec.BreedName] = make(map[int]int)
		}
		perBreed[rec.BreedName][rec.IssueYear]++
	}
	result.TrendsByBreed = make(map[string][]YearCount, len(perBreed))
	for breed, years := range perBreed {
		series := make([]YearCount, 0, len(years))
		for year, count := range years {
			series = append(series, YearCount{Year: year, Count: count})
		}
		sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
		result.TrendsByBreed[breed] = series
	}

	a.logger.InfoContext(ctx, "dog breeds analyzed",
		slog.Int("unique_breeds", result.UniqueBreeds))
	return result
}

// Geography covers the zipcode distribution
type Geography struct {
	UniqueZipcodes int            `json:"unique_zipcodes"`
	TopZipcodes    []KeyCount     `json:"top_zipcodes"`
	BottomZipcodes []KeyCount     `json:"bottom_zipcodes"`
	DogsPerZipHist []HistogramBin `json:"dogs_per_zip_histogram"`
}

// GeographyReport analyzes the distribution of dogs across zipcodes
func (a *DogAnalyzer) GeographyReport(ctx context.Context, records []licenses.Record) Geography {
	keys := make([]string, 0, len(records))
	for i := range records {
		keys = append(keys, records[i].ZipCode)
	}
	counts := CountBy(keys)

	perZip := make([]float64, 0, len(counts))
	for _, c := range counts {
		perZip = append(perZip, float64(c))
	}

	result := Geography{
		UniqueZipcodes: len(counts),
		TopZipcodes:    TopN(counts, 10),
		BottomZipcodes: BottomN(counts, 10),
		DogsPerZipHist: Histogram(perZip, 20),
	}
	a.logger.InfoContext(ctx, "dog geography analyzed",
		slog.Int("unique_zipcodes", result.UniqueZipcodes))
	return result
}

// ExpiringLicense is one row of the expiring-licenses listing
type ExpiringLicense struct {
	Name            string    `json:"name"`
	Breed           string    `json:"breed"`
	ZipCode         string    `json:"zipcode"`
	ExpiredDate     time.Time `json:"expired_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
}

// ExpiryAnalysis covers license-expiry structure
type ExpiryAnalysis struct {
	ExpiringSoon      int               `json:"expiring_soon"`
	ExpiringNinety    int               `json:"expiring_90_days"`
	AlreadyExpired    int               `json:"already_expired"`
	Active            int               `json:"active"`
	TopExpiringBreeds []KeyCount        `json:"top_expiring_breeds"`
	TopExpiringZips   []KeyCount        `json:"top_expiring_zipcodes"`
	ExpiringSample    []ExpiringLicense `json:"expiring_sample"`
}

// Expiry analyzes license-expiry timing. The listing sample carries the 20
// soonest-expiring rows within the window.
func (a *DogAnalyzer) Expiry(ctx context.Context, records []licenses.Record) ExpiryAnalysis {
	result := ExpiryAnalysis{}

	var soonBreeds, soonZips []string
	var soon []ExpiringLicense
	for i := range records {
		rec := &records[i]
		if !rec.HasExpiryDate() {
			continue
		}
		days := rec.DaysUntilExpiry
		switch {
		case days < 0:
			result.AlreadyExpired++
		case days <= a.expiringDays:
			result.ExpiringSoon++
		default:
			result.Active++
		}
		if days <= 90 && days >= 0 {
			result.ExpiringNinety++
		}
		if days >= 0 && days <= a.expiringDays {
			soonBreeds = append(soonBreeds, rec.BreedName)
			soonZips = append(soonZips, rec.ZipCode)
			soon = append(soon, ExpiringLicense{
				Name:            rec.AnimalName,
				Breed:           rec.BreedName,
				ZipCode:         rec.ZipCode,
				ExpiredDate:     rec.LicenseExpiredDate,
				DaysUntilExpiry: days,
			})
		}
	}

	result.TopExpiringBreeds = TopN(CountBy(soonBreeds), 10)
	result.TopExpiringZips = TopN(CountBy(soonZips), 10)

	sort.Slice(soon, func(i, j int) bool { return soon[i].DaysUntilExpiry < soon[j].DaysUntilExpiry })
	if len(soon) > 20 {
		soon = soon[:20]
	}
	result.ExpiringSample = soon

	a.logger.InfoContext(ctx, "license expiry analyzed",
		slog.Int("expiring_soon", result.ExpiringSoon),
		slog.Int("already_expired", result.AlreadyExpired))
	return result
}

// IssuancePatterns covers when licenses get issued
type IssuancePatterns struct {
	ByMonth     []KeyCount  `json:"by_month"`
	ByYear      []YearCount `json:"by_year"`
	ByWeekday   []KeyCount  `json:"by_weekday"`
	PeakMonth   string      `json:"peak_month"`
	PeakYear    int         `json:"peak_year"`
	PeakWeekday string      `json:"peak_weekday"`
}

// Issuance analyzes temporal issuance patterns. Month and weekday series are
// emitted in calendar order, not by count.
func (a *DogAnalyzer) Issuance(ctx context.Context, records []licenses.Record) IssuancePatterns {
	months := make(map[time.Month]int)
	years := make(map[int]int)
	weekdays := make(map[time.Weekday]int)

	for i := range records {
		rec := &records[i]
		if !rec.HasIssueDate() {
			continue
		}
		months[rec.IssueMonth]++
		years[rec.IssueYear]++
		weekdays[rec.IssueWeekday]++
	}

	result := IssuancePatterns{}

	peakCount := -1
	for m := time.January; m <= time.December; m++ {
		count := months[m]
		result.ByMonth = append(result.ByMonth, KeyCount{Key: m.String()[:3], Count: count})
		if count > peakCount {
			peakCount = count
			result.PeakMonth = m.String()
		}
	}

	yearKeys := make([]int, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	peakCount = -1
	for _, y := range yearKeys {
		result.ByYear = append(result.ByYear, YearCount{Year: y, Count: years[y]})
		if years[y] > peakCount {
			peakCount = years[y]
			result.PeakYear = y
		}
	}

	peakCount = -1
	for d := time.Monday; d <= time.Saturday; d++ {
		result.ByWeekday = append(result.ByWeekday, KeyCount{Key: d.String(), Count: weekdays[d]})
	}
	result.ByWeekday = append(result.ByWeekday, KeyCount{Key: time.Sunday.String(), Count: weekdays[time.Sunday]})
	for _, kc := range result.ByWeekday {
		if kc.Count > peakCount {
			peakCount = kc.Count
			result.PeakWeekday = kc.Key
		}
	}

	a.logger.InfoContext(ctx, "issuance patterns analyzed",
		slog.String("peak_month", result.PeakMonth),
		slog.Int("peak_year", result.PeakYear))
	return result
}

// DogReport bundles every dog analysis for report generation
type DogReport struct {
	Overview     DogOverview      `json:"overview"`
	Names        NamesAnalysis    `json:"names"`
	Demographics Demographics     `json:"demographics"`
	Breeds       BreedAnalysis    `json:"breeds"`
	Geography    Geography        `json:"geography"`
	Expiry       ExpiryAnalysis   `json:"expiry"`
	Issuance     IssuancePatterns `json:"issuance"`
}

// Report runs every analysis and bundles the results
func (a *DogAnalyzer) Report(ctx context.Context, records []licenses.Record) DogReport {
	return DogReport{
		Overview:     a.Overview(ctx, records),
		Names:        a.Names(ctx, records),
		Demographics: a.DemographicsReport(ctx, records),
		Breeds:       a.Breeds(ctx, records),
		Geography:    a.GeographyReport(ctx, records),
		Expiry:       a.Expiry(ctx, records),
		Issuance:     a.Issuance(ctx, records),
	}
}
