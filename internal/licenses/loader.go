package licenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Date layouts seen in Socrata CSV exports
var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// LoadFile reads dog-license records from a CSV file and derives columns
func LoadFile(path string, now time.Time, logger *slog.Logger) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := Load(f, now, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return records, nil
}

// Load reads dog-license records from CSV data. Column positions come from
// the header row; unknown columns are ignored and rows with unparseable
// fields keep zero values rather than aborting the load.
func Load(r io.Reader, now time.Time, logger *slog.Logger) ([]Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"animalname", "breedname"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []Record
	badDates := 0
	for lineNum := 2; ; lineNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", lineNum, err)
		}

		rec := Record{
			AnimalName:   field(row, "animalname"),
			AnimalGender: strings.ToUpper(field(row, "animalgender")),
			BreedName:    field(row, "breedname"),
			ZipCode:      field(row, "zipcode"),
		}
		if v := field(row, "animalbirth"); v != "" {
			rec.AnimalBirthYear = parseBirthYear(v)
		}
		if v := field(row, "extract year"); v != "" {
			rec.ExtractYear, _ = strconv.Atoi(v)
		}

		var ok bool
		if v := field(row, "licenseissueddate"); v != "" {
			if rec.LicenseIssuedDate, ok = parseDate(v); !ok {
				badDates++
			}
		}
		if v := field(row, "licenseexpireddate"); v != "" {
			if rec.LicenseExpiredDate, ok = parseDate(v); !ok {
				badDates++
			}
		}

		rec.Derive(now)
		records = append(records, rec)
	}

	logger.Info("loaded dog-license records",
		slog.Int("rows", len(records)),
		slog.Int("unparseable_dates", badDates))

	return records, nil
}

// parseBirthYear extracts the year from values that appear both as a plain
// year ("2015") and as a full date in older extracts
func parseBirthYear(v string) int {
	if year, err := strconv.Atoi(v); err == nil {
		return year
	}
	if date, ok := parseDate(v); ok {
		return date.Year()
	}
	return 0
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
