package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// columnKeywords maps Response fields to fragments of the survey's question
// headers. First header containing all fragments wins.
var columnKeywords = map[string][]string{
	"age":               {"how old are you"},
	"industry":          {"what industry do you work in"},
	"jobtitle":          {"job title"},
	"salary":            {"annual salary"},
	"currency":          {"please indicate the currency"},
	"country":           {"what country do you work in"},
	"state":             {"what state do you work in"},
	"city":              {"what city do you work in"},
	"experienceOverall": {"experience do you have overall"},
	"experienceField":   {"experience do you have in your field"},
	"education":         {"highest level of education"},
	"gender":            {"what is your gender"},
}

// LoadFile reads survey responses from a TSV file
func LoadFile(path string, logger *slog.Logger) ([]Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	responses, err := Load(f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return responses, nil
}

// Load reads tab-separated survey responses. The header row carries the full
// question texts, so columns are located by keyword rather than exact match.
func Load(r io.Reader, logger *slog.Logger) ([]Response, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := mapColumns(header)
	for _, required := range []string{"salary", "currency", "country", "jobtitle"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("could not locate %s column in survey header", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var responses []Response
	for lineNum := 2; ; lineNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", lineNum, err)
		}

		responses = append(responses, Response{
			AgeRange:          field(row, "age"),
			Industry:          field(row, "industry"),
			JobTitle:          field(row, "jobtitle"),
			SalaryRaw:         field(row, "salary"),
			Currency:          field(row, "currency"),
			Country:           field(row, "country"),
			USState:           field(row, "state"),
			City:              field(row, "city"),
			ExperienceOverall: field(row, "experienceOverall"),
			ExperienceField:   field(row, "experienceField"),
			Education:         field(row, "education"),
			Gender:            field(row, "gender"),
		})
	}

	logger.Info("loaded survey responses",
		slog.Int("rows", len(responses)),
		slog.Int("columns", len(header)))

	return responses, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, name := range header {
		lower := strings.ToLower(name)
		for field, fragments := range columnKeywords {
			if _, taken := columns[field]; taken {
				continue
			}
			all := true
			for _, fragment := range fragments {
				if !strings.Contains(lower, fragment) {
					all = false
					break
				}
			}
			if all {
				columns[field] = i
			}
		}
	}
	return columns
}
