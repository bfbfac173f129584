// Package exporter writes analysis output to disk: CSV for cleaned datasets
// and XLSX summary workbooks for reports.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"insightcli/internal/config"
	"insightcli/internal/survey"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteSimpleCSV writes a CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// AppendToCSV appends records to an existing CSV file
func (w *CSVWriter) AppendToCSV(filePath string, records [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Records: records,
		Append:  true,
	})
}

// cleanedSurveyHeaders is the column order of the cleaned-survey export
var cleanedSurveyHeaders = []string{
	"age_range", "industry", "job_title", "salary_usd", "currency",
	"country", "state", "city",
	"years_experience_overall", "years_experience_field",
	"education", "gender",
	"is_software_engineer", "is_tech_role", "is_tech_industry",
}

// WriteCleanedSurvey exports cleaned survey rows to the standard report path.
// The full survey runs to tens of thousands of rows, so it streams instead of
// buffering every record.
func (w *CSVWriter) WriteCleanedSurvey(rows []survey.CleanResponse) error {
	stream, err := w.CreateStreamWriter(w.paths.CleanedSurveyCSV, cleanedSurveyHeaders)
	if err != nil {
		return fmt.Errorf("failed to create cleaned survey writer: %w", err)
	}
	for i := range rows {
		row := &rows[i]
		record := []string{
			row.AgeRange,
			row.Industry,
			row.JobTitleCleaned,
			strconv.FormatFloat(row.SalaryUSD, 'f', 2, 64),
			row.Currency,
			row.CountryCleaned,
			row.StateCleaned,
			row.City,
			formatYears(row.YearsExperienceOverall),
			formatYears(row.YearsExperienceField),
			row.EducationCleaned,
			row.GenderCleaned,
			strconv.FormatBool(row.IsSoftwareEngineer),
			strconv.FormatBool(row.IsTechRole),
			strconv.FormatBool(row.IsTechIndustry),
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write survey row %d: %w", i+1, err)
		}
	}
	return stream.Close()
}

// formatYears renders an experience midpoint, blank when missing
func formatYears(years float64) string {
	if years < 0 {
		return ""
	}
	return strconv.FormatFloat(years, 'f', 1, 64)
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	slog.Info("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath resolves a path to the appropriate directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	if strings.Contains(filePath, "downloads/") {
		return w.paths.GetDownloadPath(filepath.Base(filePath))
	}
	// Reports directory is the default home for generated CSVs
	return w.paths.GetReportPath(filePath)
}
