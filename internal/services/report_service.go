package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"insightcli/internal/analytics"
	"insightcli/internal/config"
	"insightcli/internal/exporter"
)

// ReportService runs the analyses and writes the report artifacts
type ReportService struct {
	data   *DataService
	paths  *config.Paths
	logger *slog.Logger

	dogs   *analytics.DogAnalyzer
	salary *analytics.SalaryAnalyzer
	csv    *exporter.CSVWriter
	xlsx   *exporter.XLSXWriter
}

// NewReportService creates a report service over the data service
func NewReportService(data *DataService, paths *config.Paths, logger *slog.Logger, dogCfg analytics.DogAnalyzerConfig) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		data:   data,
		paths:  paths,
		logger: logger.With(slog.String("component", "report_service")),
		dogs:   analytics.NewDogAnalyzer(logger, dogCfg),
		salary: analytics.NewSalaryAnalyzer(logger),
		csv:    exporter.NewCSVWriter(paths),
		xlsx:   exporter.NewXLSXWriter(paths, logger),
	}
}

// DogAnalyzer exposes the configured analyzer for handler use
func (rs *ReportService) DogAnalyzer() *analytics.DogAnalyzer {
	return rs.dogs
}

// SalaryAnalyzer exposes the configured analyzer for handler use
func (rs *ReportService) SalaryAnalyzer() *analytics.SalaryAnalyzer {
	return rs.salary
}

// DogReport runs every dog analysis over the loaded dataset
func (rs *ReportService) DogReport(ctx context.Context) (analytics.DogReport, error) {
	records, err := rs.data.DogLicenses(ctx)
	if err != nil {
		return analytics.DogReport{}, err
	}
	return rs.dogs.Report(ctx, records), nil
}

// SalarySummary runs the six business questions over the cleaned survey
func (rs *ReportService) SalarySummary(ctx context.Context) (analytics.SalarySummary, error) {
	rows, err := rs.data.SalarySurvey(ctx)
	if err != nil {
		return analytics.SalarySummary{}, err
	}
	return rs.salary.Summary(ctx, rows), nil
}

// ExportDogSummary writes the dog report workbook and returns its path
func (rs *ReportService) ExportDogSummary(ctx context.Context) (string, error) {
	report, err := rs.DogReport(ctx)
	if err != nil {
		return "", err
	}
	if err := rs.xlsx.WriteDogSummary(report); err != nil {
		return "", fmt.Errorf("failed to export dog summary: %w", err)
	}
	rs.logger.InfoContext(ctx, "dog summary exported",
		slog.String("path", rs.paths.DogSummaryXLSX))
	return rs.paths.DogSummaryXLSX, nil
}

// ExportSalarySummary writes the salary workbook and returns its path
func (rs *ReportService) ExportSalarySummary(ctx context.Context) (string, error) {
	summary, err := rs.SalarySummary(ctx)
	if err != nil {
		return "", err
	}
	if err := rs.xlsx.WriteSalarySummary(summary); err != nil {
		return "", fmt.Errorf("failed to export salary summary: %w", err)
	}
	rs.logger.InfoContext(ctx, "salary summary exported",
		slog.String("path", rs.paths.SalarySummaryXLSX))
	return rs.paths.SalarySummaryXLSX, nil
}

// ExportExpiringLicenses writes the soon-expiring license listing as CSV
// and returns its path
func (rs *ReportService) ExportExpiringLicenses(ctx context.Context) (string, error) {
	records, err := rs.data.DogLicenses(ctx)
	if err != nil {
		return "", err
	}
	expiry := rs.dogs.Expiry(ctx, records)

	rows := make([][]string, 0, len(expiry.ExpiringSample))
	for _, lic := range expiry.ExpiringSample {
		rows = append(rows, []string{
			lic.Name, lic.Breed, lic.ZipCode,
			lic.ExpiredDate.Format(time.DateOnly),
			strconv.Itoa(lic.DaysUntilExpiry),
		})
	}

	const filename = "expiring_licenses.csv"
	headers := []string{"name", "breed", "zipcode", "expired_date", "days_until_expiry"}
	if err := rs.csv.WriteSimpleCSV(filename, headers, rows); err != nil {
		return "", fmt.Errorf("failed to export expiring licenses: %w", err)
	}

	path := rs.paths.GetReportPath(filename)
	rs.logger.InfoContext(ctx, "expiring licenses exported",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return path, nil
}

// ExportCleanedSurvey writes the cleaned survey CSV and returns its path
func (rs *ReportService) ExportCleanedSurvey(ctx context.Context) (string, error) {
	rows, err := rs.data.SalarySurvey(ctx)
	if err != nil {
		return "", err
	}
	if err := rs.csv.WriteCleanedSurvey(rows); err != nil {
		return "", fmt.Errorf("failed to export cleaned survey: %w", err)
	}
	rs.logger.InfoContext(ctx, "cleaned survey exported",
		slog.String("path", rs.paths.CleanedSurveyCSV),
		slog.Int("rows", len(rows)))
	return rs.paths.CleanedSurveyCSV, nil
}
