package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"insightcli/internal/analytics"
	"insightcli/internal/config"
)

// XLSXWriter builds summary workbooks from analysis results
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger.With(slog.String("component", "xlsx_writer"))}
}

// WriteDogSummary writes the full dog-license report to the standard report
// path, one sheet per analysis
func (w *XLSXWriter) WriteDogSummary(report analytics.DogReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeOverviewSheet(f, report.Overview); err != nil {
		return err
	}
	if err := w.writeKeyCountSheet(f, "Names", "Name", report.Names.TopNames); err != nil {
		return err
	}
	if err := w.writeDemographicsSheet(f, report.Demographics); err != nil {
		return err
	}
	if err := w.writeKeyCountSheet(f, "Breeds", "Breed", report.Breeds.TopBreeds); err != nil {
		return err
	}
	if err := w.writeKeyCountSheet(f, "Geography", "Zipcode", report.Geography.TopZipcodes); err != nil {
		return err
	}
	if err := w.writeExpirySheet(f, report.Expiry); err != nil {
		return err
	}
	if err := w.writeIssuanceSheet(f, report.Issuance); err != nil {
		return err
	}

	// The default Sheet1 only exists because NewFile requires one
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	return w.save(f, w.paths.DogSummaryXLSX)
}

// WriteSalarySummary writes the six-question summary workbook
func (w *XLSXWriter) WriteSalarySummary(summary analytics.SalarySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Questions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Question", "Answer", "Detail", "Records"},
	}
	if r := summary.EngineerMedian; r != nil {
		rows = append(rows, []interface{}{
			"Median US software engineer salary",
			r.Median, "", r.Count,
		})
	}
	if r := summary.HighestState; r != nil {
		rows = append(rows, []interface{}{
			"Highest-paying state for tech workers",
			r.State, r.MeanSalary, r.Count,
		})
	}
	if r := summary.ExperienceSlope; r != nil {
		rows = append(rows, []interface{}{
			"Salary increase per year of experience",
			r.SlopePerYear, fmt.Sprintf("r=%.3f", r.PearsonR), r.Count,
		})
	}
	if r := summary.HighestIndustry; r != nil {
		rows = append(rows, []interface{}{
			"Highest-paying non-tech industry",
			r.Industry, r.MedianSalary, r.Count,
		})
	}
	if r := summary.GenderGap; r != nil {
		rows = append(rows, []interface{}{
			"Tech gender pay gap (%)",
			r.GapPercent, fmt.Sprintf("men %.0f / women %.0f", r.MenMedian, r.WomenMedian), r.Count,
		})
	}
	if r := summary.EducationImpact; r != nil {
		rows = append(rows, []interface{}{
			"Master's premium over bachelor's (%)",
			r.PercentIncrease, r.Difference, r.Count,
		})
	}
	if err := w.writeRows(f, sheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 42); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	return w.save(f, w.paths.SalarySummaryXLSX)
}

func (w *XLSXWriter) writeOverviewSheet(f *excelize.File, overview analytics.DogOverview) error {
	sheet := "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total dogs", overview.TotalDogs},
		{"Active licenses", overview.Active},
		{"Expiring soon", overview.ExpiringSoon},
	}
	for _, g := range overview.GenderCounts {
		rows = append(rows, []interface{}{"Gender " + g.Key, g.Count})
	}
	return w.writeRows(f, sheet, rows)
}

func (w *XLSXWriter) writeKeyCountSheet(f *excelize.File, sheet, keyHeader string, counts []analytics.KeyCount) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{keyHeader, "Count"}}
	for _, kc := range counts {
		rows = append(rows, []interface{}{kc.Key, kc.Count})
	}
	return w.writeRows(f, sheet, rows)
}

func (w *XLSXWriter) writeDemographicsSheet(f *excelize.File, demo analytics.Demographics) error {
	sheet := "Demographics"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Mean age", demo.MeanAge},
		{"Median age", demo.MedianAge},
		{"Oldest", fmt.Sprintf("%s (%s, %d)", demo.Oldest.Name, demo.Oldest.Breed, demo.Oldest.Age)},
		{"Youngest", fmt.Sprintf("%s (%s, %d)", demo.Youngest.Name, demo.Youngest.Breed, demo.Youngest.Age)},
		{},
		{"Group", "Count", "Mean age", "Median age"},
	}
	for _, g := range demo.AgeByGender {
		rows = append(rows, []interface{}{g.Group, g.Count, g.Mean, g.Median})
	}
	for _, g := range demo.AgeByBreed {
		rows = append(rows, []interface{}{g.Group, g.Count, g.Mean, g.Median})
	}
	return w.writeRows(f, sheet, rows)
}

func (w *XLSXWriter) writeExpirySheet(f *excelize.File, expiry analytics.ExpiryAnalysis) error {
	sheet := "Expiry"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Already expired", expiry.AlreadyExpired},
		{"Expiring soon", expiry.ExpiringSoon},
		{"Expiring within 90 days", expiry.ExpiringNinety},
		{"Active", expiry.Active},
		{},
		{"Name", "Breed", "Zipcode", "Expires", "Days left"},
	}
	for _, lic := range expiry.ExpiringSample {
		rows = append(rows, []interface{}{
			lic.Name, lic.Breed, lic.ZipCode,
			lic.ExpiredDate.Format(time.DateOnly), lic.DaysUntilExpiry,
		})
	}
	return w.writeRows(f, sheet, rows)
}

func (w *XLSXWriter) writeIssuanceSheet(f *excelize.File, patterns analytics.IssuancePatterns) error {
	sheet := "Issuance"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Month", "Count"}}
	for _, kc := range patterns.ByMonth {
		rows = append(rows, []interface{}{kc.Key, kc.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Year", "Count"})
	for _, yc := range patterns.ByYear {
		rows = append(rows, []interface{}{yc.Year, yc.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Weekday", "Count"})
	for _, kc := range patterns.ByWeekday {
		rows = append(rows, []interface{}{kc.Key, kc.Count})
	}
	return w.writeRows(f, sheet, rows)
}

func (w *XLSXWriter) writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func (w *XLSXWriter) save(f *excelize.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	w.logger.Info("workbook written", slog.String("path", path))
	return nil
}
