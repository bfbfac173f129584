package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	DownloadsDir  string
	ReportsDir    string
	LogsDir       string

	// Well-known data files
	DogLicensesCSV  string
	SalarySurveyTSV string

	// Well-known report files
	CleanedSurveyCSV  string
	DogSummaryXLSX    string
	SalarySummaryXLSX string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are relative to the executable directory, never the current
// working directory, so binaries behave the same from any invocation dir.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe)), nil
}

// NewPaths builds a Paths rooted at the given base directory.
// Directory structure:
//
//	base/
//	  ├── data/
//	  │   ├── downloads/   (raw dataset files from the downloader)
//	  │   └── reports/     (generated CSV/XLSX reports)
//	  └── logs/
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	downloadsDir := filepath.Join(dataDir, "downloads")
	reportsDir := filepath.Join(dataDir, "reports")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		DownloadsDir:  downloadsDir,
		ReportsDir:    reportsDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		DogLicensesCSV:  filepath.Join(downloadsDir, "dog_licenses.csv"),
		SalarySurveyTSV: filepath.Join(downloadsDir, "salary_survey_2021.tsv"),

		CleanedSurveyCSV:  filepath.Join(reportsDir, "salary_survey_cleaned.csv"),
		DogSummaryXLSX:    filepath.Join(reportsDir, "dog_license_summary.xlsx"),
		SalarySummaryXLSX: filepath.Join(reportsDir, "salary_summary.xlsx"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.DownloadsDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetDownloadPath returns the full path for a file in the downloads directory
func (p *Paths) GetDownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

// GetReportPath returns the full path for a file in the reports directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a file in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
