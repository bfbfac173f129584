// Package services holds the application services behind the HTTP handlers:
// dataset loading and caching, and report generation.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"insightcli/internal/config"
	apperrors "insightcli/internal/errors"
	"insightcli/internal/infrastructure"
	"insightcli/internal/licenses"
	"insightcli/internal/survey"
)

// DataService loads and caches the two datasets. Loads are lazy: the first
// accessor call reads the file, later calls serve the cached rows until
// Reload.
type DataService struct {
	paths   *config.Paths
	logger  *slog.Logger
	metrics *infrastructure.Metrics

	mu       sync.RWMutex
	dogs     []licenses.Record
	dogsAt   time.Time
	survey   []survey.CleanResponse
	surveyAt time.Time
}

// NewDataService creates a data service over the standard paths
func NewDataService(paths *config.Paths, logger *slog.Logger, metrics *infrastructure.Metrics) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("data service initialized",
		slog.String("data_dir", paths.DataDir),
		slog.String("downloads_dir", paths.DownloadsDir))

	return &DataService{
		paths:   paths,
		logger:  logger.With(slog.String("component", "data_service")),
		metrics: metrics,
	}
}

// DogLicenses returns the cached dog-license records, loading on first use
func (ds *DataService) DogLicenses(ctx context.Context) ([]licenses.Record, error) {
	ds.mu.RLock()
	cached := ds.dogs
	ds.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return ds.loadDogs(ctx)
}

// SalarySurvey returns the cached cleaned survey rows, loading on first use
func (ds *DataService) SalarySurvey(ctx context.Context) ([]survey.CleanResponse, error) {
	ds.mu.RLock()
	cached := ds.survey
	ds.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return ds.loadSurvey(ctx)
}

// Reload drops both caches; the next accessor call re-reads from disk
func (ds *DataService) Reload(ctx context.Context) {
	ds.mu.Lock()
	ds.dogs = nil
	ds.survey = nil
	ds.mu.Unlock()
	ds.logger.InfoContext(ctx, "dataset caches dropped")
}

func (ds *DataService) loadDogs(ctx context.Context) ([]licenses.Record, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.dogs != nil {
		return ds.dogs, nil
	}

	path := ds.paths.DogLicensesCSV
	if !config.FileExists(path) {
		return nil, fmt.Errorf("dog license file %s: %w", path, apperrors.ErrDatasetNotFound)
	}

	start := time.Now()
	records, err := licenses.LoadFile(path, time.Now(), ds.logger)
	if err != nil {
		if ds.metrics != nil {
			ds.metrics.DatasetLoads.WithLabelValues("dog_licenses", "error").Inc()
		}
		return nil, fmt.Errorf("failed to load dog licenses: %w", err)
	}

	ds.dogs = records
	ds.dogsAt = time.Now()
	if ds.metrics != nil {
		ds.metrics.DatasetRows.WithLabelValues("dog_licenses").Set(float64(len(records)))
		ds.metrics.DatasetLoads.WithLabelValues("dog_licenses", "success").Inc()
	}
	ds.logger.InfoContext(ctx, "dog licenses loaded",
		slog.Int("records", len(records)),
		slog.Duration("elapsed", time.Since(start)))
	return records, nil
}

func (ds *DataService) loadSurvey(ctx context.Context) ([]survey.CleanResponse, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.survey != nil {
		return ds.survey, nil
	}

	path := ds.paths.SalarySurveyTSV
	if !config.FileExists(path) {
		return nil, fmt.Errorf("salary survey file %s: %w", path, apperrors.ErrDatasetNotFound)
	}

	start := time.Now()
	responses, err := survey.LoadFile(path, ds.logger)
	if err != nil {
		if ds.metrics != nil {
			ds.metrics.DatasetLoads.WithLabelValues("salary_survey", "error").Inc()
		}
		return nil, fmt.Errorf("failed to load salary survey: %w", err)
	}
	cleaned := survey.NewCleaner(ds.logger).Clean(ctx, responses)

	ds.survey = cleaned
	ds.surveyAt = time.Now()
	if ds.metrics != nil {
		ds.metrics.DatasetRows.WithLabelValues("salary_survey").Set(float64(len(cleaned)))
		ds.metrics.DatasetLoads.WithLabelValues("salary_survey", "success").Inc()
	}
	ds.logger.InfoContext(ctx, "salary survey loaded",
		slog.Int("raw_rows", len(responses)),
		slog.Int("cleaned_rows", len(cleaned)),
		slog.Duration("elapsed", time.Since(start)))
	return cleaned, nil
}

// DatasetStatus describes one dataset for the health endpoint
type DatasetStatus struct {
	Present  bool      `json:"present"`
	Loaded   bool      `json:"loaded"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	FileSize int64     `json:"file_size,omitempty"`
}

// Health reports the state of both datasets without triggering a load
func (ds *DataService) Health(ctx context.Context) map[string]DatasetStatus {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return map[string]DatasetStatus{
		"dog_licenses": {
			Present:  config.FileExists(ds.paths.DogLicensesCSV),
			Loaded:   ds.dogs != nil,
			Rows:     len(ds.dogs),
			LoadedAt: ds.dogsAt,
			FileSize: fileSize(ds.paths.DogLicensesCSV),
		},
		"salary_survey": {
			Present:  config.FileExists(ds.paths.SalarySurveyTSV),
			Loaded:   ds.survey != nil,
			Rows:     len(ds.survey),
			LoadedAt: ds.surveyAt,
			FileSize: fileSize(ds.paths.SalarySurveyTSV),
		},
	}
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
