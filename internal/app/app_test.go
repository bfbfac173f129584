package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightcli/internal/analytics"
	"insightcli/internal/config"
	"insightcli/internal/infrastructure"
	"insightcli/internal/services"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	paths := config.NewPaths(t.TempDir())
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	metrics := infrastructure.NewMetrics()
	data := services.NewDataService(paths, logger, metrics)

	app := &Application{
		Config: &config.Config{
			Server: config.ServerConfig{Port: 8080},
		},
		Paths:         paths,
		Logger:        logger,
		Metrics:       metrics,
		DataService:   data,
		ReportService: services.NewReportService(data, paths, logger, analytics.DogAnalyzerConfig{}),
	}
	app.setupRouter()
	app.createServer()
	return app
}

func TestRouterServesHealth(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestRouterServesMetrics(t *testing.T) {
	app := newTestApplication(t)
	app.Metrics.DatasetRows.WithLabelValues("dog_licenses").Set(0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "insight_dataset_rows")
}

func TestRouterUnknownRoute(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestServerConfiguration(t *testing.T) {
	app := newTestApplication(t)

	require.NotNil(t, app.Server)
	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Same(t, app.Router, app.Server.Handler)
}
