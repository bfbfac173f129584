package http

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	apierrors "insightcli/internal/errors"
	"insightcli/internal/services"
)

// ExportHandler serves the report-export endpoints
type ExportHandler struct {
	reports      *services.ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates an export handler
func NewExportHandler(reports *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		reports:      reports,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{dataset}/{format}", h.Export)

	return r
}

var exportContentTypes = map[string]string{
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"csv":  "text/csv; charset=utf-8",
}

// Export generates a report artifact and serves it as a file download.
// Supported combinations: dogs/xlsx, salary/xlsx, salary/csv.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")
	format := chi.URLParam(r, "format")

	var path string
	var err error
	switch {
	case dataset == "dogs" && format == "xlsx":
		path, err = h.reports.ExportDogSummary(r.Context())
	case dataset == "salary" && format == "xlsx":
		path, err = h.reports.ExportSalarySummary(r.Context())
	case dataset == "salary" && format == "csv":
		path, err = h.reports.ExportCleanedSurvey(r.Context())
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("export",
			"Supported exports: dogs/xlsx, salary/xlsx, salary/csv"))
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "serving export",
		slog.String("dataset", dataset),
		slog.String("format", format),
		slog.String("path", path))

	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
