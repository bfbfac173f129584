package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "insightcli/internal/errors"
	"insightcli/internal/services"
)

// DogHandler serves the dog-license analysis endpoints
type DogHandler struct {
	data         *services.DataService
	reports      *services.ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDogHandler creates a dog analysis handler
func NewDogHandler(data *services.DataService, reports *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DogHandler {
	return &DogHandler{
		data:         data,
		reports:      reports,
		logger:       logger.With(slog.String("component", "dog_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dog analysis routes
func (h *DogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/names", h.GetNames)
	r.Get("/demographics", h.GetDemographics)
	r.Get("/breeds", h.GetBreeds)
	r.Get("/geography", h.GetGeography)
	r.Get("/expiry", h.GetExpiry)
	r.Get("/patterns", h.GetPatterns)

	return r
}

// GetOverview serves the landing-view summary
func (h *DogHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.DogLicenses(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.reports.DogAnalyzer().Overview(r.Context(), records))
}

// GetNames serves the name-pattern analysis
func (h *DogHandler) GetNames(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.DogLicenses(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.reports.DogAnalyzer().Names(r.Context(), records))
}

// GetDemographics serves the age-demographics analysis
func (h *DogHandler) GetDemographics(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.DogLicenses(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.reports.DogAnalyzer().DemographicsReport(r.Context(), records))
}

// GetBreeds serves the breed-distribution analysis
func (h *DogHandler) GetBreeds(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.DogLicenses(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.reports.DogAnalyzer().Breeds(r.Context(), records))
}

// GetGeography serves the zipcode-distribution analysis
func (h *DogHandler) GetGeography(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.DogLicenses(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.reports.DogAnalyzer().GeographyReport(r.Context(), records))
}

// GetExpiry serves the license-expiry analysis
func (h *DogHandler) GetExpiry(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.DogLicenses(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.reports.DogAnalyzer().Expiry(r.Context(), records))
}

// GetPatterns serves the issuance-timing analysis
func (h *DogHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.DogLicenses(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.reports.DogAnalyzer().Issuance(r.Context(), records))
}
