package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"insightcli/internal/services"
)

// HealthHandler serves liveness and dataset-status endpoints
type HealthHandler struct {
	data    *services.DataService
	logger  *slog.Logger
	started time.Time
	version string
}

// NewHealthHandler creates a health handler
func NewHealthHandler(data *services.DataService, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		data:    data,
		logger:  logger.With(slog.String("component", "health_handler")),
		started: time.Now(),
		version: version,
	}
}

// Routes returns the health routes
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetHealth)
	r.Post("/reload", h.Reload)

	return r
}

// healthResponse is the health endpoint payload
type healthResponse struct {
	Status   string                            `json:"status"`
	Version  string                            `json:"version"`
	Uptime   string                            `json:"uptime"`
	Datasets map[string]services.DatasetStatus `json:"datasets"`
}

// GetHealth reports process and dataset status without loading anything
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	datasets := h.data.Health(r.Context())

	status := "ok"
	for _, ds := range datasets {
		if !ds.Present {
			status = "degraded"
		}
	}

	render.JSON(w, r, healthResponse{
		Status:   status,
		Version:  h.version,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Datasets: datasets,
	})
}

// Reload drops the dataset caches so the next request re-reads from disk
func (h *HealthHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.data.Reload(r.Context())
	h.logger.InfoContext(r.Context(), "reload requested")
	render.JSON(w, r, map[string]string{"status": "reloaded"})
}
