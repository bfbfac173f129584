package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"insightcli/internal/analytics"
	apierrors "insightcli/internal/errors"
	"insightcli/internal/services"
)

// SalaryHandler serves the salary-survey analysis endpoints
type SalaryHandler struct {
	data         *services.DataService
	reports      *services.ReportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewSalaryHandler creates a salary analysis handler
func NewSalaryHandler(data *services.DataService, reports *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SalaryHandler {
	return &SalaryHandler{
		data:         data,
		reports:      reports,
		logger:       logger.With(slog.String("component", "salary_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the salary analysis routes
func (h *SalaryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/questions/{number}", h.GetQuestion)
	r.Get("/distribution", h.GetDistribution)

	return r
}

// GetSummary serves all six business-question answers at once
func (h *SalaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.SalarySummary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetQuestion serves a single business question by number (1..6)
func (h *SalaryHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 1 || number > 6 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("number", "Question number must be between 1 and 6"))
		return
	}

	rows, err := h.data.SalarySurvey(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	analyzer := h.reports.SalaryAnalyzer()
	ctx := r.Context()

	var result interface{}
	switch number {
	case 1:
		result, err = analyzer.SoftwareEngineerMedian(ctx, rows)
	case 2:
		result, err = analyzer.HighestTechState(ctx, rows)
	case 3:
		result, err = analyzer.ExperienceSalarySlope(ctx, rows)
	case 4:
		result, err = analyzer.HighestNonTechIndustry(ctx, rows)
	case 5:
		result, err = analyzer.GenderGapTech(ctx, rows)
	case 6:
		result, err = analyzer.EducationImpact(ctx, rows)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, noDataError(err))
		return
	}
	render.JSON(w, r, result)
}

// distributionParams validates the distribution query string
type distributionParams struct {
	Country  string `validate:"omitempty,max=60"`
	State    string `validate:"omitempty,max=60"`
	TechOnly string `validate:"omitempty,oneof=true false"`
}

// GetDistribution serves salary summary statistics with optional filters:
// ?country=, ?state=, ?tech_only=true
func (h *SalaryHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	params := distributionParams{
		Country:  r.URL.Query().Get("country"),
		State:    r.URL.Query().Get("state"),
		TechOnly: r.URL.Query().Get("tech_only"),
	}
	if err := h.validate.Struct(&params); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("query", "Invalid distribution filters"))
		return
	}

	rows, err := h.data.SalarySurvey(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	dist, err := h.reports.SalaryAnalyzer().Distribution(r.Context(), rows, analytics.DistributionFilter{
		Country:  params.Country,
		State:    params.State,
		TechOnly: params.TechOnly == "true",
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, noDataError(err))
		return
	}
	render.JSON(w, r, dist)
}

// noDataError maps an empty analysis result to a 404 instead of a 500
func noDataError(err error) error {
	if errors.Is(err, analytics.ErrNoData) {
		return apierrors.New(http.StatusNotFound, "NO_DATA", "No records match the requested analysis")
	}
	return err
}
