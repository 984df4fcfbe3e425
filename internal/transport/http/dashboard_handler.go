package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "moviedash/internal/errors"
	"moviedash/internal/exporter"
	"moviedash/internal/middleware"
	"moviedash/internal/services"
	"moviedash/pkg/contracts/domain"
)

// supportedFormats is advertised in unsupported-format problems
var supportedFormats = []string{string(exporter.FormatCSV), string(exporter.FormatXLSX)}

// DashboardHandler serves the dashboard JSON, filter options and exports
type DashboardHandler struct {
	service      DashboardServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if validator == nil {
		validator = middleware.NewValidator(0)
	}
	return &DashboardHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes on a new router
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes adds the dashboard routes to an existing router
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/dashboard", h.GetDashboard)
	r.With(
		middleware.ContentTypeValidator("application/json"),
		render.SetContentType(render.ContentTypeJSON),
	).Post("/dashboard", h.PostDashboard)
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/options", h.GetOptions)
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/report", h.GetReport)
	r.Get("/export/{format}", h.Export)
}

// GetDashboard handles GET /api/dashboard?genre=..&rating=..
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sel := SelectionFromQuery(r.URL.Query())
	if err := h.validator.ValidateStruct(sel); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.renderDashboard(w, r, sel)
}

// PostDashboard handles POST /api/dashboard with a JSON selection body
func (h *DashboardHandler) PostDashboard(w http.ResponseWriter, r *http.Request) {
	var sel domain.Selection
	if err := h.validator.DecodeJSON(w, r, &sel); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.renderDashboard(w, r, sel)
}

func (h *DashboardHandler) renderDashboard(w http.ResponseWriter, r *http.Request, sel domain.Selection) {
	result, err := h.service.Render(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	w.Header().Set("X-Row-Count", strconv.Itoa(result.RowCount))
	render.JSON(w, r, result)
}

// GetOptions handles GET /api/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Options())
}

// GetReport handles GET /api/report
func (h *DashboardHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Report())
}

// Export handles GET /api/export/{format}. The file is built in memory so a
// failure can still be reported as a problem response.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "format")
	format, err := exporter.ParseFormat(name)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.UnsupportedFormatError(name, supportedFormats))
		return
	}

	sel := SelectionFromQuery(r.URL.Query())
	if err := h.validator.ValidateStruct(sel); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	rows, err := h.service.Export(r.Context(), &buf, string(format), sel)
	if err != nil {
		middleware.RecordSystemError(r.Context(), "export", "dashboard_handler")
		mapped := mapServiceError(err)
		var apiErr *apierrors.APIError
		if !errors.As(mapped, &apiErr) && !errors.Is(mapped, context.Canceled) && !errors.Is(mapped, context.DeadlineExceeded) {
			mapped = apierrors.ExportError(string(format), err)
		}
		h.errorHandler.HandleError(w, r, mapped)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Row-Count", strconv.Itoa(rows))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export write interrupted",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
	}
}

// mapServiceError translates service sentinels into API errors; anything
// else is passed through for the error handler to classify.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.UnsupportedFormatError("", supportedFormats)
	case errors.Is(err, services.ErrInvalidSelection):
		return apierrors.NewWithDetails(http.StatusBadRequest, apierrors.CodeValidationFailed, "Invalid selection", err.Error())
	case errors.Is(err, services.ErrNoBaseTable):
		return apierrors.ErrDataNotLoaded
	case errors.Is(err, services.ErrServiceUnavailable):
		return apierrors.ErrServiceUnavailable
	case errors.Is(err, exporter.ErrUnsupportedFormat):
		return apierrors.UnsupportedFormatError("", supportedFormats)
	default:
		return err
	}
}
