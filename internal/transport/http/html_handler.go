package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	apierrors "moviedash/internal/errors"
	"moviedash/pkg/contracts/domain"
)

// DefaultPlotlyURL is the chart library the page loads
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// pageData feeds templates/dashboard.html
type pageData struct {
	Dashboard   domain.Dashboard
	PlotlyURL   string
	LiveUpdates bool
}

// PageHandler serves the HTML dashboard with every value selected. Later
// selections are fetched by the page over /ws or POST /api/dashboard.
type PageHandler struct {
	service      DashboardServiceInterface
	liveUpdates  bool
	plotlyURL    string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPageHandler creates the dashboard page handler
func NewPageHandler(service DashboardServiceInterface, liveUpdates bool, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PageHandler {
	return &PageHandler{
		service:      service,
		liveUpdates:  liveUpdates,
		plotlyURL:    DefaultPlotlyURL,
		logger:       logger.With(slog.String("handler", "page")),
		errorHandler: errorHandler,
	}
}

// ServeHTTP handles GET /
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Render(r.Context(), domain.AllSelected())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}

	var buf bytes.Buffer
	data := pageData{Dashboard: result, PlotlyURL: h.plotlyURL, LiveUpdates: h.liveUpdates}
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "dashboard template failed", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
