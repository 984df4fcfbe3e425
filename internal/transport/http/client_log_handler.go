package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "moviedash/internal/errors"
	"moviedash/internal/middleware"
)

// ClientLogHandler records errors reported by the dashboard page, such as a
// chart that failed to draw or a dropped live connection.
type ClientLogHandler struct {
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewClientLogHandler creates a new client log handler
func NewClientLogHandler(validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ClientLogHandler {
	if validator == nil {
		validator = middleware.NewValidator(16 << 10)
	}
	return &ClientLogHandler{
		validator:    validator,
		logger:       logger.With(slog.String("handler", "client_log")),
		errorHandler: errorHandler,
	}
}

// LogRequest represents a client log entry
type LogRequest struct {
	Level   string                 `json:"level" validate:"omitempty,oneof=debug info warn error"`
	Message string                 `json:"message" validate:"required,max=2000"`
	View    string                 `json:"view,omitempty" validate:"max=64"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Handle processes POST /api/client-log
func (h *ClientLogHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	if err := h.validator.DecodeJSON(w, r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	attrs := []slog.Attr{
		slog.String("source", "browser"),
		slog.String("user_agent", r.UserAgent()),
	}
	if req.View != "" {
		attrs = append(attrs, slog.String("view", req.View))
	}
	if req.Data != nil {
		attrs = append(attrs, slog.Any("data", req.Data))
	}

	h.logger.LogAttrs(r.Context(), clientLevel(req.Level), req.Message, attrs...)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{"success": true})
}

func clientLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
