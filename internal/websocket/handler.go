package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"moviedash/internal/config"
	"moviedash/internal/middleware"
)

// Handler upgrades GET /ws and runs a Session on the connection
type Handler struct {
	upgrader  websocket.Upgrader
	renderer  Renderer
	registry  *Registry
	validator *middleware.Validator
	cfg       SessionConfig
	logger    *slog.Logger
}

// NewHandler creates the upgrade handler
func NewHandler(renderer Renderer, registry *Registry, cfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	sessionCfg := DefaultSessionConfig()
	if cfg.MaxMessageBytes > 0 {
		sessionCfg.MaxMessageBytes = cfg.MaxMessageBytes
	}
	if cfg.PingPeriod > 0 {
		sessionCfg.PingPeriod = cfg.PingPeriod
	}
	if cfg.PongWait > 0 {
		sessionCfg.PongWait = cfg.PongWait
	}
	sessionCfg.WriteWait = config.WebSocketWriteWait

	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		renderer:  renderer,
		registry:  registry,
		validator: middleware.NewValidator(sessionCfg.MaxMessageBytes),
		cfg:       sessionCfg,
		logger:    logger.With(slog.String("component", "websocket.handler")),
	}
}

// ServeHTTP handles GET /ws. It returns when the session ends.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		h.logger.WarnContext(r.Context(), "WebSocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("origin", r.Header.Get("Origin")))
		return
	}

	// The request context must not end the session; keep its values only.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	session := NewSession(NewConnectionWrapper(conn), h.renderer, h.validator, h.cfg, h.logger)
	h.registry.Add(ctx, session)
	defer h.registry.Remove(ctx, session)

	go session.WritePump(ctx)
	session.Greet(ctx)
	session.ReadPump(ctx)
}

// originChecker allows same-origin requests, any listed origin, or every
// origin when the list holds "*".
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}
