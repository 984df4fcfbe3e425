package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	apierrors "moviedash/internal/errors"
	"moviedash/internal/middleware"
)

// SessionConfig bounds one live selection session
type SessionConfig struct {
	MaxMessageBytes int64
	PingPeriod      time.Duration
	PongWait        time.Duration
	WriteWait       time.Duration
	SendBuffer      int
}

// DefaultSessionConfig mirrors the config package defaults
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxMessageBytes: 16 << 10,
		PingPeriod:      30 * time.Second,
		PongWait:        60 * time.Second,
		WriteWait:       10 * time.Second,
		SendBuffer:      8,
	}
}

// Session is one page's live connection. Every selection message it receives
// is answered with a freshly rendered dashboard, in order.
type Session struct {
	id          string
	conn        Connection
	renderer    Renderer
	validator   *middleware.Validator
	cfg         SessionConfig
	logger      *slog.Logger
	send        chan []byte
	done        chan struct{}
	closeOnce   sync.Once
	connectedAt time.Time

	messagesReceived atomic.Int64
	messagesSent     atomic.Int64
}

// NewSession creates a session over an established connection
func NewSession(conn Connection, renderer Renderer, validator *middleware.Validator, cfg SessionConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if validator == nil {
		validator = middleware.NewValidator(cfg.MaxMessageBytes)
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 1
	}

	id := uuid.New().String()
	return &Session{
		id:        id,
		conn:      conn,
		renderer:  renderer,
		validator: validator,
		cfg:       cfg,
		logger: logger.With(
			slog.String("component", "websocket.session"),
			slog.String("session_id", id),
			slog.String("remote_addr", conn.RemoteAddr()),
		),
		send:        make(chan []byte, cfg.SendBuffer),
		done:        make(chan struct{}),
		connectedAt: time.Now(),
	}
}

// ID returns the session's UUID
func (s *Session) ID() string {
	return s.id
}

// Done is closed once the session has ended
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close ends the session. The write pump sends a close frame and releases
// the connection. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Greet queues the connected message carrying the session ID
func (s *Session) Greet(ctx context.Context) {
	s.enqueue(ctx, Outbound{Type: TypeConnected, SessionID: s.id, Timestamp: time.Now()})
}

// ReadPump reads selection messages until the peer goes away, rendering
// each one synchronously.
func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.logger.InfoContext(ctx, "WebSocket session closed",
			slog.Duration("connection_duration", time.Since(s.connectedAt)),
			slog.Int64("messages_received", s.messagesReceived.Load()),
			slog.Int64("messages_sent", s.messagesSent.Load()))
		s.Close()
	}()

	s.conn.SetReadLimit(s.cfg.MaxMessageBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WarnContext(ctx, "Unexpected WebSocket close", slog.String("error", err.Error()))
			}
			return
		}
		s.messagesReceived.Add(1)
		_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))

		if !s.handle(ctx, data) {
			return
		}
	}
}

// handle processes one inbound message; false stops the read loop
func (s *Session) handle(ctx context.Context, data []byte) bool {
	var msg Inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return s.enqueue(ctx, s.problem(http.StatusBadRequest, apierrors.TypeValidation, "message is not valid JSON"))
	}
	if err := s.validator.ValidateStruct(msg); err != nil {
		var apiErr *apierrors.APIError
		detail := err.Error()
		if errors.As(err, &apiErr) && apiErr.Details != nil {
			if b, mErr := json.Marshal(apiErr.Details); mErr == nil {
				detail = string(b)
			}
		}
		return s.enqueue(ctx, s.problem(http.StatusBadRequest, apierrors.TypeValidation, detail))
	}

	if msg.Type == TypeHeartbeat {
		return true
	}

	start := time.Now()
	result, err := s.renderer.Render(ctx, msg.Selection)
	if err != nil {
		s.logger.ErrorContext(ctx, "Render failed", slog.String("error", err.Error()))
		return s.enqueue(ctx, s.problem(http.StatusInternalServerError, apierrors.TypeInternal, "dashboard could not be rendered"))
	}
	s.logger.DebugContext(ctx, "Selection rendered",
		slog.Int("rows", result.RowCount),
		slog.Duration("duration", time.Since(start)))

	return s.enqueue(ctx, Outbound{Type: TypeDashboard, Dashboard: &result, Timestamp: time.Now()})
}

func (s *Session) problem(status int, problemType, detail string) Outbound {
	return Outbound{
		Type:      TypeError,
		Error:     apierrors.NewProblemDetails(status, problemType, http.StatusText(status), detail, "/ws"),
		Timestamp: time.Now(),
	}
}

// enqueue hands a message to the write pump, waiting while the buffer is
// full. It reports false once the session is closed.
func (s *Session) enqueue(ctx context.Context, msg Outbound) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode message",
			slog.String("type", msg.Type),
			slog.String("error", err.Error()))
		return true
	}
	select {
	case s.send <- data:
		return true
	case <-s.done:
		return false
	}
}

// WritePump writes queued messages and keeps the connection alive with pings
func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case message := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.WarnContext(ctx, "Error writing message to WebSocket", slog.String("error", err.Error()))
				return
			}
			s.messagesSent.Add(1)

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.DebugContext(ctx, "Failed to send ping message", slog.String("error", err.Error()))
				return
			}
		}
	}
}
