package websocket

import (
	"context"
	"log/slog"
	"sync"

	"moviedash/internal/infrastructure"
)

// Registry tracks open sessions so health checks can count them and
// shutdown can close them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// NewRegistry creates an empty registry. metrics may be nil.
func NewRegistry(metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		metrics:  metrics,
		logger:   logger.With(slog.String("component", "websocket.registry")),
	}
}

// Add registers a session
func (r *Registry) Add(ctx context.Context, s *Session) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	count := len(r.sessions)
	r.mu.Unlock()

	infrastructure.RecordSessionChange(ctx, r.metrics, 1)
	r.logger.InfoContext(ctx, "Session registered",
		slog.String("session_id", s.ID()),
		slog.Int("sessions", count))
}

// Remove unregisters a session; unknown sessions are ignored
func (r *Registry) Remove(ctx context.Context, s *Session) {
	r.mu.Lock()
	_, ok := r.sessions[s.ID()]
	delete(r.sessions, s.ID())
	count := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}
	infrastructure.RecordSessionChange(ctx, r.metrics, -1)
	r.logger.InfoContext(ctx, "Session unregistered",
		slog.String("session_id", s.ID()),
		slog.Int("sessions", count))
}

// SessionCount returns the number of open sessions
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll closes every open session
func (r *Registry) CloseAll() {
	r.mu.RLock()
	open := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		open = append(open, s)
	}
	r.mu.RUnlock()

	for _, s := range open {
		s.Close()
	}
	if len(open) > 0 {
		r.logger.Info("Closed open sessions", slog.Int("sessions", len(open)))
	}
}
