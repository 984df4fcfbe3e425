package websocket

import (
	"time"

	apierrors "moviedash/internal/errors"
	"moviedash/pkg/contracts/domain"
)

// Message types
const (
	TypeConnected = "connected"
	TypeSelection = "selection"
	TypeHeartbeat = "heartbeat"
	TypeDashboard = "dashboard"
	TypeError     = "error"
)

// Inbound is a message sent by the page
type Inbound struct {
	Type      string           `json:"type" validate:"required,oneof=selection heartbeat"`
	Selection domain.Selection `json:"selection"`
}

// Outbound is a message sent to the page
type Outbound struct {
	Type      string                    `json:"type"`
	SessionID string                    `json:"session_id,omitempty"`
	Dashboard *domain.Dashboard         `json:"dashboard,omitempty"`
	Error     *apierrors.ProblemDetails `json:"error,omitempty"`
	Timestamp time.Time                 `json:"timestamp"`
}
