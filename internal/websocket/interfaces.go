package websocket

import (
	"context"
	"time"

	"moviedash/pkg/contracts/domain"
)

// Connection is the part of a gorilla connection a session uses
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	RemoteAddr() string
}

// Renderer produces a dashboard for a selection
type Renderer interface {
	Render(ctx context.Context, sel domain.Selection) (domain.Dashboard, error)
}
