package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviedash/internal/config"
	"moviedash/internal/dashboard"
	"moviedash/internal/shared/testutil"
	"moviedash/pkg/contracts/domain"
)

type fixtureRenderer struct {
	fail bool
}

func (f fixtureRenderer) Render(_ context.Context, sel domain.Selection) (domain.Dashboard, error) {
	if f.fail {
		return domain.Dashboard{}, errors.New("render exploded")
	}
	return dashboard.Render(testutil.BaseTable(), sel, dashboard.DefaultOptions()), nil
}

func startServer(t *testing.T, renderer Renderer) (*httptest.Server, *Registry) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	registry := NewRegistry(nil, logger)
	cfg := config.Default().WebSocket
	h := NewHandler(renderer, registry, cfg, nil, logger)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, registry
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readOutbound(t *testing.T, conn *websocket.Conn) Outbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Outbound
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHandler_SelectionRoundTrip(t *testing.T) {
	srv, registry := startServer(t, fixtureRenderer{})
	conn := dial(t, srv)

	hello := readOutbound(t, conn)
	assert.Equal(t, TypeConnected, hello.Type)
	assert.NotEmpty(t, hello.SessionID)
	assert.Eventually(t, func() bool { return registry.SessionCount() == 1 }, time.Second, 10*time.Millisecond)

	tests := []struct {
		name     string
		payload  string
		wantRows int
	}{
		{name: "all selected", payload: `{"type":"selection","selection":{}}`, wantRows: 5},
		{name: "drama only", payload: `{"type":"selection","selection":{"genres":["Drama"]}}`, wantRows: 2},
		{name: "nothing selected", payload: `{"type":"selection","selection":{"genres":[]}}`, wantRows: 0},
		{name: "genre and rating", payload: `{"type":"selection","selection":{"genres":["Action"],"ratings":["PG"]}}`, wantRows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.payload)))

			msg := readOutbound(t, conn)
			require.Equal(t, TypeDashboard, msg.Type)
			require.NotNil(t, msg.Dashboard)
			assert.Equal(t, tt.wantRows, msg.Dashboard.RowCount)
			assert.Len(t, msg.Dashboard.Views, len(dashboard.ViewOrder))
		})
	}
}

func TestHandler_InvalidMessagesKeepSessionOpen(t *testing.T) {
	srv, _ := startServer(t, fixtureRenderer{})
	conn := dial(t, srv)
	readOutbound(t, conn)

	for _, payload := range []string{`not json`, `{"type":"explode"}`, `{"selection":{}}`} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))
		msg := readOutbound(t, conn)
		assert.Equal(t, TypeError, msg.Type, payload)
		require.NotNil(t, msg.Error)
		assert.Equal(t, http.StatusBadRequest, msg.Error.Status)
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"selection","selection":{}}`)))
	assert.Equal(t, TypeDashboard, readOutbound(t, conn).Type)
}

func TestHandler_RenderFailure(t *testing.T) {
	srv, _ := startServer(t, fixtureRenderer{fail: true})
	conn := dial(t, srv)
	readOutbound(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"selection","selection":{}}`)))
	msg := readOutbound(t, conn)

	assert.Equal(t, TypeError, msg.Type)
	require.NotNil(t, msg.Error)
	assert.Equal(t, http.StatusInternalServerError, msg.Error.Status)
	assert.NotContains(t, msg.Error.Detail, "exploded")
}

func TestHandler_SessionRemovedOnClose(t *testing.T) {
	srv, registry := startServer(t, fixtureRenderer{})
	conn := dial(t, srv)
	readOutbound(t, conn)
	require.Eventually(t, func() bool { return registry.SessionCount() == 1 }, time.Second, 10*time.Millisecond)

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return registry.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRegistry_CloseAll(t *testing.T) {
	srv, registry := startServer(t, fixtureRenderer{})
	conn := dial(t, srv)
	readOutbound(t, conn)
	require.Eventually(t, func() bool { return registry.SessionCount() == 1 }, time.Second, 10*time.Millisecond)

	registry.CloseAll()

	assert.Eventually(t, func() bool { return registry.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    bool
	}{
		{name: "no origin header", origin: "", host: "dash.local", want: true},
		{name: "same origin", origin: "http://dash.local", host: "dash.local", want: true},
		{name: "listed origin", allowed: []string{"http://other.local"}, origin: "http://other.local", host: "dash.local", want: true},
		{name: "wildcard", allowed: []string{"*"}, origin: "http://any.local", host: "dash.local", want: true},
		{name: "foreign origin", allowed: []string{"http://other.local"}, origin: "http://evil.local", host: "dash.local", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, originChecker(tt.allowed)(req))
		})
	}
}

func TestHandler_PlainRequestRejected(t *testing.T) {
	srv, registry := startServer(t, fixtureRenderer{})

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, registry.SessionCount())
}
