package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	"github.com/pixwingai/pixwing-site/internal/core/mocks"
	"github.com/pixwingai/pixwing-site/internal/core/services"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type received struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startServer(t *testing.T, series domain.ActivitySeries) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()

	source := mocks.NewMockActivitySource()
	source.On("FetchActivity", mock.Anything).Return(series, nil)

	hub := NewHub(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		widget := services.NewActivityWidget(source, services.DefaultChartFactory{}, domain.Breakpoint, testLogger())
		NewClient(hub, conn, widget, testLogger()).Start()
	}))

	return hub, server, cancel
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func sendViewport(t *testing.T, conn *websocket.Conn, width int) {
	t.Helper()
	payload, err := json.Marshal(ViewportPayload{
		Width:  width,
		Height: 900,
		Box:    domain.Box{Width: 800, Height: 400},
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageViewport, Payload: payload}))
}

// readUntil reads messages until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(received) bool) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg received
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func renderWithBranch(branch domain.RenderBranch) func(received) bool {
	return func(msg received) bool {
		if msg.Type != MessageRender {
			return false
		}
		var r services.WidgetRender
		if err := json.Unmarshal(msg.Payload, &r); err != nil {
			return false
		}
		return r.Branch == branch && r.State == services.StateRendered
	}
}

func TestWidgetSession_FollowsBreakpoint(t *testing.T) {
	series := domain.ActivitySeries{
		{Date: "2024-01-01", NumEvents: 1},
		{Date: "2024-01-02", NumEvents: 3},
		{Date: "2024-01-03", NumEvents: 0},
	}
	hub, server, cancel := startServer(t, series)
	defer server.Close()
	defer cancel()

	conn := dial(t, server)
	defer conn.Close()

	sendViewport(t, conn, 1200)
	msg := readUntil(t, conn, renderWithBranch(domain.BranchChart))

	var render services.WidgetRender
	require.NoError(t, json.Unmarshal(msg.Payload, &render))
	require.NotNil(t, render.Chart)
	assert.Equal(t, []int{1, 3, 0}, render.Chart.Data.Datasets[0].Data)
	assert.Nil(t, render.Summary)
	assert.NotZero(t, render.ChartID)
	firstChart := render.ChartID

	sendViewport(t, conn, 600)
	msg = readUntil(t, conn, renderWithBranch(domain.BranchSummary))
	var summary services.WidgetRender
	require.NoError(t, json.Unmarshal(msg.Payload, &summary))
	require.NotNil(t, summary.Summary)
	assert.Equal(t, 2, summary.Metrics.LongestStreak)
	assert.Zero(t, summary.ChartID)

	sendViewport(t, conn, 1200)
	msg = readUntil(t, conn, renderWithBranch(domain.BranchChart))
	var rebuilt services.WidgetRender
	require.NoError(t, json.Unmarshal(msg.Payload, &rebuilt))
	require.NotNil(t, rebuilt.Chart)
	assert.NotEqual(t, firstChart, rebuilt.ChartID)
	assert.True(t, rebuilt.Chart.Options.Animation.Stagger.Enabled)

	assert.Equal(t, 1, hub.GetClientCount())
}

func TestWidgetSession_PingPong(t *testing.T) {
	_, server, cancel := startServer(t, domain.ActivitySeries{})
	defer server.Close()
	defer cancel()

	conn := dial(t, server)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessagePing}))
	msg := readUntil(t, conn, func(m received) bool { return m.Type == MessagePong })
	assert.Equal(t, MessagePong, msg.Type)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, server, cancel := startServer(t, domain.ActivitySeries{})
	defer server.Close()
	defer cancel()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.GetClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.GetClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_ShutdownClosesSessions(t *testing.T) {
	hub, server, cancel := startServer(t, domain.ActivitySeries{})
	defer server.Close()

	conn := dial(t, server)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.GetClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.GetClientCount())

	// The server sends a close frame once the session is torn down.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
