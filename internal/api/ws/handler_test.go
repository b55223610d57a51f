package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/GriffinCanCode/DeskShell/backend/internal/api/http"
	"github.com/GriffinCanCode/DeskShell/backend/internal/apps"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/flow"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/session"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

type recorder struct {
	connections chan int
}

func (r *recorder) IncWSConnections()              { r.connections <- 1 }
func (r *recorder) DecWSConnections()              { r.connections <- -1 }
func (r *recorder) RecordWSMessage(string, string) {}

type harness struct {
	manager   *workspace.Manager
	metrics   *recorder
	url       string
	visitorID string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := registry.Load(apps.Factories(nil))
	require.NoError(t, err)
	manager := workspace.NewManager(workspace.Deps{Registry: reg, Storage: session.NewMemory()}, workspace.Config{})
	t.Cleanup(manager.CloseAll)

	metrics := &recorder{connections: make(chan int, 8)}
	handlers := apihttp.NewHandlers(manager, reg, nil, nil, nil, apihttp.DefaultCookieOptions())
	router := gin.New()
	router.GET("/ws", handlers.Visitor(), NewHandler(manager, metrics, nil, nil).HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &harness{
		manager:   manager,
		metrics:   metrics,
		url:       "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		visitorID: uuid.NewString(),
	}
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set("Cookie", apihttp.VisitorCookie+"="+h.visitorID)
	conn, resp, err := websocket.DefaultDialer.Dial(h.url, header)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (h *harness) workspace() *workspace.Workspace {
	return h.manager.Get(context.Background(), h.visitorID)
}

func read(t *testing.T, conn *websocket.Conn) ServerFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame ServerFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

// readState skips frames until a state frame matching pred arrives
func readState(t *testing.T, conn *websocket.Conn, pred func(*workspace.State) bool) *workspace.State {
	t.Helper()
	for range 10 {
		frame := read(t, conn)
		if frame.Type == FrameState && pred(frame.State) {
			return frame.State
		}
	}
	t.Fatal("no matching state frame")
	return nil
}

func TestInitialStateAndPing(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t)

	frame := read(t, conn)
	require.Equal(t, FrameState, frame.Type)
	assert.Equal(t, types.ScreenIntro, frame.State.Flow.Screen)
	assert.Equal(t, 1, <-h.metrics.connections)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FramePing}))
	assert.Equal(t, FramePong, read(t, conn).Type)
}

func TestStatePushedOnChange(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t)
	read(t, conn)

	ws := h.workspace()
	require.NoError(t, ws.Continue())
	require.NoError(t, ws.Login(context.Background(), flow.DefaultPIN))

	st := readState(t, conn, func(s *workspace.State) bool { return s.Flow.Screen == types.ScreenDesktop })
	assert.NotNil(t, st.Desktop)
}

func TestEventFrames(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t)
	read(t, conn)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FrameEvent, Event: &workspace.Event{Type: workspace.EventKey, Key: "Escape"}}))
	frame := read(t, conn)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, http.StatusConflict, frame.Status, "desktop events need a login")

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FrameEvent, Event: &workspace.Event{Type: "scroll"}}))
	frame = read(t, conn)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, http.StatusBadRequest, frame.Status)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FrameEvent}))
	assert.Equal(t, FrameError, read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: "shout"}))
	assert.Equal(t, FrameError, read(t, conn).Type)

	ws := h.workspace()
	require.NoError(t, ws.Continue())
	require.NoError(t, ws.Login(context.Background(), flow.DefaultPIN))
	readState(t, conn, func(s *workspace.State) bool { return s.Flow.Screen == types.ScreenDesktop })

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FrameEvent, Event: &workspace.Event{Type: workspace.EventDock, App: "notes"}}))
	st := readState(t, conn, func(s *workspace.State) bool { return len(s.Apps) == 1 })
	for _, view := range st.Apps {
		assert.Equal(t, "notes", view["kind"])
	}
}

func TestWorkspaceCloseEndsStream(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t)
	read(t, conn)
	assert.Equal(t, 1, h.workspace().Subscribers())

	require.True(t, h.manager.Close(h.visitorID))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame ServerFrame
	err := conn.ReadJSON(&frame)
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), err.Error())

	assert.Equal(t, 1, <-h.metrics.connections)
	select {
	case delta := <-h.metrics.connections:
		assert.Equal(t, -1, delta)
	case <-time.After(2 * time.Second):
		t.Fatal("connection gauge not decremented")
	}
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	open := originChecker(nil)
	assert.True(t, open(req("http://evil.example")))

	strict := originChecker([]string{"http://localhost:5173"})
	assert.True(t, strict(req("http://localhost:5173")))
	assert.True(t, strict(req("")))
	assert.False(t, strict(req("http://evil.example")))

	assert.True(t, originChecker([]string{"*"})(req("http://evil.example")))
}
