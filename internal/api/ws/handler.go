package ws

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apihttp "github.com/GriffinCanCode/DeskShell/backend/internal/api/http"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	outboxSize     = 16
)

// Frame types
const (
	FrameEvent = "event"
	FramePing  = "ping"
	FrameState = "state"
	FramePong  = "pong"
	FrameError = "error"
)

// ClientFrame is a message from the browser
type ClientFrame struct {
	Type  string           `json:"type"`
	Event *workspace.Event `json:"event,omitempty"`
}

// ServerFrame is a message to the browser
type ServerFrame struct {
	Type   string           `json:"type"`
	State  *workspace.State `json:"state,omitempty"`
	Error  string           `json:"error,omitempty"`
	Status int              `json:"status,omitempty"`
}

// Recorder receives connection metrics
type Recorder interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction, msgType string)
}

type nopRecorder struct{}

func (nopRecorder) IncWSConnections()              {}
func (nopRecorder) DecWSConnections()              {}
func (nopRecorder) RecordWSMessage(string, string) {}

// Handler streams workspace state over WebSocket connections
type Handler struct {
	manager  *workspace.Manager
	metrics  Recorder
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a handler. An empty origin list, or one containing
// "*", accepts every origin.
func NewHandler(manager *workspace.Manager, metrics Recorder, logger *zap.Logger, origins []string) *Handler {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		manager: manager,
		metrics: metrics,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(origins),
		},
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}

// HandleConnection upgrades the request and runs the stream until either
// side goes away. It must run behind the visitor middleware.
func (h *Handler) HandleConnection(c *gin.Context) {
	visitorID := apihttp.VisitorID(c)
	if visitorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing visitor"})
		return
	}

	// the hijacked response ignores headers set by earlier middleware
	header := http.Header{}
	for _, v := range c.Writer.Header().Values("Set-Cookie") {
		header.Add("Set-Cookie", v)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.String("visitor_id", visitorID), zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	ws := h.manager.Get(c.Request.Context(), visitorID)
	updates, unsubscribe := ws.Subscribe()
	defer unsubscribe()

	logger := h.logger.With(zap.String("visitor_id", visitorID))
	logger.Debug("WebSocket connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	out := make(chan ServerFrame, outboxSize)

	g.Go(func() error {
		defer cancel()
		return h.readLoop(ctx, conn, ws, out)
	})
	g.Go(func() error {
		defer conn.Close()
		return h.writeLoop(ctx, conn, ws, updates, out)
	})

	if err := g.Wait(); err != nil && !isClosure(err) {
		logger.Debug("WebSocket closed with error", zap.Error(err))
		return
	}
	logger.Debug("WebSocket disconnected")
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, ws *workspace.Workspace, out chan<- ServerFrame) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame ClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return err
		}
		h.metrics.RecordWSMessage("in", frame.Type)

		reply, ok := h.handle(ws, frame)
		if !ok {
			continue
		}
		select {
		case out <- reply:
		case <-ctx.Done():
			return nil
		}
	}
}

// handle applies one client frame. Successful events answer through the
// subscription, so only pongs and errors are returned.
func (h *Handler) handle(ws *workspace.Workspace, frame ClientFrame) (ServerFrame, bool) {
	switch frame.Type {
	case FramePing:
		return ServerFrame{Type: FramePong}, true
	case FrameEvent:
		if frame.Event == nil {
			return errorFrame(errors.New("event frame without event")), true
		}
		if err := apihttp.ValidateEvent(*frame.Event); err != nil {
			return errorFrame(err), true
		}
		if err := ws.Dispatch(*frame.Event); err != nil {
			return errorFrame(err), true
		}
		return ServerFrame{}, false
	default:
		return ServerFrame{Type: FrameError, Error: "unknown frame type", Status: http.StatusBadRequest}, true
	}
}

func errorFrame(err error) ServerFrame {
	return ServerFrame{Type: FrameError, Error: err.Error(), Status: apihttp.StatusFor(err)}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, ws *workspace.Workspace, updates <-chan uint64, out <-chan ServerFrame) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	var sent uint64
	sendState := func() error {
		st := ws.State()
		if sent != 0 && st.Version <= sent {
			return nil
		}
		sent = st.Version
		return h.write(conn, ServerFrame{Type: FrameState, State: &st})
	}

	if err := sendState(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return nil

		case _, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "workspace closed"),
					time.Now().Add(writeWait))
				return nil
			}
			if err := sendState(); err != nil {
				return err
			}

		case frame := <-out:
			if err := h.write(conn, frame); err != nil {
				return err
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, frame ServerFrame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame); err != nil {
		return err
	}
	h.metrics.RecordWSMessage("out", frame.Type)
	return nil
}

func isClosure(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
