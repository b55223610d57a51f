package shell

import (
	"errors"
	"sync"
	"time"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/puzzle"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// Window chrome limits in viewport pixels
const (
	MinWindowWidth  = 280
	MinWindowHeight = 180

	dragMarginX      = 6
	dragTop          = 34
	dragBottomMargin = 48

	fullscreenLeft   = 10
	fullscreenTop    = 34
	fullscreenWidth  = 20
	fullscreenHeight = 60
)

var (
	ErrNotResizable  = errors.New("window is not resizable")
	ErrFullscreen    = errors.New("window is fullscreen")
	ErrUnknownTarget = errors.New("unknown pointer target")
)

// Viewport is the browser's inner size
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultViewport is assumed until the client reports its size
var DefaultViewport = Viewport{Width: 1440, Height: 900}

// Shell is the interaction layer of one workspace
type Shell struct {
	mu       sync.Mutex
	windows  *window.Manager
	registry *registry.Registry
	puzzle   *puzzle.Store
	clock    func() time.Time

	viewport Viewport
	gesture  *gesture
	widgets  []*Widget

	archiveOverlay bool
	archiveError   string
	clockText      string
}

// Option configures a Shell
type Option func(*Shell)

// WithViewport sets the initial viewport
func WithViewport(v Viewport) Option {
	return func(s *Shell) {
		if v.Width > 0 && v.Height > 0 {
			s.viewport = v
		}
	}
}

// WithClock replaces the wall clock used by the clock widget
func WithClock(fn func() time.Time) Option {
	return func(s *Shell) { s.clock = fn }
}

// New creates a shell over a window manager
func New(windows *window.Manager, reg *registry.Registry, pz *puzzle.Store, opts ...Option) *Shell {
	s := &Shell{
		windows:  windows,
		registry: reg,
		puzzle:   pz,
		clock:    time.Now,
		viewport: DefaultViewport,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.widgets = defaultWidgets()
	s.anchorWidgets()
	s.clockText = s.clock().Format("15:04")
	return s
}

// Viewport returns the current viewport
func (s *Shell) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// SetViewport records a browser resize and re-anchors widgets the user never moved
func (s *Shell) SetViewport(v Viewport) {
	if v.Width <= 0 || v.Height <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
	s.anchorWidgets()
}

// WindowRect is where a window renders, honoring fullscreen
func (s *Shell) WindowRect(w types.WindowRecord) types.Rect {
	s.mu.Lock()
	v := s.viewport
	s.mu.Unlock()
	return windowRect(w, v)
}

func windowRect(w types.WindowRecord, v Viewport) types.Rect {
	if w.Fullscreen {
		return types.Rect{
			X:      fullscreenLeft,
			Y:      fullscreenTop,
			Width:  v.Width - fullscreenWidth,
			Height: v.Height - fullscreenHeight,
		}
	}
	return types.NewRect(w.Position, w.Size)
}

// Open creates a window for appID
func (s *Shell) Open(appID string, opts window.Options) types.WindowRecord {
	return s.windows.Create(appID, opts)
}
