package shell

import "github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"

// TargetKind is what a pointer-down landed on
type TargetKind string

const (
	TargetTitle   TargetKind = "title"
	TargetControl TargetKind = "control"
	TargetResize  TargetKind = "resize"
	TargetBody    TargetKind = "body"
	TargetWidget  TargetKind = "widget"
	TargetDesktop TargetKind = "desktop"
)

// Target identifies a hit element
type Target struct {
	Kind     TargetKind `json:"kind"`
	WindowID string     `json:"window_id,omitempty"`
	WidgetID string     `json:"widget_id,omitempty"`
}

type gestureKind int

const (
	gestureDrag gestureKind = iota + 1
	gestureResize
	gestureWidget
)

type gesture struct {
	kind       gestureKind
	windowID   string
	widgetID   string
	startX     int
	startY     int
	origin     types.Position
	originSize types.Size
	moved      bool
}

// Gesture reports the kind of the active gesture, or "" when idle
func (s *Shell) Gesture() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gesture == nil {
		return ""
	}
	switch s.gesture.kind {
	case gestureDrag:
		return "drag"
	case gestureResize:
		return "resize"
	default:
		return "widget"
	}
}

// PointerDown starts whatever the target implies. A gesture left over from a
// lost PointerUp is dropped first.
func (s *Shell) PointerDown(t Target, x, y int) error {
	s.mu.Lock()
	s.gesture = nil
	s.mu.Unlock()

	switch t.Kind {
	case TargetControl, TargetDesktop:
		return nil

	case TargetBody:
		s.windows.Focus(t.WindowID)
		return nil

	case TargetTitle:
		w, ok := s.windows.Get(t.WindowID)
		if !ok {
			return nil
		}
		s.windows.Focus(w.ID)
		if w.Fullscreen {
			return nil
		}
		s.begin(&gesture{kind: gestureDrag, windowID: w.ID, startX: x, startY: y, origin: w.Position})
		return nil

	case TargetResize:
		w, ok := s.windows.Get(t.WindowID)
		if !ok {
			return nil
		}
		if !w.Resizable {
			return ErrNotResizable
		}
		if w.Fullscreen {
			return ErrFullscreen
		}
		s.windows.Focus(w.ID)
		s.begin(&gesture{kind: gestureResize, windowID: w.ID, startX: x, startY: y, originSize: w.Size})
		return nil

	case TargetWidget:
		return s.beginWidget(t.WidgetID, x, y)
	}
	return ErrUnknownTarget
}

func (s *Shell) begin(g *gesture) {
	s.mu.Lock()
	s.gesture = g
	s.mu.Unlock()
}

// PointerMove feeds the active gesture
func (s *Shell) PointerMove(x, y int) {
	s.mu.Lock()
	g := s.gesture
	v := s.viewport
	s.mu.Unlock()
	if g == nil {
		return
	}

	dx, dy := x-g.startX, y-g.startY

	switch g.kind {
	case gestureDrag:
		w, ok := s.windows.Get(g.windowID)
		if !ok || w.Fullscreen {
			s.end()
			return
		}
		s.windows.UpdatePosition(w.ID, types.Position{
			X: types.Clamp(g.origin.X+dx, dragMarginX, v.Width-w.Size.Width-dragMarginX),
			Y: types.Clamp(g.origin.Y+dy, dragTop, v.Height-w.Size.Height-dragBottomMargin),
		})

	case gestureResize:
		if !s.windows.UpdateSize(g.windowID, types.Size{
			Width:  max(MinWindowWidth, g.originSize.Width+dx),
			Height: max(MinWindowHeight, g.originSize.Height+dy),
		}) {
			s.end()
		}

	case gestureWidget:
		s.moveWidget(g, dx, dy)
	}
}

// PointerUp ends the active gesture unconditionally
func (s *Shell) PointerUp(x, y int) {
	s.mu.Lock()
	g := s.gesture
	s.gesture = nil
	s.mu.Unlock()

	if g != nil && g.kind == gestureWidget && !g.moved {
		s.clickWidget(g.widgetID)
	}
}

func (s *Shell) end() {
	s.mu.Lock()
	s.gesture = nil
	s.mu.Unlock()
}

// DoubleClick on a title toggles fullscreen
func (s *Shell) DoubleClick(t Target) {
	if t.Kind != TargetTitle {
		return
	}
	s.windows.ToggleFullscreen(t.WindowID)
}
