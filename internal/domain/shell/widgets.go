package shell

import (
	"errors"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

const (
	WidgetClock  = "clock"
	WidgetAgenda = "agenda"

	// WidgetDragThreshold is the movement in pixels that turns a press into a drag
	WidgetDragThreshold = 5

	widgetAnchorMinLeft = 12
	widgetAnchorRight   = 24
	widgetMarginLeft    = 6
	widgetMarginRight   = 12
	widgetTop           = 34
	widgetMarginBottom  = 20
)

// ErrUnknownWidget is returned for a widget id other than clock or agenda
var ErrUnknownWidget = errors.New("unknown widget")

// Widget is a free-floating desktop panel. It is not a window record.
type Widget struct {
	ID         string         `json:"id"`
	Position   types.Position `json:"position"`
	Size       types.Size     `json:"size"`
	UserPlaced bool           `json:"user_placed"`

	anchorTop int
}

func defaultWidgets() []*Widget {
	return []*Widget{
		{ID: WidgetClock, Size: types.Size{Width: 280, Height: 150}, anchorTop: 72},
		{ID: WidgetAgenda, Size: types.Size{Width: 280, Height: 200}, anchorTop: 250},
	}
}

// DefaultWidgetPosition is where a widget sits until the user drags it
func DefaultWidgetPosition(w Widget, v Viewport) types.Position {
	return types.Position{
		X: max(widgetAnchorMinLeft, v.Width-w.Size.Width-widgetAnchorRight),
		Y: w.anchorTop,
	}
}

// anchorWidgets must be called with mu held
func (s *Shell) anchorWidgets() {
	for _, w := range s.widgets {
		if !w.UserPlaced {
			w.Position = DefaultWidgetPosition(*w, s.viewport)
		}
	}
}

func (s *Shell) widget(id string) *Widget {
	for _, w := range s.widgets {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Widgets returns copies of both widgets
func (s *Shell) Widgets() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Widget, 0, len(s.widgets))
	for _, w := range s.widgets {
		out = append(out, *w)
	}
	return out
}

func (s *Shell) beginWidget(id string, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.widget(id)
	if w == nil {
		return ErrUnknownWidget
	}
	s.gesture = &gesture{kind: gestureWidget, widgetID: id, startX: x, startY: y, origin: w.Position}
	return nil
}

func (s *Shell) moveWidget(g *gesture, dx, dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.widget(g.widgetID)
	if w == nil {
		return
	}
	if !g.moved && (abs(dx) > WidgetDragThreshold || abs(dy) > WidgetDragThreshold) {
		g.moved = true
		w.UserPlaced = true
	}
	if !g.moved {
		return
	}
	w.Position = types.Position{
		X: types.Clamp(g.origin.X+dx, widgetMarginLeft, s.viewport.Width-w.Size.Width-widgetMarginRight),
		Y: types.Clamp(g.origin.Y+dy, widgetTop, s.viewport.Height-w.Size.Height-widgetMarginBottom),
	}
}

func (s *Shell) clickWidget(id string) {
	if id == WidgetAgenda {
		s.windows.Create("calendar", window.Options{})
	}
}

// TickClock refreshes the clock widget text and reports whether it changed
func (s *Shell) TickClock() bool {
	text := s.clock().Format("15:04")

	s.mu.Lock()
	defer s.mu.Unlock()
	if text == s.clockText {
		return false
	}
	s.clockText = text
	return true
}

// ClockText is the time shown by the clock widget
func (s *Shell) ClockText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clockText
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
