package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
)

// EventType names an input event
type EventType string

const (
	EventPointerDown EventType = "pointerdown"
	EventPointerMove EventType = "pointermove"
	EventPointerUp   EventType = "pointerup"
	EventDoubleClick EventType = "dblclick"
	EventKey         EventType = "key"
	EventDock        EventType = "dock"
	EventIcon        EventType = "icon"
	EventViewport    EventType = "viewport"
)

// ErrUnknownEvent is returned for an event type Dispatch does not know
var ErrUnknownEvent = errors.New("unknown event type")

// Event is one input event from the browser
type Event struct {
	Type   EventType    `json:"type"`
	Target shell.Target `json:"target"`
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Key    string       `json:"key,omitempty"`
	Mod    bool         `json:"mod,omitempty"`
	App    string       `json:"app,omitempty"`
	Icon   string       `json:"icon,omitempty"`
	Width  int          `json:"width,omitempty"`
	Height int          `json:"height,omitempty"`
}

// Dispatch applies one input event. Everything except viewport changes
// needs the desktop screen.
func (ws *Workspace) Dispatch(ev Event) error {
	if ev.Type == EventViewport {
		return ws.SetViewport(shell.Viewport{Width: ev.Width, Height: ev.Height})
	}

	return ws.desktop(func() error {
		switch ev.Type {
		case EventPointerDown:
			return ws.shell.PointerDown(ev.Target, ev.X, ev.Y)
		case EventPointerMove:
			ws.shell.PointerMove(ev.X, ev.Y)
		case EventPointerUp:
			ws.shell.PointerUp(ev.X, ev.Y)
		case EventDoubleClick:
			ws.shell.DoubleClick(ev.Target)
		case EventKey:
			ws.key(shell.Key{Key: ev.Key, Mod: ev.Mod})
		case EventDock:
			if _, ok := ws.registry.Lookup(ev.App); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownApp, ev.App)
			}
			ws.shell.DockClick(ev.App)
		case EventIcon:
			return ws.shell.OpenIcon(ev.Icon)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
		}
		return nil
	})
}

// key routes the search chord and Escape to the overlays before windows
// see them. Must hold mu.
func (ws *Workspace) key(k shell.Key) {
	if k.IsSearchChord() {
		_ = ws.flow.OpenSearch()
		return
	}

	st := ws.flow.State()
	if strings.EqualFold(k.Key, "escape") {
		switch {
		case st.SearchOverlay:
			ws.flow.CloseSearch()
			return
		case ws.shell.Archive().Open:
			ws.shell.CloseArchiveOverlay()
			return
		case st.LogoutConfirm:
			ws.flow.CancelLogout()
			return
		}
	}
	if st.SearchOverlay {
		return
	}
	ws.shell.HandleKey(k)
}
