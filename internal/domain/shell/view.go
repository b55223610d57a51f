package shell

import "github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"

// WindowView is a window as the desktop draws it
type WindowView struct {
	types.WindowRecord
	Title  string     `json:"title"`
	Icon   string     `json:"icon"`
	Rect   types.Rect `json:"rect"`
	Active bool       `json:"active"`
}

// View is everything the desktop renders outside application interiors
type View struct {
	Viewport    Viewport       `json:"viewport"`
	Windows     []WindowView   `json:"windows"`
	Dock        []DockItem     `json:"dock"`
	DockVisible bool           `json:"dock_visible"`
	Widgets     []Widget       `json:"widgets"`
	Clock       string         `json:"clock"`
	Icons       []Icon         `json:"icons"`
	Archive     ArchiveOverlay `json:"archive"`
	Gesture     string         `json:"gesture,omitempty"`
}

// View snapshots the desktop back to front
func (s *Shell) View() View {
	v := s.Viewport()
	active, hasActive := s.windows.Active()

	list := s.windows.List()
	windows := make([]WindowView, 0, len(list))
	for _, w := range list {
		wv := WindowView{
			WindowRecord: w,
			Title:        s.registry.Title(w.AppID),
			Rect:         windowRect(w, v),
			Active:       hasActive && w.ID == active.ID,
		}
		if m, ok := s.registry.Lookup(w.AppID); ok {
			wv.Icon = m.Icon
		}
		windows = append(windows, wv)
	}

	return View{
		Viewport:    v,
		Windows:     windows,
		Dock:        s.DockItems(),
		DockVisible: s.DockVisible(),
		Widgets:     s.Widgets(),
		Clock:       s.ClockText(),
		Icons:       s.Icons(),
		Archive:     s.Archive(),
		Gesture:     s.Gesture(),
	}
}
