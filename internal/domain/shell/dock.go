package shell

import (
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// DockItem is one dock entry
type DockItem struct {
	AppID  string `json:"app_id"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// DockItems lists the dock apps with their active indicator
func (s *Shell) DockItems() []DockItem {
	visible := make(map[string]bool)
	for _, w := range s.windows.List() {
		if !w.Minimized {
			visible[w.AppID] = true
		}
	}

	apps := s.registry.DockApps()
	items := make([]DockItem, 0, len(apps))
	for _, m := range apps {
		items = append(items, DockItem{
			AppID:  m.ID,
			Title:  m.Title,
			Icon:   m.Icon,
			Active: visible[m.ID],
		})
	}
	return items
}

// DockVisible is false while a visible window is fullscreen
func (s *Shell) DockVisible() bool {
	for _, w := range s.windows.List() {
		if w.Fullscreen && !w.Minimized {
			return false
		}
	}
	return true
}

// DockClick restores the most recently focused minimized window of appID,
// or opens a new one
func (s *Shell) DockClick(appID string) types.WindowRecord {
	var target *types.WindowRecord
	for _, w := range s.windows.ByApp(appID) {
		if w.Minimized {
			w := w
			target = &w
		}
	}

	if target != nil {
		s.windows.Restore(target.ID)
		if rec, ok := s.windows.Get(target.ID); ok {
			return rec
		}
	}
	return s.windows.Create(appID, window.Options{})
}
