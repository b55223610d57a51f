package types

// WindowRecord describes one open desktop window
type WindowRecord struct {
	ID          string   `json:"id"`
	AppID       string   `json:"app_id"`
	Position    Position `json:"position"`
	Size        Size     `json:"size"`
	Minimized   bool     `json:"minimized"`
	Fullscreen  bool     `json:"fullscreen"`
	ZIndex      int64    `json:"z_index"`
	Resizable   bool     `json:"resizable"`
	InitialPath []string `json:"initial_path,omitempty"`
}

// Clone returns a deep copy safe to hand out of a manager
func (w WindowRecord) Clone() WindowRecord {
	if w.InitialPath != nil {
		w.InitialPath = append([]string(nil), w.InitialPath...)
	}
	return w
}

// WindowStats contains window manager statistics
type WindowStats struct {
	Total      int     `json:"total"`
	Visible    int     `json:"visible"`
	Minimized  int     `json:"minimized"`
	Fullscreen int     `json:"fullscreen"`
	ActiveID   *string `json:"active_id,omitempty"`
	TopZIndex  int64   `json:"top_z_index"`
}
