package shell

import "strings"

// Key is a keyboard event; Mod is set for Cmd or Ctrl
type Key struct {
	Key string `json:"key"`
	Mod bool   `json:"mod"`
}

// IsSearchChord reports Mod+Space
func (k Key) IsSearchChord() bool {
	return k.Mod && k.Key == " "
}

// HandleKey applies window chords to the active window and reports whether one matched
func (s *Shell) HandleKey(k Key) bool {
	active, ok := s.windows.Active()
	if !ok {
		return false
	}

	name := strings.ToLower(k.Key)
	switch {
	case name == "escape":
		return s.windows.Close(active.ID)
	case k.Mod && name == "m":
		return s.windows.Minimize(active.ID)
	case k.Mod && (name == "enter" || name == "f"):
		return s.windows.ToggleFullscreen(active.ID)
	}
	return false
}
