package workspace

import (
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// State is the full render state of a workspace
type State struct {
	Version uint64            `json:"version"`
	Flow    types.FlowState   `json:"flow"`
	Puzzle  types.PuzzleState `json:"puzzle"`
	// Desktop and Apps are only set on the desktop screen
	Desktop *shell.View           `json:"desktop,omitempty"`
	Apps    map[string]types.View `json:"apps,omitempty"`
}

// State snapshots the workspace
func (ws *Workspace) State() State {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.state()
}

func (ws *Workspace) state() State {
	st := State{
		Version: ws.version,
		Flow:    ws.flow.State(),
		Puzzle:  ws.puzzle.Snapshot(),
	}
	if st.Flow.Screen != types.ScreenDesktop {
		return st
	}

	view := ws.shell.View()
	st.Desktop = &view
	st.Apps = make(map[string]types.View, len(ws.apps))
	for id, m := range ws.apps {
		st.Apps[id] = m.app.Render()
	}
	return st
}

// Window returns one window and its application view
func (ws *Workspace) Window(id string) (types.WindowRecord, types.View, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	w, ok := ws.windows.Get(id)
	if !ok {
		return types.WindowRecord{}, nil, ErrUnknownWindow
	}
	var view types.View
	if m, ok := ws.apps[id]; ok {
		view = m.app.Render()
	}
	return w, view, nil
}

// Windows lists the open windows back to front
func (ws *Workspace) Windows() []types.WindowRecord {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.windows.List()
}

// WindowStats returns window manager statistics
func (ws *Workspace) WindowStats() types.WindowStats {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.windows.Stats()
}

// PuzzleState returns the progression flags
func (ws *Workspace) PuzzleState() types.PuzzleState {
	return ws.puzzle.Snapshot()
}

// PendingTasks returns the number of scheduled tasks
func (ws *Workspace) PendingTasks() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.sched.Pending()
}
