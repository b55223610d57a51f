package workspace

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/session"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// Flow

func (ws *Workspace) Continue() error {
	return ws.do(ws.flow.Continue)
}

func (ws *Workspace) Login(ctx context.Context, pin string) error {
	return ws.do(func() error { return ws.flow.Login(ctx, pin) })
}

func (ws *Workspace) DismissGoal(ctx context.Context) error {
	return ws.desktop(func() error {
		ws.flow.DismissGoal(ctx)
		return nil
	})
}

func (ws *Workspace) RequestLogout() error {
	return ws.desktop(ws.flow.RequestLogout)
}

func (ws *Workspace) CancelLogout() error {
	return ws.do(func() error {
		ws.flow.CancelLogout()
		return nil
	})
}

func (ws *Workspace) ConfirmLogout(ctx context.Context) error {
	return ws.do(func() error { return ws.flow.ConfirmLogout(ctx) })
}

func (ws *Workspace) OpenSearch() error {
	return ws.desktop(ws.flow.OpenSearch)
}

// SubmitSearch reports whether the phrase unlocked the vault
func (ws *Workspace) SubmitSearch(query string) (bool, error) {
	var unlocked bool
	err := ws.desktop(func() error {
		unlocked = ws.flow.SubmitSearch(query)
		return nil
	})
	return unlocked, err
}

func (ws *Workspace) CloseSearch() error {
	return ws.do(func() error {
		ws.flow.CloseSearch()
		return nil
	})
}

// Windows

// OpenWindow creates a window for a registered application
func (ws *Workspace) OpenWindow(appID string, opts window.Options) (types.WindowRecord, error) {
	var w types.WindowRecord
	err := ws.desktop(func() error {
		if _, ok := ws.registry.Lookup(appID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownApp, appID)
		}
		w = ws.shell.Open(appID, opts)
		return nil
	})
	return w, err
}

// windowOp runs a window manager mutation. An unknown id is ignored and
// leaves the version alone.
func (ws *Workspace) windowOp(id string, fn func(string) bool) error {
	return ws.desktop(func() error {
		if !fn(id) {
			return errUnchanged
		}
		return nil
	})
}

func (ws *Workspace) CloseWindow(id string) error {
	return ws.windowOp(id, ws.windows.Close)
}

func (ws *Workspace) FocusWindow(id string) error {
	return ws.windowOp(id, ws.windows.Focus)
}

func (ws *Workspace) MinimizeWindow(id string) error {
	return ws.windowOp(id, ws.windows.Minimize)
}

func (ws *Workspace) RestoreWindow(id string) error {
	return ws.windowOp(id, ws.windows.Restore)
}

func (ws *Workspace) ToggleFullscreen(id string) error {
	return ws.windowOp(id, ws.windows.ToggleFullscreen)
}

// MoveWindow places a window; the position is taken as given
func (ws *Workspace) MoveWindow(id string, pos types.Position) error {
	return ws.windowOp(id, func(id string) bool {
		return ws.windows.UpdatePosition(id, pos)
	})
}

// ResizeWindow sets a window's size, floored at the minimum window size
func (ws *Workspace) ResizeWindow(id string, size types.Size) error {
	return ws.desktop(func() error {
		w, ok := ws.windows.Get(id)
		if !ok {
			return errUnchanged
		}
		if !w.Resizable {
			return shell.ErrNotResizable
		}
		if w.Fullscreen {
			return shell.ErrFullscreen
		}
		size.Width = max(size.Width, shell.MinWindowWidth)
		size.Height = max(size.Height, shell.MinWindowHeight)
		ws.windows.UpdateSize(id, size)
		return nil
	})
}

// Act forwards an action to the application in a window
func (ws *Workspace) Act(id, action string, params map[string]string) error {
	return ws.desktop(func() error {
		m, ok := ws.apps[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownWindow, id)
		}
		h, ok := m.app.(registry.Handler)
		if !ok {
			return fmt.Errorf("%w: %s has no actions", registry.ErrUnknownAction, m.appID)
		}
		if err := h.Handle(action, params); err != nil {
			ws.logger.Debug("App action rejected",
				zap.String("window_id", id),
				zap.String("action", action),
				zap.Error(err))
			return err
		}
		return nil
	})
}

// Desktop

// DockClick restores or opens the dock application
func (ws *Workspace) DockClick(appID string) (types.WindowRecord, error) {
	var w types.WindowRecord
	err := ws.desktop(func() error {
		if _, ok := ws.registry.Lookup(appID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownApp, appID)
		}
		w = ws.shell.DockClick(appID)
		return nil
	})
	return w, err
}

func (ws *Workspace) OpenIcon(name string) error {
	return ws.desktop(func() error { return ws.shell.OpenIcon(name) })
}

// SubmitCodeword checks the archive codeword. A miss still publishes the
// prompt's error message.
func (ws *Workspace) SubmitCodeword(word string) error {
	return ws.desktop(func() error {
		err := ws.shell.SubmitCodeword(word)
		if errors.Is(err, shell.ErrWrongCodeword) {
			ws.dirty = true
		}
		return err
	})
}

func (ws *Workspace) CloseArchiveOverlay() error {
	return ws.desktop(func() error {
		ws.shell.CloseArchiveOverlay()
		return nil
	})
}

// SetViewport records the browser size; allowed on every screen
func (ws *Workspace) SetViewport(v shell.Viewport) error {
	return ws.do(func() error {
		ws.shell.SetViewport(v)
		return nil
	})
}

// Experience

func (ws *Workspace) Experience(ctx context.Context) session.ExperienceState {
	ws.touch()
	return ws.exp.Load(ctx)
}

func (ws *Workspace) MarkExperience(ctx context.Context, flag string) (session.ExperienceState, error) {
	ws.touch()
	return ws.exp.Mark(ctx, flag)
}

func (ws *Workspace) ResetExperience(ctx context.Context) session.ExperienceState {
	ws.touch()
	return ws.exp.Reset(ctx)
}
