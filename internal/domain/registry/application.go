package registry

import (
	"errors"
	"time"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/puzzle"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/scheduler"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// ErrUnknownAction is returned by a Handler for an action it does not support
var ErrUnknownAction = errors.New("unknown app action")

// ErrInvalidParams is returned by a Handler when required params are missing
var ErrInvalidParams = errors.New("invalid action params")

// Application is the interior of one window
type Application interface {
	Render() types.View
}

// Refresher is implemented by applications that react to shared state,
// such as deep-link mailboxes. Refresh runs after every workspace change.
type Refresher interface {
	Refresh()
}

// Handler is implemented by applications that accept user actions
type Handler interface {
	Handle(action string, params map[string]string) error
}

// Closer is implemented by applications that need teardown
type Closer interface {
	Close()
}

// Host is the slice of a workspace an application may touch. Applications
// are only called with the workspace lock held, including from scheduler
// callbacks, so Host methods never block on it.
type Host interface {
	Puzzle() *puzzle.Store
	Scheduler() *scheduler.Scheduler
	// Launch brings the newest window of appID to front, restoring it if
	// minimized, or opens a new one
	Launch(appID string, opts window.Options) types.WindowRecord
	// Shared returns the workspace-scoped value for key, calling create on
	// first use. Values outlive the windows that created them.
	Shared(key string, create func() any) any
	Now() time.Time
}

// Factory builds the application for a freshly created window
type Factory func(host Host, win types.WindowRecord) Application

type placeholder struct {
	appID string
}

func (p placeholder) Render() types.View {
	return types.View{"kind": "placeholder", "app_id": p.appID}
}
