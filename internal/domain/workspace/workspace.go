package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/flow"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/puzzle"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/scheduler"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/session"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// ClockOwner owns the clock widget's periodic task
const ClockOwner = "widget:clock"

var (
	ErrNotOnDesktop  = errors.New("not on desktop")
	ErrUnknownWindow = errors.New("unknown window")
	ErrUnknownApp    = errors.New("unknown app")
	ErrClosed        = errors.New("workspace closed")

	// errUnchanged ends an operation that had nothing to do
	errUnchanged = errors.New("unchanged")
)

// Recorder receives domain events for metrics
type Recorder interface {
	WindowOpened(appID string)
	WindowClosed(appID string)
	PuzzleFlag(flag string)
	FlowTransition(from, to string)
	SchedulerFired(owner string)
	WorkspaceCreated()
	WorkspaceEvicted()
	SetWorkspacesActive(count int)
}

type nopRecorder struct{}

func (nopRecorder) WindowOpened(string)           {}
func (nopRecorder) WindowClosed(string)           {}
func (nopRecorder) PuzzleFlag(string)             {}
func (nopRecorder) FlowTransition(string, string) {}
func (nopRecorder) SchedulerFired(string)         {}
func (nopRecorder) WorkspaceCreated()             {}
func (nopRecorder) WorkspaceEvicted()             {}
func (nopRecorder) SetWorkspacesActive(int)       {}

// Deps are the collaborators shared by every workspace
type Deps struct {
	Registry *registry.Registry
	Storage  session.Storage
	Logger   *zap.Logger
	Metrics  Recorder
	// Clock is the wall clock; time.Now when nil
	Clock func() time.Time
	// WindowOptions tweak every window manager, mostly for tests
	WindowOptions []window.Option
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = nopRecorder{}
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Storage == nil {
		d.Storage = session.NewMemory()
	}
	return d
}

type mounted struct {
	appID string
	app   registry.Application
}

// Workspace is everything one visitor sees
type Workspace struct {
	mu sync.Mutex

	id       string
	registry *registry.Registry
	windows  *window.Manager
	puzzle   *puzzle.Store
	flow     *flow.Controller
	shell    *shell.Shell
	sched    *scheduler.Scheduler
	exp      *session.Experience
	clock    func() time.Time
	logger   *zap.Logger
	metrics  Recorder

	apps    map[string]*mounted
	shared  map[string]any
	version uint64
	dirty   bool
	closed  bool

	subs    map[int]chan uint64
	nextSub int

	lastSeen time.Time
}

// New creates the workspace of one visitor and restores its persisted screen
func New(ctx context.Context, visitorID string, deps Deps, cfg Config) *Workspace {
	deps = deps.withDefaults()
	kv := session.Bind(deps.Storage, visitorID)
	logger := deps.Logger.With(zap.String("visitor_id", visitorID))

	ws := &Workspace{
		id:       visitorID,
		registry: deps.Registry,
		puzzle:   puzzle.NewStore(),
		sched:    scheduler.New(),
		exp:      session.NewExperience(kv, logger),
		clock:    deps.Clock,
		logger:   logger,
		metrics:  deps.Metrics,
		apps:     make(map[string]*mounted),
		shared:   make(map[string]any),
		subs:     make(map[int]chan uint64),
		lastSeen: deps.Clock(),
	}
	ws.windows = window.NewManager(deps.Registry, deps.WindowOptions...)
	ws.shell = shell.New(ws.windows, deps.Registry, ws.puzzle, shell.WithClock(deps.Clock), shell.WithViewport(cfg.Viewport))
	ws.flow = flow.New(ctx, kv, ws.puzzle, ws.sched, flow.Config{
		PIN:           cfg.PIN,
		ResetOnLogout: cfg.ResetOnLogout,
		OnReset:       ws.puzzle.Reset,
	}, logger)

	ws.puzzle.SetObserver(func(flag string) {
		ws.metrics.PuzzleFlag(flag)
		ws.logger.Info("Puzzle flag set", zap.String("flag", flag))
	})
	ws.flow.SetObserver(func(from, to types.Screen) {
		ws.metrics.FlowTransition(string(from), string(to))
		ws.logger.Debug("Screen changed", zap.String("from", string(from)), zap.String("to", string(to)))
	})
	ws.sched.OnFire(func(owner string) {
		ws.metrics.SchedulerFired(owner)
		if owner != ClockOwner {
			ws.dirty = true
		}
	})
	ws.sched.Every(ClockOwner, time.Second, func() {
		if ws.shell.TickClock() {
			ws.dirty = true
		}
	})
	return ws
}

// ID returns the visitor id
func (ws *Workspace) ID() string {
	return ws.id
}

// Puzzle implements registry.Host
func (ws *Workspace) Puzzle() *puzzle.Store {
	return ws.puzzle
}

// Scheduler implements registry.Host
func (ws *Workspace) Scheduler() *scheduler.Scheduler {
	return ws.sched
}

// Now implements registry.Host
func (ws *Workspace) Now() time.Time {
	return ws.clock()
}

// Shared implements registry.Host
func (ws *Workspace) Shared(key string, create func() any) any {
	v, ok := ws.shared[key]
	if !ok {
		v = create()
		ws.shared[key] = v
	}
	return v
}

// Launch implements registry.Host. The front-most window of appID is
// restored and focused; without one a new window opens.
func (ws *Workspace) Launch(appID string, opts window.Options) types.WindowRecord {
	existing := ws.windows.ByApp(appID)
	if len(existing) == 0 {
		return ws.windows.Create(appID, opts)
	}
	w := existing[len(existing)-1]
	if w.Minimized {
		ws.windows.Restore(w.ID)
	} else {
		ws.windows.Focus(w.ID)
	}
	w, _ = ws.windows.Get(w.ID)
	return w
}

// do runs fn under the lock and syncs when it succeeded. A failing fn that
// still changed visible state sets dirty to get a sync anyway.
func (ws *Workspace) do(fn func() error) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.closed {
		return ErrClosed
	}
	ws.lastSeen = ws.clock()
	ws.dirty = false
	err := fn()
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err == nil || ws.dirty {
		ws.sync()
	}
	return err
}

// desktop is do for operations that need the desktop screen
func (ws *Workspace) desktop(fn func() error) error {
	return ws.do(func() error {
		if !ws.flow.OnDesktop() {
			return ErrNotOnDesktop
		}
		return fn()
	})
}

// sync reconciles mounted applications with the window list. Must hold mu.
func (ws *Workspace) sync() {
	live := ws.windows.List()
	seen := make(map[string]bool, len(live))

	for _, w := range live {
		seen[w.ID] = true
		if _, ok := ws.apps[w.ID]; ok {
			continue
		}
		ws.apps[w.ID] = &mounted{appID: w.AppID, app: ws.registry.Mount(ws, w)}
		ws.metrics.WindowOpened(w.AppID)
		ws.logger.Debug("Window mounted", zap.String("window_id", w.ID), zap.String("app_id", w.AppID))
	}

	for id, m := range ws.apps {
		if seen[id] {
			continue
		}
		if c, ok := m.app.(registry.Closer); ok {
			c.Close()
		}
		cancelled := ws.sched.CancelOwner(id)
		delete(ws.apps, id)
		ws.metrics.WindowClosed(m.appID)
		ws.logger.Debug("Window unmounted",
			zap.String("window_id", id),
			zap.String("app_id", m.appID),
			zap.Int("cancelled_tasks", cancelled))
	}

	// front to back, so a window on top reads a mailbox before the one below consumes it
	for i := len(live) - 1; i >= 0; i-- {
		if r, ok := ws.apps[live[i].ID].app.(registry.Refresher); ok {
			r.Refresh()
		}
	}

	ws.version++
	for _, ch := range ws.subs {
		select {
		case ch <- ws.version:
		default:
			// drop the stale version and keep the newest
			select {
			case <-ch:
			default:
			}
			ch <- ws.version
		}
	}
}

// Subscribe returns a channel that receives the version after every change.
// Slow readers only see the newest version.
func (ws *Workspace) Subscribe() (<-chan uint64, func()) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	id := ws.nextSub
	ws.nextSub++
	ch := make(chan uint64, 1)
	ws.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			ws.mu.Lock()
			delete(ws.subs, id)
			ws.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions
func (ws *Workspace) Subscribers() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.subs)
}

// Version returns the change counter
func (ws *Workspace) Version() uint64 {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.version
}

// LastSeen returns the time of the last visitor operation
func (ws *Workspace) LastSeen() time.Time {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.lastSeen
}

func (ws *Workspace) touch() {
	ws.mu.Lock()
	ws.lastSeen = ws.clock()
	ws.mu.Unlock()
}

// Tick advances the scheduler and syncs when a task changed something
func (ws *Workspace) Tick(d time.Duration) int {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.closed {
		return 0
	}
	ws.dirty = false
	fired := ws.sched.Advance(d)
	if ws.dirty {
		ws.sync()
	}
	return fired
}

// Close unmounts all applications and ends every subscription. Pending
// tasks never fire afterwards.
func (ws *Workspace) Close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.closed {
		return
	}
	ws.closed = true
	for id, m := range ws.apps {
		if c, ok := m.app.(registry.Closer); ok {
			c.Close()
		}
		delete(ws.apps, id)
	}
	for _, ch := range ws.subs {
		close(ch)
	}
	ws.subs = make(map[int]chan uint64)
}
