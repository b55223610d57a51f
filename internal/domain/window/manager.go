package window

import (
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/id"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// Defaults supplies per-app window metadata
type Defaults interface {
	DefaultSize(appID string) types.Size
	DefaultResizable(appID string) bool
	DefaultFullscreen(appID string) bool
}

// Options tweak a single Create call
type Options struct {
	InitialPath []string
	// Resizable can only turn resizing off; nil or true keeps the registry default
	Resizable *bool
}

// Manager orchestrates window lifecycle
type Manager struct {
	mu       sync.RWMutex
	windows  map[string]*types.WindowRecord
	defaults Defaults
	counter  *Counter
	random   func() float64
	newID    func() string
}

// Option configures a Manager
type Option func(*Manager)

// WithCounter shares a stacking counter between managers
func WithCounter(c *Counter) Option {
	return func(m *Manager) { m.counter = c }
}

// WithRandom replaces the jitter source; fn must return values in [0,1)
func WithRandom(fn func() float64) Option {
	return func(m *Manager) { m.random = fn }
}

// WithIDFunc replaces window id generation
func WithIDFunc(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// NewManager creates a window manager
func NewManager(defaults Defaults, opts ...Option) *Manager {
	m := &Manager{
		windows:  make(map[string]*types.WindowRecord),
		defaults: defaults,
		counter:  NewCounter(DefaultCounterStart),
		random:   rand.Float64,
		newID:    func() string { return id.NewWindowID().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a new window for appID and brings it to front
func (m *Manager) Create(appID string, opts Options) types.WindowRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	resizable := m.defaults.DefaultResizable(appID)
	if opts.Resizable != nil && !*opts.Resizable {
		resizable = false
	}

	rec := &types.WindowRecord{
		ID:    m.newID(),
		AppID: appID,
		Position: types.Position{
			X: 40 + int(m.random()*120),
			Y: 60 + int(m.random()*80),
		},
		Size:       m.defaults.DefaultSize(appID),
		Fullscreen: m.defaults.DefaultFullscreen(appID),
		ZIndex:     m.counter.Next(),
		Resizable:  resizable,
	}
	if len(opts.InitialPath) > 0 {
		rec.InitialPath = append([]string(nil), opts.InitialPath...)
	}

	m.windows[rec.ID] = rec
	return rec.Clone()
}

// Close removes a window
func (m *Manager) Close(windowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.windows[windowID]; !ok {
		return false
	}
	delete(m.windows, windowID)
	return true
}

// Minimize hides a window and keeps its geometry
func (m *Manager) Minimize(windowID string) bool {
	return m.mutate(windowID, func(w *types.WindowRecord) {
		w.Minimized = true
	})
}

// Restore shows a minimized window and brings it to front
func (m *Manager) Restore(windowID string) bool {
	return m.mutate(windowID, func(w *types.WindowRecord) {
		w.Minimized = false
		w.ZIndex = m.counter.Next()
	})
}

// ToggleFullscreen flips fullscreen and brings the window to front
func (m *Manager) ToggleFullscreen(windowID string) bool {
	return m.mutate(windowID, func(w *types.WindowRecord) {
		w.Fullscreen = !w.Fullscreen
		w.ZIndex = m.counter.Next()
	})
}

// Focus brings a window to front
func (m *Manager) Focus(windowID string) bool {
	return m.mutate(windowID, func(w *types.WindowRecord) {
		w.ZIndex = m.counter.Next()
	})
}

// UpdatePosition moves a window without clamping
func (m *Manager) UpdatePosition(windowID string, pos types.Position) bool {
	return m.mutate(windowID, func(w *types.WindowRecord) {
		w.Position = pos
	})
}

// UpdateSize resizes a window without clamping
func (m *Manager) UpdateSize(windowID string, size types.Size) bool {
	return m.mutate(windowID, func(w *types.WindowRecord) {
		w.Size = size
	})
}

func (m *Manager) mutate(windowID string, fn func(*types.WindowRecord)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[windowID]
	if !ok {
		return false
	}
	fn(w)
	return true
}

// Get retrieves a copy of a window
func (m *Manager) Get(windowID string) (types.WindowRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.windows[windowID]
	if !ok {
		return types.WindowRecord{}, false
	}
	return w.Clone(), true
}

// List returns copies of all windows ordered back to front
func (m *Manager) List() []types.WindowRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]types.WindowRecord, 0, len(m.windows))
	for _, w := range m.windows {
		list = append(list, w.Clone())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ZIndex < list[j].ZIndex
	})
	return list
}

// ByApp returns the windows of one app ordered back to front
func (m *Manager) ByApp(appID string) []types.WindowRecord {
	var out []types.WindowRecord
	for _, w := range m.List() {
		if w.AppID == appID {
			out = append(out, w)
		}
	}
	return out
}

// Active returns the visible window with the highest zIndex
func (m *Manager) Active() (types.WindowRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var top *types.WindowRecord
	for _, w := range m.windows {
		if w.Minimized {
			continue
		}
		if top == nil || w.ZIndex > top.ZIndex {
			top = w
		}
	}
	if top == nil {
		return types.WindowRecord{}, false
	}
	return top.Clone(), true
}

// Count returns the number of open windows
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// Stats returns window manager statistics
func (m *Manager) Stats() types.WindowStats {
	m.mu.RLock()
	stats := types.WindowStats{Total: len(m.windows), TopZIndex: m.counter.Current()}
	for _, w := range m.windows {
		if w.Minimized {
			stats.Minimized++
			continue
		}
		stats.Visible++
		if w.Fullscreen {
			stats.Fullscreen++
		}
	}
	m.mu.RUnlock()

	if active, ok := m.Active(); ok {
		stats.ActiveID = &active.ID
	}
	return stats
}
