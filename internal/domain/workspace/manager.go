package workspace

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Stats summarizes every live workspace
type Stats struct {
	Workspaces   int `json:"workspaces"`
	Subscribers  int `json:"subscribers"`
	Windows      int `json:"windows"`
	PendingTasks int `json:"pending_tasks"`
}

// Manager owns the workspaces of all visitors
type Manager struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	deps       Deps
	cfg        Config
	logger     *zap.Logger
}

// NewManager creates an empty manager
func NewManager(deps Deps, cfg Config) *Manager {
	deps = deps.withDefaults()
	return &Manager{
		workspaces: make(map[string]*Workspace),
		deps:       deps,
		cfg:        cfg,
		logger:     deps.Logger,
	}
}

// Get returns the workspace of a visitor, creating it on first use
func (m *Manager) Get(ctx context.Context, visitorID string) *Workspace {
	m.mu.Lock()
	ws, ok := m.workspaces[visitorID]
	if !ok {
		ws = New(ctx, visitorID, m.deps, m.cfg)
		m.workspaces[visitorID] = ws
		m.deps.Metrics.WorkspaceCreated()
		m.deps.Metrics.SetWorkspacesActive(len(m.workspaces))
		m.logger.Info("Workspace created", zap.String("visitor_id", visitorID))
	}
	m.mu.Unlock()

	if ok {
		ws.touch()
	}
	return ws
}

// Lookup returns an existing workspace
func (m *Manager) Lookup(visitorID string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.workspaces[visitorID]
	return ws, ok
}

func (m *Manager) snapshot() []*Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*Workspace, 0, len(m.workspaces))
	for _, ws := range m.workspaces {
		list = append(list, ws)
	}
	return list
}

// Tick advances every workspace scheduler by d
func (m *Manager) Tick(d time.Duration) int {
	fired := 0
	for _, ws := range m.snapshot() {
		fired += ws.Tick(d)
	}
	return fired
}

// Close drops one workspace. Its persisted keys survive.
func (m *Manager) Close(visitorID string) bool {
	m.mu.Lock()
	ws, ok := m.workspaces[visitorID]
	if ok {
		delete(m.workspaces, visitorID)
		m.deps.Metrics.SetWorkspacesActive(len(m.workspaces))
	}
	m.mu.Unlock()

	if ok {
		ws.Close()
	}
	return ok
}

// EvictIdle closes workspaces that nobody touched within the idle TTL and
// that have no live subscriber
func (m *Manager) EvictIdle(now time.Time) int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}

	var idle []string
	for _, ws := range m.snapshot() {
		if ws.Subscribers() == 0 && now.Sub(ws.LastSeen()) > m.cfg.IdleTTL {
			idle = append(idle, ws.ID())
		}
	}

	evicted := 0
	for _, id := range idle {
		if m.Close(id) {
			evicted++
			m.deps.Metrics.WorkspaceEvicted()
			m.logger.Info("Workspace evicted", zap.String("visitor_id", id))
		}
	}
	return evicted
}

// Janitor evicts idle workspaces every interval until ctx is done
func (m *Manager) Janitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.EvictIdle(m.deps.Clock())
		}
	}
}

// CloseAll drops every workspace, used on shutdown
func (m *Manager) CloseAll() {
	for _, ws := range m.snapshot() {
		m.Close(ws.ID())
	}
}

// Stats returns manager statistics
func (m *Manager) Stats() Stats {
	list := m.snapshot()
	stats := Stats{Workspaces: len(list)}
	for _, ws := range list {
		stats.Subscribers += ws.Subscribers()
		stats.Windows += ws.WindowStats().Total
		stats.PendingTasks += ws.PendingTasks()
	}
	return stats
}
