package workspace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/flow"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

type countingRecorder struct {
	nopRecorder
	mu      sync.Mutex
	created int
	evicted int
	active  int
	opened  map[string]int
}

func (r *countingRecorder) WorkspaceCreated() {
	r.mu.Lock()
	r.created++
	r.mu.Unlock()
}

func (r *countingRecorder) WorkspaceEvicted() {
	r.mu.Lock()
	r.evicted++
	r.mu.Unlock()
}

func (r *countingRecorder) SetWorkspacesActive(n int) {
	r.mu.Lock()
	r.active = n
	r.mu.Unlock()
}

func (r *countingRecorder) WindowOpened(appID string) {
	r.mu.Lock()
	if r.opened == nil {
		r.opened = make(map[string]int)
	}
	r.opened[appID]++
	r.mu.Unlock()
}

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, *fixture, *countingRecorder) {
	t.Helper()
	f := newFixture(t)
	rec := &countingRecorder{}
	f.deps.Metrics = rec
	return NewManager(f.deps, Config{IdleTTL: ttl}), f, rec
}

func TestManagerGet(t *testing.T) {
	m, _, rec := newTestManager(t, 0)
	ctx := context.Background()

	a := m.Get(ctx, "a")
	assert.Same(t, a, m.Get(ctx, "a"))
	assert.NotSame(t, a, m.Get(ctx, "b"))
	assert.Equal(t, "a", a.ID())

	_, ok := m.Lookup("c")
	assert.False(t, ok)
	assert.Equal(t, 2, rec.created)
	assert.Equal(t, 2, rec.active)
}

func TestManagerTickAndStats(t *testing.T) {
	m, _, rec := newTestManager(t, 0)
	ctx := context.Background()

	ws := m.Get(ctx, "a")
	require.NoError(t, ws.Continue())
	require.NoError(t, ws.Login(ctx, flow.DefaultPIN))
	term := open(t, ws, "terminal")
	require.NoError(t, ws.Act(term.ID, "run", map[string]string{"command": "unlock vault"}))
	m.Get(ctx, "b")

	_, cancel := ws.Subscribe()
	defer cancel()

	stats := m.Stats()
	assert.Equal(t, Stats{Workspaces: 2, Subscribers: 1, Windows: 1, PendingTasks: 3}, stats)
	assert.Equal(t, 1, rec.opened["terminal"])

	assert.Positive(t, m.Tick(4*time.Second))
	assert.True(t, ws.PuzzleState().VaultUnlocked)
}

func TestEvictIdle(t *testing.T) {
	m, f, rec := newTestManager(t, time.Minute)
	ctx := context.Background()

	idle := m.Get(ctx, "idle")
	watched := m.Get(ctx, "watched")
	_, cancel := watched.Subscribe()

	f.clock.Add(30 * time.Second)
	assert.Zero(t, m.EvictIdle(f.clock.Now()))

	f.clock.Add(time.Minute)
	assert.Equal(t, 1, m.EvictIdle(f.clock.Now()))
	_, ok := m.Lookup("idle")
	assert.False(t, ok)
	assert.Zero(t, idle.Tick(time.Second))

	// a request that fetched the workspace before eviction cannot revive it
	v := idle.Version()
	assert.ErrorIs(t, idle.Continue(), ErrClosed)
	assert.Equal(t, v, idle.Version())

	cancel()
	assert.Equal(t, 1, m.EvictIdle(f.clock.Now()))
	assert.Equal(t, 2, rec.evicted)
	assert.Zero(t, rec.active)
}

func TestEvictIdleDisabled(t *testing.T) {
	m, f, _ := newTestManager(t, 0)
	m.Get(context.Background(), "a")

	f.clock.Add(24 * time.Hour)
	assert.Zero(t, m.EvictIdle(f.clock.Now()))
}

func TestTouchDefersEviction(t *testing.T) {
	m, f, _ := newTestManager(t, time.Minute)
	ctx := context.Background()
	m.Get(ctx, "a")

	f.clock.Add(50 * time.Second)
	m.Get(ctx, "a")
	f.clock.Add(50 * time.Second)
	assert.Zero(t, m.EvictIdle(f.clock.Now()))
}

func TestLoginSurvivesEviction(t *testing.T) {
	m, f, _ := newTestManager(t, time.Minute)
	ctx := context.Background()

	ws := m.Get(ctx, "a")
	require.NoError(t, ws.Continue())
	require.NoError(t, ws.Login(ctx, flow.DefaultPIN))
	require.NoError(t, ws.DismissGoal(ctx))
	_, err := ws.MarkExperience(ctx, "part1Done")
	require.NoError(t, err)

	f.clock.Add(2 * time.Minute)
	require.Equal(t, 1, m.EvictIdle(f.clock.Now()))

	again := m.Get(ctx, "a")
	require.NotSame(t, ws, again)
	st := again.State()
	assert.Equal(t, types.ScreenDesktop, st.Flow.Screen)
	assert.False(t, st.Flow.GoalOverlay)
	assert.True(t, again.Experience(ctx).Part1Done)
}

func TestJanitorStops(t *testing.T) {
	m, _, _ := newTestManager(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Janitor(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestCloseAll(t *testing.T) {
	m, _, _ := newTestManager(t, 0)
	ctx := context.Background()
	m.Get(ctx, "a")
	m.Get(ctx, "b")

	m.CloseAll()
	assert.Zero(t, m.Stats().Workspaces)
	assert.False(t, m.Close("a"))
}
