package apps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/puzzle"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/scheduler"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

type fakeHost struct {
	puzzle   *puzzle.Store
	sched    *scheduler.Scheduler
	shared   map[string]any
	launched []string
	now      time.Time
}

func newHost() *fakeHost {
	return &fakeHost{
		puzzle: puzzle.NewStore(),
		sched:  scheduler.New(),
		shared: make(map[string]any),
		now:    time.Date(2026, time.October, 17, 21, 5, 0, 0, time.UTC),
	}
}

func (h *fakeHost) Puzzle() *puzzle.Store           { return h.puzzle }
func (h *fakeHost) Scheduler() *scheduler.Scheduler { return h.sched }
func (h *fakeHost) Now() time.Time                  { return h.now }

func (h *fakeHost) Launch(appID string, _ window.Options) types.WindowRecord {
	h.launched = append(h.launched, appID)
	return types.WindowRecord{ID: "launched", AppID: appID}
}

func (h *fakeHost) Shared(key string, create func() any) any {
	v, ok := h.shared[key]
	if !ok {
		v = create()
		h.shared[key] = v
	}
	return v
}

func mount(t *testing.T, h *fakeHost, appID string, win types.WindowRecord) registry.Application {
	t.Helper()
	factory, ok := Factories(nil)[appID]
	require.True(t, ok, appID)
	if win.ID == "" {
		win.ID = appID + "-1"
	}
	win.AppID = appID
	return factory(h, win)
}

func handle(t *testing.T, app registry.Application, action string, params map[string]string) error {
	t.Helper()
	h, ok := app.(registry.Handler)
	require.True(t, ok)
	return h.Handle(action, params)
}

func TestFactoriesCoverRegistry(t *testing.T) {
	reg, err := registry.Load(Factories(nil))
	require.NoError(t, err)

	h := newHost()
	for _, m := range reg.Manifests() {
		app := reg.Mount(h, types.WindowRecord{ID: "w", AppID: m.ID})
		assert.Equal(t, m.ID, app.Render()["kind"], m.ID)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "hallo", clean("  <b>hallo</b> "))
	assert.Equal(t, "a < b & c", clean("a < b & c"))
	assert.Empty(t, clean("<script>alert(1)</script>"))
}

func TestUnknownAction(t *testing.T) {
	h := newHost()
	for _, id := range []string{"notes", "calendar", "calculator", "contacts", "terminal", "dateien", "photos", "messages", "spotify"} {
		err := handle(t, mount(t, h, id, types.WindowRecord{}), "explode", nil)
		assert.ErrorIs(t, err, registry.ErrUnknownAction, id)
	}
}
