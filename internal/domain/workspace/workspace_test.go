package workspace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DeskShell/backend/internal/apps"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/flow"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/session"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/window"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

const gespraech = "REDAKTION/Recherche/Fragmente/Gespraech.txt"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	deps    Deps
	clock   *fakeClock
	storage *session.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg, err := registry.Load(apps.Factories(nil))
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, time.October, 17, 21, 5, 0, 0, time.UTC)}
	storage := session.NewMemory()
	return &fixture{
		clock:   clock,
		storage: storage,
		deps: Deps{
			Registry:      reg,
			Storage:       storage,
			Clock:         clock.Now,
			WindowOptions: []window.Option{window.WithRandom(func() float64 { return 0 })},
		},
	}
}

func (f *fixture) workspace(t *testing.T, cfg Config) *Workspace {
	t.Helper()
	return New(context.Background(), "visitor-1", f.deps, cfg)
}

// desktop returns a workspace already logged in
func (f *fixture) desktop(t *testing.T) *Workspace {
	t.Helper()
	ws := f.workspace(t, Config{})
	require.NoError(t, ws.Continue())
	require.NoError(t, ws.Login(context.Background(), flow.DefaultPIN))
	return ws
}

func open(t *testing.T, ws *Workspace, appID string) types.WindowRecord {
	t.Helper()
	w, err := ws.OpenWindow(appID, window.Options{})
	require.NoError(t, err)
	return w
}

func appView(t *testing.T, ws *Workspace, id string) types.View {
	t.Helper()
	_, view, err := ws.Window(id)
	require.NoError(t, err)
	return view
}

func windowOf(t *testing.T, ws *Workspace, appID string) types.WindowRecord {
	t.Helper()
	var found []types.WindowRecord
	for _, w := range ws.Windows() {
		if w.AppID == appID {
			found = append(found, w)
		}
	}
	require.Len(t, found, 1, appID)
	return found[0]
}

func TestDesktopOperationsNeedLogin(t *testing.T) {
	f := newFixture(t)
	ws := f.workspace(t, Config{})

	_, err := ws.OpenWindow("notes", window.Options{})
	assert.ErrorIs(t, err, ErrNotOnDesktop)
	assert.ErrorIs(t, ws.Dispatch(Event{Type: EventKey, Key: " ", Mod: true}), ErrNotOnDesktop)
	assert.ErrorIs(t, ws.OpenIcon("REDAKTION"), ErrNotOnDesktop)
	assert.Nil(t, ws.State().Desktop)

	// viewport changes are fine anywhere
	require.NoError(t, ws.Dispatch(Event{Type: EventViewport, Width: 1024, Height: 768}))

	require.NoError(t, ws.Continue())
	assert.ErrorIs(t, ws.Login(context.Background(), "000000"), flow.ErrWrongPIN)
	require.NoError(t, ws.Login(context.Background(), flow.DefaultPIN))

	st := ws.State()
	require.NotNil(t, st.Desktop)
	assert.Equal(t, shell.Viewport{Width: 1024, Height: 768}, st.Desktop.Viewport)
}

func TestOpenAndCloseMountsApps(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	before := ws.Version()

	w := open(t, ws, "notes")
	assert.Greater(t, ws.Version(), before)
	assert.Equal(t, "notes", ws.State().Apps[w.ID]["kind"])

	require.NoError(t, ws.CloseWindow(w.ID))
	assert.NotContains(t, ws.State().Apps, w.ID)

	// closing again is ignored
	v := ws.Version()
	require.NoError(t, ws.CloseWindow(w.ID))
	assert.Equal(t, v, ws.Version())

	_, err := ws.OpenWindow("minesweeper", window.Options{})
	assert.ErrorIs(t, err, ErrUnknownApp)
}

func TestWindowOperations(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	notes := open(t, ws, "notes")
	cal := open(t, ws, "calendar")

	require.NoError(t, ws.MoveWindow(notes.ID, types.Position{X: 200, Y: 150}))
	require.NoError(t, ws.ResizeWindow(notes.ID, types.Size{Width: 10, Height: 10}))
	w, _, err := ws.Window(notes.ID)
	require.NoError(t, err)
	assert.Equal(t, types.Position{X: 200, Y: 150}, w.Position)
	assert.Equal(t, types.Size{Width: shell.MinWindowWidth, Height: shell.MinWindowHeight}, w.Size)

	assert.ErrorIs(t, ws.ResizeWindow(cal.ID, types.Size{Width: 900, Height: 900}), shell.ErrNotResizable)

	require.NoError(t, ws.MinimizeWindow(cal.ID))
	require.NoError(t, ws.FocusWindow(notes.ID))
	require.NoError(t, ws.RestoreWindow(cal.ID))
	require.NoError(t, ws.ToggleFullscreen(cal.ID))
	st := ws.State()
	assert.False(t, st.Desktop.DockVisible)
	assert.Equal(t, cal.ID, *ws.WindowStats().ActiveID)

	v := ws.Version()
	require.NoError(t, ws.FocusWindow("nope"))
	require.NoError(t, ws.MoveWindow("nope", types.Position{X: 1, Y: 1}))
	require.NoError(t, ws.ResizeWindow("nope", types.Size{Width: 400, Height: 300}))
	assert.Equal(t, v, ws.Version())
	_, _, err = ws.Window("nope")
	assert.ErrorIs(t, err, ErrUnknownWindow)
}

func TestResizeRejectsFullscreen(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	photos := open(t, ws, "photos")
	require.True(t, photos.Fullscreen)

	assert.ErrorIs(t, ws.ResizeWindow(photos.ID, types.Size{Width: 400, Height: 300}), shell.ErrFullscreen)
	got, _, err := ws.Window(photos.ID)
	require.NoError(t, err)
	assert.Equal(t, photos.Size, got.Size)

	require.NoError(t, ws.ToggleFullscreen(photos.ID))
	require.NoError(t, ws.ResizeWindow(photos.ID, types.Size{Width: 400, Height: 300}))
	got, _, err = ws.Window(photos.ID)
	require.NoError(t, err)
	assert.Equal(t, types.Size{Width: 400, Height: 300}, got.Size)
}

func TestRejectedOperationsKeepVersion(t *testing.T) {
	f := newFixture(t)
	ws := f.workspace(t, Config{})
	ch, cancel := ws.Subscribe()
	defer cancel()

	v := ws.Version()
	assert.ErrorIs(t, ws.Dispatch(Event{Type: EventKey, Key: "Escape"}), ErrNotOnDesktop)
	require.NoError(t, ws.Continue())
	assert.ErrorIs(t, ws.Login(context.Background(), "0000"), flow.ErrWrongPIN)
	assert.Equal(t, v+1, ws.Version(), "only Continue changed something")
	assert.Equal(t, v+1, <-ch)

	require.NoError(t, ws.Login(context.Background(), flow.DefaultPIN))
	calc := open(t, ws, "calculator")
	v = ws.Version()
	assert.ErrorIs(t, ws.Act(calc.ID, "launch", nil), registry.ErrUnknownAction)
	assert.Equal(t, v, ws.Version())
}

func TestWrongCodewordPublishesMessage(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	require.NoError(t, ws.OpenSearch())
	_, err := ws.SubmitSearch("vault")
	require.NoError(t, err)
	require.NoError(t, ws.OpenIcon(shell.ArchiveIcon))

	v := ws.Version()
	assert.ErrorIs(t, ws.SubmitCodeword("vault"), shell.ErrWrongCodeword)
	assert.Equal(t, v+1, ws.Version())
	assert.Equal(t, shell.WrongCodewordMessage, ws.State().Desktop.Archive.Error)
}

func TestActRoutesToApp(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	calc := open(t, ws, "calculator")

	for _, d := range []string{"4", "2"} {
		require.NoError(t, ws.Act(calc.ID, "digit", map[string]string{"value": d}))
	}
	assert.Equal(t, "42", appView(t, ws, calc.ID)["display"])

	assert.ErrorIs(t, ws.Act(calc.ID, "launch", nil), registry.ErrUnknownAction)
	assert.ErrorIs(t, ws.Act("nope", "digit", nil), ErrUnknownWindow)
}

func TestTerminalTimersDieWithWindow(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	term := open(t, ws, "terminal")
	assert.True(t, ws.PuzzleState().FoundT)

	require.NoError(t, ws.Act(term.ID, "run", map[string]string{"command": "unlock vault"}))
	ws.Tick(apps.UnlockStep)
	require.NoError(t, ws.CloseWindow(term.ID))
	assert.Equal(t, 1, ws.PendingTasks(), "only the clock is left")

	ws.Tick(5 * time.Second)
	assert.False(t, ws.PuzzleState().VaultUnlocked)
}

func TestTerminalUnlocksVault(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	term := open(t, ws, "terminal")

	require.NoError(t, ws.Act(term.ID, "run", map[string]string{"command": "unlock vault"}))
	ws.Tick(4 * apps.UnlockStep)
	assert.True(t, ws.PuzzleState().VaultUnlocked)
}

func TestChatReplyOutlivesWindow(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	chat := open(t, ws, "messages")

	require.NoError(t, ws.Act(chat.ID, "select", map[string]string{"contact": "melina"}))
	require.NoError(t, ws.Act(chat.ID, "send", map[string]string{"text": "hilf mir"}))
	sent := len(appView(t, ws, chat.ID)["thread"].([]apps.ChatMessage))
	require.NoError(t, ws.CloseWindow(chat.ID))

	ws.Tick(apps.ReplyDelayMax)
	assert.True(t, ws.PuzzleState().FoundV)

	again := open(t, ws, "messages")
	require.NoError(t, ws.Act(again.ID, "select", map[string]string{"contact": "melina"}))
	thread := appView(t, ws, again.ID)["thread"].([]apps.ChatMessage)
	require.Len(t, thread, sent+1)
	assert.Equal(t, "them", thread[sent].From)
}

func TestFileAndPhotoDeepLinks(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	files := open(t, ws, "dateien")

	require.NoError(t, ws.Act(files.ID, "reveal", map[string]string{"path": gespraech}))
	require.NoError(t, ws.Act(files.ID, "open_in_photos", nil))

	photos := windowOf(t, ws, "photos")
	view := appView(t, ws, photos.ID)
	assert.Equal(t, "Arbeitsplatz", view["album"])
	assert.Equal(t, gespraech, view["back_link"])
	assert.Empty(t, ws.PuzzleState().PhotoDeepLink)
	assert.Empty(t, ws.PuzzleState().FileDeepLink)

	require.NoError(t, ws.Act(files.ID, "goto", map[string]string{"path": "QUELLEN"}))
	require.NoError(t, ws.Act(photos.ID, "jump_to_file", nil))

	// the existing Dateien window comes to front and shows the file
	active := ws.WindowStats().ActiveID
	require.NotNil(t, active)
	assert.Equal(t, files.ID, *active)
	sel := appView(t, ws, files.ID)["selected"].(types.View)
	assert.Equal(t, "Gespraech.txt", sel["name"])
	assert.Len(t, ws.Windows(), 2)
}

func TestDesktopFileIcon(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)

	require.NoError(t, ws.Dispatch(Event{Type: EventIcon, Icon: "TODO.txt"}))
	files := windowOf(t, ws, "dateien")
	sel := appView(t, ws, files.ID)["selected"].(types.View)
	assert.Equal(t, "TODO.txt", sel["name"])
}

func TestArchiveUnlock(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)

	assert.ErrorIs(t, ws.OpenIcon(shell.ArchiveIcon), shell.ErrUnknownIcon)

	require.NoError(t, ws.OpenSearch())
	unlocked, err := ws.SubmitSearch("unlock vault")
	require.NoError(t, err)
	assert.True(t, unlocked)
	assert.True(t, ws.State().Flow.SearchToast)

	ws.Tick(flow.SearchToastDuration)
	assert.False(t, ws.State().Flow.SearchOverlay)

	require.NoError(t, ws.OpenIcon(shell.ArchiveIcon))
	assert.True(t, ws.State().Desktop.Archive.Open)
	assert.ErrorIs(t, ws.SubmitCodeword("vault"), shell.ErrWrongCodeword)
	require.NoError(t, ws.SubmitCodeword(" zeitsprung "))
	assert.True(t, ws.PuzzleState().ArchiveUnlocked)

	require.NoError(t, ws.OpenIcon(shell.ArchiveIcon))
	files := windowOf(t, ws, "dateien")
	assert.Equal(t, []string{apps.ArchiveFolder}, appView(t, ws, files.ID)["path"])
}

func TestKeyRouting(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	w := open(t, ws, "notes")

	require.NoError(t, ws.Dispatch(Event{Type: EventKey, Key: " ", Mod: true}))
	assert.True(t, ws.State().Flow.SearchOverlay)

	// Escape closes the overlay, not the window
	require.NoError(t, ws.Dispatch(Event{Type: EventKey, Key: "Escape"}))
	assert.False(t, ws.State().Flow.SearchOverlay)
	assert.Len(t, ws.Windows(), 1)

	require.NoError(t, ws.Dispatch(Event{Type: EventKey, Key: "m", Mod: true}))
	got, _, err := ws.Window(w.ID)
	require.NoError(t, err)
	assert.True(t, got.Minimized)

	require.NoError(t, ws.Dispatch(Event{Type: EventDock, App: "notes"}))
	require.NoError(t, ws.Dispatch(Event{Type: EventKey, Key: "Escape"}))
	assert.Empty(t, ws.Windows())

	assert.ErrorIs(t, ws.Dispatch(Event{Type: "wheel"}), ErrUnknownEvent)
	assert.ErrorIs(t, ws.Dispatch(Event{Type: EventDock, App: "nope"}), ErrUnknownApp)
}

func TestPointerDrag(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	w := open(t, ws, "notes")

	target := shell.Target{Kind: shell.TargetTitle, WindowID: w.ID}
	require.NoError(t, ws.Dispatch(Event{Type: EventPointerDown, Target: target, X: 100, Y: 100}))
	require.NoError(t, ws.Dispatch(Event{Type: EventPointerMove, X: 150, Y: 130}))
	require.NoError(t, ws.Dispatch(Event{Type: EventPointerUp, X: 150, Y: 130}))

	got, _, err := ws.Window(w.ID)
	require.NoError(t, err)
	assert.Equal(t, types.Position{X: w.Position.X + 50, Y: w.Position.Y + 30}, got.Position)
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)

	ch, cancel := ws.Subscribe()
	open(t, ws, "notes")
	open(t, ws, "photos")

	// a slow reader only sees the newest version
	assert.Equal(t, ws.Version(), <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected version %d", v)
	default:
	}

	assert.Equal(t, 1, ws.Subscribers())
	cancel()
	cancel()
	assert.Zero(t, ws.Subscribers())
}

func TestClockTickOnlyPublishesChanges(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	v := ws.Version()

	ws.Tick(time.Second)
	assert.Equal(t, v, ws.Version())

	f.clock.Add(time.Minute)
	ws.Tick(time.Second)
	assert.Equal(t, v+1, ws.Version())
	assert.Equal(t, "21:06", ws.State().Desktop.Clock)
}

func TestLogoutKeepsProgress(t *testing.T) {
	f := newFixture(t)
	ws := f.desktop(t)
	open(t, ws, "terminal")

	require.NoError(t, ws.RequestLogout())
	require.NoError(t, ws.ConfirmLogout(context.Background()))
	assert.Equal(t, types.ScreenLogin, ws.State().Flow.Screen)
	assert.True(t, ws.PuzzleState().FoundT)
}

func TestLogoutResetsWhenConfigured(t *testing.T) {
	f := newFixture(t)
	ws := f.workspace(t, Config{ResetOnLogout: true})
	require.NoError(t, ws.Continue())
	require.NoError(t, ws.Login(context.Background(), flow.DefaultPIN))
	open(t, ws, "terminal")

	require.NoError(t, ws.RequestLogout())
	require.NoError(t, ws.ConfirmLogout(context.Background()))
	assert.False(t, ws.PuzzleState().FoundT)
}

func TestExperience(t *testing.T) {
	f := newFixture(t)
	ws := f.workspace(t, Config{})
	ctx := context.Background()

	st, err := ws.MarkExperience(ctx, "movie1Done")
	require.NoError(t, err)
	assert.True(t, st.Movie1Done)
	assert.True(t, ws.Experience(ctx).Movie1Done)

	_, err = ws.MarkExperience(ctx, "movie9Done")
	assert.ErrorIs(t, err, session.ErrUnknownFlag)

	assert.False(t, ws.ResetExperience(ctx).Movie1Done)
}
