package apps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

func history(app registry.Application) []Line {
	return app.Render()["history"].([]Line)
}

func lastLine(app registry.Application) Line {
	h := history(app)
	return h[len(h)-1]
}

func run(t *testing.T, app registry.Application, cmd string) {
	t.Helper()
	require.NoError(t, handle(t, app, "run", map[string]string{"command": cmd}))
}

func TestTerminalMarksTOnMount(t *testing.T) {
	h := newHost()
	app := mount(t, h, "terminal", types.WindowRecord{})

	assert.True(t, h.puzzle.Snapshot().FoundT)

	var clue bool
	for _, l := range history(app) {
		if l.Content == "letzter Buchstabe = **T**" {
			clue = true
		}
		if l.Type == LineCommand {
			assert.Equal(t, Prompt, l.Prompt)
		}
	}
	assert.True(t, clue)
}

func TestTerminalCommands(t *testing.T) {
	tests := []struct {
		cmd  string
		kind string
		out  string
	}{
		{"help", LineOutput, "nothing to see here"},
		{"ls -la", LineOutput, "nothing to see here"},
		{"pwd", LineOutput, "permission denied"},
		{"whoami", LineOutput, "command not found"},
		{"unlock", LineError, "permission denied"},
		{"unlock archiv", LineError, "invalid command"},
		{"vault", LineError, "permission denied"},
		{"cd ~", LineOutput, ""},
		{"cd /etc", LineError, "permission denied"},
		{"echo Hallo   Welt", LineOutput, "Hallo   Welt"},
		{"date", LineOutput, "Sat, Oct 17, 2026, 21:05:00 UTC"},
		{"sudo rm -rf /", LineError, "zsh: command not found: sudo"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			h := newHost()
			app := mount(t, h, "terminal", types.WindowRecord{})
			run(t, app, tt.cmd)
			assert.Equal(t, Line{Type: tt.kind, Content: tt.out}, lastLine(app))
		})
	}
}

func TestTerminalClearAndBlank(t *testing.T) {
	h := newHost()
	app := mount(t, h, "terminal", types.WindowRecord{})
	n := len(history(app))

	run(t, app, "   ")
	assert.Len(t, history(app), n)

	run(t, app, "clear")
	assert.Empty(t, history(app))

	run(t, app, "help")
	require.NoError(t, handle(t, app, "clear", nil))
	assert.Empty(t, history(app))
}

func TestUnlockVaultStages(t *testing.T) {
	h := newHost()
	app := mount(t, h, "terminal", types.WindowRecord{ID: "term-1"})

	run(t, app, "Unlock VAULT")
	assert.Equal(t, "verifying…", lastLine(app).Content)
	assert.Equal(t, 1, h.sched.PendingFor("term-1"))

	steps := []string{"assembling keys…", "VAULT accepted", "access granted"}
	for _, want := range steps {
		h.sched.Advance(UnlockStep)
		assert.Equal(t, want, lastLine(app).Content)
		assert.False(t, h.puzzle.VaultUnlocked())
	}

	h.sched.Advance(UnlockStep)
	assert.Equal(t, "Archiv freigeschaltet.", lastLine(app).Content)
	assert.True(t, h.puzzle.VaultUnlocked())
	assert.Zero(t, h.sched.PendingFor("term-1"))
}

func TestUnlockVaultCancelledOnClose(t *testing.T) {
	h := newHost()
	app := mount(t, h, "terminal", types.WindowRecord{ID: "term-1"})

	run(t, app, "unlock vault")
	h.sched.Advance(UnlockStep)
	assert.Equal(t, 1, h.sched.CancelOwner("term-1"))

	h.sched.Advance(10 * UnlockStep)
	assert.False(t, h.puzzle.VaultUnlocked())
	assert.Equal(t, "assembling keys…", lastLine(app).Content)
}
