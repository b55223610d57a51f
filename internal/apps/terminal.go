package apps

import (
	"fmt"
	"strings"
	"time"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

// Prompt is printed in front of every echoed command
const Prompt = "lisa@macbook ~ %"

// UnlockStep is the pause between the staged lines of "unlock vault"
const UnlockStep = 300 * time.Millisecond

// Line kinds
const (
	LineCommand = "command"
	LineOutput  = "output"
	LineError   = "error"
)

// Line is one row of terminal scroll-back
type Line struct {
	Type    string `yaml:"type" json:"type"`
	Content string `yaml:"content" json:"content"`
	Prompt  string `yaml:"-" json:"prompt,omitempty"`
}

var unlockStages = []string{"assembling keys…", "VAULT accepted", "access granted"}

type terminal struct {
	host    registry.Host
	owner   string
	history []Line
}

func newTerminal(host registry.Host, win types.WindowRecord) registry.Application {
	var script struct {
		History []Line `yaml:"history"`
	}
	loadContent("terminal.yaml", &script)
	for i := range script.History {
		if script.History[i].Type == LineCommand {
			script.History[i].Prompt = Prompt
		}
	}

	host.Puzzle().MarkTFound()
	return &terminal{host: host, owner: win.ID, history: script.History}
}

func (t *terminal) Handle(action string, params map[string]string) error {
	switch action {
	case "run":
		t.run(params["command"])
		return nil
	case "clear":
		t.history = nil
		return nil
	}
	return unknownAction("terminal", action)
}

func (t *terminal) print(kind, content string) {
	t.history = append(t.history, Line{Type: kind, Content: content})
}

func (t *terminal) run(cmd string) {
	trimmed := strings.TrimSpace(cmd)
	if trimmed == "" {
		return
	}
	t.history = append(t.history, Line{Type: LineCommand, Content: trimmed, Prompt: Prompt})

	lower := strings.ToLower(trimmed)
	if lower == "unlock vault" {
		t.unlock()
		return
	}

	fields := strings.Fields(lower)
	command, args := fields[0], fields[1:]
	switch command {
	case "unlock":
		if len(args) == 0 {
			t.print(LineError, "permission denied")
		} else {
			t.print(LineError, "invalid command")
		}
	case "vault":
		t.print(LineError, "permission denied")
	case "ls", "help":
		t.print(LineOutput, "nothing to see here")
	case "pwd":
		t.print(LineOutput, "permission denied")
	case "whoami":
		t.print(LineOutput, "command not found")
	case "clear":
		t.history = nil
	case "cd":
		if len(args) == 0 || args[0] == "~" {
			t.print(LineOutput, "")
		} else {
			t.print(LineError, "permission denied")
		}
	case "echo":
		t.print(LineOutput, strings.TrimSpace(trimmed[len("echo"):]))
	case "date":
		t.print(LineOutput, t.host.Now().Format("Mon, Jan 02, 2006, 15:04:05 MST"))
	default:
		t.print(LineError, fmt.Sprintf("zsh: command not found: %s", command))
	}
}

// unlock prints the staged lines on window-owned timers, then opens the
// vault. Closing the window drops whatever has not printed yet.
func (t *terminal) unlock() {
	t.print(LineOutput, "verifying…")

	sched := t.host.Scheduler()
	var stage func(i int)
	stage = func(i int) {
		sched.After(t.owner, UnlockStep, func() {
			if i < len(unlockStages) {
				t.print(LineOutput, unlockStages[i])
				stage(i + 1)
				return
			}
			t.host.Puzzle().UnlockVault()
			t.print(LineOutput, "Archiv freigeschaltet.")
		})
	}
	stage(0)
}

func (t *terminal) Render() types.View {
	return types.View{
		"kind":    "terminal",
		"prompt":  Prompt,
		"history": append([]Line{}, t.history...),
	}
}
