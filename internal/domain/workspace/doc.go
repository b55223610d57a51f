/*
Package workspace is the per-visitor state container.

A Workspace bundles the shared application registry with everything one
visitor owns: a window manager, the puzzle store, the screen flow, the
desktop shell, a virtual-time scheduler and the applications mounted into
open windows.

# Concurrency

Every operation takes the workspace lock, acts, and then syncs when it
succeeded:

  - applications are mounted for windows that appeared
  - closed windows are unmounted and their scheduled tasks cancelled
  - mounted applications refresh front to back
  - the version is bumped and subscribers are notified

A rejected operation leaves the version alone unless it changed something
visible, like the codeword prompt's error. Mutating an unknown window is
ignored. Operations on a closed workspace return ErrClosed.

Applications run only under that lock, including from scheduler callbacks,
so they keep no locks of their own.

# Usage

	mgr := workspace.NewManager(workspace.Deps{
		Registry: reg,
		Storage:  storage,
		Logger:   logger,
	}, workspace.Config{IdleTTL: 30 * time.Minute})

	ws := mgr.Get(ctx, visitorID)
	ws.Continue()
	ws.Login(ctx, "129191")
	win, _ := ws.OpenWindow("notes", window.Options{})
*/
package workspace
