// Package server assembles the DeskShell backend: storage, the workspace
// manager, the gin router with its middleware chain and the websocket
// stream. Run serves HTTP next to the scheduler ticker, the idle workspace
// janitor and the song catalog refresher, stopping all of them together.
package server
