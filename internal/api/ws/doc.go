// Package ws streams workspace state to the browser.
//
// Client frames:
//   - event: one input event, applied through Workspace.Dispatch
//   - ping: keep-alive, answered with pong
//
// Server frames:
//   - state: the full render state, pushed on connect and after every change
//   - pong
//   - error: a rejected frame with the HTTP status the REST API would use
//
// One goroutine reads and one writes; the writer is the only one touching
// the connection for output.
//
// Example Usage:
//
//	handler := ws.NewHandler(manager, metrics, logger, origins)
//	router.GET("/ws", handlers.Visitor(), handler.HandleConnection)
package ws
