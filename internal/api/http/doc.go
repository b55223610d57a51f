// Package http serves the DeskShell REST API.
//
// Every /api route runs behind the Visitor middleware, which pins the
// request to a workspace through the deskshell_visitor cookie. Mutations
// answer with the full render state; domain errors are mapped to statuses
// by StatusFor.
package http
