// Package session persists the small amount of visitor state that survives
// a reload: the login and goal-overlay markers and the experience flags.
//
// Components:
//   - Storage: namespaced key/value interface
//   - Memory: in-process backend (tests, ephemeral deployments)
//   - SQLite: durable backend on mattn/go-sqlite3
//   - Namespace: a Storage bound to one visitor
//   - Experience: JSON blob of six completion flags
//
// Reads of missing or corrupt data never fail the caller; they fall back to
// defaults and are logged. Writes are best-effort.
//
// Example Usage:
//
//	store, err := session.OpenSQLite("deskshell.db")
//	kv := session.Bind(store, visitorID)
//	exp := session.NewExperience(kv, logger)
//	state := exp.Load(ctx)
package session
