// Package flow drives the top-level screen state: intro, login, desktop.
//
// Transitions are forward-only except logout, which loops desktop back to
// login. Successful login and the goal overlay are persisted through a
// session.KV so a returning visitor lands on the desktop directly.
//
// The search overlay carries one hardcoded phrase matcher that unlocks the
// vault; every other query just closes it.
package flow
