// Package apps implements the interiors of the desktop applications.
//
// Every application is built by a registry.Factory for one window and
// talks to the rest of the workspace only through registry.Host: the
// puzzle store (flags and deep-link mailboxes), the scheduler and Launch.
// Applications mark their puzzle clue when the user reaches it and
// exchange deep links through the photo and file mailboxes.
//
// Applications hold no locks. The workspace serializes every Render,
// Refresh, Handle and scheduler callback.
//
// Static content (file tree, conversations, contacts, notes) is embedded
// YAML under content/.
package apps
