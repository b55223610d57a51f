// Package songs provides the track list of the songs app.
//
// The catalog starts from an embedded list. When a remote URL is
// configured, Refresh fetches the list over HTTP with retries and keeps
// the previous list if the fetch fails or returns nothing usable. Repeated
// failures open a circuit breaker; Watch keeps refreshing in the background.
//
// Example Usage:
//
//	catalog := songs.NewCatalog(songs.Config{URL: cfg.SongsURL}, logger)
//	_ = catalog.Refresh(ctx)
//	tracks := catalog.Songs()
package songs
