// Package config provides 12-factor configuration for the DeskShell backend.
//
// Configuration is loaded from environment variables with defaults. An
// optional flat TOML file keyed by the same variable names can be layered
// underneath with LoadFile. CLI flags override both.
//
// Configuration Sections:
//   - Server: HTTP listen address
//   - Logging: level and output format
//   - RateLimit: per-IP rate limiting
//   - CORS: allowed browser origins
//   - Storage: memory or sqlite persistence
//   - Workspace: login pin, logout reset, idle eviction, scheduler tick
//   - Songs: optional remote song catalog
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
package config
