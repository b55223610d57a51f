// Package main is the entry point for the DeskShell backend server.
//
// Configuration is read in this order, later sources winning:
//   - built-in defaults
//   - a TOML file given with --config
//   - an optional .env file (or --env-file)
//   - environment variables
//   - CLI flags
//
// Usage:
//
//	# Production mode
//	./server --port 8000 --storage sqlite --storage-path /var/lib/deskshell.db
//
//	# Development mode (colored logs, debug level)
//	./server --dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
