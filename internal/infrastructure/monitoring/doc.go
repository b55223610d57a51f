/*
Package monitoring provides metrics collection.

# Overview

Metrics live on a private Prometheus registry so tests can create as many
collectors as they like. Besides HTTP traffic the collector counts domain
events: windows opened and closed, puzzle flags, screen transitions,
workspaces and scheduler callbacks.

# Usage

	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Expose the registry
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Domain events
	metrics.WindowOpened("notes")
	metrics.PuzzleFlag("found_v")
*/
package monitoring
