// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output at info level
//   - Development: colored console output at debug level
//
// Requests is a gin middleware writing one structured line per request.
//
// Example Usage:
//
//	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)
//	logger.Info("Server starting", zap.String("port", "8000"))
//	router.Use(logging.Requests(logger.Logger))
package logging
