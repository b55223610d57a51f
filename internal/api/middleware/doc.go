// Package middleware provides the gin middleware shared by every route.
//
//   - CORS: listed origins with credentials, so the visitor cookie crosses
//     from the frontend dev server; trace headers are exposed
//   - RateLimit: per-IP token buckets from golang.org/x/time/rate, idle
//     clients swept, health and metrics exempt
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.CORS.Origins)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
