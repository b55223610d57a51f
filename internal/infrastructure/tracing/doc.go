/*
Package tracing gives every HTTP request a trace and span id.

Ids are ULIDs from shared/id. An incoming X-Trace-ID joins an existing trace,
and X-Span-ID becomes the parent. Both ids are echoed on the response so the
browser console can quote them.

Finished spans are handed to a buffered collector and logged with zap; a full
buffer drops spans instead of blocking requests.

	tracer := tracing.New("deskshell", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))
*/
package tracing
