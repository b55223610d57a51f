package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const maxLogBatch = 100

var logPolicy = bluemonday.StrictPolicy()

// UILogEntry is one log line from the browser
type UILogEntry struct {
	ID        string         `json:"id"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context"`
	Timestamp string         `json:"timestamp"`
}

func (e UILogEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Level, validation.In("error", "warn", "info", "debug", "verbose")),
		validation.Field(&e.Message, validation.Required, validation.Length(1, 2000)),
		validation.Field(&e.Context, validation.Length(0, 32)),
	)
}

// UILogStreamRequest is a batch of browser logs
type UILogStreamRequest struct {
	Source  string       `json:"source"`
	Entries []UILogEntry `json:"entries"`
}

func (r UILogStreamRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Source, validation.Required, validation.In("ui")),
		validation.Field(&r.Entries, validation.Required, validation.Length(1, maxLogBatch), validation.Skip),
	)
}

// StreamLogs writes browser log batches into the server log. Entries that
// fail validation are skipped and counted.
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req UILogStreamRequest
	if !h.bind(c, &req) {
		return
	}

	logger := h.logger.With(
		zap.String("source", "ui"),
		zap.String("visitor_id", VisitorID(c)),
	)

	processed := 0
	for _, entry := range req.Entries {
		if err := entry.Validate(); err != nil {
			logger.Debug("Dropping UI log entry", zap.String("ui_log_id", entry.ID), zap.Error(err))
			continue
		}
		writeUILog(logger, entry)
		processed++
	}

	c.JSON(http.StatusOK, gin.H{
		"entries_received":  len(req.Entries),
		"entries_processed": processed,
		"timestamp":         time.Now().Unix(),
	})
}

func writeUILog(logger *zap.Logger, entry UILogEntry) {
	fields := make([]zap.Field, 0, len(entry.Context)+2)
	fields = append(fields,
		zap.String("ui_log_id", entry.ID),
		zap.String("ui_timestamp", entry.Timestamp),
	)
	for key, value := range entry.Context {
		switch v := value.(type) {
		case string:
			fields = append(fields, zap.String(key, logPolicy.Sanitize(v)))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	msg := logPolicy.Sanitize(entry.Message)
	switch entry.Level {
	case "error":
		logger.Error(msg, fields...)
	case "warn":
		logger.Warn(msg, fields...)
	case "debug", "verbose":
		logger.Debug(msg, fields...)
	default:
		logger.Info(msg, fields...)
	}
}
