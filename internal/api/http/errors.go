package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/flow"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/session"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
)

var statusTable = []struct {
	err    error
	status int
}{
	{workspace.ErrUnknownWindow, http.StatusNotFound},
	{workspace.ErrUnknownApp, http.StatusNotFound},
	{shell.ErrUnknownIcon, http.StatusNotFound},
	{session.ErrUnknownFlag, http.StatusNotFound},

	{workspace.ErrNotOnDesktop, http.StatusConflict},
	{flow.ErrInvalidTransition, http.StatusConflict},
	{workspace.ErrClosed, http.StatusConflict},
	{shell.ErrArchiveOffline, http.StatusConflict},

	{flow.ErrWrongPIN, http.StatusUnprocessableEntity},
	{shell.ErrWrongCodeword, http.StatusUnprocessableEntity},
	{shell.ErrNotResizable, http.StatusUnprocessableEntity},
	{shell.ErrFullscreen, http.StatusUnprocessableEntity},

	{registry.ErrInvalidParams, http.StatusBadRequest},
	{registry.ErrUnknownAction, http.StatusBadRequest},
	{workspace.ErrUnknownEvent, http.StatusBadRequest},
	{shell.ErrUnknownTarget, http.StatusBadRequest},
	{shell.ErrUnknownWidget, http.StatusBadRequest},
}

// StatusFor maps a domain error to an HTTP status
func StatusFor(err error) int {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("visitor_id", VisitorID(c)),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bind decodes the JSON body into req and validates it
func (h *Handlers) bind(c *gin.Context, req validation.Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
