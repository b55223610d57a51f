package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
)

// SetViewport records the browser size
func (h *Handlers) SetViewport(c *gin.Context) {
	var req ViewportRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	h.respond(c, ws, ws.SetViewport(shell.Viewport{Width: req.Width, Height: req.Height}))
}

// Dispatch applies one input event
func (h *Handlers) Dispatch(c *gin.Context) {
	var req EventRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	h.respond(c, ws, ws.Dispatch(req.Event))
}

// DockClick restores or opens an application from the dock
func (h *Handlers) DockClick(c *gin.Context) {
	ws := h.workspace(c)
	w, err := ws.DockClick(c.Param("app"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": w, "state": ws.State()})
}

func (h *Handlers) OpenIcon(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.OpenIcon(c.Param("name")))
}

func (h *Handlers) SubmitCodeword(c *gin.Context) {
	var req CodewordRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	h.respond(c, ws, ws.SubmitCodeword(req.Codeword))
}

func (h *Handlers) CloseArchive(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.CloseArchiveOverlay())
}

// Experience flags live outside the render state

func (h *Handlers) GetExperience(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace(c).Experience(c.Request.Context()))
}

func (h *Handlers) MarkExperience(c *gin.Context) {
	state, err := h.workspace(c).MarkExperience(c.Request.Context(), c.Param("flag"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handlers) ResetExperience(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace(c).ResetExperience(c.Request.Context()))
}
