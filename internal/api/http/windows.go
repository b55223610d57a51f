package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListWindows returns the open windows back to front
func (h *Handlers) ListWindows(c *gin.Context) {
	ws := h.workspace(c)
	c.JSON(http.StatusOK, gin.H{
		"windows": ws.Windows(),
		"stats":   ws.WindowStats(),
	})
}

// OpenWindow creates a window for a registered application
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req OpenWindowRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	w, err := ws.OpenWindow(req.AppID, req.options())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"window": w, "state": ws.State()})
}

// GetWindow returns one window with its application view
func (h *Handlers) GetWindow(c *gin.Context) {
	w, view, err := h.workspace(c).Window(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": w, "view": view})
}

func (h *Handlers) CloseWindow(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.CloseWindow(c.Param("id")))
}

func (h *Handlers) FocusWindow(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.FocusWindow(c.Param("id")))
}

func (h *Handlers) MinimizeWindow(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.MinimizeWindow(c.Param("id")))
}

func (h *Handlers) RestoreWindow(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.RestoreWindow(c.Param("id")))
}

func (h *Handlers) ToggleFullscreen(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.ToggleFullscreen(c.Param("id")))
}

func (h *Handlers) MoveWindow(c *gin.Context) {
	var req PositionRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	h.respond(c, ws, ws.MoveWindow(c.Param("id"), req.position()))
}

func (h *Handlers) ResizeWindow(c *gin.Context) {
	var req SizeRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	h.respond(c, ws, ws.ResizeWindow(c.Param("id"), req.size()))
}

// Act forwards an action to the application in the window
func (h *Handlers) Act(c *gin.Context) {
	var req ActionRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	h.respond(c, ws, ws.Act(c.Param("id"), req.Action, req.Params))
}
