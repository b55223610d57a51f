package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Continue leaves the intro screen
func (h *Handlers) Continue(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.Continue())
}

// Login checks the pin
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	h.respond(c, ws, ws.Login(c.Request.Context(), req.PIN))
}

func (h *Handlers) DismissGoal(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.DismissGoal(c.Request.Context()))
}

func (h *Handlers) RequestLogout(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.RequestLogout())
}

func (h *Handlers) ConfirmLogout(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.ConfirmLogout(c.Request.Context()))
}

func (h *Handlers) CancelLogout(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.CancelLogout())
}

func (h *Handlers) OpenSearch(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.OpenSearch())
}

// SubmitSearch runs the search phrase and reports whether it unlocked the vault
func (h *Handlers) SubmitSearch(c *gin.Context) {
	var req SearchRequest
	if !h.bind(c, &req) {
		return
	}
	ws := h.workspace(c)
	unlocked, err := ws.SubmitSearch(req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": unlocked, "state": ws.State()})
}

func (h *Handlers) CloseSearch(c *gin.Context) {
	ws := h.workspace(c)
	h.respond(c, ws, ws.CloseSearch())
}
