package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
)

const (
	// VisitorCookie carries the visitor id
	VisitorCookie = "deskshell_visitor"

	visitorKey = "visitor_id"
)

// CookieOptions tunes the visitor cookie
type CookieOptions struct {
	MaxAge int
	Secure bool
}

// DefaultCookieOptions keeps visitors for a year
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{MaxAge: 365 * 24 * 60 * 60}
}

// Visitor reads the visitor cookie, issuing a fresh uuid when it is missing
// or malformed
func (h *Handlers) Visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err == nil {
			_, err = uuid.Parse(id)
		}
		if err != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, id, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
		}
		c.Set(visitorKey, id)
		c.Next()
	}
}

// VisitorID returns the id set by the Visitor middleware
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorKey)
}

func (h *Handlers) workspace(c *gin.Context) *workspace.Workspace {
	return h.manager.Get(c.Request.Context(), VisitorID(c))
}
