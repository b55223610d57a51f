package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DeskShell/backend/internal/providers/songs"
)

const version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	manager  *workspace.Manager
	registry *registry.Registry
	catalog  *songs.Catalog
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	cookie   CookieOptions
}

// NewHandlers creates a new handler set
func NewHandlers(
	manager *workspace.Manager,
	reg *registry.Registry,
	catalog *songs.Catalog,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	cookie CookieOptions,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		manager:  manager,
		registry: reg,
		catalog:  catalog,
		metrics:  metrics,
		logger:   logger,
		cookie:   cookie,
	}
}

// Register mounts every route except the websocket
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	r.GET("/metrics/json", h.MetricsSummary)

	api := r.Group("/api", h.Visitor())

	api.GET("/registry", h.ListApps)
	api.GET("/songs", h.ListSongs)
	api.POST("/logs", h.StreamLogs)

	api.GET("/state", h.GetState)
	api.PUT("/viewport", h.SetViewport)
	api.POST("/events", h.Dispatch)

	flow := api.Group("/flow")
	flow.POST("/continue", h.Continue)
	flow.POST("/login", h.Login)
	flow.POST("/goal/dismiss", h.DismissGoal)
	flow.POST("/logout", h.RequestLogout)
	flow.POST("/logout/confirm", h.ConfirmLogout)
	flow.POST("/logout/cancel", h.CancelLogout)
	flow.POST("/search/open", h.OpenSearch)
	flow.POST("/search", h.SubmitSearch)
	flow.POST("/search/close", h.CloseSearch)

	windows := api.Group("/windows")
	windows.GET("", h.ListWindows)
	windows.POST("", h.OpenWindow)
	windows.GET("/:id", h.GetWindow)
	windows.DELETE("/:id", h.CloseWindow)
	windows.POST("/:id/focus", h.FocusWindow)
	windows.POST("/:id/minimize", h.MinimizeWindow)
	windows.POST("/:id/restore", h.RestoreWindow)
	windows.POST("/:id/fullscreen", h.ToggleFullscreen)
	windows.PUT("/:id/position", h.MoveWindow)
	windows.PUT("/:id/size", h.ResizeWindow)
	windows.POST("/:id/actions", h.Act)

	api.POST("/dock/:app", h.DockClick)
	api.POST("/desktop/icons/:name/open", h.OpenIcon)
	api.POST("/desktop/archive/codeword", h.SubmitCodeword)
	api.POST("/desktop/archive/close", h.CloseArchive)

	api.GET("/puzzle", h.GetPuzzle)

	api.GET("/experience", h.GetExperience)
	api.POST("/experience/:flag", h.MarkExperience)
	api.DELETE("/experience", h.ResetExperience)
}

// Root identifies the service
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "DeskShell",
		"version": version,
	})
}

// Health reports workspace statistics
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"workspaces": h.manager.Stats(),
		"songs":      len(h.catalog.Songs()),
	})
}

// ListApps returns the application manifests in dock order
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": h.registry.Manifests()})
}

// ListSongs returns the current song catalog
func (h *Handlers) ListSongs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"songs": h.catalog.Songs()})
}

// GetState returns the full render state of the visitor's workspace
func (h *Handlers) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace(c).State())
}

// GetPuzzle returns the progression flags
func (h *Handlers) GetPuzzle(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace(c).PuzzleState())
}

// respond answers a mutation with the resulting state or the mapped error
func (h *Handlers) respond(c *gin.Context, ws *workspace.Workspace, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws.State())
}
