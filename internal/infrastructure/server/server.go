package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apihttp "github.com/GriffinCanCode/DeskShell/backend/internal/api/http"
	"github.com/GriffinCanCode/DeskShell/backend/internal/api/middleware"
	"github.com/GriffinCanCode/DeskShell/backend/internal/api/ws"
	"github.com/GriffinCanCode/DeskShell/backend/internal/apps"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/registry"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/scheduler"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/session"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/DeskShell/backend/internal/providers/songs"
)

const (
	shutdownTimeout = 10 * time.Second
	refreshTimeout  = 15 * time.Second
	gzipMinSize     = 512
)

// Server wraps the HTTP server and dependencies
type Server struct {
	config  *config.Config
	logger  *logging.Logger
	router  *gin.Engine
	handler http.Handler
	manager *workspace.Manager
	catalog *songs.Catalog
	storage session.Storage
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// OpenStorage opens the configured persistence backend
func OpenStorage(cfg config.StorageConfig) (session.Storage, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return session.NewMemory(), nil
	case config.DriverSQLite:
		return session.OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// New creates a server instance
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing DeskShell server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("deskshell", logger.Logger)

	storage, err := OpenStorage(cfg.Storage)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	catalog := songs.NewCatalog(songs.Config{
		URL:        cfg.Songs.URL,
		Timeout:    cfg.Songs.Timeout,
		MaxRetries: cfg.Songs.MaxRetries,
	}, logger.Logger)
	if cfg.Songs.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		if err := catalog.Refresh(ctx); err != nil {
			logger.Warn("Using built-in song catalog", zap.Error(err))
		}
		cancel()
	}

	reg, err := registry.Load(apps.Factories(catalog))
	if err != nil {
		storage.Close()
		tracer.Close()
		return nil, fmt.Errorf("failed to load app registry: %w", err)
	}

	manager := workspace.NewManager(workspace.Deps{
		Registry: reg,
		Storage:  storage,
		Logger:   logger.Logger,
		Metrics:  metrics,
	}, workspace.Config{
		PIN:           cfg.Workspace.PIN,
		ResetOnLogout: cfg.Workspace.ResetOnLogout,
		IdleTTL:       cfg.Workspace.IdleTTL,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(logging.Requests(logger.Logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.CORS.Origins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(manager, reg, catalog, metrics, logger.Logger, apihttp.DefaultCookieOptions())
	handlers.Register(router)

	wsHandler := ws.NewHandler(manager, metrics, logger.Logger, cfg.CORS.Origins)
	router.GET("/ws", handlers.Visitor(), wsHandler.HandleConnection)

	handler, err := compress(router)
	if err != nil {
		storage.Close()
		tracer.Close()
		return nil, err
	}

	logger.Info("Server initialized successfully")

	return &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		handler: handler,
		manager: manager,
		catalog: catalog,
		storage: storage,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

// compress gzips responses except websocket upgrades, which need the raw
// connection
func compress(next http.Handler) (http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(gzipMinSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip wrapper: %w", err)
	}
	gz := wrap(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	}), nil
}

// Handler returns the complete HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Manager returns the workspace manager
func (s *Server) Manager() *workspace.Manager {
	return s.manager
}

// Run serves HTTP and drives the background loops until ctx is done or one
// of them fails
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return scheduler.Run(ctx, s.config.Workspace.TickInterval, func(elapsed time.Duration) {
			s.manager.Tick(elapsed)
		})
	})

	if s.config.Workspace.IdleTTL > 0 && s.config.Workspace.JanitorInterval > 0 {
		g.Go(func() error {
			return s.manager.Janitor(ctx, s.config.Workspace.JanitorInterval)
		})
	}

	g.Go(func() error {
		return s.catalog.Watch(ctx, s.config.Songs.Refresh)
	})

	return g.Wait()
}

// Close releases workspaces and storage
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.manager.CloseAll()
	s.tracer.Close()

	var err error
	if cerr := s.storage.Close(); cerr != nil {
		s.logger.Error("Failed to close storage", zap.Error(cerr))
		err = fmt.Errorf("failed to close storage: %w", cerr)
	}

	_ = s.logger.Sync()
	return err
}
