package monitoring

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deskshell"

// Metrics holds all Prometheus metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window metrics
	WindowsOpened *prometheus.CounterVec
	WindowsClosed *prometheus.CounterVec

	// Progression metrics
	PuzzleFlags     *prometheus.CounterVec
	FlowTransitions *prometheus.CounterVec

	// Workspace metrics
	WorkspacesActive  prometheus.Gauge
	WorkspacesTotal   prometheus.Counter
	WorkspacesEvicted prometheus.Counter
	SchedulerFires    *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveWorkspaces  int64   `json:"active_workspaces"`
	ActiveConnections int64   `json:"active_connections"`
	TotalDuration     float64 `json:"total_duration_seconds"`
	Uptime            float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector with its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_size_bytes",
				Help:      "HTTP request size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		WindowsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "windows_opened_total",
				Help:      "Windows opened per application",
			},
			[]string{"app"},
		),
		WindowsClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "windows_closed_total",
				Help:      "Windows closed per application",
			},
			[]string{"app"},
		),

		PuzzleFlags: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "puzzle_flags_total",
				Help:      "Puzzle flags flipped, by flag",
			},
			[]string{"flag"},
		),
		FlowTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "flow_transitions_total",
				Help:      "Screen transitions",
			},
			[]string{"from", "to"},
		),

		WorkspacesActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "workspaces_active",
				Help:      "Number of live visitor workspaces",
			},
		),
		WorkspacesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workspaces_created_total",
				Help:      "Total number of workspaces created",
			},
		),
		WorkspacesEvicted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workspaces_evicted_total",
				Help:      "Workspaces dropped after idling",
			},
		),
		SchedulerFires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scheduler_fires_total",
				Help:      "Scheduled callbacks run, by owner kind",
			},
			[]string{"owner"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ws_connections_active",
				Help:      "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ws_messages_total",
				Help:      "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the private registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// WindowOpened counts a new window
func (m *Metrics) WindowOpened(appID string) {
	m.WindowsOpened.WithLabelValues(appID).Inc()
}

// WindowClosed counts a closed window
func (m *Metrics) WindowClosed(appID string) {
	m.WindowsClosed.WithLabelValues(appID).Inc()
}

// PuzzleFlag counts a flipped progression flag
func (m *Metrics) PuzzleFlag(flag string) {
	m.PuzzleFlags.WithLabelValues(flag).Inc()
}

// FlowTransition counts a screen change
func (m *Metrics) FlowTransition(from, to string) {
	m.FlowTransitions.WithLabelValues(from, to).Inc()
}

// SchedulerFired counts one scheduler callback. Window ids are folded into
// a single label value to keep cardinality bounded.
func (m *Metrics) SchedulerFired(owner string) {
	m.SchedulerFires.WithLabelValues(ownerKind(owner)).Inc()
}

func ownerKind(owner string) string {
	switch {
	case owner == "":
		return "detached"
	case strings.Contains(owner, ":"):
		return owner[:strings.Index(owner, ":")]
	default:
		return "window"
	}
}

// WorkspaceCreated counts a new workspace
func (m *Metrics) WorkspaceCreated() {
	m.WorkspacesTotal.Inc()
}

// WorkspaceEvicted counts an idle workspace being dropped
func (m *Metrics) WorkspaceEvicted() {
	m.WorkspacesEvicted.Inc()
}

// SetWorkspacesActive sets the number of live workspaces
func (m *Metrics) SetWorkspacesActive(count int) {
	m.WorkspacesActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveWorkspaces = int64(count)
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current values for the JSON stats endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snapshot
	s.Uptime = time.Since(m.startTime).Seconds()
	return s
}
