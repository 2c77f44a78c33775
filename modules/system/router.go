package system

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/progenglish/handler"
	"github.com/dmitrymomot/progenglish/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	StateConnected    = "connected"
	StateDisconnected = "disconnected"

	defaultCheckTimeout = 2 * time.Second
)

// CheckFunc pings a dependency.
type CheckFunc func(ctx context.Context) error

// Info is the welcome payload.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Module serves the root and health endpoints.
type Module struct {
	info    Info
	checks  map[string]CheckFunc
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the Module.
type Option func(*Module)

// WithCheck registers a dependency reported by /health under name.
func WithCheck(name string, fn CheckFunc) Option {
	return func(m *Module) {
		if fn != nil {
			m.checks[name] = fn
		}
	}
}

// WithCheckTimeout bounds each dependency ping.
func WithCheckTimeout(d time.Duration) Option {
	return func(m *Module) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

func NewModule(info Info, opts ...Option) *Module {
	m := &Module{
		info:    info,
		checks:  make(map[string]CheckFunc),
		timeout: defaultCheckTimeout,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle returns the router mounted at /.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", handler.Wrap(m.root))
	r.Get("/health", handler.Wrap(m.health))
	return r
}

func (m *Module) root(handler.Context, struct{}) handler.Response {
	return handler.Success(m.info, handler.WithMessage("Welcome to "+m.info.Name))
}

func (m *Module) health(ctx handler.Context, _ struct{}) handler.Response {
	report := map[string]string{"status": StatusHealthy}
	healthy := true

	for _, name := range slices.Sorted(maps.Keys(m.checks)) {
		state := StateConnected
		if err := m.ping(ctx, m.checks[name]); err != nil {
			healthy = false
			state = StateDisconnected
			m.logger.WarnContext(ctx, "health check failed",
				slog.String("check", name),
				logger.Error(err),
				logger.Component("system"),
			)
		}
		report[name] = state
	}

	if !healthy {
		report["status"] = StatusUnhealthy
		return handler.Status(http.StatusServiceUnavailable, "service unavailable", handler.WithData(report))
	}
	return handler.Success(report)
}

func (m *Module) ping(ctx context.Context, fn CheckFunc) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return fn(ctx)
}
