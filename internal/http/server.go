package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"contracting/internal/config"
	"contracting/internal/core"
	"contracting/internal/dashboard"
	applog "contracting/internal/log"
	"contracting/internal/metrics"
	"contracting/internal/middleware/ratelimit"
	"contracting/internal/middleware/security"
	"contracting/internal/middleware/trace"
	"contracting/internal/services"
)

const errInternalMessage = core.MsgInternal

// Deps are the collaborators the server routes to.
type Deps struct {
	Resources *services.Service
	Dashboard *dashboard.Service
	Logger    *applog.Logger
	Metrics   *metrics.Metrics
}

type Server struct {
	http.Server
	resources *services.Service
	dashboard *dashboard.Service
	logger    *applog.Logger
	events    *applog.StructuredLogger
	metrics   *metrics.Metrics
	limiter   *ratelimit.Limiter
	detector  *security.Detector

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(cfg *config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              net.JoinHostPort("", cfg.Port),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		resources: deps.Resources,
		dashboard: deps.Dashboard,
		logger:    logger,
		events:    applog.NewStructuredLogger(logger),
		metrics:   deps.Metrics,
	}
	s.detector = security.NewDetector(func(*http.Request) { s.metrics.IncSuspicious() })

	mux := http.NewServeMux()
	s.routes(mux)

	var handler http.Handler = s.instrument(mux)
	if cfg.RateLimitPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
			Methods:           ratelimit.MutatingMethods,
		})
		handler = s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited)(handler)
	}
	handler = s.detector.Middleware(handler)
	handler = security.CORS(security.DefaultCORSConfig(cfg.CORSAllowedOrigin))(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = trace.NewMiddleware(logger, s.detector.ExtractClientIP).Middleware(handler)
	s.Handler = handler

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.resourceRoutes(mux)
	s.dashboardRoutes(mux)

	mux.HandleFunc("/", handleNotFound)
}

// instrument records per-route request metrics. It must wrap the mux
// directly: the mux sets r.Pattern on the request it receives.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RecordHTTPRequest(r.Method, route, rw.statusCode, time.Since(start))
	})
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// fail maps err to a response. Request errors carry their own message;
// anything else is logged and hidden behind a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, entity, op string) {
	var appErr *core.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == core.KindNotFound {
			NotFoundError(appErr.Message).Write(w)
		} else {
			BadRequestError(appErr.Message).Write(w)
		}
		return
	}

	s.events.LogError(r.Context(), "Request failed", err, applog.ComponentResource, op,
		applog.NewFields().
			WithEntity(entity, 0).
			WithRequestID(trace.GetRequestID(r.Context())))
	InternalServerError(core.MsgInternal).Write(w)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	OK(MessageBody{Message: core.HealthMessage}).Write(w)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.resources.Store().Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError(core.MsgRouteNotFound).Write(w)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRateLimited()
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(),
		"Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	TooManyRequestsError(core.MsgRateLimited).Write(w)
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}
