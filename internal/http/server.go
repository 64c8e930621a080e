package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"creditreport/internal/log"
	"creditreport/internal/middleware/ratelimit"
	"creditreport/internal/middleware/security"
	"creditreport/internal/middleware/trace"
	"creditreport/internal/services"
)

const reportPath = "/api/reports/credit-facility"

// Deps are the collaborators of the HTTP server. Service is required.
type Deps struct {
	Service            *services.ReportService
	Logger             *log.Logger
	RateLimitPerMinute int
	// Ready reports whether the host backend can serve builds. Nil means
	// always ready.
	Ready func(ctx context.Context) error
	// CacheSize reports the number of cached entries for /metrics.
	CacheSize func() int
}

type Server struct {
	http.Server
	service   *services.ReportService
	logger    *log.Logger
	ready     func(ctx context.Context) error
	cacheSize func() int

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	appMetrics       *appMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	detector := security.NewDetector()
	s := &Server{
		service:   deps.Service,
		logger:    logger,
		ready:     deps.Ready,
		cacheSize: deps.CacheSize,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: deps.RateLimitPerMinute,
		}),
		securityDetector: detector,
		traceMiddleware:  trace.NewMiddleware(logger, detector.ExtractClientIP),
		appMetrics:       &appMetrics{uptime: time.Now()},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	mux.HandleFunc("GET "+reportPath+"/about", s.handleAbout)
	mux.HandleFunc("GET "+reportPath, s.handleBuildReport)
	mux.HandleFunc("POST "+reportPath, s.handleBuildReport)

	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(detector.ExtractClientIP, http.MethodPost)(handler)
	handler = detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.traceMiddleware.Middleware(handler)
	handler = log.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return s
}

// Shutdown stops the rate limiter and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
