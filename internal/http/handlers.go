package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"creditreport/internal/log"
	"creditreport/internal/services"
)

type appMetrics struct {
	reportsBuilt  int64
	exports       int64
	exportFailure int64
	uptime        time.Time
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	}).Write(w)
}

// handleReady checks the host backend within a short deadline.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{}

	if s.ready != nil {
		if err := s.ready(ctx); err != nil {
			checks["backend"] = fmt.Sprintf("failed: %v", err)
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["backend"] = "ok"
		}
	} else {
		checks["backend"] = "ok"
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.GetMetrics().ClientCount,
		"status":         "ok",
	}

	NewJSONResponse().Status(httpStatus).Body(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics writes counters in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()
	cacheEntries := 0
	if s.cacheSize != nil {
		cacheEntries = s.cacheSize()
	}

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n\n", name, help, name, kind, name, value)
	}

	w.WriteHeader(http.StatusOK)
	metric("http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	metric("http_server_errors_total", "counter", "Responses with a 5xx status", traceMetrics.ServerErrors)
	metric("reports_built_total", "counter", "Credit facility reports built", atomic.LoadInt64(&s.appMetrics.reportsBuilt))
	metric("report_exports_total", "counter", "Successful report exports", atomic.LoadInt64(&s.appMetrics.exports))
	metric("report_export_failures_total", "counter", "Failed report exports", atomic.LoadInt64(&s.appMetrics.exportFailure))
	metric("group_cache_entries", "gauge", "Cached group lists", cacheEntries)
	metric("rate_limit_hits_total", "counter", "Total rate limit hits", rateLimitMetrics.TotalHits)
	metric("active_rate_limit_clients", "gauge", "Currently tracked rate limit clients", rateLimitMetrics.ClientCount)
	metric("suspicious_requests_total", "counter", "Total suspicious requests detected", securityMetrics.SuspiciousRequests)
	metric("uptime_seconds", "gauge", "Application uptime in seconds", fmt.Sprintf("%.0f", time.Since(s.appMetrics.uptime).Seconds()))
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(s.service.Describe()).Write(w)
}

// handleBuildReport builds the report from the query string (GET) or body
// (POST). Bad parameter values never fail the request; the report falls
// back to defaults for them.
func (s *Server) handleBuildReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	req, err := ParseReportRequest(w, r)
	if err != nil {
		logger.WarnContext(ctx, "Invalid report request",
			log.FieldError, err,
			log.FieldOperation, log.OpParse)
		BadRequestError(err.Error()).Write(w)
		return
	}

	resp, ref, err := s.service.Build(ctx, req.Params, req.Export)
	atomic.AddInt64(&s.appMetrics.reportsBuilt, 1)
	if err != nil {
		atomic.AddInt64(&s.appMetrics.exportFailure, 1)
		if errors.Is(err, services.ErrExportDisabled) {
			ErrorResponse(http.StatusNotImplemented, err.Error()).Write(w)
			return
		}
		logger.ErrorContext(ctx, "Report export failed",
			log.FieldError, err,
			log.FieldOperation, log.OpExport)
		ErrorResponse(http.StatusBadGateway, "report export failed").Write(w)
		return
	}

	builder := NewJSONResponse().Body(resp)
	if ref != "" {
		atomic.AddInt64(&s.appMetrics.exports, 1)
		builder.Header(ExportRefHeader, ref)
	}
	builder.Write(w)
}
