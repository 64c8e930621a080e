// Command creditplugin builds the credit facility report as a Go plugin
// (go build -buildmode=plugin). The host resolves AboutReport, CreateReport
// and DestroyReport with plugin.Lookup and exchanges JSON with them. The
// host data backend is configured from the environment like the server.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"creditreport/internal/backend"
	"creditreport/internal/config"
	"creditreport/internal/log"
	"creditreport/internal/report"
)

var (
	mu       sync.Mutex
	instance *report.CreditFacility
	cleanup  backend.CleanupFunc
	logger   = log.Discard()
)

// AboutReport returns the report metadata as JSON.
func AboutReport() []byte {
	data, _ := json.Marshal(report.New(nil).Describe())
	return data
}

// CreateReport builds the report for a JSON request object and returns the
// response as JSON. Invalid request values are reported by the report and
// replaced by defaults; only an unusable request document or backend fails.
func CreateReport(request []byte) ([]byte, error) {
	req, err := decodeRequest(request)
	if err != nil {
		return nil, err
	}

	r, err := ensureReport()
	if err != nil {
		return nil, err
	}
	return json.Marshal(r.Build(context.Background(), req))
}

// DestroyReport releases the host backend. A later CreateReport opens it
// again.
func DestroyReport() {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		instance.Teardown()
		instance = nil
	}
	if cleanup != nil {
		if err := cleanup(); err != nil {
			logger.Warn("Backend cleanup error", log.FieldError, err)
		}
		cleanup = nil
	}
}

func decodeRequest(request []byte) (map[string]any, error) {
	req := map[string]any{}
	if len(bytes.TrimSpace(request)) == 0 {
		return req, nil
	}
	dec := json.NewDecoder(bytes.NewReader(request))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode report request: %w", err)
	}
	return req, nil
}

func ensureReport() (*report.CreditFacility, error) {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance, nil
	}

	cfg := config.Load()
	logger = log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentReport,
	})

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create host backend: %w", err)
	}

	instance = report.New(result.Server, report.WithLogger(logger))
	cleanup = result.Cleanup
	return instance, nil
}

func main() {}
