// Package cli holds the start-up steps shared by the binaries under cmd/.
package cli

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"creditreport/internal/backend"
	"creditreport/internal/config"
	"creditreport/internal/log"
	"creditreport/internal/report"
	"creditreport/internal/sheets"
	"creditreport/internal/tracing"
)

// SetupLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: component,
		Output:    os.Stdout,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig exits the process on invalid configuration. It
// logs through a bootstrap logger since the real one depends on config.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed",
			log.FieldError, err,
			log.FieldOperation, log.OpStartup)
		os.Exit(1)
	}
	return cfg
}

// InitTracing starts tracing when enabled and returns its shutdown func.
func InitTracing(logger *log.Logger, cfg *config.Config, serviceName string) func(context.Context) {
	err := tracing.Init(tracing.Config{
		Enabled:        cfg.TracingEnabled,
		ServiceName:    serviceName,
		ServiceVersion: strconv.Itoa(report.Version),
	})
	if err != nil {
		logger.Warn("Tracing disabled", log.FieldError, err)
	} else if cfg.TracingEnabled {
		logger.Info("Tracing enabled", "service", serviceName)
	}

	return func(ctx context.Context) {
		if err := tracing.Shutdown(ctx); err != nil {
			logger.Warn("Tracing shutdown failed", log.FieldError, err)
		}
	}
}

// InitBackend creates the host backend and the optional exporter, exiting
// the process on failure.
func InitBackend(ctx context.Context, logger *log.Logger, cfg *config.Config) (*backend.BackendResult, sheets.TableExporter) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", backendCfg.Type)
		os.Exit(1)
	}

	exporter, err := factory.CreateExporter(ctx, backendCfg)
	if err != nil {
		// Builds still work without export.
		logger.Error("Failed to initialize exporter, export disabled", log.FieldError, err)
		exporter = nil
	}
	if cfg.ExportEnabled() && exporter != nil {
		logger.Info("Report export enabled", "export_backend", cfg.ExportBackend)
	}
	return result, exporter
}

// GracefulShutdown cancels the returned context on SIGINT or SIGTERM, then
// runs cleanup with a context bounded by timeout. done is closed when
// cleanup has returned.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func(context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String(), log.FieldOperation, log.OpShutdown)
		case <-ctx.Done():
		}
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
			return
		}
		logger.Info("Shutdown complete")
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup is done.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
