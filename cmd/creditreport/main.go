package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"creditreport/internal/cache"
	"creditreport/internal/cli"
	apphttp "creditreport/internal/http"
	"creditreport/internal/log"
	"creditreport/internal/report"
	"creditreport/internal/services"
)

const cacheCleanupInterval = 5 * time.Minute

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, log.ComponentApp)
	shutdownTracing := cli.InitTracing(logger, cfg, "creditreport")

	backendResult, exporter := cli.InitBackend(context.Background(), logger, cfg)

	builder := report.New(backendResult.Server, report.WithLogger(logger))
	service := services.NewReportService(builder, exporter)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Service:            service,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Ready:              backendResult.Ready,
		CacheSize:          backendResult.CacheSize,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	manager := cache.NewManager(logger)
	if backendResult.Groups != nil {
		manager.Register(backendResult.Groups.Cache())
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		builder.Teardown()
		if backendResult.Cleanup != nil {
			if err := backendResult.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", log.FieldError, err)
			}
		}
		shutdownTracing(shutdownCtx)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting creditreport server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"export_enabled", exporter != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := manager.Run(gctx, cacheCleanupInterval); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
