package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"creditreport/internal/amqp"
	"creditreport/internal/cache"
	"creditreport/internal/cli"
	"creditreport/internal/log"
	"creditreport/internal/report"
	"creditreport/internal/services"
	"creditreport/internal/worker"
)

const cacheCleanupInterval = 5 * time.Minute

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, log.ComponentWorker)
	shutdownTracing := cli.InitTracing(logger, cfg, "creditreport-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	backendResult, exporter := cli.InitBackend(context.Background(), logger, cfg)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.ReportRequestQueue, cfg.ReportResultQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"request_queue", cfg.ReportRequestQueue,
		"result_queue", cfg.ReportResultQueue)

	builder := report.New(backendResult.Server, report.WithLogger(logger))
	reportWorker := worker.NewReportWorker(services.NewReportService(builder, exporter), amqpClient)

	manager := cache.NewManager(logger)
	if backendResult.Groups != nil {
		manager.Register(backendResult.Groups.Cache())
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := amqpClient.Close(); err != nil {
			logger.Warn("AMQP close error", log.FieldError, err)
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
		return amqpClient.ConsumeReportRequests(gctx, reportWorker.HandleReportRequest)
	})
	g.Go(func() error {
		return manager.Run(gctx, cacheCleanupInterval)
	})

	logger.Info("Starting report worker", "backend", cfg.DataBackend, "export_enabled", exporter != nil)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Report worker stopped", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Report worker stopped gracefully")
}
