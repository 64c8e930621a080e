package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"creditreport/internal/amqp"
	"creditreport/internal/log"
	"creditreport/internal/report"
	"creditreport/internal/services"
)

// ReportWorker builds reports requested over AMQP and publishes the results.
type ReportWorker struct {
	service   *services.ReportService
	publisher amqp.Publisher
}

func NewReportWorker(service *services.ReportService, publisher amqp.Publisher) *ReportWorker {
	return &ReportWorker{
		service:   service,
		publisher: publisher,
	}
}

// HandleReportRequest builds one report. A failed export is reported in the
// result message rather than failing the request; only a failed publish
// causes the request to be retried.
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequestMessage) error {
	p, _ := report.ParseParams(msg.Params)
	fields := log.NewFields().
		WithRequestID(msg.RequestID).
		WithReportRange(p.Group, p.From, p.To)
	slog.InfoContext(ctx, "Building report", append(fields.ToSlice(), "export", msg.Export)...)

	resp, ref, exportErr := w.service.Build(ctx, msg.Params, msg.Export)

	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	result := amqp.NewReportResultMessage(msg.RequestID, body)
	result.ExportRef = ref
	if exportErr != nil {
		result.Error = exportErr.Error()
	}

	if err := w.publisher.PublishReportResult(ctx, result); err != nil {
		return fmt.Errorf("publish report result: %w", err)
	}

	slog.InfoContext(ctx, "Report request completed",
		log.FieldRequestID, msg.RequestID,
		log.FieldRows, resp.Rows,
		log.FieldExportRef, ref)
	return nil
}
