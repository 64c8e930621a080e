package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"creditreport/internal/log"
	"creditreport/internal/report"
	"creditreport/internal/sheets"
	"creditreport/internal/ui"
)

var ErrExportDisabled = errors.New("report export is not configured")

// ReportService builds the credit facility report and optionally exports
// the resulting table.
type ReportService struct {
	builder  report.Builder
	exporter sheets.TableExporter
}

// NewReportService wires a builder with an optional exporter.
func NewReportService(builder report.Builder, exporter sheets.TableExporter) *ReportService {
	return &ReportService{builder: builder, exporter: exporter}
}

func (s *ReportService) Describe() report.About {
	return s.builder.Describe()
}

// Build runs the report. When export is set the table is also written out;
// an export failure is returned alongside the (still valid) response.
func (s *ReportService) Build(ctx context.Context, req map[string]any, export bool) (report.Response, string, error) {
	resp := s.builder.Build(ctx, req)
	if !export {
		return resp, "", nil
	}

	ref, err := s.Export(ctx, resp)
	if err != nil {
		slog.ErrorContext(ctx, "Report export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err)
		return resp, "", err
	}
	return resp, ref, nil
}

// Export writes the table of an already built report.
func (s *ReportService) Export(ctx context.Context, resp report.Response) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}
	node, ok := resp.Structure.Find(ui.TypeTable)
	if !ok {
		return "", errors.New("report has no table to export")
	}
	table, ok := node.Props.(ui.TableProps)
	if !ok {
		return "", fmt.Errorf("unexpected table props %T", node.Props)
	}
	ref, err := s.exporter.ExportTable(ctx, table, resp.Totals)
	if err != nil {
		return "", fmt.Errorf("export table: %w", err)
	}
	slog.InfoContext(ctx, "Report exported", log.FieldExportRef, ref, log.FieldRows, resp.Rows)
	return ref, nil
}
