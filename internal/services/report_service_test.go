package services

import (
	"context"
	"errors"
	"testing"

	"creditreport/internal/core"
	"creditreport/internal/host/memory"
	"creditreport/internal/log"
	"creditreport/internal/report"
	sheetmem "creditreport/internal/sheets/memory"
	"creditreport/internal/ui"
)

func newHost() *memory.Store {
	return memory.New(
		[]core.GroupRecord{{Group: "real", Currency: "USD"}},
		[]core.AccountRecord{{Login: 1, Name: "Alice", Group: "real"}},
		[]core.TradeRecord{
			{Order: 1, Login: 1, Cmd: core.CmdCreditIn, Profit: 50, CloseTime: 100},
			{Order: 2, Login: 1, Cmd: core.CmdCreditOut, Profit: -20, CloseTime: 200},
		},
	)
}

func newBuilder() *report.CreditFacility {
	return report.New(newHost(), report.WithLogger(log.Discard()))
}

type failingExporter struct{}

func (failingExporter) ExportTable(context.Context, ui.TableProps, []core.Total) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestReportServiceBuildWithoutExport(t *testing.T) {
	svc := NewReportService(newBuilder(), nil)
	resp, ref, err := svc.Build(context.Background(), map[string]any{}, false)
	if err != nil || ref != "" {
		t.Fatalf("unexpected ref=%q err=%v", ref, err)
	}
	if resp.Rows != 2 {
		t.Fatalf("expected 2 rows, got %d", resp.Rows)
	}
	if svc.Describe().Name != report.Name {
		t.Fatal("describe not delegated")
	}
}

func TestReportServiceExport(t *testing.T) {
	exporter := sheetmem.New()
	svc := NewReportService(newBuilder(), exporter)

	_, ref, err := svc.Build(context.Background(), nil, true)
	if err != nil || ref == "" {
		t.Fatalf("unexpected ref=%q err=%v", ref, err)
	}
	exports := exporter.Exports()
	if len(exports) != 1 {
		t.Fatalf("expected one export, got %d", len(exports))
	}
	values := exports[0].Values
	// header, two rows shown newest order first, blank, one total
	if len(values) != 5 || values[1][0] != "2" || values[4][1] != "30.00" {
		t.Fatalf("unexpected exported values %v", values)
	}
}

func TestReportServiceExportDisabled(t *testing.T) {
	svc := NewReportService(newBuilder(), nil)
	resp, _, err := svc.Build(context.Background(), nil, true)
	if !errors.Is(err, ErrExportDisabled) {
		t.Fatalf("expected ErrExportDisabled, got %v", err)
	}
	if resp.Rows != 2 {
		t.Fatal("response must survive export failure")
	}
}

func TestReportServiceExportFailure(t *testing.T) {
	svc := NewReportService(newBuilder(), failingExporter{})
	resp, ref, err := svc.Build(context.Background(), nil, true)
	if err == nil || ref != "" {
		t.Fatalf("expected export error, got ref=%q err=%v", ref, err)
	}
	if resp.Type != ui.TypeUI {
		t.Fatal("response must survive export failure")
	}
}
