package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"creditreport/internal/amqp"
	"creditreport/internal/core"
	"creditreport/internal/host/memory"
	"creditreport/internal/log"
	"creditreport/internal/report"
	"creditreport/internal/services"
	sheetmem "creditreport/internal/sheets/memory"
)

type fakePublisher struct {
	results []*amqp.ReportResultMessage
	err     error
}

func (p *fakePublisher) PublishReportRequest(context.Context, *amqp.ReportRequestMessage) error {
	return nil
}

func (p *fakePublisher) PublishReportResult(_ context.Context, msg *amqp.ReportResultMessage) error {
	if p.err != nil {
		return p.err
	}
	p.results = append(p.results, msg)
	return nil
}

func newService(withExport bool) *services.ReportService {
	host := memory.New(
		[]core.GroupRecord{{Group: "real", Currency: "EUR"}},
		[]core.AccountRecord{{Login: 7, Name: "Bob", Group: "real"}},
		[]core.TradeRecord{
			{Order: 10, Login: 7, Cmd: core.CmdCreditIn, Profit: 100, CloseTime: 1000},
			{Order: 11, Login: 7, Cmd: core.CmdBuy, Profit: 5, CloseTime: 1001},
		},
	)
	builder := report.New(host, report.WithLogger(log.Discard()))
	if withExport {
		return services.NewReportService(builder, sheetmem.New())
	}
	return services.NewReportService(builder, nil)
}

func TestHandleReportRequest(t *testing.T) {
	tests := []struct {
		name    string
		export  bool
		exports bool
		wantRef bool
		wantErr bool
	}{
		{name: "build only", export: false, exports: true},
		{name: "build and export", export: true, exports: true, wantRef: true},
		{name: "export not configured", export: true, exports: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			w := NewReportWorker(newService(tt.exports), pub)

			msg := amqp.NewReportRequestMessage(map[string]any{"group": "real"}, tt.export)
			if err := w.HandleReportRequest(context.Background(), msg); err != nil {
				t.Fatalf("HandleReportRequest() error = %v", err)
			}
			if len(pub.results) != 1 {
				t.Fatalf("expected one result, got %d", len(pub.results))
			}

			result := pub.results[0]
			if result.RequestID != msg.RequestID {
				t.Errorf("RequestID = %q, want %q", result.RequestID, msg.RequestID)
			}
			if (result.ExportRef != "") != tt.wantRef {
				t.Errorf("ExportRef = %q", result.ExportRef)
			}
			if (result.Error != "") != tt.wantErr {
				t.Errorf("Error = %q", result.Error)
			}

			var resp report.Response
			if err := json.Unmarshal(result.Response, &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Rows != 1 {
				t.Errorf("Rows = %d, want 1", resp.Rows)
			}
		})
	}
}

func TestHandleReportRequestPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	w := NewReportWorker(newService(false), pub)

	err := w.HandleReportRequest(context.Background(), amqp.NewReportRequestMessage(nil, false))
	if err == nil {
		t.Fatal("expected publish failure to be returned for requeue")
	}
}

func TestHandleReportRequestBadParams(t *testing.T) {
	pub := &fakePublisher{}
	w := NewReportWorker(newService(false), pub)

	msg := amqp.NewReportRequestMessage(map[string]any{"from": "yesterday"}, false)
	if err := w.HandleReportRequest(context.Background(), msg); err != nil {
		t.Fatalf("wrong-typed params must not fail the message: %v", err)
	}
	if len(pub.results) != 1 || pub.results[0].Error != "" {
		t.Fatalf("unexpected results %+v", pub.results)
	}
}
