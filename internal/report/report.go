// Package report implements the Credit Facility report: it lists credit
// in/out operations on client accounts for a group mask and time window and
// totals them per account currency.
//
// A build never fails. Host faults, bad request fields and panics are sent
// to a DiagnosticSink and the report is produced from whatever data remains.
package report

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"creditreport/internal/core"
	"creditreport/internal/host"
	"creditreport/internal/log"
	"creditreport/internal/tracing"
	"creditreport/internal/ui"
)

const (
	Version     = 1
	Name        = "Credit Facility report"
	Description = "Displays credit operations on client accounts, covering both incoming and outgoing transactions. Includes operation IDs, dates, amounts, and trader information."
	// Type marks a report driven by a time range and a group mask.
	Type = "range_group"
)

// About is the report metadata shown in the host's report list.
type About struct {
	Version     int    `json:"version"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Response is a built report: the page plus the per-currency totals.
type Response struct {
	ui.Page
	Totals []core.Total `json:"totals"`
	Rows   int          `json:"rows"`
}

// Builder is what transports need from a report.
type Builder interface {
	Describe() About
	Build(ctx context.Context, req map[string]any) Response
}

// CreditFacility is the report plugin. It is stateless between builds and
// safe for concurrent use.
type CreditFacility struct {
	server host.Server
	sink   DiagnosticSink
	logger *log.Logger
}

type Option func(*CreditFacility)

// WithSink sends faults to sink in addition to the log.
func WithSink(sink DiagnosticSink) Option {
	return func(r *CreditFacility) {
		r.sink = sink
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(r *CreditFacility) {
		r.logger = logger
	}
}

func New(server host.Server, opts ...Option) *CreditFacility {
	r := &CreditFacility{server: server}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.FromContext(context.Background())
	}
	r.logger = r.logger.WithComponent(log.ComponentReport)
	logSink := NewLogSink(r.logger)
	if r.sink == nil {
		r.sink = logSink
	} else {
		r.sink = multiSink{logSink, r.sink}
	}
	return r
}

func (r *CreditFacility) Describe() About {
	return About{Version: Version, Name: Name, Description: Description, Type: Type}
}

// Build resolves req and runs the report. Unusable request fields fall back
// to their defaults.
func (r *CreditFacility) Build(ctx context.Context, req map[string]any) Response {
	p, issues := ParseParams(req)
	for _, issue := range issues {
		r.sink.Fault(ctx, Fault{Op: OpRequest, Err: issue})
	}
	return r.BuildParams(ctx, p)
}

// BuildParams runs the report for already resolved parameters.
func (r *CreditFacility) BuildParams(ctx context.Context, p Params) (resp Response) {
	ctx, span := tracing.StartSpan(ctx, "report.credit_facility.build",
		attribute.String("group", p.Group),
		attribute.Int64("from", p.From),
		attribute.Int64("to", p.To),
	)
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("build panic: %v", rec)
			span.RecordError(err)
			span.SetStatus(codes.Error, "build panic")
			r.sink.Fault(ctx, Fault{Op: OpBuild, Err: err})
			resp = Response{Page: Assemble(nil), Totals: []core.Total{}}
		}
	}()

	trades, groups := fetch(ctx, r.server, p, r.sink)
	agg := Aggregate(ctx, trades, groups, r.server, r.sink)
	rows := Project(agg.Credits)

	totals := agg.Totals.Sorted()
	for _, t := range totals {
		r.logger.InfoContext(ctx, "credit total",
			log.FieldCurrency, t.Currency,
			log.FieldProfit, core.FormatDecimal(t.Profit),
		)
	}
	span.SetAttributes(
		attribute.Int("trades", len(trades)),
		attribute.Int("credits", len(agg.Credits)),
		attribute.Int("currencies", len(totals)),
	)

	return Response{Page: Assemble(rows), Totals: totals, Rows: len(rows)}
}

// Teardown releases nothing; builds hold no state.
func (r *CreditFacility) Teardown() {}

var _ Builder = (*CreditFacility)(nil)
