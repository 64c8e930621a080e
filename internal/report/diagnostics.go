package report

import (
	"context"
	"sync"

	"creditreport/internal/log"
)

// Fault operations.
const (
	OpRequest      = "request"
	OpTransactions = log.OpTransactions
	OpGroups       = log.OpGroups
	OpAccount      = log.OpAccount
	OpProfit       = log.OpProfit
	OpBuild        = log.OpBuild
)

// Fault is a failure the report swallowed to keep building.
type Fault struct {
	Op    string
	Login int64 // set for account lookups
	Err   error
}

// DiagnosticSink receives every suppressed failure of a build.
type DiagnosticSink interface {
	Fault(ctx context.Context, f Fault)
}

// LogSink reports faults as warnings on the structured logger.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger.WithComponent(log.ComponentReport)}
}

func (s *LogSink) Fault(ctx context.Context, f Fault) {
	fields := log.NewFields().WithOperation(f.Op).WithError(f.Err)
	if f.Login != 0 {
		fields[log.FieldLogin] = f.Login
	}
	s.logger.WarnContext(ctx, "credit facility report fault", fields.ToSlice()...)
}

// Recorder keeps faults in memory.
type Recorder struct {
	mu     sync.Mutex
	faults []Fault
}

func (r *Recorder) Fault(_ context.Context, f Fault) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults = append(r.faults, f)
}

func (r *Recorder) Faults() []Fault {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Fault(nil), r.faults...)
}

// Ops returns the operation of each recorded fault in order.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]string, len(r.faults))
	for i, f := range r.faults {
		ops[i] = f.Op
	}
	return ops
}

// multiSink fans out to several sinks.
type multiSink []DiagnosticSink

func (m multiSink) Fault(ctx context.Context, f Fault) {
	for _, s := range m {
		s.Fault(ctx, f)
	}
}
