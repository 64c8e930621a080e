package report

import (
	"context"
	"fmt"

	"creditreport/internal/core"
	"creditreport/internal/host"
)

// safeCall turns a panic raised by a host collaborator into an error.
func safeCall[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host panic: %v", r)
		}
	}()
	return fn()
}

// fetch queries trades and groups. The two calls are independent: a fault
// in one leaves the other untouched, and the failed side comes back empty.
func fetch(ctx context.Context, server host.Server, p Params, sink DiagnosticSink) ([]core.TradeRecord, []core.GroupRecord) {
	trades, err := safeCall(func() ([]core.TradeRecord, error) {
		return server.TransactionsByGroup(ctx, p.Group, p.From, p.To)
	})
	if err != nil {
		sink.Fault(ctx, Fault{Op: OpTransactions, Err: err})
		trades = nil
	}

	groups, err := safeCall(func() ([]core.GroupRecord, error) {
		return server.AllGroups(ctx)
	})
	if err != nil {
		sink.Fault(ctx, Fault{Op: OpGroups, Err: err})
		groups = nil
	}

	return trades, groups
}
