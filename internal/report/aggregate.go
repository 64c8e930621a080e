package report

import (
	"context"
	"fmt"

	"creditreport/internal/core"
	"creditreport/internal/host"
)

// CreditTrade is a credit operation joined with its account and currency.
type CreditTrade struct {
	Trade    core.TradeRecord
	Account  core.AccountRecord
	Currency string
}

type Aggregation struct {
	Credits []CreditTrade
	Totals  core.Totals
}

// currencyIndex maps group name to currency. The first record for a name
// wins.
type currencyIndex map[string]string

func newCurrencyIndex(ctx context.Context, groups []core.GroupRecord, sink DiagnosticSink) currencyIndex {
	ix := make(currencyIndex, len(groups))
	for _, g := range groups {
		if prev, dup := ix[g.Group]; dup {
			sink.Fault(ctx, Fault{Op: OpGroups, Err: fmt.Errorf("duplicate group %q: keeping currency %q, ignoring %q", g.Group, prev, g.Currency)})
			continue
		}
		ix[g.Group] = g.Currency
	}
	return ix
}

func (ix currencyIndex) resolve(group string) string {
	if group == "" {
		return core.NoCurrency
	}
	if cur, ok := ix[group]; ok {
		return cur
	}
	return core.NoCurrency
}

// accountCache holds successful lookups for one build. Failed logins are not
// cached, so each of their trades retries and reports its own fault.
type accountCache struct {
	finder host.AccountFinder
	byID   map[int64]core.AccountRecord
}

func (c *accountCache) lookup(ctx context.Context, login int64, sink DiagnosticSink) core.AccountRecord {
	if a, ok := c.byID[login]; ok {
		return a
	}
	a, err := safeCall(func() (core.AccountRecord, error) {
		return c.finder.AccountByLogin(ctx, login)
	})
	if err != nil {
		sink.Fault(ctx, Fault{Op: OpAccount, Login: login, Err: err})
		return core.AccountRecord{}
	}
	c.byID[login] = a
	return a
}

// Aggregate keeps the credit operations of trades, in order, resolves each
// one's account and currency, and sums profit per currency. A credit with a
// NaN or infinite profit keeps its row but is left out of the totals.
func Aggregate(ctx context.Context, trades []core.TradeRecord, groups []core.GroupRecord, accounts host.AccountFinder, sink DiagnosticSink) Aggregation {
	ix := newCurrencyIndex(ctx, groups, sink)
	cache := &accountCache{finder: accounts, byID: map[int64]core.AccountRecord{}}

	agg := Aggregation{Totals: core.NewTotals()}
	for _, tr := range trades {
		if !tr.Cmd.IsCredit() {
			continue
		}
		acct := cache.lookup(ctx, tr.Login, sink)
		cur := ix.resolve(acct.Group)
		if !agg.Totals.Add(cur, tr.Profit) {
			sink.Fault(ctx, Fault{Op: OpProfit, Login: tr.Login, Err: fmt.Errorf("order %d: non-finite profit %v left out of %s total", tr.Order, tr.Profit, cur)})
		}
		agg.Credits = append(agg.Credits, CreditTrade{Trade: tr, Account: acct, Currency: cur})
	}
	return agg
}
