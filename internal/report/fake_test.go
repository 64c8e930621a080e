package report

import (
	"context"
	"errors"
	"sync"

	"creditreport/internal/core"
)

// fakeServer is a scripted host used across report tests.
type fakeServer struct {
	mu       sync.Mutex
	trades   []core.TradeRecord
	groups   []core.GroupRecord
	accounts map[int64]core.AccountRecord

	tradesErr  error
	groupsErr  error
	accountErr map[int64]error
	panicOn    string

	gotMask     string
	gotFrom     int64
	gotTo       int64
	tradeCalls  int
	lookupCalls map[int64]int
}

func (f *fakeServer) TransactionsByGroup(_ context.Context, mask string, from, to int64) ([]core.TradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotMask, f.gotFrom, f.gotTo = mask, from, to
	f.tradeCalls++
	if f.panicOn == OpTransactions {
		panic("transactions exploded")
	}
	if f.tradesErr != nil {
		return nil, f.tradesErr
	}
	return f.trades, nil
}

func (f *fakeServer) AllGroups(context.Context) ([]core.GroupRecord, error) {
	if f.panicOn == OpGroups {
		panic("groups exploded")
	}
	if f.groupsErr != nil {
		return nil, f.groupsErr
	}
	return f.groups, nil
}

func (f *fakeServer) AccountByLogin(_ context.Context, login int64) (core.AccountRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupCalls == nil {
		f.lookupCalls = map[int64]int{}
	}
	f.lookupCalls[login]++
	if f.panicOn == OpAccount {
		panic("account exploded")
	}
	if err := f.accountErr[login]; err != nil {
		return core.AccountRecord{}, err
	}
	a, ok := f.accounts[login]
	if !ok {
		return core.AccountRecord{}, errors.New("not found")
	}
	return a, nil
}
