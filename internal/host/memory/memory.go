package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"creditreport/internal/core"
	"creditreport/internal/host"
)

// Store is an in-memory trading server.
type Store struct {
	mu       sync.Mutex
	groups   []core.GroupRecord
	accounts map[int64]core.AccountRecord
	trades   []core.TradeRecord
	faults   map[string]error
}

// Operation names accepted by Fail.
const (
	OpTransactions = "transactions"
	OpGroups       = "groups"
	OpAccount      = "account"
)

func New(groups []core.GroupRecord, accounts []core.AccountRecord, trades []core.TradeRecord) *Store {
	s := &Store{
		groups:   dedupeGroups(groups),
		accounts: make(map[int64]core.AccountRecord, len(accounts)),
		trades:   append([]core.TradeRecord(nil), trades...),
		faults:   map[string]error{},
	}
	for _, a := range accounts {
		s.accounts[a.Login] = a
	}
	sort.SliceStable(s.trades, func(i, j int) bool {
		if s.trades[i].CloseTime != s.trades[j].CloseTime {
			return s.trades[i].CloseTime < s.trades[j].CloseTime
		}
		return s.trades[i].Order < s.trades[j].Order
	})
	return s
}

// NewFromFile seeds the store from a YAML fixture. A missing file gives an
// empty store.
func NewFromFile(path string) (*Store, error) {
	fx, err := host.LoadFixture(path)
	if err != nil {
		return nil, err
	}
	groups, accounts, trades, err := fx.Records()
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return New(groups, accounts, trades), nil
}

// Fail makes every later call of op return err. A nil err clears the fault.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) TransactionsByGroup(_ context.Context, mask string, from, to int64) ([]core.TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.faults[OpTransactions]; err != nil {
		return nil, err
	}
	m, err := host.CompileMask(mask)
	if err != nil {
		return nil, err
	}
	var out []core.TradeRecord
	for _, tr := range s.trades {
		if !host.InRange(tr.CloseTime, from, to) {
			continue
		}
		if !m.Match(s.accounts[tr.Login].Group) {
			continue
		}
		out = append(out, tr)
	}
	return out, nil
}

func (s *Store) AllGroups(_ context.Context) ([]core.GroupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.faults[OpGroups]; err != nil {
		return nil, err
	}
	return append([]core.GroupRecord(nil), s.groups...), nil
}

func (s *Store) AccountByLogin(_ context.Context, login int64) (core.AccountRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.faults[OpAccount]; err != nil {
		return core.AccountRecord{}, err
	}
	a, ok := s.accounts[login]
	if !ok {
		return core.AccountRecord{}, fmt.Errorf("login %d: %w", login, host.ErrAccountNotFound)
	}
	return a, nil
}

// dedupeGroups keeps the first record for each group name. Names are kept
// verbatim: accounts match them exactly.
func dedupeGroups(in []core.GroupRecord) []core.GroupRecord {
	seen := map[string]struct{}{}
	out := make([]core.GroupRecord, 0, len(in))
	for _, g := range in {
		if _, ok := seen[g.Group]; ok {
			slog.Warn("dropping duplicate group", "component", "host", "group", g.Group)
			continue
		}
		seen[g.Group] = struct{}{}
		out = append(out, g)
	}
	return out
}

var _ host.Server = (*Store)(nil)
