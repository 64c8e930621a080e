package adapters

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"creditreport/internal/core"
	"creditreport/internal/host"
	"creditreport/internal/host/memory"
	"creditreport/internal/storage"
)

type countingServer struct {
	host.Server
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingServer) AllGroups(ctx context.Context) ([]core.GroupRecord, error) {
	c.mu.Lock()
	c.calls++
	err := c.err
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.Server.AllGroups(ctx)
}

func TestCachedGroupsServesFromCache(t *testing.T) {
	upstream := &countingServer{Server: memory.New([]core.GroupRecord{{Group: "g", Currency: "USD"}}, nil, nil)}
	cg := NewCachedGroups(upstream, time.Minute)
	now := time.Now()
	cg.Cache().SetClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		groups, err := cg.AllGroups(ctx)
		if err != nil || len(groups) != 1 {
			t.Fatalf("unexpected groups %v err=%v", groups, err)
		}
	}
	if upstream.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", upstream.calls)
	}

	now = now.Add(2 * time.Minute)
	cg.AllGroups(ctx)
	if upstream.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d", upstream.calls)
	}
}

func TestCachedGroupsDoesNotCacheErrors(t *testing.T) {
	upstream := &countingServer{Server: memory.New(nil, nil, nil), err: errors.New("down")}
	cg := NewCachedGroups(upstream, time.Minute)

	if _, err := cg.AllGroups(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	upstream.err = nil
	if _, err := cg.AllGroups(context.Background()); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if upstream.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", upstream.calls)
	}
}

func TestCachedGroupsReturnsCopies(t *testing.T) {
	cg := NewCachedGroups(memory.New([]core.GroupRecord{{Group: "g", Currency: "USD"}}, nil, nil), time.Minute)
	first, _ := cg.AllGroups(context.Background())
	first[0].Currency = "XXX"
	second, _ := cg.AllGroups(context.Background())
	if second[0].Currency != "USD" {
		t.Fatal("cached slice was mutated through a returned copy")
	}
}

func TestSQLiteHost(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "host.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	ctx := context.Background()

	fx := host.Fixture{
		Groups:   []host.FixtureGroup{{Group: "real-usd", Currency: "USD"}, {Group: "demo", Currency: "EUR"}},
		Accounts: []host.FixtureAccount{{Login: 1, Name: "A", Group: "real-usd"}, {Login: 2, Name: "B", Group: "demo"}},
		Trades: []host.FixtureTrade{
			{Order: 1, Login: 1, Cmd: core.CmdCreditIn, Profit: 10, CloseTime: "2024-01-01 00:00:00"},
			{Order: 2, Login: 2, Cmd: core.CmdCreditOut, Profit: -3, CloseTime: "2024-01-01 00:00:01"},
		},
	}
	if _, err := repo.Seed(ctx, fx); err != nil {
		t.Fatal(err)
	}

	h := NewSQLiteHost(repo)
	trades, err := h.TransactionsByGroup(ctx, "real*", 0, 1<<62)
	if err != nil || len(trades) != 1 || trades[0].Cmd != core.CmdCreditIn {
		t.Fatalf("unexpected trades %+v err=%v", trades, err)
	}
	all, _ := h.TransactionsByGroup(ctx, "", 0, 1<<62)
	if len(all) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(all))
	}
	if _, err := h.TransactionsByGroup(ctx, "!", 0, 1); err == nil {
		t.Fatal("expected invalid mask error")
	}

	groups, _ := h.AllGroups(ctx)
	if len(groups) != 2 {
		t.Fatalf("unexpected groups %v", groups)
	}
	if _, err := h.AccountByLogin(ctx, 9); !errors.Is(err, host.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
