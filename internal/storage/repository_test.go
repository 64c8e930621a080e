package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"creditreport/internal/core"
	"creditreport/internal/host"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "host.db"))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testFixture() host.Fixture {
	return host.Fixture{
		Groups: []host.FixtureGroup{
			{Group: "real-usd", Currency: "USD"},
			{Group: "demo", Currency: "EUR"},
			{Group: "real-usd", Currency: "GBP"},
		},
		Accounts: []host.FixtureAccount{
			{Login: 1, Name: "Alice", Group: "real-usd"},
			{Login: 2, Name: "Bob", Group: "demo"},
		},
		Trades: []host.FixtureTrade{
			{Order: 20, Login: 2, Cmd: core.CmdCreditOut, Profit: -5, CloseTime: "2024-01-02 00:00:00"},
			{Order: 10, Login: 1, Cmd: core.CmdCreditIn, Profit: 100.25, CloseTime: "2024-01-01 00:00:00", Comment: "bonus"},
			{Order: 30, Login: 3, Cmd: core.CmdBuy, Profit: 1, CloseTime: "2024-01-03 00:00:00"},
		},
	}
}

func TestSeedAndQuery(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res, err := repo.Seed(ctx, testFixture())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res.Groups != 2 || res.Skipped != 1 || res.Accounts != 2 || res.Trades != 3 {
		t.Fatalf("unexpected seed result %+v", res)
	}

	groups, err := repo.Groups(ctx)
	if err != nil || len(groups) != 2 || groups[0] != (core.GroupRecord{Group: "real-usd", Currency: "USD"}) {
		t.Fatalf("unexpected groups %v err=%v", groups, err)
	}

	trades, err := repo.TradesInRange(ctx, 0, 1<<62)
	if err != nil || len(trades) != 3 {
		t.Fatalf("unexpected trades %v err=%v", trades, err)
	}
	if trades[0].OrderID != 10 || trades[0].GroupName != "real-usd" || trades[0].Comment != "bonus" {
		t.Fatalf("unexpected first trade %+v", trades[0])
	}
	if trades[2].GroupName != "" {
		t.Fatalf("trade without account should have empty group, got %q", trades[2].GroupName)
	}

	// 2024-01-02 00:00:00 UTC
	day2 := int64(1704153600)
	window, _ := repo.TradesInRange(ctx, day2, day2)
	if len(window) != 1 || window[0].OrderID != 20 {
		t.Fatalf("unexpected window %+v", window)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := repo.Seed(ctx, testFixture()); err != nil {
			t.Fatal(err)
		}
	}
	n, err := repo.CountTrades(ctx)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 trades, got %d err=%v", n, err)
	}
}

func TestAccount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.Seed(ctx, testFixture()); err != nil {
		t.Fatal(err)
	}

	a, err := repo.Account(ctx, 1)
	if err != nil || a != (core.AccountRecord{Login: 1, Name: "Alice", Group: "real-usd"}) {
		t.Fatalf("unexpected account %+v err=%v", a, err)
	}
	if _, err := repo.Account(ctx, 404); !errors.Is(err, host.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestSeedRejectsBadTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	fx := host.Fixture{Trades: []host.FixtureTrade{{Order: 1, CloseTime: "not a time"}}}
	if _, err := repo.Seed(context.Background(), fx); err == nil {
		t.Fatal("expected error")
	}
}
