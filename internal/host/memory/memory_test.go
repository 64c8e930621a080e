package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"creditreport/internal/core"
	"creditreport/internal/host"
)

func seed() *Store {
	return New(
		[]core.GroupRecord{{Group: "real-usd", Currency: "USD"}, {Group: "demo", Currency: "EUR"}, {Group: "real-usd", Currency: "GBP"}},
		[]core.AccountRecord{{Login: 1, Name: "A", Group: "real-usd"}, {Login: 2, Name: "B", Group: "demo"}},
		[]core.TradeRecord{
			{Order: 3, Login: 2, Cmd: core.CmdCreditIn, CloseTime: 300},
			{Order: 1, Login: 1, Cmd: core.CmdCreditIn, CloseTime: 100},
			{Order: 2, Login: 1, Cmd: core.CmdBuy, CloseTime: 200},
		},
	)
}

func TestStoreGroupsDedupe(t *testing.T) {
	groups, err := seed().AllGroups(context.Background())
	if err != nil || len(groups) != 2 {
		t.Fatalf("unexpected groups: %v err=%v", groups, err)
	}
	if groups[0].Currency != "USD" {
		t.Fatalf("first occurrence must win, got %s", groups[0].Currency)
	}
}

func TestStoreGroupsKeepNamesVerbatim(t *testing.T) {
	s := New(
		[]core.GroupRecord{{Group: "std ", Currency: "USD"}, {Group: "std", Currency: "EUR"}, {Group: "", Currency: "GBP"}},
		[]core.AccountRecord{{Login: 1, Group: "std "}},
		nil,
	)
	groups, _ := s.AllGroups(context.Background())
	want := []core.GroupRecord{{Group: "std ", Currency: "USD"}, {Group: "std", Currency: "EUR"}, {Group: "", Currency: "GBP"}}
	if len(groups) != len(want) {
		t.Fatalf("unexpected groups %q", groups)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Fatalf("group %d = %+v, want %+v", i, groups[i], want[i])
		}
	}
	acct, _ := s.AccountByLogin(context.Background(), 1)
	if acct.Group != groups[0].Group {
		t.Fatalf("account group %q no longer matches %q", acct.Group, groups[0].Group)
	}
}

func TestStoreTransactionsByGroup(t *testing.T) {
	s := seed()
	ctx := context.Background()

	all, _ := s.TransactionsByGroup(ctx, "", 0, 1000)
	if len(all) != 3 || all[0].Order != 1 || all[2].Order != 3 {
		t.Fatalf("expected all trades by close time, got %+v", all)
	}

	realTrades, _ := s.TransactionsByGroup(ctx, "real*", 0, 1000)
	if len(realTrades) != 2 {
		t.Fatalf("expected 2 real trades, got %d", len(realTrades))
	}

	window, _ := s.TransactionsByGroup(ctx, "", 200, 300)
	if len(window) != 2 || window[0].Order != 2 {
		t.Fatalf("unexpected window: %+v", window)
	}
}

func TestStoreAccountByLogin(t *testing.T) {
	s := seed()
	a, err := s.AccountByLogin(context.Background(), 1)
	if err != nil || a.Name != "A" {
		t.Fatalf("unexpected account %+v err=%v", a, err)
	}
	if _, err := s.AccountByLogin(context.Background(), 99); !errors.Is(err, host.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestStoreFail(t *testing.T) {
	s := seed()
	boom := errors.New("boom")
	s.Fail(OpGroups, boom)
	if _, err := s.AllGroups(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	s.Fail(OpGroups, nil)
	if _, err := s.AllGroups(context.Background()); err != nil {
		t.Fatalf("fault not cleared: %v", err)
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFromFile(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should give empty store: %v", err)
	}
	if g, _ := s.AllGroups(context.Background()); len(g) != 0 {
		t.Fatalf("expected empty store, got %v", g)
	}

	path := filepath.Join(dir, "fixture.yaml")
	content := `groups:
  - {group: real-usd, currency: USD}
accounts:
  - {login: 1001, name: Alice, group: real-usd}
trades:
  - {order: 7, login: 1001, cmd: CREDIT_OUT, profit: -25.5, close_time: "2024-01-02 10:00:00", comment: "credit out"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = NewFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	trades, _ := s.TransactionsByGroup(context.Background(), "", 0, 1<<62)
	if len(trades) != 1 || trades[0].Cmd != core.CmdCreditOut || trades[0].Profit != -25.5 {
		t.Fatalf("unexpected trades: %+v", trades)
	}
	if trades[0].CloseTime != 1704189600 {
		t.Fatalf("unexpected close time %d", trades[0].CloseTime)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("trades:\n  - {cmd: NOPE}\n"), 0o644)
	if _, err := NewFromFile(bad); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
