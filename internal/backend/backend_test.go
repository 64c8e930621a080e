package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"creditreport/internal/config"
	"creditreport/internal/core"
	"creditreport/internal/log"
	sheetsmem "creditreport/internal/sheets/memory"
	"creditreport/internal/ui"
)

const fixture = `groups:
  - group: real
    currency: USD
accounts:
  - login: 1
    name: Alice
    group: real
trades:
  - order: 1
    login: 1
    cmd: CREDIT_IN
    profit: 10
    close_time: "2024-01-02 03:04:05"
`

func TestBackendTypes(t *testing.T) {
	for _, bt := range GetBackendTypes() {
		if !bt.IsValid() {
			t.Errorf("%s should be valid", bt)
		}
	}
	if BackendType("sheets").IsValid() {
		t.Error("sheets is not a host backend")
	}
	if got := GetBackendTypeStrings(); len(got) != 2 {
		t.Errorf("GetBackendTypeStrings() = %v", got)
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}

	app := &config.Config{DataBackend: "redis"}
	if _, err := FromAppConfig(app); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	app = &config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", GroupCacheTTL: time.Minute, GoogleSpreadsheetID: "sheet"}
	cfg, err := FromAppConfig(app)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || !cfg.ExportEnabled() {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("export without credentials must fail validation")
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFactory(log.Discard())
	res, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend, FixturesPath: path, GroupCacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	if res.Groups == nil {
		t.Fatal("expected group cache")
	}

	groups, err := res.Server.AllGroups(context.Background())
	if err != nil || len(groups) != 1 {
		t.Fatalf("AllGroups() = %v, %v", groups, err)
	}
	if res.CacheSize() != 1 {
		t.Fatalf("expected cached groups, size=%d", res.CacheSize())
	}

	trades, err := res.Server.TransactionsByGroup(context.Background(), "", 0, 1<<62)
	if err != nil || len(trades) != 1 {
		t.Fatalf("TransactionsByGroup() = %v, %v", trades, err)
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "host.db"),
	})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	defer res.Cleanup()

	if res.Groups != nil || res.CacheSize() != 0 {
		t.Fatal("cache must be off with zero TTL")
	}
	if err := res.Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error = %v", err)
	}
	groups, err := res.Server.AllGroups(context.Background())
	if err != nil || len(groups) != 0 {
		t.Fatalf("fresh database should have no groups: %v, %v", groups, err)
	}
}

func TestCreateExporterDisabled(t *testing.T) {
	exp, err := NewFactory(nil).CreateExporter(context.Background(), Config{Type: MemoryBackend})
	if err != nil || exp != nil {
		t.Fatalf("expected nil exporter, got %v, %v", exp, err)
	}
}

func TestCreateMemoryExporter(t *testing.T) {
	app := &config.Config{DataBackend: "memory", ExportBackend: "memory"}
	cfg, err := FromAppConfig(app)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory export must not need credentials: %v", err)
	}
	exp, err := NewFactory(nil).CreateExporter(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	store, ok := exp.(*sheetsmem.Store)
	if !ok {
		t.Fatalf("expected memory exporter, got %T", exp)
	}
	table := ui.TableProps{Columns: []ui.ColumnDef{{Key: "order", Label: "ORDER"}}, Rows: []map[string]string{{"order": "1"}}}
	ref, err := exp.ExportTable(context.Background(), table, []core.Total{})
	if err != nil || ref == "" || len(store.Exports()) != 1 {
		t.Fatalf("export not recorded: ref=%q err=%v", ref, err)
	}
}
