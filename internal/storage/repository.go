package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"creditreport/internal/core"
	"creditreport/internal/host"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the trading host data: groups, accounts, trades.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// TradesInRange returns trades closed in [from, to] with their account group.
func (r *SQLiteRepository) TradesInRange(ctx context.Context, from, to int64) ([]TradeRow, error) {
	rows, err := r.queries.ListTradesInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list trades %d..%d: %w", from, to, err)
	}
	return rows, nil
}

func (r *SQLiteRepository) Groups(ctx context.Context) ([]core.GroupRecord, error) {
	rows, err := r.queries.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	groups := make([]core.GroupRecord, len(rows))
	for i, g := range rows {
		groups[i] = core.GroupRecord{Group: g.Name, Currency: g.Currency}
	}
	return groups, nil
}

// Account returns host.ErrAccountNotFound for unknown logins.
func (r *SQLiteRepository) Account(ctx context.Context, login int64) (core.AccountRecord, error) {
	row, err := r.queries.GetAccount(ctx, login)
	if errors.Is(err, sql.ErrNoRows) {
		return core.AccountRecord{}, fmt.Errorf("login %d: %w", login, host.ErrAccountNotFound)
	}
	if err != nil {
		return core.AccountRecord{}, fmt.Errorf("get account %d: %w", login, err)
	}
	return core.AccountRecord{Login: row.Login, Name: row.Name, Group: row.GroupName}, nil
}

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Groups   int
	Accounts int
	Trades   int
	Skipped  int // duplicate group names
}

// Seed writes a fixture in one transaction. Within the fixture the first
// record for a group name wins; existing rows are updated in place.
func (r *SQLiteRepository) Seed(ctx context.Context, fx host.Fixture) (SeedResult, error) {
	var res SeedResult
	groups, accounts, trades, err := fx.Records()
	if err != nil {
		return res, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()
	q := r.queries.WithTx(tx)

	seen := map[string]struct{}{}
	for _, g := range groups {
		if _, dup := seen[g.Group]; dup {
			res.Skipped++
			slog.WarnContext(ctx, "Skipping duplicate group", "group", g.Group)
			continue
		}
		seen[g.Group] = struct{}{}
		if err := q.UpsertGroup(ctx, g.Group, g.Currency); err != nil {
			return res, fmt.Errorf("upsert group %s: %w", g.Group, err)
		}
		res.Groups++
	}
	for _, a := range accounts {
		if err := q.UpsertAccount(ctx, AccountRow{Login: a.Login, Name: a.Name, GroupName: a.Group}); err != nil {
			return res, fmt.Errorf("upsert account %d: %w", a.Login, err)
		}
		res.Accounts++
	}
	for _, t := range trades {
		err := q.UpsertTrade(ctx, TradeRow{
			OrderID:   t.Order,
			Login:     t.Login,
			Cmd:       int64(t.Cmd),
			Profit:    t.Profit,
			CloseTime: t.CloseTime,
			Comment:   t.Comment,
		})
		if err != nil {
			return res, fmt.Errorf("upsert trade %d: %w", t.Order, err)
		}
		res.Trades++
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit seed: %w", err)
	}

	slog.InfoContext(ctx, "Host data seeded",
		"groups", res.Groups,
		"accounts", res.Accounts,
		"trades", res.Trades,
		"skipped_groups", res.Skipped)
	return res, nil
}

func (r *SQLiteRepository) CountTrades(ctx context.Context) (int64, error) {
	return r.queries.CountTrades(ctx)
}
