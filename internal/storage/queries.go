package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type TradeRow struct {
	OrderID   int64
	Login     int64
	Cmd       int64
	Profit    float64
	CloseTime int64
	Comment   string
	GroupName string
}

type GroupRow struct {
	Name     string
	Currency string
}

type AccountRow struct {
	Login     int64
	Name      string
	GroupName string
}

const listTradesInRange = `
SELECT t.order_id, t.login, t.cmd, t.profit, t.close_time, t.comment, COALESCE(a.group_name, '')
FROM trades t
LEFT JOIN accounts a ON a.login = t.login
WHERE t.close_time BETWEEN ? AND ?
ORDER BY t.close_time, t.order_id`

func (q *Queries) ListTradesInRange(ctx context.Context, from, to int64) ([]TradeRow, error) {
	rows, err := q.db.QueryContext(ctx, listTradesInRange, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TradeRow
	for rows.Next() {
		var i TradeRow
		if err := rows.Scan(&i.OrderID, &i.Login, &i.Cmd, &i.Profit, &i.CloseTime, &i.Comment, &i.GroupName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listGroups = `SELECT name, currency FROM trade_groups ORDER BY rowid`

func (q *Queries) ListGroups(ctx context.Context) ([]GroupRow, error) {
	rows, err := q.db.QueryContext(ctx, listGroups)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GroupRow
	for rows.Next() {
		var i GroupRow
		if err := rows.Scan(&i.Name, &i.Currency); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getAccount = `SELECT login, name, group_name FROM accounts WHERE login = ?`

func (q *Queries) GetAccount(ctx context.Context, login int64) (AccountRow, error) {
	row := q.db.QueryRowContext(ctx, getAccount, login)
	var i AccountRow
	err := row.Scan(&i.Login, &i.Name, &i.GroupName)
	return i, err
}

const upsertGroup = `
INSERT INTO trade_groups (name, currency) VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET currency = excluded.currency`

func (q *Queries) UpsertGroup(ctx context.Context, name, currency string) error {
	_, err := q.db.ExecContext(ctx, upsertGroup, name, currency)
	return err
}

const upsertAccount = `
INSERT INTO accounts (login, name, group_name) VALUES (?, ?, ?)
ON CONFLICT(login) DO UPDATE SET name = excluded.name, group_name = excluded.group_name`

func (q *Queries) UpsertAccount(ctx context.Context, arg AccountRow) error {
	_, err := q.db.ExecContext(ctx, upsertAccount, arg.Login, arg.Name, arg.GroupName)
	return err
}

const upsertTrade = `
INSERT INTO trades (order_id, login, cmd, profit, close_time, comment) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(order_id) DO UPDATE SET
    login = excluded.login,
    cmd = excluded.cmd,
    profit = excluded.profit,
    close_time = excluded.close_time,
    comment = excluded.comment`

func (q *Queries) UpsertTrade(ctx context.Context, arg TradeRow) error {
	_, err := q.db.ExecContext(ctx, upsertTrade, arg.OrderID, arg.Login, arg.Cmd, arg.Profit, arg.CloseTime, arg.Comment)
	return err
}

const countTrades = `SELECT COUNT(*) FROM trades`

func (q *Queries) CountTrades(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTrades).Scan(&n)
	return n, err
}
