package adapters

import (
	"context"

	"creditreport/internal/core"
	"creditreport/internal/host"
	"creditreport/internal/storage"
)

// SQLiteHost serves the host ports from the SQLite repository. Group masks
// are applied here since SQL has no equivalent of the mask syntax.
type SQLiteHost struct {
	repo *storage.SQLiteRepository
}

func NewSQLiteHost(repo *storage.SQLiteRepository) *SQLiteHost {
	return &SQLiteHost{repo: repo}
}

func (h *SQLiteHost) TransactionsByGroup(ctx context.Context, mask string, from, to int64) ([]core.TradeRecord, error) {
	m, err := host.CompileMask(mask)
	if err != nil {
		return nil, err
	}
	rows, err := h.repo.TradesInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]core.TradeRecord, 0, len(rows))
	for _, r := range rows {
		if !m.Match(r.GroupName) {
			continue
		}
		out = append(out, core.TradeRecord{
			Order:     r.OrderID,
			Login:     r.Login,
			Cmd:       core.Command(r.Cmd),
			Profit:    r.Profit,
			CloseTime: r.CloseTime,
			Comment:   r.Comment,
		})
	}
	return out, nil
}

func (h *SQLiteHost) AllGroups(ctx context.Context) ([]core.GroupRecord, error) {
	return h.repo.Groups(ctx)
}

func (h *SQLiteHost) AccountByLogin(ctx context.Context, login int64) (core.AccountRecord, error) {
	return h.repo.Account(ctx, login)
}

var _ host.Server = (*SQLiteHost)(nil)
